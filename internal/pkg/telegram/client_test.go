package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/notification"
)

type capturedCall struct {
	path string
	body map[string]any
}

func newTestServer(t *testing.T, ok bool) (*httptest.Server, *[]capturedCall) {
	t.Helper()

	var mu sync.Mutex
	var calls []capturedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		calls = append(calls, capturedCall{path: r.URL.Path, body: body})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if ok {
			w.Write([]byte(`{"ok":true}`))
		} else {
			w.Write([]byte(`{"ok":false,"error_code":403,"description":"bot was blocked by the user"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNotifyEmployeeSendsMessage(t *testing.T) {
	srv, calls := newTestServer(t, true)
	client := NewClientWithBaseURL(srv.URL, "test-token", nil)

	err := client.NotifyEmployee(context.Background(), 42, "hello")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/bottest-token/sendMessage", call.path)
	assert.Equal(t, float64(42), call.body["chat_id"])
	assert.Equal(t, "hello", call.body["text"])
	assert.NotContains(t, call.body, "reply_markup")
}

func TestNotifyEmployeeAttachesInlineKeyboard(t *testing.T) {
	srv, calls := newTestServer(t, true)
	client := NewClientWithBaseURL(srv.URL, "test-token", nil)

	err := client.NotifyEmployee(context.Background(), 42, "late?",
		notification.Action{Label: "Check in late", Data: "late_checkin"})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	markup, ok := (*calls)[0].body["reply_markup"].(map[string]any)
	require.True(t, ok)
	rows, ok := markup["inline_keyboard"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	button := rows[0].([]any)[0].(map[string]any)
	assert.Equal(t, "Check in late", button["text"])
	assert.Equal(t, "late_checkin", button["callback_data"])
}

func TestNotifyEmployeeSurfacesAPIError(t *testing.T) {
	srv, _ := newTestServer(t, false)
	client := NewClientWithBaseURL(srv.URL, "test-token", nil)

	err := client.NotifyEmployee(context.Background(), 42, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was blocked by the user")
}

func TestNotifyAdminsBroadcastsToEveryChat(t *testing.T) {
	srv, calls := newTestServer(t, true)
	client := NewClientWithBaseURL(srv.URL, "test-token", []int64{1, 2, 3})

	err := client.NotifyAdmins(context.Background(), "report")
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	var seen []float64
	for _, call := range *calls {
		seen = append(seen, call.body["chat_id"].(float64))
	}
	assert.ElementsMatch(t, []float64{1, 2, 3}, seen)
}
