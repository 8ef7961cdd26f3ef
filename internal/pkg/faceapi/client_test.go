package faceapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Match(t *testing.T) {
	var gotPath string
	var gotBody verifyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(verifyResponse{Similarity: 87.5, Match: true})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	similarity, match, err := client.Verify(context.Background(), 100, "photos/abc.jpg")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/verify", gotPath)
	assert.Equal(t, int64(100), gotBody.TelegramID)
	assert.Equal(t, "photos/abc.jpg", gotBody.PhotoRef)
	assert.Equal(t, 87.5, similarity)
	assert.True(t, match)
}

func TestVerify_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verifyResponse{Similarity: 12.3, Match: false})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	similarity, match, err := client.Verify(context.Background(), 100, "photos/abc.jpg")

	require.NoError(t, err)
	assert.Equal(t, 12.3, similarity)
	assert.False(t, match)
}

func TestVerify_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verifyResponse{Error: "no enrolled face"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.Verify(context.Background(), 100, "photos/abc.jpg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no enrolled face")
}

func TestVerify_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.Verify(context.Background(), 100, "photos/abc.jpg")

	require.Error(t, err)
}
