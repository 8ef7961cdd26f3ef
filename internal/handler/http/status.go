package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/middleware"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	statussvc "github.com/qadam-hq/checkin-backend-go/internal/service/status"
)

type StatusHandler interface {
	// GetMyStatus derives the authenticated employee's status.
	GetMyStatus(w http.ResponseWriter, r *http.Request)

	// GetStatus derives any employee's status; admin only.
	GetStatus(w http.ResponseWriter, r *http.Request)
}

type statusHandlerImpl struct {
	statusService statussvc.Service
	tz            *time.Location
}

func NewStatusHandler(statusService statussvc.Service, tz *time.Location) StatusHandler {
	return &statusHandlerImpl{statusService: statusService, tz: tz}
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today in the organization
// timezone.
func (h *statusHandlerImpl) dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return timeutil.DateOf(time.Now().In(h.tz)), nil
	}
	return timeutil.ParseDate(raw)
}

// GetMyStatus implements StatusHandler.
func (h *statusHandlerImpl) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := middleware.TelegramID(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}
	h.respond(w, r, telegramID)
}

// GetStatus implements StatusHandler.
func (h *statusHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid telegram ID", nil)
		return
	}
	h.respond(w, r, telegramID)
}

func (h *statusHandlerImpl) respond(w http.ResponseWriter, r *http.Request, telegramID int64) {
	date, err := h.dateParam(r)
	if err != nil {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	status, err := h.statusService.GetStatus(r.Context(), telegramID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}
