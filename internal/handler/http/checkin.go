package http

import (
	"encoding/json"
	"net/http"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/checkin"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/middleware"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	checkinsvc "github.com/qadam-hq/checkin-backend-go/internal/service/checkin"
)

type CheckinHandler interface {
	// Verified is the employee-facing check-in: geofence and face checks
	// run server-side. The employee ID always comes from the token.
	Verified(w http.ResponseWriter, r *http.Request)

	// Record appends an already-verified outcome; admin only.
	Record(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkinsvc.Service
}

func NewCheckinHandler(checkinService checkinsvc.Service) CheckinHandler {
	return &checkinHandlerImpl{checkinService: checkinService}
}

// Verified implements CheckinHandler.
func (h *checkinHandlerImpl) Verified(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := middleware.TelegramID(r)
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	var req checkin.VerifiedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = telegramID

	result, err := h.checkinService.Verified(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Check-in recorded", result)
}

// Record implements CheckinHandler.
func (h *checkinHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req checkin.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkinService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Event recorded", result)
}
