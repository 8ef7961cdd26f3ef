package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	leavesvc "github.com/qadam-hq/checkin-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	SetHoliday(w http.ResponseWriter, r *http.Request)
	RemoveHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leavesvc.Service
}

func NewLeaveHandler(leaveService leavesvc.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

type periodResponse struct {
	ID         string `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
}

func toPeriodResponse(p leave.Period) periodResponse {
	return periodResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		StartDate:  timeutil.FormatDate(p.StartDate),
		EndDate:    timeutil.FormatDate(p.EndDate),
		Type:       string(p.Type),
	}
}

// Grant implements LeaveHandler.
func (h *leaveHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req leavesvc.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	period, err := h.leaveService.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave granted", toPeriodResponse(period))
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	var req leavesvc.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	removed, err := h.leaveService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave cancelled", map[string]int64{"records_removed": removed})
}

// SetHoliday implements LeaveHandler.
func (h *leaveHandlerImpl) SetHoliday(w http.ResponseWriter, r *http.Request) {
	var req leavesvc.HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.leaveService.SetHoliday(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday saved", nil)
}

// RemoveHoliday implements LeaveHandler.
func (h *leaveHandlerImpl) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.RemoveHoliday(r.Context(), chi.URLParam(r, "date")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday removed", nil)
}

// ListHolidays implements LeaveHandler.
func (h *leaveHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.leaveService.ListHolidays(r.Context(), r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	type holidayResponse struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	out := make([]holidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holidayResponse{Date: timeutil.FormatDate(h.Date), Name: h.Name})
	}
	response.Success(w, out)
}
