package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	schedulesvc "github.com/qadam-hq/checkin-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	SetVersion(w http.ResponseWriter, r *http.Request)
	SetWeek(w http.ResponseWriter, r *http.Request)
	GetEmployeeSchedule(w http.ResponseWriter, r *http.Request)
	ImportCSV(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedulesvc.Service
}

func NewScheduleHandler(scheduleService schedulesvc.Service) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

type versionResponse struct {
	DayOfWeek     int    `json:"day_of_week"`
	EffectiveFrom string `json:"effective_from"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	Rest          bool   `json:"rest"`
}

func toVersionResponse(v schedule.Version) versionResponse {
	out := versionResponse{
		DayOfWeek:     v.DayOfWeek,
		EffectiveFrom: timeutil.FormatDate(v.EffectiveFrom),
		Rest:          v.IsRest(),
	}
	if !v.IsRest() {
		out.Start = v.Start.String()
		out.End = v.End.String()
	}
	return out
}

// SetVersion implements ScheduleHandler.
func (h *scheduleHandlerImpl) SetVersion(w http.ResponseWriter, r *http.Request) {
	var req schedulesvc.SetVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.SetVersion(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule version saved", nil)
}

// SetWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) SetWeek(w http.ResponseWriter, r *http.Request) {
	var req schedulesvc.SetWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.SetWeek(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Week schedule saved", nil)
}

// GetEmployeeSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid telegram ID", nil)
		return
	}

	versions, err := h.scheduleService.GetEmployeeSchedule(r.Context(), telegramID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]versionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, toVersionResponse(v))
	}
	response.Success(w, out)
}

// ImportCSV implements ScheduleHandler.
func (h *scheduleHandlerImpl) ImportCSV(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	summary, err := h.scheduleService.ImportCSV(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedules imported", summary)
}
