package http

import (
	"net/http"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	dashboardsvc "github.com/qadam-hq/checkin-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	// Snapshot returns the live attendance partition for one date.
	Snapshot(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboardsvc.Service
}

func NewDashboardHandler(dashboardService dashboardsvc.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Snapshot implements DashboardHandler. Without ?date= the snapshot covers
// today in the organization timezone.
func (h *dashboardHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := timeutil.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	snapshot, err := h.dashboardService.Snapshot(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}
