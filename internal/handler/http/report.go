package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/report"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	reportsvc "github.com/qadam-hq/checkin-backend-go/internal/service/report"
)

type ReportHandler interface {
	// Period aggregates attendance over an inclusive date range.
	Period(w http.ResponseWriter, r *http.Request)

	// MonthlyMatrix returns the per-day status grid for one month.
	MonthlyMatrix(w http.ResponseWriter, r *http.Request)

	// MonthlyMatrixCSV downloads the same grid as a CSV file.
	MonthlyMatrixCSV(w http.ResponseWriter, r *http.Request)

	// ExportLedger downloads the raw event ledger as a CSV file.
	ExportLedger(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService reportsvc.Service
	tz            *time.Location
}

func NewReportHandler(reportService reportsvc.Service, tz *time.Location) ReportHandler {
	return &reportHandlerImpl{reportService: reportService, tz: tz}
}

// Period implements ReportHandler.
func (h *reportHandlerImpl) Period(w http.ResponseWriter, r *http.Request) {
	req := report.PeriodRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.PeriodReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// monthlyRequest reads ?year= and ?month=, defaulting to the current month
// in the organization timezone.
func (h *reportHandlerImpl) monthlyRequest(r *http.Request) report.MonthlyRequest {
	now := time.Now().In(h.tz)
	req := report.MonthlyRequest{Year: now.Year(), Month: int(now.Month())}

	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			req.Year = year
		}
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		if month, err := strconv.Atoi(raw); err == nil {
			req.Month = month
		}
	}
	return req
}

// MonthlyMatrix implements ReportHandler.
func (h *reportHandlerImpl) MonthlyMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.reportService.MonthlyMatrix(r.Context(), h.monthlyRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, matrix)
}

// MonthlyMatrixCSV implements ReportHandler.
func (h *reportHandlerImpl) MonthlyMatrixCSV(w http.ResponseWriter, r *http.Request) {
	req := h.monthlyRequest(r)

	data, err := h.reportService.MonthlyMatrixCSV(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("monthly_summary_%04d_%02d.csv", req.Year, req.Month)
	response.CSV(w, filename, data)
}

// ExportLedger implements ReportHandler.
func (h *reportHandlerImpl) ExportLedger(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.ExportLedgerCSV(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("checkin_export_%s.csv", time.Now().In(h.tz).Format("2006-01-02"))
	response.CSV(w, filename, data)
}
