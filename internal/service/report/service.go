package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/report"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/status"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	statussvc "github.com/qadam-hq/checkin-backend-go/internal/service/status"
)

// shortDateLayout renders the day lists and matrix headers (DD.MM).
const shortDateLayout = "02.01"

type Service interface {
	PeriodReport(ctx context.Context, req report.PeriodRequest) (report.PeriodReport, error)
	MonthlyMatrix(ctx context.Context, req report.MonthlyRequest) (report.MonthlyMatrix, error)

	// MonthlyMatrixCSV renders the matrix verbatim as a CSV document.
	MonthlyMatrixCSV(ctx context.Context, req report.MonthlyRequest) ([]byte, error)

	// ExportLedgerCSV dumps the full event ledger, newest first.
	ExportLedgerCSV(ctx context.Context) ([]byte, error)
}

type ServiceImpl struct {
	loader    *statussvc.Loader
	eventRepo event.EventRepository
}

func NewService(loader *statussvc.Loader, eventRepo event.EventRepository) Service {
	return &ServiceImpl{loader: loader, eventRepo: eventRepo}
}

func (s *ServiceImpl) PeriodReport(ctx context.Context, req report.PeriodRequest) (report.PeriodReport, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodReport{}, err
	}
	start, end := req.Range()

	fs, err := s.loader.Load(ctx, start, end)
	if err != nil {
		return report.PeriodReport{}, err
	}

	out := report.PeriodReport{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	lateDates := make(map[int64][]string)
	absenceDates := make(map[int64][]string)

	for _, emp := range fs.Employees {
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			resolved := schedule.Resolve(fs.Versions[emp.TelegramID], timeutil.Weekday(date), date)
			if resolved.Obligated() {
				out.TotalObligatedDays++
			}

			composite := fs.Derive(emp.TelegramID, date)
			switch {
			case composite.Attended():
				out.TotalArrivals++
				if composite.Kind == status.KindLate {
					out.TotalLates++
					lateDates[emp.TelegramID] = append(lateDates[emp.TelegramID], date.Format(shortDateLayout))
				}
			case composite.Kind == status.KindMissed || composite.Kind == status.KindAbsent:
				absenceDates[emp.TelegramID] = append(absenceDates[emp.TelegramID], date.Format(shortDateLayout))
			}
		}
	}

	out.LateEmployees = collectEmployeeDates(fs, lateDates)
	out.Absences = collectEmployeeDates(fs, absenceDates)
	return out, nil
}

func (s *ServiceImpl) MonthlyMatrix(ctx context.Context, req report.MonthlyRequest) (report.MonthlyMatrix, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyMatrix{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	fs, err := s.loader.Load(ctx, start, end)
	if err != nil {
		return report.MonthlyMatrix{}, err
	}

	matrix := report.MonthlyMatrix{
		Year:   req.Year,
		Month:  req.Month,
		Header: []string{"Employee"},
	}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		matrix.Header = append(matrix.Header, date.Format(shortDateLayout))
	}

	for _, emp := range fs.Employees {
		row := []string{emp.FullName}
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			row = append(row, fs.Derive(emp.TelegramID, date).ShortLabel())
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	return matrix, nil
}

func (s *ServiceImpl) MonthlyMatrixCSV(ctx context.Context, req report.MonthlyRequest) ([]byte, error) {
	matrix, err := s.MonthlyMatrix(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(matrix.Header); err != nil {
		return nil, fmt.Errorf("write matrix header: %w", err)
	}
	if err := w.WriteAll(matrix.Rows); err != nil {
		return nil, fmt.Errorf("write matrix rows: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ServiceImpl) ExportLedgerCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"timestamp_utc", "full_name", "category", "outcome", "latitude", "longitude", "distance_meters", "face_similarity"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Timestamp.UTC().Format(time.RFC3339),
			row.FullName,
			string(row.Category),
			string(row.Outcome),
			formatFloat(row.Latitude),
			formatFloat(row.Longitude),
			formatFloat(row.DistanceMeters),
			formatFloat(row.FaceSimilarity),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func collectEmployeeDates(fs *statussvc.FactSet, dates map[int64][]string) []report.EmployeeDates {
	if len(dates) == 0 {
		return nil
	}

	names := make(map[int64]string, len(fs.Employees))
	for _, emp := range fs.Employees {
		names[emp.TelegramID] = emp.FullName
	}

	out := make([]report.EmployeeDates, 0, len(dates))
	for employeeID, list := range dates {
		out = append(out, report.EmployeeDates{
			EmployeeID: employeeID,
			FullName:   names[employeeID],
			Dates:      list,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
