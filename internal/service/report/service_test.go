package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/report"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/repository/memory"
	statussvc "github.com/qadam-hq/checkin-backend-go/internal/service/status"
)

type reportFixture struct {
	svc      Service
	events   *memory.EventRepository
	periods  *memory.LeavePeriodRepository
	holidays *memory.HolidayRepository
	tz       *time.Location
}

// Fixture: two employees working Mon-Fri 09:00-18:00 since 2024-01-01, with
// "today" pinned to 2024-04-01 so all of March is in the past.
func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	ctx := context.Background()

	tz, err := time.LoadLocation("Asia/Almaty")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository()
	for id, name := range map[int64]string{100: "Aigerim", 200: "Bolat"} {
		_, err := employees.Upsert(ctx, employee.Employee{TelegramID: id, FullName: name})
		require.NoError(t, err)
	}

	versions := memory.NewVersionRepository()
	start := timeutil.TimeOfDay{Hour: 9}
	end := timeutil.TimeOfDay{Hour: 18}
	for _, id := range []int64{100, 200} {
		for day := 0; day < 7; day++ {
			v := schedule.Version{
				EmployeeID:    id,
				DayOfWeek:     day,
				EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			if day < 5 {
				v.Start = &start
				v.End = &end
			}
			require.NoError(t, versions.Upsert(ctx, v))
		}
	}

	events := memory.NewEventRepository()
	periods := memory.NewLeavePeriodRepository()
	holidays := memory.NewHolidayRepository()

	loader := statussvc.NewLoader(employees, versions, events, periods, holidays, tz).
		WithClock(func() time.Time {
			return time.Date(2024, 4, 1, 6, 0, 0, 0, time.UTC)
		})

	return &reportFixture{
		svc:      NewService(loader, events),
		events:   events,
		periods:  periods,
		holidays: holidays,
		tz:       tz,
	}
}

func (f *reportFixture) appendEvent(t *testing.T, id int64, local string, category event.Category, outcome event.Outcome) {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02 15:04:05", local, f.tz)
	require.NoError(t, err)
	_, err = f.events.Append(context.Background(), event.Event{
		EmployeeID: id,
		Timestamp:  at.UTC(),
		Category:   category,
		Outcome:    outcome,
	})
	require.NoError(t, err)
}

func TestPeriodReportTotals(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	// Aigerim: on time Monday, late Tuesday, missed Wednesday, on
	// vacation Thursday and Friday.
	f.appendEvent(t, 100, "2024-03-11 08:58:00", event.CategoryArrival, event.OutcomeSuccess)
	f.appendEvent(t, 100, "2024-03-12 09:30:00", event.CategoryArrival, event.OutcomeLate)
	_, err := f.periods.Create(ctx, leave.Period{
		EmployeeID: 100,
		StartDate:  time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Type:       leave.TypeVacation,
	})
	require.NoError(t, err)

	// Bolat: on time every day.
	for day := 11; day <= 15; day++ {
		f.appendEvent(t, 200, time.Date(2024, 3, day, 8, 55, 0, 0, time.UTC).In(f.tz).Format("2006-01-02 15:04:05"), event.CategoryArrival, event.OutcomeSuccess)
	}

	rep, err := f.svc.PeriodReport(ctx, report.PeriodRequest{StartDate: "2024-03-11", EndDate: "2024-03-15"})
	require.NoError(t, err)

	// Leave days still count toward the obligation denominator.
	assert.Equal(t, 10, rep.TotalObligatedDays)
	assert.Equal(t, 7, rep.TotalArrivals)
	assert.Equal(t, 1, rep.TotalLates)

	require.Len(t, rep.LateEmployees, 1)
	assert.Equal(t, "Aigerim", rep.LateEmployees[0].FullName)
	assert.Equal(t, []string{"12.03"}, rep.LateEmployees[0].Dates)

	require.Len(t, rep.Absences, 1)
	assert.Equal(t, "Aigerim", rep.Absences[0].FullName)
	assert.Equal(t, []string{"13.03"}, rep.Absences[0].Dates)
}

func TestPeriodReportHolidayNotObligatedButStillCounted(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	require.NoError(t, f.holidays.Put(ctx, leave.Holiday{
		Date: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		Name: "Company day",
	}))

	rep, err := f.svc.PeriodReport(ctx, report.PeriodRequest{StartDate: "2024-03-11", EndDate: "2024-03-11"})
	require.NoError(t, err)

	// The obligation denominator ignores the holiday branch; nobody is
	// absent for a holiday though.
	assert.Equal(t, 2, rep.TotalObligatedDays)
	assert.Zero(t, rep.TotalArrivals)
	assert.Empty(t, rep.Absences)
}

func TestPeriodReportRejectsReversedRange(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.PeriodReport(context.Background(), report.PeriodRequest{StartDate: "2024-03-15", EndDate: "2024-03-11"})
	require.Error(t, err)
}

func TestMonthlyMatrixShape(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	require.NoError(t, f.holidays.Put(ctx, leave.Holiday{
		Date: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Name: "International Women's Day",
	}))
	f.appendEvent(t, 100, "2024-03-11 08:58:00", event.CategoryArrival, event.OutcomeSuccess)

	matrix, err := f.svc.MonthlyMatrix(ctx, report.MonthlyRequest{Year: 2024, Month: 3})
	require.NoError(t, err)

	require.Len(t, matrix.Header, 32) // "Employee" + 31 days
	assert.Equal(t, "Employee", matrix.Header[0])
	assert.Equal(t, "01.03", matrix.Header[1])
	assert.Equal(t, "31.03", matrix.Header[31])

	require.Len(t, matrix.Rows, 2)
	aigerim := matrix.Rows[0]
	assert.Equal(t, "Aigerim", aigerim[0])
	assert.Equal(t, "Holiday", aigerim[8], "08.03 cell")
	assert.Equal(t, "On time", aigerim[11], "11.03 cell")
	assert.Equal(t, "Missed", aigerim[12], "12.03 cell")
	assert.Equal(t, "Rest day", aigerim[2], "02.03 is a Saturday")
}

func TestMonthlyMatrixAllHolidayMonth(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	for day := 1; day <= 31; day++ {
		require.NoError(t, f.holidays.Put(ctx, leave.Holiday{
			Date: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Name: "Shutdown",
		}))
	}
	// A holiday overrides anything recorded on it.
	f.appendEvent(t, 100, "2024-03-11 08:58:00", event.CategoryArrival, event.OutcomeSuccess)

	matrix, err := f.svc.MonthlyMatrix(ctx, report.MonthlyRequest{Year: 2024, Month: 3})
	require.NoError(t, err)

	require.Len(t, matrix.Rows, 2)
	for _, row := range matrix.Rows {
		for day := 1; day <= 31; day++ {
			assert.Equalf(t, "Holiday", row[day], "%s day %d", row[0], day)
		}
	}
}

func TestMonthlyMatrixCSVRoundTrips(t *testing.T) {
	f := newReportFixture(t)

	data, err := f.svc.MonthlyMatrixCSV(context.Background(), report.MonthlyRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Employee,01.03")
	assert.Contains(t, string(data), "Aigerim")
}

func TestExportLedgerCSV(t *testing.T) {
	f := newReportFixture(t)
	f.events.SetName(100, "Aigerim")
	f.appendEvent(t, 100, "2024-03-11 08:58:00", event.CategoryArrival, event.OutcomeSuccess)

	data, err := f.svc.ExportLedgerCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "timestamp_utc,full_name,category,outcome")
	assert.Contains(t, string(data), "Aigerim,ARRIVAL,SUCCESS")
}
