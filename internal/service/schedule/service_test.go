package schedule

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
	"github.com/qadam-hq/checkin-backend-go/internal/repository/memory"
)

func identityTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newServiceFixture(t *testing.T) (Service, *memory.VersionRepository) {
	t.Helper()

	versions := memory.NewVersionRepository()
	employees := memory.NewEmployeeRepository()
	_, err := employees.Upsert(context.Background(), employee.Employee{TelegramID: 100, FullName: "Aigerim"})
	require.NoError(t, err)
	_, err = employees.Upsert(context.Background(), employee.Employee{TelegramID: 200, FullName: "Bolat"})
	require.NoError(t, err)

	return NewService(versions, employees, identityTx), versions
}

const importFile = `telegram_id,effective_from_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday
100,2024-01-01,09:00-18:00,09:00-18:00,09:00-18:00,09:00-18:00,09:00-17:00,0,0
200,2024-01-01,10:00-19:00,10:00-19:00,10:00-19:00,10:00-19:00,10:00-19:00,0,0
`

func TestImportCSVAppliesAllRows(t *testing.T) {
	svc, versions := newServiceFixture(t)

	summary, err := svc.ImportCSV(context.Background(), strings.NewReader(importFile))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RowsImported)
	assert.Equal(t, 14, summary.VersionsWritten)

	stored, err := versions.GetByEmployee(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, stored, 7)

	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	resolved := schedule.Resolve(stored, 0, monday)
	require.True(t, resolved.Obligated())
	assert.Equal(t, "09:00", resolved.Start.String())
	assert.Equal(t, "18:00", resolved.End.String())

	friday := monday.AddDate(0, 0, 4)
	resolved = schedule.Resolve(stored, 4, friday)
	require.True(t, resolved.Obligated())
	assert.Equal(t, "17:00", resolved.End.String())

	saturday := monday.AddDate(0, 0, 5)
	resolved = schedule.Resolve(stored, 5, saturday)
	assert.Equal(t, schedule.ResolvedRest, resolved.Kind)
}

func TestImportCSVIsIdempotent(t *testing.T) {
	svc, versions := newServiceFixture(t)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(importFile))
	require.NoError(t, err)
	_, err = svc.ImportCSV(context.Background(), strings.NewReader(importFile))
	require.NoError(t, err)

	stored, err := versions.GetByEmployee(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, stored, 7, "re-import must replace, not duplicate")
}

func TestImportCSVRejectsWrongHeader(t *testing.T) {
	svc, _ := newServiceFixture(t)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("id,name\n1,x\n"))
	require.ErrorIs(t, err, schedule.ErrMissingCSVHeader)
}

func TestImportCSVRejectsBadCell(t *testing.T) {
	svc, _ := newServiceFixture(t)

	file := strings.Replace(importFile, "09:00-18:00", "9am-6pm", 1)
	_, err := svc.ImportCSV(context.Background(), strings.NewReader(file))
	require.ErrorIs(t, err, schedule.ErrMalformedCSVRow)
}

func TestImportCSVRejectsUnknownEmployee(t *testing.T) {
	svc, _ := newServiceFixture(t)

	file := strings.Replace(importFile, "100,", "999,", 1)
	_, err := svc.ImportCSV(context.Background(), strings.NewReader(file))
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSetWeekSupersedesOlderVersion(t *testing.T) {
	svc, versions := newServiceFixture(t)

	require.NoError(t, svc.SetWeek(context.Background(), SetWeekRequest{
		EmployeeID:    100,
		EffectiveFrom: "2024-01-01",
		Days:          [7]string{"09:00-18:00", "09:00-18:00", "09:00-18:00", "09:00-18:00", "09:00-18:00", "0", "0"},
	}))
	require.NoError(t, svc.SetWeek(context.Background(), SetWeekRequest{
		EmployeeID:    100,
		EffectiveFrom: "2024-03-01",
		Days:          [7]string{"10:00-19:00", "10:00-19:00", "10:00-19:00", "10:00-19:00", "10:00-19:00", "0", "0"},
	}))

	stored, err := versions.GetByEmployee(context.Background(), 100)
	require.NoError(t, err)

	before, _ := timeutil.ParseDate("2024-02-12")
	resolved := schedule.Resolve(stored, 0, before)
	assert.Equal(t, "09:00", resolved.Start.String())

	after, _ := timeutil.ParseDate("2024-03-11")
	resolved = schedule.Resolve(stored, 0, after)
	assert.Equal(t, "10:00", resolved.Start.String())
}

func TestSetVersionRejectsEndBeforeStart(t *testing.T) {
	svc, _ := newServiceFixture(t)

	err := svc.SetVersion(context.Background(), SetVersionRequest{
		EmployeeID:    100,
		DayOfWeek:     0,
		EffectiveFrom: "2024-01-01",
		Start:         "18:00",
		End:           "09:00",
	})
	require.ErrorIs(t, err, schedule.ErrEndBeforeStart)
}

func TestSetVersionRejectsNonpositiveEmployeeID(t *testing.T) {
	svc, _ := newServiceFixture(t)

	for _, id := range []int64{0, -7} {
		err := svc.SetVersion(context.Background(), SetVersionRequest{
			EmployeeID:    id,
			DayOfWeek:     0,
			EffectiveFrom: "2024-01-01",
			Start:         "09:00",
			End:           "18:00",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "employee_id")
	}
}

func TestSetVersionRestDay(t *testing.T) {
	svc, versions := newServiceFixture(t)

	require.NoError(t, svc.SetVersion(context.Background(), SetVersionRequest{
		EmployeeID:    100,
		DayOfWeek:     2,
		EffectiveFrom: "2024-01-01",
	}))

	stored, err := versions.GetByEmployee(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].IsRest())
}
