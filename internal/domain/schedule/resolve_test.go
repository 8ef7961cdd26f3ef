package schedule

import (
	"testing"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	d, err := timeutil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func tod(h, m int) *timeutil.TimeOfDay {
	return &timeutil.TimeOfDay{Hour: h, Minute: m}
}

func TestResolve_PicksLatestEffectiveVersion(t *testing.T) {
	versions := []Version{
		{EmployeeID: 1, DayOfWeek: 0, EffectiveFrom: date(t, "2024-01-01"), Start: tod(9, 0), End: tod(18, 0)},
		{EmployeeID: 1, DayOfWeek: 0, EffectiveFrom: date(t, "2024-03-01"), Start: tod(10, 0), End: tod(19, 0)},
	}

	// 2024-02-15 and 2024-03-04 are Thursdays/Mondays; both lookups below
	// are for Mondays (weekday 0).
	got := Resolve(versions, 0, date(t, "2024-02-15"))
	require.Equal(t, ResolvedWork, got.Kind)
	assert.Equal(t, "09:00", got.Start.String())
	assert.Equal(t, "18:00", got.End.String())

	got = Resolve(versions, 0, date(t, "2024-03-04"))
	require.Equal(t, ResolvedWork, got.Kind)
	assert.Equal(t, "10:00", got.Start.String())
	assert.Equal(t, "19:00", got.End.String())
}

func TestResolve_EffectiveDateInclusive(t *testing.T) {
	versions := []Version{
		{DayOfWeek: 4, EffectiveFrom: date(t, "2024-03-01"), Start: tod(10, 0), End: tod(19, 0)},
	}
	// 2024-03-01 itself is covered.
	got := Resolve(versions, 4, date(t, "2024-03-01"))
	assert.Equal(t, ResolvedWork, got.Kind)

	// The day before is not.
	got = Resolve(versions, 4, date(t, "2024-02-29"))
	assert.Equal(t, ResolvedNone, got.Kind)
}

func TestResolve_ExplicitRestBeatsOlderWorkVersion(t *testing.T) {
	versions := []Version{
		{DayOfWeek: 5, EffectiveFrom: date(t, "2024-01-01"), Start: tod(9, 0), End: tod(14, 0)},
		{DayOfWeek: 5, EffectiveFrom: date(t, "2024-06-01")}, // rest from June
	}
	assert.Equal(t, ResolvedWork, Resolve(versions, 5, date(t, "2024-05-25")).Kind)
	assert.Equal(t, ResolvedRest, Resolve(versions, 5, date(t, "2024-06-01")).Kind)
}

func TestResolve_NoVersionMeansNoObligation(t *testing.T) {
	got := Resolve(nil, 2, date(t, "2024-06-12"))
	assert.Equal(t, ResolvedNone, got.Kind)
	assert.False(t, got.Obligated())
}

func TestResolve_IgnoresOtherWeekdays(t *testing.T) {
	versions := []Version{
		{DayOfWeek: 0, EffectiveFrom: date(t, "2024-01-01"), Start: tod(9, 0), End: tod(18, 0)},
	}
	assert.Equal(t, ResolvedNone, Resolve(versions, 1, date(t, "2024-06-11")).Kind)
}
