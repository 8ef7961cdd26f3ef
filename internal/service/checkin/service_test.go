package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadam-hq/checkin-backend-go/internal/config"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/checkin"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/repository/memory"
)

type fakeVerifier struct {
	similarity float64
	match      bool
	err        error
}

func (f *fakeVerifier) Verify(_ context.Context, _ int64, _ string) (float64, bool, error) {
	return f.similarity, f.match, f.err
}

type checkinFixture struct {
	svc      *ServiceImpl
	events   *memory.EventRepository
	verifier *fakeVerifier
	tz       *time.Location
}

// The office in the test config sits at the default work location; farLat
// is kilometers away from it.
const (
	workLat = 43.2583546
	workLon = 76.8827974
	farLat  = 43.3000000
)

func newCheckinFixture(t *testing.T) *checkinFixture {
	t.Helper()

	tz, err := time.LoadLocation("Asia/Almaty")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository()
	_, err = employees.Upsert(context.Background(), employee.Employee{TelegramID: 100, FullName: "Aigerim"})
	require.NoError(t, err)

	versions := memory.NewVersionRepository()
	start := timeutil.TimeOfDay{Hour: 9}
	end := timeutil.TimeOfDay{Hour: 18}
	for day := 0; day < 5; day++ {
		require.NoError(t, versions.Upsert(context.Background(), schedule.Version{
			EmployeeID:    100,
			DayOfWeek:     day,
			EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Start:         &start,
			End:           &end,
		}))
	}

	events := memory.NewEventRepository()
	verifier := &fakeVerifier{similarity: 85, match: true}

	svc := NewService(employees, versions, events, verifier, config.CheckInConfig{
		WorkLatitude:            workLat,
		WorkLongitude:           workLon,
		AllowedRadiusMeters:     200,
		FaceSimilarityThreshold: 40,
	}, tz).(*ServiceImpl)

	return &checkinFixture{svc: svc, events: events, verifier: verifier, tz: tz}
}

func (f *checkinFixture) setClock(t *testing.T, local string) {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02 15:04:05", local, f.tz)
	require.NoError(t, err)
	f.svc.now = func() time.Time { return at.UTC() }
}

func TestVerifiedArrivalOnTime(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 08:58:00")

	result, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", result.Outcome)
	require.NotNil(t, result.FaceSimilarity)
	assert.InDelta(t, 85, *result.FaceSimilarity, 0.01)
}

func TestVerifiedArrivalAfterCutoffIsLate(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 09:12:00")

	result, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "LATE", result.Outcome)
}

func TestVerifiedArrivalInsideGraceIsOnTime(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 09:05:29")

	result, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", result.Outcome)
}

func TestVerifiedOutsideRadiusRecordsFailure(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 08:58:00")

	_, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   farLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.ErrorIs(t, err, checkin.ErrOutsideRadius)

	day, _ := timeutil.ParseDate("2024-03-11")
	start, end := timeutil.DayBoundsUTC(day, f.tz)
	failed, err := f.events.HasOutcomeInWindow(context.Background(), 100, event.CategoryArrival, []event.Outcome{event.OutcomeFailLocation}, start, end)
	require.NoError(t, err)
	assert.True(t, failed, "failed attempt must still land in the ledger")

	// The failed attempt must not block a proper check-in.
	_, err = f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.NoError(t, err)
}

func TestVerifiedFaceMismatchRecordsFailure(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 08:58:00")
	f.verifier.match = false
	f.verifier.similarity = 12

	_, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.ErrorIs(t, err, checkin.ErrFaceMismatch)

	day, _ := timeutil.ParseDate("2024-03-11")
	start, end := timeutil.DayBoundsUTC(day, f.tz)
	failed, err := f.events.HasOutcomeInWindow(context.Background(), 100, event.CategoryArrival, []event.Outcome{event.OutcomeFailFace}, start, end)
	require.NoError(t, err)
	assert.True(t, failed)
}

func TestVerifiedDuplicateArrivalRejected(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 08:58:00")

	req := checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	}
	_, err := f.svc.Verified(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Verified(context.Background(), req)
	require.ErrorIs(t, err, checkin.ErrAlreadyCheckedIn)
}

func TestVerifiedDepartureRequiresArrival(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 18:01:00")

	_, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "DEPARTURE",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.ErrorIs(t, err, checkin.ErrNotCheckedIn)
}

func TestVerifiedOnRestDayRejected(t *testing.T) {
	f := newCheckinFixture(t)
	// Saturday has no version at all for this employee.
	f.setClock(t, "2024-03-16 10:00:00")

	_, err := f.svc.Verified(context.Background(), checkin.VerifiedRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Latitude:   workLat,
		Longitude:  workLon,
		PhotoRef:   "photo-1",
	})
	require.ErrorIs(t, err, checkin.ErrNoScheduleToday)
}

func TestRecordTrustsProvidedOutcome(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 09:30:00")

	result, err := f.svc.Record(context.Background(), checkin.RecordRequest{
		EmployeeID: 100,
		Category:   "ARRIVAL",
		Outcome:    "LATE",
	})
	require.NoError(t, err)
	assert.Equal(t, "LATE", result.Outcome)
}

func TestRecordDuplicateDepartureRejected(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 18:05:00")

	_, err := f.svc.Record(context.Background(), checkin.RecordRequest{EmployeeID: 100, Category: "ARRIVAL", Outcome: "SUCCESS"})
	require.NoError(t, err)
	_, err = f.svc.Record(context.Background(), checkin.RecordRequest{EmployeeID: 100, Category: "DEPARTURE", Outcome: "SUCCESS"})
	require.NoError(t, err)
	_, err = f.svc.Record(context.Background(), checkin.RecordRequest{EmployeeID: 100, Category: "DEPARTURE", Outcome: "SUCCESS"})
	require.ErrorIs(t, err, checkin.ErrAlreadyCheckedOut)
}

func TestRecordUnknownEmployeeRejected(t *testing.T) {
	f := newCheckinFixture(t)
	f.setClock(t, "2024-03-11 09:00:00")

	_, err := f.svc.Record(context.Background(), checkin.RecordRequest{EmployeeID: 999, Category: "ARRIVAL", Outcome: "SUCCESS"})
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
