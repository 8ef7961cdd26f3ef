package checkin

import (
	"context"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/config"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/checkin"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/utils"
)

const lateGrace = 5*time.Minute + 30*time.Second

var (
	qualifyingArrival   = []event.Outcome{event.OutcomeSuccess, event.OutcomeLate}
	qualifyingDeparture = []event.Outcome{event.OutcomeSuccess, event.OutcomeApprovedLeave}
)

type Service interface {
	// Record appends an outcome an external flow already verified.
	Record(ctx context.Context, req checkin.RecordRequest) (checkin.Result, error)

	// Verified runs the geofence and face checks itself, records failed
	// attempts, and appends the qualifying event when both pass.
	Verified(ctx context.Context, req checkin.VerifiedRequest) (checkin.Result, error)
}

type ServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	versionRepo  schedule.VersionRepository
	eventRepo    event.EventRepository
	verifier     checkin.FaceVerifier
	cfg          config.CheckInConfig
	tz           *time.Location
	now          func() time.Time
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	versionRepo schedule.VersionRepository,
	eventRepo event.EventRepository,
	verifier checkin.FaceVerifier,
	cfg config.CheckInConfig,
	tz *time.Location,
) Service {
	return &ServiceImpl{
		employeeRepo: employeeRepo,
		versionRepo:  versionRepo,
		eventRepo:    eventRepo,
		verifier:     verifier,
		cfg:          cfg,
		tz:           tz,
		now:          time.Now,
	}
}

func (s *ServiceImpl) Record(ctx context.Context, req checkin.RecordRequest) (checkin.Result, error) {
	if err := req.Validate(); err != nil {
		return checkin.Result{}, err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return checkin.Result{}, err
	}

	category := event.Category(req.Category)
	outcome := event.Outcome(req.Outcome)

	if isQualifying(category, outcome) {
		if err := s.checkDuplicate(ctx, req.EmployeeID, category); err != nil {
			return checkin.Result{}, err
		}
	}

	return s.append(ctx, event.Event{
		EmployeeID:     req.EmployeeID,
		Category:       category,
		Outcome:        outcome,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		DistanceMeters: req.DistanceMeters,
		FaceSimilarity: req.FaceSimilarity,
	})
}

func (s *ServiceImpl) Verified(ctx context.Context, req checkin.VerifiedRequest) (checkin.Result, error) {
	if err := req.Validate(); err != nil {
		return checkin.Result{}, err
	}
	if _, err := s.employeeRepo.GetByTelegramID(ctx, req.EmployeeID, false); err != nil {
		return checkin.Result{}, err
	}

	now := s.now().In(s.tz)
	today := timeutil.DateOf(now)
	resolved, err := s.resolveToday(ctx, req.EmployeeID, today)
	if err != nil {
		return checkin.Result{}, err
	}
	if !resolved.Obligated() {
		return checkin.Result{}, checkin.ErrNoScheduleToday
	}

	category := event.Category(req.Category)
	if err := s.checkDuplicate(ctx, req.EmployeeID, category); err != nil {
		return checkin.Result{}, err
	}

	distance := utils.CalculateHaversineDistance(req.Latitude, req.Longitude, s.cfg.WorkLatitude, s.cfg.WorkLongitude)
	if distance > s.cfg.AllowedRadiusMeters {
		_, err := s.append(ctx, event.Event{
			EmployeeID:     req.EmployeeID,
			Category:       category,
			Outcome:        event.OutcomeFailLocation,
			Latitude:       &req.Latitude,
			Longitude:      &req.Longitude,
			DistanceMeters: &distance,
		})
		if err != nil {
			return checkin.Result{}, err
		}
		return checkin.Result{}, checkin.ErrOutsideRadius
	}

	similarity, match, err := s.verifier.Verify(ctx, req.EmployeeID, req.PhotoRef)
	if err != nil {
		return checkin.Result{}, err
	}
	if !match || similarity < s.cfg.FaceSimilarityThreshold {
		_, err := s.append(ctx, event.Event{
			EmployeeID:     req.EmployeeID,
			Category:       category,
			Outcome:        event.OutcomeFailFace,
			Latitude:       &req.Latitude,
			Longitude:      &req.Longitude,
			DistanceMeters: &distance,
			FaceSimilarity: &similarity,
		})
		if err != nil {
			return checkin.Result{}, err
		}
		return checkin.Result{}, checkin.ErrFaceMismatch
	}

	outcome := event.OutcomeSuccess
	if category == event.CategoryArrival {
		cutoff := resolved.Start.At(today, s.tz).Add(lateGrace)
		if req.Late || now.After(cutoff) {
			outcome = event.OutcomeLate
		}
	}

	return s.append(ctx, event.Event{
		EmployeeID:     req.EmployeeID,
		Category:       category,
		Outcome:        outcome,
		Latitude:       &req.Latitude,
		Longitude:      &req.Longitude,
		DistanceMeters: &distance,
		FaceSimilarity: &similarity,
	})
}

func (s *ServiceImpl) resolveToday(ctx context.Context, employeeID int64, today time.Time) (schedule.Resolved, error) {
	versions, err := s.versionRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return schedule.Resolved{}, err
	}
	return schedule.Resolve(versions, timeutil.Weekday(today), today), nil
}

// checkDuplicate enforces at most one qualifying arrival and one qualifying
// departure per local day, and that departures come after an arrival.
func (s *ServiceImpl) checkDuplicate(ctx context.Context, employeeID int64, category event.Category) error {
	today := timeutil.DateOf(s.now().In(s.tz))
	dayStart, dayEnd := timeutil.DayBoundsUTC(today, s.tz)

	arrived, err := s.eventRepo.HasOutcomeInWindow(ctx, employeeID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
	if err != nil {
		return err
	}

	switch category {
	case event.CategoryArrival:
		if arrived {
			return checkin.ErrAlreadyCheckedIn
		}
	case event.CategoryDeparture:
		if !arrived {
			return checkin.ErrNotCheckedIn
		}
		departed, err := s.eventRepo.HasOutcomeInWindow(ctx, employeeID, event.CategoryDeparture, qualifyingDeparture, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if departed {
			return checkin.ErrAlreadyCheckedOut
		}
	}
	return nil
}

func (s *ServiceImpl) append(ctx context.Context, ev event.Event) (checkin.Result, error) {
	ev.Timestamp = s.now().UTC()
	stored, err := s.eventRepo.Append(ctx, ev)
	if err != nil {
		return checkin.Result{}, err
	}
	return checkin.Result{
		EventID:        stored.ID,
		Category:       string(stored.Category),
		Outcome:        string(stored.Outcome),
		DistanceMeters: stored.DistanceMeters,
		FaceSimilarity: stored.FaceSimilarity,
	}, nil
}

func isQualifying(category event.Category, outcome event.Outcome) bool {
	outcomes := qualifyingArrival
	if category == event.CategoryDeparture {
		outcomes = qualifyingDeparture
	}
	for _, o := range outcomes {
		if o == outcome {
			return true
		}
	}
	return false
}
