package status

import (
	"context"
	"fmt"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/status"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

// Loader batches every fact the derivation function needs for a date range
// across all active employees. The dashboard, the period reporter and the
// monthly matrix all go through it, so there is no separate fast path that
// could drift from single-date lookups.
type Loader struct {
	employeeRepo employee.EmployeeRepository
	versionRepo  schedule.VersionRepository
	eventRepo    event.EventRepository
	periodRepo   leave.PeriodRepository
	holidayRepo  leave.HolidayRepository
	tz           *time.Location
	now          func() time.Time
}

func NewLoader(
	employeeRepo employee.EmployeeRepository,
	versionRepo schedule.VersionRepository,
	eventRepo event.EventRepository,
	periodRepo leave.PeriodRepository,
	holidayRepo leave.HolidayRepository,
	tz *time.Location,
) *Loader {
	return &Loader{
		employeeRepo: employeeRepo,
		versionRepo:  versionRepo,
		eventRepo:    eventRepo,
		periodRepo:   periodRepo,
		holidayRepo:  holidayRepo,
		tz:           tz,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Tests use it to pin "today".
func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}

// Today returns the current calendar date in the organization timezone.
func (l *Loader) Today() time.Time {
	return timeutil.DateOf(l.now().In(l.tz))
}

// FactSet holds everything needed to derive any (employee, date) status
// inside the loaded range.
type FactSet struct {
	Employees []employee.Employee
	Versions  map[int64][]schedule.Version
	// Events indexed by employee, then by local calendar date.
	Events   map[int64]map[string][]event.Event
	Leaves   map[int64][]leave.Period
	Holidays map[string]bool
	// Today is the current calendar date in the organization timezone.
	Today time.Time

	tz *time.Location
}

// Load fetches facts for the inclusive local-date range [start, end].
func (l *Loader) Load(ctx context.Context, start, end time.Time) (*FactSet, error) {
	fromUTC, _ := timeutil.DayBoundsUTC(start, l.tz)
	_, toUTC := timeutil.DayBoundsUTC(end, l.tz)

	fs := &FactSet{
		Events:   make(map[int64]map[string][]event.Event),
		Leaves:   make(map[int64][]leave.Period),
		Holidays: make(map[string]bool),
		Today:    timeutil.DateOf(l.now().In(l.tz)),
		tz:       l.tz,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		employees, err := l.employeeRepo.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		fs.Employees = employees
		return nil
	})

	g.Go(func() error {
		versions, err := l.versionRepo.GetAllEffectiveBy(gctx, end)
		if err != nil {
			return fmt.Errorf("load schedule versions: %w", err)
		}
		fs.Versions = versions
		return nil
	})

	g.Go(func() error {
		events, err := l.eventRepo.ListInWindow(gctx, fromUTC, toUTC)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		for _, ev := range events {
			localDate := timeutil.FormatDate(timeutil.LocalDate(ev.Timestamp, l.tz))
			if fs.Events[ev.EmployeeID] == nil {
				fs.Events[ev.EmployeeID] = make(map[string][]event.Event)
			}
			fs.Events[ev.EmployeeID][localDate] = append(fs.Events[ev.EmployeeID][localDate], ev)
		}
		return nil
	})

	g.Go(func() error {
		periods, err := l.periodRepo.ListOverlapping(gctx, start, end)
		if err != nil {
			return fmt.Errorf("load leave periods: %w", err)
		}
		for _, p := range periods {
			fs.Leaves[p.EmployeeID] = append(fs.Leaves[p.EmployeeID], p)
		}
		return nil
	})

	g.Go(func() error {
		holidays, err := l.holidayRepo.ListInRange(gctx, start, end)
		if err != nil {
			return fmt.Errorf("load holidays: %w", err)
		}
		for _, h := range holidays {
			fs.Holidays[timeutil.FormatDate(h.Date)] = true
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fs, nil
}

// FactsFor assembles the derivation inputs for one (employee, date).
func (fs *FactSet) FactsFor(employeeID int64, date time.Time) status.Facts {
	dateKey := timeutil.FormatDate(date)

	facts := status.Facts{
		Schedule:  schedule.Resolve(fs.Versions[employeeID], timeutil.Weekday(date), date),
		IsHoliday: fs.Holidays[dateKey],
		Events:    fs.Events[employeeID][dateKey],
		IsPast:    date.Before(fs.Today),
	}
	for i := range fs.Leaves[employeeID] {
		if fs.Leaves[employeeID][i].Covers(date) {
			facts.Leave = &fs.Leaves[employeeID][i]
			break
		}
	}

	return facts
}

// Derive is a convenience wrapper over the pure derivation function.
func (fs *FactSet) Derive(employeeID int64, date time.Time) status.Composite {
	return status.Derive(fs.FactsFor(employeeID, date))
}
