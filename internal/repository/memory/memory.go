// Package memory holds in-memory implementations of the repository
// interfaces. Service and scheduler tests run against them so the suite does
// not need a live database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[int64]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[int64]employee.Employee)}
}

func (r *EmployeeRepository) Upsert(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := r.employees[emp.TelegramID]
	if ok {
		existing.FullName = emp.FullName
		existing.IsActive = true
		existing.UpdatedAt = now
		r.employees[emp.TelegramID] = existing
		return existing, nil
	}

	emp.IsActive = true
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.employees[emp.TelegramID] = emp
	return emp, nil
}

func (r *EmployeeRepository) GetByTelegramID(_ context.Context, telegramID int64, includeInactive bool) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[telegramID]
	if !ok || (!includeInactive && !emp.IsActive) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *EmployeeRepository) SetActive(_ context.Context, telegramID int64, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[telegramID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = isActive
	r.employees[telegramID] = emp
	return nil
}

type versionKey struct {
	employeeID    int64
	dayOfWeek     int
	effectiveFrom string
}

type VersionRepository struct {
	mu       sync.RWMutex
	versions map[versionKey]schedule.Version
}

func NewVersionRepository() *VersionRepository {
	return &VersionRepository{versions: make(map[versionKey]schedule.Version)}
}

func (r *VersionRepository) Upsert(_ context.Context, v schedule.Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	key := versionKey{v.EmployeeID, v.DayOfWeek, timeutil.FormatDate(v.EffectiveFrom)}
	r.versions[key] = v
	return nil
}

func (r *VersionRepository) GetByEmployee(_ context.Context, employeeID int64) ([]schedule.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []schedule.Version
	for _, v := range r.versions {
		if v.EmployeeID == employeeID {
			out = append(out, v)
		}
	}
	sortVersions(out)
	return out, nil
}

func (r *VersionRepository) GetAllEffectiveBy(_ context.Context, date time.Time) (map[int64][]schedule.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64][]schedule.Version)
	for _, v := range r.versions {
		if !v.EffectiveFrom.After(date) {
			out[v.EmployeeID] = append(out[v.EmployeeID], v)
		}
	}
	for id := range out {
		sortVersions(out[id])
	}
	return out, nil
}

func sortVersions(versions []schedule.Version) {
	sort.Slice(versions, func(i, j int) bool {
		if versions[i].DayOfWeek != versions[j].DayOfWeek {
			return versions[i].DayOfWeek < versions[j].DayOfWeek
		}
		return versions[i].EffectiveFrom.Before(versions[j].EffectiveFrom)
	})
}

type EventRepository struct {
	mu     sync.RWMutex
	events []event.Event
	names  map[int64]string
}

func NewEventRepository() *EventRepository {
	return &EventRepository{names: make(map[int64]string)}
}

func (r *EventRepository) Append(_ context.Context, ev event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.Timestamp = ev.Timestamp.UTC()
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *EventRepository) ListInWindow(_ context.Context, fromUTC, toUTC time.Time) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []event.Event
	for _, ev := range r.events {
		if !ev.Timestamp.Before(fromUTC) && ev.Timestamp.Before(toUTC) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *EventRepository) ListEmployeeInWindow(ctx context.Context, employeeID int64, fromUTC, toUTC time.Time) ([]event.Event, error) {
	all, _ := r.ListInWindow(ctx, fromUTC, toUTC)
	var out []event.Event
	for _, ev := range all {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *EventRepository) HasOutcomeInWindow(ctx context.Context, employeeID int64, category event.Category, outcomes []event.Outcome, fromUTC, toUTC time.Time) (bool, error) {
	events, _ := r.ListEmployeeInWindow(ctx, employeeID, fromUTC, toUTC)
	for _, ev := range events {
		if ev.Category != category {
			continue
		}
		for _, o := range outcomes {
			if ev.Outcome == o {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *EventRepository) ListAll(_ context.Context) ([]event.ExportRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.ExportRow, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		ev := r.events[i]
		out = append(out, event.ExportRow{
			Timestamp:      ev.Timestamp,
			FullName:       r.names[ev.EmployeeID],
			Category:       ev.Category,
			Outcome:        ev.Outcome,
			Latitude:       ev.Latitude,
			Longitude:      ev.Longitude,
			DistanceMeters: ev.DistanceMeters,
			FaceSimilarity: ev.FaceSimilarity,
		})
	}
	return out, nil
}

// SetName registers the display name used in export rows.
func (r *EventRepository) SetName(telegramID int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[telegramID] = name
}

type LeavePeriodRepository struct {
	mu      sync.RWMutex
	periods []leave.Period
}

func NewLeavePeriodRepository() *LeavePeriodRepository {
	return &LeavePeriodRepository{}
}

func (r *LeavePeriodRepository) Create(_ context.Context, period leave.Period) (leave.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	period.CreatedAt = time.Now().UTC()
	r.periods = append(r.periods, period)
	return period, nil
}

func (r *LeavePeriodRepository) DeleteOverlapping(_ context.Context, employeeID int64, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []leave.Period
	var removed int64
	for _, p := range r.periods {
		if p.EmployeeID == employeeID && p.Overlaps(start, end) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.periods = kept
	return removed, nil
}

func (r *LeavePeriodRepository) ListOverlapping(_ context.Context, start, end time.Time) ([]leave.Period, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []leave.Period
	for _, p := range r.periods {
		if p.Overlaps(start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type HolidayRepository struct {
	mu       sync.RWMutex
	holidays map[string]leave.Holiday
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{holidays: make(map[string]leave.Holiday)}
}

func (r *HolidayRepository) Put(_ context.Context, holiday leave.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holidays[timeutil.FormatDate(holiday.Date)] = holiday
	return nil
}

func (r *HolidayRepository) Delete(_ context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := timeutil.FormatDate(date)
	if _, ok := r.holidays[key]; !ok {
		return leave.ErrHolidayNotFound
	}
	delete(r.holidays, key)
	return nil
}

func (r *HolidayRepository) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.holidays[timeutil.FormatDate(date)]
	return ok, nil
}

func (r *HolidayRepository) ListInRange(_ context.Context, start, end time.Time) ([]leave.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []leave.Holiday
	for _, h := range r.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
