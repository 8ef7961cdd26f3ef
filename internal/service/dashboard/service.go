package dashboard

import (
	"context"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/dashboard"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/status"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	statussvc "github.com/qadam-hq/checkin-backend-go/internal/service/status"
)

type Service interface {
	// Snapshot partitions every active employee for one date. A zero date
	// means today in the organization timezone.
	Snapshot(ctx context.Context, date time.Time) (dashboard.Snapshot, error)
}

type ServiceImpl struct {
	loader *statussvc.Loader
}

func NewService(loader *statussvc.Loader) Service {
	return &ServiceImpl{loader: loader}
}

func (s *ServiceImpl) Snapshot(ctx context.Context, date time.Time) (dashboard.Snapshot, error) {
	if date.IsZero() {
		date = s.loader.Today()
	}

	fs, err := s.loader.Load(ctx, date, date)
	if err != nil {
		return dashboard.Snapshot{}, err
	}

	snapshot := dashboard.Snapshot{Date: timeutil.FormatDate(date)}

	for _, emp := range fs.Employees {
		facts := fs.FactsFor(emp.TelegramID, date)
		composite := status.Derive(facts)

		switch composite.Kind {
		case status.KindHoliday, status.KindRestDay:
			continue
		case status.KindOnLeave:
			snapshot.TotalObligated++
			snapshot.OnLeave = append(snapshot.OnLeave, dashboard.LeaveState{
				EmployeeID: emp.TelegramID,
				FullName:   emp.FullName,
				LeaveType:  string(composite.LeaveType),
			})
		case status.KindOnTime, status.KindLate:
			snapshot.TotalObligated++
			entry := dashboard.EntryState{
				EmployeeID: emp.TelegramID,
				FullName:   emp.FullName,
				Status:     composite.Label(),
			}
			if hasDeparted(facts.Events) {
				snapshot.Departed = append(snapshot.Departed, entry)
			} else {
				snapshot.Arrived = append(snapshot.Arrived, entry)
			}
		case status.KindAbsent, status.KindMissed:
			snapshot.TotalObligated++
			snapshot.Absent = append(snapshot.Absent, dashboard.EntryState{
				EmployeeID: emp.TelegramID,
				FullName:   emp.FullName,
				Status:     composite.Label(),
			})
		case status.KindPending:
			snapshot.TotalObligated++
			snapshot.NotYetArrived = append(snapshot.NotYetArrived, dashboard.EntryState{
				EmployeeID: emp.TelegramID,
				FullName:   emp.FullName,
				Status:     composite.Label(),
			})
		}
	}

	return snapshot, nil
}

func hasDeparted(events []event.Event) bool {
	for _, ev := range events {
		if ev.Category == event.CategoryDeparture &&
			(ev.Outcome == event.OutcomeSuccess || ev.Outcome == event.OutcomeApprovedLeave) {
			return true
		}
	}
	return false
}
