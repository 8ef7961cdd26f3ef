package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/event"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/leave"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/notification"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/report"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/schedule"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
)

// Trigger offsets relative to the scheduled shift boundaries.
const (
	warningLead       = 5 * time.Minute
	lateGrace         = 5*time.Minute + 30*time.Second
	autoAbsentCutoff  = 3 * time.Hour
	departureReminder = 15 * time.Minute
)

type triggerKind string

const (
	triggerWarning    triggerKind = "warning"
	triggerLate       triggerKind = "late"
	triggerAutoAbsent triggerKind = "auto_absent"
	triggerDeparture  triggerKind = "departure"
)

var qualifyingArrival = []event.Outcome{event.OutcomeSuccess, event.OutcomeLate}

var qualifyingDeparture = []event.Outcome{event.OutcomeSuccess, event.OutcomeApprovedLeave}

type dedupKey struct {
	employeeID int64
	trigger    triggerKind
	date       string
}

// DailyReporter builds the summary pushed to admins after the day closes.
type DailyReporter interface {
	PeriodReport(ctx context.Context, req report.PeriodRequest) (report.PeriodReport, error)
}

// NotificationJobs drives the check-in reminder triggers and the end-of-day
// closeout. The dedup ledger lives in process memory and resets at local
// midnight; running more than one scheduler instance would double-send.
type NotificationJobs struct {
	employeeRepo employee.EmployeeRepository
	versionRepo  schedule.VersionRepository
	eventRepo    event.EventRepository
	periodRepo   leave.PeriodRepository
	holidayRepo  leave.HolidayRepository
	notifier     notification.Notifier
	reporter     DailyReporter
	tz           *time.Location
	now          func() time.Time

	mu        sync.Mutex
	sent      map[dedupKey]bool
	dedupDate string
	sweptDate string
}

func NewNotificationJobs(
	employeeRepo employee.EmployeeRepository,
	versionRepo schedule.VersionRepository,
	eventRepo event.EventRepository,
	periodRepo leave.PeriodRepository,
	holidayRepo leave.HolidayRepository,
	notifier notification.Notifier,
	reporter DailyReporter,
	tz *time.Location,
) *NotificationJobs {
	return &NotificationJobs{
		employeeRepo: employeeRepo,
		versionRepo:  versionRepo,
		eventRepo:    eventRepo,
		periodRepo:   periodRepo,
		holidayRepo:  holidayRepo,
		notifier:     notifier,
		reporter:     reporter,
		tz:           tz,
		now:          time.Now,
		sent:         make(map[dedupKey]bool),
	}
}

func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("checkin_notifications", 1*time.Minute, j.CheckAndNotify)
	scheduler.AddJob("daily_closeout", 10*time.Minute, j.RunDailyCloseout)
}

// CheckAndNotify evaluates every trigger for every employee obligated today.
// A failure for one employee is logged and the rest of the batch continues.
func (j *NotificationJobs) CheckAndNotify(ctx context.Context) error {
	now := j.now().In(j.tz)
	today := timeutil.DateOf(now)
	j.resetIfNewDay(today)

	isHoliday, err := j.holidayRepo.IsHoliday(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to check holiday: %w", err)
	}
	if isHoliday {
		return nil
	}

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil
	}

	versions, err := j.versionRepo.GetAllEffectiveBy(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load schedule versions: %w", err)
	}

	periods, err := j.periodRepo.ListOverlapping(ctx, today, today)
	if err != nil {
		return fmt.Errorf("failed to load leave periods: %w", err)
	}
	onLeave := make(map[int64]bool, len(periods))
	for _, p := range periods {
		if p.Covers(today) {
			onLeave[p.EmployeeID] = true
		}
	}

	weekday := timeutil.Weekday(today)
	dayStart, dayEnd := timeutil.DayBoundsUTC(today, j.tz)

	for _, emp := range employees {
		if onLeave[emp.TelegramID] {
			continue
		}
		resolved := schedule.Resolve(versions[emp.TelegramID], weekday, today)
		if !resolved.Obligated() {
			continue
		}
		if err := j.checkEmployee(ctx, emp, resolved, now, today, dayStart, dayEnd); err != nil {
			slog.Error("Cron: notification check failed",
				"employee_id", emp.TelegramID,
				"error", err)
		}
	}
	return nil
}

func (j *NotificationJobs) checkEmployee(ctx context.Context, emp employee.Employee, resolved schedule.Resolved, now, today time.Time, dayStart, dayEnd time.Time) error {
	shiftStart := resolved.Start.At(today, j.tz)

	if !now.Before(shiftStart.Add(-warningLead)) && !j.alreadySent(emp.TelegramID, triggerWarning, today) {
		arrived, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if !arrived {
			if err := j.notifier.NotifyEmployee(ctx, emp.TelegramID,
				"🔔 Reminder: your workday starts soon. Please remember to check in."); err != nil {
				return err
			}
			slog.Info("Cron: sent check-in warning", "employee_id", emp.TelegramID)
		}
		j.markSent(emp.TelegramID, triggerWarning, today)
	}

	if !now.Before(shiftStart.Add(lateGrace)) && !j.alreadySent(emp.TelegramID, triggerLate, today) {
		arrived, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if !arrived {
			if err := j.notifier.NotifyEmployee(ctx, emp.TelegramID,
				"You missed the check-in window. You can still check in now, but it will be recorded as late.",
				notification.Action{Label: "Check in late", Data: "late_checkin"}); err != nil {
				return err
			}
			slog.Info("Cron: sent late prompt", "employee_id", emp.TelegramID)
		}
		j.markSent(emp.TelegramID, triggerLate, today)
	}

	if !now.Before(shiftStart.Add(autoAbsentCutoff)) && !j.alreadySent(emp.TelegramID, triggerAutoAbsent, today) {
		arrived, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if !arrived {
			if _, err := j.eventRepo.Append(ctx, event.Event{
				EmployeeID: emp.TelegramID,
				Timestamp:  j.now().UTC(),
				Category:   event.CategorySystem,
				Outcome:    event.OutcomeAbsent,
			}); err != nil {
				return err
			}
			if err := j.notifier.NotifyEmployee(ctx, emp.TelegramID,
				"You have been marked absent for today. Contact your manager if this is a mistake."); err != nil {
				return err
			}
			slog.Info("Cron: marked employee absent", "employee_id", emp.TelegramID)
		}
		j.markSent(emp.TelegramID, triggerAutoAbsent, today)
	}

	if !now.Before(resolved.End.At(today, j.tz).Add(departureReminder)) &&
		!j.alreadySent(emp.TelegramID, triggerDeparture, today) {
		arrived, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if arrived {
			departed, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryDeparture, qualifyingDeparture, dayStart, dayEnd)
			if err != nil {
				return err
			}
			if !departed {
				if err := j.notifier.NotifyEmployee(ctx, emp.TelegramID,
					"Your shift has ended. Please remember to check out."); err != nil {
					return err
				}
				slog.Info("Cron: sent departure reminder", "employee_id", emp.TelegramID)
			}
			j.markSent(emp.TelegramID, triggerDeparture, today)
		}
	}

	return nil
}

// RunDailyCloseout sweeps yesterday for unclosed days and pushes the daily
// report to admins. Only runs during the first local hour of the day, once.
func (j *NotificationJobs) RunDailyCloseout(ctx context.Context) error {
	now := j.now().In(j.tz)
	if now.Hour() != 0 {
		return nil
	}

	today := timeutil.DateOf(now)
	todayStr := timeutil.FormatDate(today)

	j.mu.Lock()
	done := j.sweptDate == todayStr
	j.mu.Unlock()
	if done {
		return nil
	}

	slog.Info("Cron: Starting daily closeout", "date", todayStr)

	yesterday := today.AddDate(0, 0, -1)
	dayStart, dayEnd := timeutil.DayBoundsUTC(yesterday, j.tz)

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	swept := 0
	for _, emp := range employees {
		arrived, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryArrival, qualifyingArrival, dayStart, dayEnd)
		if err != nil {
			slog.Error("Cron: closeout arrival check failed", "employee_id", emp.TelegramID, "error", err)
			continue
		}
		if !arrived {
			continue
		}
		departed, err := j.eventRepo.HasOutcomeInWindow(ctx, emp.TelegramID, event.CategoryDeparture, qualifyingDeparture, dayStart, dayEnd)
		if err != nil {
			slog.Error("Cron: closeout departure check failed", "employee_id", emp.TelegramID, "error", err)
			continue
		}
		if departed {
			continue
		}

		// The marker must land inside yesterday's local window so the
		// derivation attributes it to the right day.
		if _, err := j.eventRepo.Append(ctx, event.Event{
			EmployeeID: emp.TelegramID,
			Timestamp:  dayEnd.Add(-time.Second),
			Category:   event.CategorySystem,
			Outcome:    event.OutcomeAbsentIncomplete,
		}); err != nil {
			slog.Error("Cron: failed to mark unclosed day", "employee_id", emp.TelegramID, "error", err)
			continue
		}
		swept++
	}

	j.mu.Lock()
	j.sweptDate = todayStr
	j.mu.Unlock()

	slog.Info("Cron: Daily closeout finished", "unclosed_days", swept)

	if err := j.sendDailyReport(ctx, yesterday); err != nil {
		slog.Error("Cron: failed to send daily report", "error", err)
	}
	return nil
}

func (j *NotificationJobs) sendDailyReport(ctx context.Context, date time.Time) error {
	if j.reporter == nil {
		return nil
	}

	dateStr := timeutil.FormatDate(date)
	rep, err := j.reporter.PeriodReport(ctx, report.PeriodRequest{StartDate: dateStr, EndDate: dateStr})
	if err != nil {
		return fmt.Errorf("failed to build daily report: %w", err)
	}
	return j.notifier.NotifyAdmins(ctx, formatDailyReport(date, rep))
}

func formatDailyReport(date time.Time, rep report.PeriodReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Daily report for %s\n\n", date.Format("02.01.2006"))
	fmt.Fprintf(&b, "👥 Obligated work days: %d\n", rep.TotalObligatedDays)
	fmt.Fprintf(&b, "✅ Arrivals: %d\n", rep.TotalArrivals)
	fmt.Fprintf(&b, "🕒 Of them late: %d\n", rep.TotalLates)
	for _, late := range rep.LateEmployees {
		fmt.Fprintf(&b, "    └ %s (%s)\n", late.FullName, strings.Join(late.Dates, ", "))
	}
	fmt.Fprintf(&b, "\n❌ Absences (%d):\n", len(rep.Absences))
	if len(rep.Absences) == 0 {
		b.WriteString("    └ No absences!")
	} else {
		for _, absent := range rep.Absences {
			fmt.Fprintf(&b, "    └ %s: %s\n", absent.FullName, strings.Join(absent.Dates, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (j *NotificationJobs) resetIfNewDay(today time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	todayStr := timeutil.FormatDate(today)
	if j.dedupDate != todayStr {
		slog.Info("Cron: new day, clearing notification dedup ledger", "date", todayStr)
		j.sent = make(map[dedupKey]bool)
		j.dedupDate = todayStr
	}
}

func (j *NotificationJobs) alreadySent(employeeID int64, trigger triggerKind, date time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sent[dedupKey{employeeID, trigger, timeutil.FormatDate(date)}]
}

func (j *NotificationJobs) markSent(employeeID int64, trigger triggerKind, date time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sent[dedupKey{employeeID, trigger, timeutil.FormatDate(date)}] = true
}
