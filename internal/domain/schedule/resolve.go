package schedule

import "time"

// Resolve picks the schedule in force on date from the employee's version
// list: among versions for date's weekday with effective_from <= date, the
// one with the greatest effective_from wins. Ties cannot occur because
// (employee, weekday, effective_from) is unique.
//
// Both single-date lookups and bulk aggregation go through this function so
// the two views can never disagree.
func Resolve(versions []Version, weekday int, date time.Time) Resolved {
	var best *Version
	for i := range versions {
		v := &versions[i]
		if v.DayOfWeek != weekday || v.EffectiveFrom.After(date) {
			continue
		}
		if best == nil || v.EffectiveFrom.After(best.EffectiveFrom) {
			best = v
		}
	}
	if best == nil {
		return Resolved{Kind: ResolvedNone}
	}
	if best.IsRest() {
		return Resolved{Kind: ResolvedRest}
	}
	return Resolved{Kind: ResolvedWork, Start: *best.Start, End: *best.End}
}
