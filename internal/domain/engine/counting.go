package engine

import (
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
)

// countBusinessDays walks the cursor one civil day at a time from start,
// consuming the count only on countable days and recording every skip.  The
// cursor stops on the day the count reaches zero, which is countable by
// construction, so the landing roll is a no-op here; it runs anyway to keep
// the landing guarantee in one place.
func countBusinessDays(snap *calendar.Snapshot, start time.Time, days int, audit *auditBuilder) time.Time {
	cursor := calendar.DateOf(start)
	remaining := days
	for remaining > 0 {
		cursor = cursor.AddDate(0, 0, 1)
		class := snap.Classify(cursor)
		if class.Countable() {
			remaining--
			continue
		}
		audit.skip(cursor, class)
	}
	return rollLanding(snap, cursor, audit)
}

// countCalendarDays consumes one count unit per civil day, except that the
// clock freezes entirely inside deadline-suspending ranges: each frozen day
// is recorded as tolled and pushes the candidate one day further.  This
// day-walk is equivalent to extending the raw candidate by the overlapping
// span of each suspension and re-checking until stable, and it terminates
// unconditionally.  Weekends and holidays consume the count normally.  The
// landing roll applies only when the catalog entry allows extension;
// decadential terms land where they land.
func countCalendarDays(snap *calendar.Snapshot, start time.Time, days int, extends bool, audit *auditBuilder) time.Time {
	cursor := calendar.DateOf(start)
	remaining := days
	for remaining > 0 {
		cursor = cursor.AddDate(0, 0, 1)
		if sp, ok := snap.SuspensionOn(cursor); ok {
			audit.toll(cursor, sp.Name)
			continue
		}
		remaining--
	}
	if !extends {
		return cursor
	}
	return rollLanding(snap, cursor, audit)
}

// countHours advances the start timestamp by the given number of hours with
// no calendar awareness and no landing adjustment.
func countHours(start time.Time, hours int) time.Time {
	return start.Add(time.Duration(hours) * time.Hour)
}

// rollLanding advances a candidate due date past non-countable days,
// recording each skip.  A business-suspending holiday whose deadlines-extend
// flag is off holds the due date in place.
func rollLanding(snap *calendar.Snapshot, candidate time.Time, audit *auditBuilder) time.Time {
	for {
		class := snap.Classify(candidate)
		if class.Countable() {
			return candidate
		}
		if class.Kind == calendar.DayHoliday {
			if h, ok := snap.HolidayOn(candidate); ok && !h.ExtendsDeadlines {
				return candidate
			}
		}
		audit.skip(candidate, class)
		candidate = candidate.AddDate(0, 0, 1)
	}
}
