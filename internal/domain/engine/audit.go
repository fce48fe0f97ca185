package engine

import (
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
)

// ReasonKind classifies one audit log entry.
type ReasonKind string

const (
	// ReasonWeekend marks a Saturday or Sunday skipped during counting or
	// while rolling the landing date.
	ReasonWeekend ReasonKind = "weekend"
	// ReasonHoliday marks a business-suspending holiday skipped.
	ReasonHoliday ReasonKind = "holiday"
	// ReasonSuspension marks a day inside a deadline-suspending range skipped
	// in business-day counting or landing adjustment.
	ReasonSuspension ReasonKind = "suspension"
	// ReasonSuspensionTolling marks one frozen day of a calendar-day count.
	ReasonSuspensionTolling ReasonKind = "suspension_tolling"
)

// AuditEntry records one calendar adjustment.  Every entry stands for exactly
// one day that did not consume the count, which is what makes the log
// sufficient to re-derive the due date without the calendar (see
// ReplayDueDate).
type AuditEntry struct {
	Date   time.Time  `json:"date"`
	Kind   ReasonKind `json:"reason_kind"`
	Detail string     `json:"reason_detail"`
}

// auditBuilder accumulates entries in chronological order as the cursor
// walks forward.
type auditBuilder struct {
	entries []AuditEntry
}

func (b *auditBuilder) skip(d time.Time, class calendar.DayClass) {
	b.entries = append(b.entries, AuditEntry{
		Date:   d,
		Kind:   reasonKindOf(class.Kind),
		Detail: class.Detail,
	})
}

func (b *auditBuilder) toll(d time.Time, suspensionName string) {
	b.entries = append(b.entries, AuditEntry{
		Date:   d,
		Kind:   ReasonSuspensionTolling,
		Detail: suspensionName,
	})
}

func reasonKindOf(k calendar.DayKind) ReasonKind {
	switch k {
	case calendar.DayWeekend:
		return ReasonWeekend
	case calendar.DayHoliday:
		return ReasonHoliday
	default:
		return ReasonSuspension
	}
}

// ReplayDueDate re-derives the due date from the start date, the effective
// count, the mode, and the audit log alone.  In the day-counting modes every
// log entry represents one skipped or tolled day inside (start, due], so the
// due date is the start date plus the effective count plus the entry count.
// Hours mode never adjusts and carries an empty log.
func ReplayDueDate(start time.Time, effectiveDays int, mode catalog.CountingMode, log []AuditEntry) time.Time {
	if mode == catalog.ModeHours {
		return start.Add(time.Duration(effectiveDays) * time.Hour)
	}
	return calendar.DateOf(start).AddDate(0, 0, effectiveDays+len(log))
}
