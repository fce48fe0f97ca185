package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// DayKind classifies a single civil date for counting purposes.
type DayKind string

const (
	DayCountable  DayKind = "countable"
	DayWeekend    DayKind = "weekend"
	DayHoliday    DayKind = "holiday"
	DaySuspension DayKind = "suspension"
)

// DayClass is the classification of one date: its kind plus a human-readable
// detail (the holiday or suspension name) for audit output.
type DayClass struct {
	Kind   DayKind
	Detail string
}

// Countable reports whether the day consumes a unit of a business-day count.
func (c DayClass) Countable() bool { return c.Kind == DayCountable }

// Snapshot is an immutable merged view of one tribunal's calendars across one
// or more consecutive years.  Counting windows routinely cross the year
// boundary, so callers merge the trigger year with as many following years as
// the deadline can reach.  All lookups take normalized dates; Snapshot
// normalizes defensively.
type Snapshot struct {
	tribunalCode string
	stateCode    string
	caseState    string
	years        []int

	holidays    map[time.Time]*Holiday
	suspensions []Suspension
}

// NewSnapshot merges the given calendars into a snapshot.  All calendars must
// belong to the same tribunal, and at least one is required.
func NewSnapshot(calendars ...*CourtCalendar) (*Snapshot, error) {
	if len(calendars) == 0 {
		return nil, errors.New(errors.ErrCodeCalendarInvalid, "snapshot requires at least one calendar")
	}

	snap := &Snapshot{
		tribunalCode: calendars[0].TribunalCode,
		stateCode:    calendars[0].StateCode,
		holidays:     make(map[time.Time]*Holiday),
	}

	for _, cal := range calendars {
		if cal.TribunalCode != snap.tribunalCode {
			return nil, errors.Newf(errors.ErrCodeCalendarInvalid,
				"cannot merge calendars of %s and %s into one snapshot",
				snap.tribunalCode, cal.TribunalCode)
		}
		snap.years = append(snap.years, cal.Year)
		for i := range cal.Holidays {
			h := cal.Holidays[i]
			h.Date = DateOf(h.Date)
			snap.holidays[h.Date] = &h
		}
		snap.suspensions = append(snap.suspensions, cal.Suspensions...)
	}
	sort.Ints(snap.years)
	sort.Slice(snap.suspensions, func(i, j int) bool {
		return snap.suspensions[i].Start.Before(snap.suspensions[j].Start)
	})

	return snap, nil
}

// TribunalCode returns the tribunal the snapshot was built for.
func (s *Snapshot) TribunalCode() string { return s.tribunalCode }

// ForState returns a view of the snapshot scoped to the case's state.
// State-scoped holidays count only when their StateCode matches the view's
// state; without a case state the calendar's own state is used, which keeps
// single-state tribunals working with no declaration.  The underlying
// calendar data is shared, not copied.
func (s *Snapshot) ForState(stateCode string) *Snapshot {
	view := *s
	view.caseState = stateCode
	return &view
}

// holidayApplies resolves a state-scoped holiday against the case's state.
func (s *Snapshot) holidayApplies(h *Holiday) bool {
	if h.StateCode == "" {
		return true
	}
	state := s.caseState
	if state == "" {
		state = s.stateCode
	}
	return strings.EqualFold(h.StateCode, state)
}

// Years returns the calendar years merged into the snapshot, ascending.
func (s *Snapshot) Years() []int { return append([]int(nil), s.years...) }

// HolidayOn returns the holiday registered on d, if any.  Informational
// holidays (SuspendsBusiness=false) are returned too, and no state scoping
// is applied; callers that only care about counting should use Classify.
func (s *Snapshot) HolidayOn(d time.Time) (*Holiday, bool) {
	h, ok := s.holidays[DateOf(d)]
	return h, ok
}

// SuspensionOn returns the first deadline-suspending range containing d.
func (s *Snapshot) SuspensionOn(d time.Time) (*Suspension, bool) {
	d = DateOf(d)
	for i := range s.suspensions {
		if s.suspensions[i].SuspendsDeadlines && s.suspensions[i].Contains(d) {
			return &s.suspensions[i], true
		}
	}
	return nil, false
}

// DeadlineSuspensions returns the deadline-suspending ranges ordered by start
// date.  The counting engine iterates these when tolling calendar-day terms.
func (s *Snapshot) DeadlineSuspensions() []Suspension {
	out := make([]Suspension, 0, len(s.suspensions))
	for _, sp := range s.suspensions {
		if sp.SuspendsDeadlines {
			out = append(out, sp)
		}
	}
	return out
}

// Classify resolves a single date against the snapshot.  Precedence is
// weekend, then holiday, then suspension; a date matching none is countable.
func (s *Snapshot) Classify(d time.Time) DayClass {
	d = DateOf(d)

	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return DayClass{Kind: DayWeekend, Detail: "weekend"}
	}

	if h, ok := s.holidays[d]; ok && h.SuspendsBusiness && s.holidayApplies(h) {
		return DayClass{Kind: DayHoliday, Detail: h.Name}
	}

	if sp, ok := s.SuspensionOn(d); ok {
		return DayClass{Kind: DaySuspension, Detail: sp.Name}
	}

	return DayClass{Kind: DayCountable}
}

// IsBusinessDay reports whether d is a working day for counting purposes:
// not a weekend, not a business-suspending holiday, and not inside a
// deadline-suspending range.
func (s *Snapshot) IsBusinessDay(d time.Time) bool {
	return s.Classify(d).Countable()
}
