// Package calendar defines the court calendar entities, per-tribunal
// holidays and suspension ranges, and the read-only snapshot the counting
// engine walks.  Calendars are administratively published ahead of the
// covered year and never mutated in place.
package calendar

import (
	"time"

	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// TribunalCategory classifies the jurisdiction that owns a calendar.
type TribunalCategory string

const (
	CategorySupreme           TribunalCategory = "supreme"
	CategorySuperior          TribunalCategory = "superior"
	CategoryStateCourt        TribunalCategory = "state_court"
	CategoryFederalRegional   TribunalCategory = "federal_regional"
	CategoryLaborRegional     TribunalCategory = "labor_regional"
	CategoryElectoralRegional TribunalCategory = "electoral_regional"
	CategoryMilitary          TribunalCategory = "military"
)

// HolidayCategory classifies a court holiday.
type HolidayCategory string

const (
	HolidayNational   HolidayCategory = "national"
	HolidayState      HolidayCategory = "state"
	HolidayJusticeDay HolidayCategory = "justice_day"
	HolidayOptional   HolidayCategory = "optional"
)

// SuspensionCategory classifies a suspension range.
type SuspensionCategory string

const (
	SuspensionYearEndRecess SuspensionCategory = "year_end_recess"
	SuspensionMidYearRecess SuspensionCategory = "mid_year_recess"
	SuspensionAdHoc         SuspensionCategory = "ad_hoc"
)

// Holiday is a single non-working (or commemorative) date on a court calendar.
type Holiday struct {
	// Date is the holiday's civil date, normalized to midnight UTC.
	Date time.Time `json:"date"`

	Name     string          `json:"name"`
	Category HolidayCategory `json:"category"`

	// StateCode scopes state holidays; empty for national ones.
	StateCode string `json:"state_code,omitempty"`

	// SuspendsBusiness marks the office as closed.  A holiday with
	// SuspendsBusiness=false is purely informational (optional commemorative
	// days) and never tolls or rolls a deadline.
	SuspendsBusiness bool `json:"suspends_business"`

	// ExtendsDeadlines marks whether a deadline landing on this day rolls
	// forward to the next business day.
	ExtendsDeadlines bool `json:"extends_deadlines"`
}

// Suspension is an inclusive date range during which some or all procedural
// activity is paused (e.g. the year-end forensic recess).  The range may
// cross the year boundary (Dec 20 to Jan 20).
type Suspension struct {
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
	Name     string             `json:"name"`
	Category SuspensionCategory `json:"category"`

	// The counting engine reacts only to SuspendsDeadlines; the other flags
	// exist for hearing/session scheduling surfaces.
	SuspendsDeadlines bool `json:"suspends_deadlines"`
	SuspendsHearings  bool `json:"suspends_hearings"`
	SuspendsSessions  bool `json:"suspends_sessions"`

	// EmergencyDuty indicates plantão availability during the range.
	EmergencyDuty bool `json:"emergency_duty"`
}

// Contains reports whether d (a normalized date) falls inside the range.
func (s *Suspension) Contains(d time.Time) bool {
	return !d.Before(DateOf(s.Start)) && !d.After(DateOf(s.End))
}

// CourtCalendar holds one tribunal's calendar facts for one year.
// Exactly one calendar exists per (tribunal code, year) pair; enforcing the
// uniqueness is the repository's concern.
type CourtCalendar struct {
	TribunalCode string           `json:"tribunal_code"`
	TribunalName string           `json:"tribunal_name"`
	Category     TribunalCategory `json:"category"`

	// StateCode is empty for national courts.
	StateCode string `json:"state_code,omitempty"`

	Year        int          `json:"year"`
	Holidays    []Holiday    `json:"holidays"`
	Suspensions []Suspension `json:"suspensions"`
}

// Validate checks the calendar's structural invariants: identifying fields
// present, suspension ranges well-formed, and no two suspensions with the
// same flag combination overlapping.
func (c *CourtCalendar) Validate() error {
	if c.TribunalCode == "" {
		return errors.New(errors.ErrCodeCalendarInvalid, "tribunal_code is required")
	}
	if c.Year < 1900 || c.Year > 2200 {
		return errors.Newf(errors.ErrCodeCalendarInvalid, "year %d is out of range", c.Year)
	}

	for i := range c.Suspensions {
		s := &c.Suspensions[i]
		if s.End.Before(s.Start) {
			return errors.Newf(errors.ErrCodeCalendarInvalid,
				"suspension %q ends before it starts", s.Name)
		}
		for j := i + 1; j < len(c.Suspensions); j++ {
			o := &c.Suspensions[j]
			if s.SuspendsDeadlines == o.SuspendsDeadlines &&
				s.SuspendsHearings == o.SuspendsHearings &&
				s.SuspendsSessions == o.SuspendsSessions &&
				rangesOverlap(s, o) {
				return errors.Newf(errors.ErrCodeCalendarInvalid,
					"suspensions %q and %q overlap with identical flags", s.Name, o.Name)
			}
		}
	}

	for i := range c.Holidays {
		if c.Holidays[i].Date.IsZero() {
			return errors.Newf(errors.ErrCodeCalendarInvalid,
				"holiday %q has no date", c.Holidays[i].Name)
		}
	}

	return nil
}

func rangesOverlap(a, b *Suspension) bool {
	return !DateOf(a.End).Before(DateOf(b.Start)) && !DateOf(b.End).Before(DateOf(a.Start))
}

// DateOf normalizes a timestamp to midnight UTC, the canonical form for all
// calendar arithmetic in this package.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
