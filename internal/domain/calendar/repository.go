package calendar

import "context"

// Repository abstracts calendar persistence.  Implementations live under
// internal/infrastructure; the domain layer depends only on this interface.
type Repository interface {
	// GetCalendar returns the calendar for a (tribunal, year) pair, or a
	// CAL_001 error when none is published.
	GetCalendar(ctx context.Context, tribunalCode string, year int) (*CourtCalendar, error)

	// ListCalendars returns every published calendar for a tribunal.
	ListCalendars(ctx context.Context, tribunalCode string) ([]*CourtCalendar, error)

	// SaveCalendar upserts a calendar, replacing holidays and suspensions for
	// the (tribunal, year) pair atomically.
	SaveCalendar(ctx context.Context, cal *CourtCalendar) error
}
