package computation

import (
	"context"
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
)

// CalendarCache is an optional read-through cache in front of the calendar
// repository.  Implementations are best-effort: a miss or a backend failure
// surfaces as found=false, never as an error.
type CalendarCache interface {
	GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, bool)
	SetCalendar(ctx context.Context, cal *calendar.CourtCalendar)
	Invalidate(ctx context.Context, tribunalCode string, year int)
}

// EventPublisher emits downstream events.  Publishing is best-effort; a
// failure is logged and never fails the originating operation.
type EventPublisher interface {
	PublishComputed(ctx context.Context, event ComputedEvent) error
	PublishCalendarUpdated(ctx context.Context, event CalendarUpdatedEvent) error
}

// MetricsRecorder receives one observation per finished computation.
type MetricsRecorder interface {
	ObserveComputation(mode string, doubled bool, duration time.Duration)
}
