package computation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/internal/domain/engine"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// dateLayout is the civil date form accepted in requests.
const dateLayout = "2006-01-02"

// Service is the application-facing computation API consumed by the HTTP and
// CLI surfaces.
type Service interface {
	Compute(ctx context.Context, req *ComputeRequest) (*ComputeResponse, error)
	GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, error)
	SaveCalendar(ctx context.Context, cal *calendar.CourtCalendar) error
	ListCatalog(ctx context.Context) ([]*catalog.Entry, error)
	GetCatalogEntry(ctx context.Context, code string) (*catalog.Entry, error)
	ListServiceMethods() []engine.MethodRule
}

// Dependencies wires the service.  Calendars, Catalog, and Engine are
// required; Cache, Publisher, Metrics, and Logger are optional.
type Dependencies struct {
	Calendars calendar.Repository
	Catalog   catalog.Repository
	Engine    *engine.Engine

	Cache     CalendarCache
	Publisher EventPublisher
	Metrics   MetricsRecorder
	Logger    logging.Logger
}

type service struct {
	calendars calendar.Repository
	catalog   catalog.Repository
	engine    *engine.Engine

	cache     CalendarCache
	publisher EventPublisher
	metrics   MetricsRecorder
	logger    logging.Logger

	now func() time.Time
}

// NewService builds the computation service.
func NewService(deps Dependencies) (Service, error) {
	if deps.Calendars == nil {
		return nil, errors.New(errors.ErrCodeInternal, "calendar repository is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New(errors.ErrCodeInternal, "catalog repository is required")
	}
	if deps.Engine == nil {
		return nil, errors.New(errors.ErrCodeInternal, "engine is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &service{
		calendars: deps.Calendars,
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    logger.Named("computation"),
		now:       time.Now,
	}, nil
}

func (s *service) Compute(ctx context.Context, req *ComputeRequest) (*ComputeResponse, error) {
	started := s.now()

	trigger, err := parseTriggerDate(req.TriggerDate)
	if err != nil {
		return nil, err
	}
	if req.BaseDaysOverride != nil && *req.BaseDaysOverride < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidComputationInput,
			"base days override %d is negative", *req.BaseDaysOverride)
	}

	entry, err := s.catalog.GetEntry(ctx, req.CatalogCode)
	if err != nil {
		return nil, err
	}
	entry, err = applyModeOverride(entry, req.CountingMode)
	if err != nil {
		return nil, err
	}

	baseDays := entry.BaseDays
	if req.BaseDaysOverride != nil {
		baseDays = *req.BaseDaysOverride
	}

	snap, years, err := s.loadSnapshot(ctx, req.TribunalCode, trigger, baseDays, entry.Mode)
	if err != nil {
		return nil, err
	}
	if req.StateCode != "" {
		snap = snap.ForState(req.StateCode)
	}

	parties := make([]engine.Party, 0, len(req.Parties))
	for _, p := range req.Parties {
		parties = append(parties, engine.Party{
			Name:      p.Name,
			Pole:      engine.Pole(p.Pole),
			Type:      engine.PartyType(p.Type),
			CounselID: p.CounselID,
		})
	}

	res, err := s.engine.Compute(engine.Input{
		TriggerDate:      trigger,
		Method:           engine.ServiceMethod(req.ServiceMethod),
		Entry:            entry,
		BaseDaysOverride: req.BaseDaysOverride,
		Parties:          parties,
		Snapshot:         snap,
	})
	if err != nil {
		return nil, err
	}

	resp := buildResponse(uuid.NewString(), req.TribunalCode, entry, res, years, s.now())

	if s.publisher != nil {
		if pubErr := s.publisher.PublishComputed(ctx, resp.event()); pubErr != nil {
			s.logger.Warn("audit event publish failed",
				logging.String("computation_id", resp.ComputationID),
				logging.Err(pubErr))
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveComputation(resp.CountingMode, resp.DoublingApplied, s.now().Sub(started))
	}

	s.logger.Info("deadline computed",
		logging.String("computation_id", resp.ComputationID),
		logging.String("tribunal", resp.TribunalCode),
		logging.String("catalog_code", resp.CatalogCode),
		logging.Int("effective_days", resp.EffectiveDays),
		logging.Bool("doubling", resp.DoublingApplied),
		logging.Time("due_date", res.DueDate))

	return resp, nil
}

func (s *service) GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, error) {
	return s.loadCalendar(ctx, tribunalCode, year)
}

// SaveCalendar upserts a calendar, drops the stale cache entry, and
// announces the change.  Validation happens in the repository.
func (s *service) SaveCalendar(ctx context.Context, cal *calendar.CourtCalendar) error {
	if err := s.calendars.SaveCalendar(ctx, cal); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, cal.TribunalCode, cal.Year)
	}
	if s.publisher != nil {
		event := CalendarUpdatedEvent{
			TribunalCode: cal.TribunalCode,
			Year:         cal.Year,
			Holidays:     len(cal.Holidays),
			Suspensions:  len(cal.Suspensions),
			UpdatedAt:    s.now().UTC(),
		}
		if pubErr := s.publisher.PublishCalendarUpdated(ctx, event); pubErr != nil {
			s.logger.Warn("calendar update event publish failed",
				logging.String("tribunal", cal.TribunalCode),
				logging.Int("year", cal.Year),
				logging.Err(pubErr))
		}
	}

	s.logger.Info("calendar saved",
		logging.String("tribunal", cal.TribunalCode),
		logging.Int("year", cal.Year))
	return nil
}

func (s *service) ListCatalog(ctx context.Context) ([]*catalog.Entry, error) {
	return s.catalog.ListEntries(ctx)
}

func (s *service) GetCatalogEntry(ctx context.Context, code string) (*catalog.Entry, error) {
	return s.catalog.GetEntry(ctx, code)
}

func (s *service) ListServiceMethods() []engine.MethodRule {
	return engine.ServiceMethods()
}

// loadSnapshot merges the trigger year's calendar with the following years
// the count can plausibly reach.  The trigger year is mandatory (CAL_001
// propagates); later years are best-effort, since courts publish them with
// varying lead time.
func (s *service) loadSnapshot(ctx context.Context, tribunalCode string, trigger time.Time, baseDays int, mode catalog.CountingMode) (*calendar.Snapshot, []int, error) {
	years := horizonYears(trigger, baseDays, mode)

	cals := make([]*calendar.CourtCalendar, 0, len(years))
	loaded := make([]int, 0, len(years))
	for i, year := range years {
		cal, err := s.loadCalendar(ctx, tribunalCode, year)
		if err != nil {
			if i == 0 {
				return nil, nil, err
			}
			s.logger.Debug("calendar for horizon year unavailable",
				logging.String("tribunal", tribunalCode),
				logging.Int("year", year),
				logging.Err(err))
			continue
		}
		cals = append(cals, cal)
		loaded = append(loaded, year)
	}

	snap, err := calendar.NewSnapshot(cals...)
	if err != nil {
		return nil, nil, err
	}
	return snap, loaded, nil
}

func (s *service) loadCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, error) {
	if s.cache != nil {
		if cal, ok := s.cache.GetCalendar(ctx, tribunalCode, year); ok {
			return cal, nil
		}
	}

	cal, err := s.calendars.GetCalendar(ctx, tribunalCode, year)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetCalendar(ctx, cal)
	}
	return cal, nil
}

// horizonYears bounds the calendar years a count starting at trigger can
// touch, assuming worst-case doubling plus spread from weekends, holidays,
// and a full recess.
func horizonYears(trigger time.Time, baseDays int, mode catalog.CountingMode) []int {
	span := baseDays * 2
	if mode == catalog.ModeHours {
		span = span/24 + 2
	} else {
		span = span*2 + 90
	}

	last := trigger.AddDate(0, 0, span).Year()
	years := make([]int, 0, last-trigger.Year()+1)
	for y := trigger.Year(); y <= last; y++ {
		years = append(years, y)
	}
	return years
}

// applyModeOverride clones the entry with the caller's counting mode when one
// was supplied (a court order fixing the term in a different unit).  Hours
// terms never double, so an override to hours clears the doubling flags.
func applyModeOverride(entry *catalog.Entry, mode string) (*catalog.Entry, error) {
	if mode == "" || catalog.CountingMode(mode) == entry.Mode {
		return entry, nil
	}

	m := catalog.CountingMode(mode)
	switch m {
	case catalog.ModeBusinessDays, catalog.ModeCalendarDays, catalog.ModeHours:
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidComputationInput,
			"unknown counting mode %q", mode)
	}

	override := *entry
	override.Mode = m
	if m == catalog.ModeHours {
		override.AllowsDoubling = false
		override.AllowsJoinderDoubling = false
	}
	return &override, nil
}

func parseTriggerDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return calendar.DateOf(t), nil
	}
	return time.Time{}, errors.Newf(errors.ErrCodeInvalidComputationInput,
		"trigger date %q is not a valid date (expected %s or RFC 3339)", raw, dateLayout)
}
