package engine

import (
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// Input carries everything one computation needs.  The snapshot is read-only
// for the duration of the call, so concurrent computations share nothing.
type Input struct {
	TriggerDate time.Time
	Method      ServiceMethod
	Entry       *catalog.Entry

	// BaseDaysOverride replaces the entry's statutory count when the court
	// fixed a different term in the concrete case.
	BaseDaysOverride *int

	Parties  []Party
	Snapshot *calendar.Snapshot
}

// Result is the full outcome of one computation.
type Result struct {
	TriggerDate time.Time `json:"trigger_date"`
	StartDate   time.Time `json:"start_date"`
	DueDate     time.Time `json:"due_date"`

	BaseDays      int                  `json:"base_days"`
	EffectiveDays int                  `json:"effective_days"`
	Mode          catalog.CountingMode `json:"counting_mode"`

	HolidaysSkipped       int `json:"holidays_skipped"`
	SuspensionDaysSkipped int `json:"suspension_days_skipped"`

	DoublingApplied bool   `json:"doubling_applied"`
	DoublingReason  string `json:"doubling_reason,omitempty"`

	// NoFixedTerm marks the zero-day short-circuit: the act may be performed
	// at any time and no dates are produced.
	NoFixedTerm bool `json:"no_fixed_term"`

	Steps []AuditEntry `json:"steps"`
}

// Engine runs deadline computations.  It holds only configuration; all case
// and calendar state arrives per call.
type Engine struct {
	maxEffectiveDays int
}

// New builds an engine.  maxEffectiveDays bounds the effective term after
// doubling; values below one fall back to a ten-year ceiling.
func New(maxEffectiveDays int) *Engine {
	if maxEffectiveDays < 1 {
		maxEffectiveDays = 3650
	}
	return &Engine{maxEffectiveDays: maxEffectiveDays}
}

// Compute runs the full pipeline: input validation, the zero-day
// short-circuit, doubling resolution, trigger resolution, and the counting
// mode selected by the catalog entry.  Once counting begins it cannot fail;
// every error path is an explicit validation error raised beforehand.
func (e *Engine) Compute(in Input) (*Result, error) {
	if in.Entry == nil {
		return nil, errors.New(errors.ErrCodeInvalidComputationInput, "catalog entry is required")
	}
	if in.Snapshot == nil {
		return nil, errors.New(errors.ErrCodeInvalidComputationInput, "calendar snapshot is required")
	}
	if in.TriggerDate.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidComputationInput, "trigger date is required")
	}
	if _, err := RuleFor(in.Method); err != nil {
		return nil, err
	}
	for _, p := range in.Parties {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	baseDays := in.Entry.BaseDays
	if in.BaseDaysOverride != nil {
		if *in.BaseDaysOverride < 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidComputationInput,
				"base days override %d is negative", *in.BaseDaysOverride)
		}
		baseDays = *in.BaseDaysOverride
	}

	if baseDays == 0 {
		return &Result{
			TriggerDate: calendar.DateOf(in.TriggerDate),
			Mode:        in.Entry.Mode,
			NoFixedTerm: true,
			Steps:       []AuditEntry{},
		}, nil
	}

	doubling := ResolveEffectiveDays(baseDays, in.Entry, in.Parties)
	if doubling.EffectiveDays > e.maxEffectiveDays {
		return nil, errors.Newf(errors.ErrCodeInvalidComputationInput,
			"effective term of %d days exceeds the configured ceiling of %d",
			doubling.EffectiveDays, e.maxEffectiveDays)
	}

	start, err := ResolveStart(in.TriggerDate, in.Method, in.Snapshot)
	if err != nil {
		return nil, err
	}

	audit := &auditBuilder{}
	var due time.Time
	switch in.Entry.Mode {
	case catalog.ModeBusinessDays:
		due = countBusinessDays(in.Snapshot, start, doubling.EffectiveDays, audit)
	case catalog.ModeCalendarDays:
		due = countCalendarDays(in.Snapshot, start, doubling.EffectiveDays,
			in.Entry.ExtendsOnNonBusinessDay, audit)
	case catalog.ModeHours:
		due = countHours(start, doubling.EffectiveDays)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidComputationInput,
			"catalog entry %s has unknown counting mode %q", in.Entry.Code, in.Entry.Mode)
	}

	res := &Result{
		TriggerDate:     calendar.DateOf(in.TriggerDate),
		StartDate:       start,
		DueDate:         due,
		BaseDays:        baseDays,
		EffectiveDays:   doubling.EffectiveDays,
		Mode:            in.Entry.Mode,
		DoublingApplied: doubling.Applied,
		DoublingReason:  doubling.Reason,
		Steps:           audit.entries,
	}
	if res.Steps == nil {
		res.Steps = []AuditEntry{}
	}
	for _, s := range res.Steps {
		switch s.Kind {
		case ReasonHoliday:
			res.HolidaysSkipped++
		case ReasonSuspension, ReasonSuspensionTolling:
			res.SuspensionDaysSkipped++
		}
	}
	return res, nil
}
