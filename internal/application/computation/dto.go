// Package computation orchestrates one deadline computation end to end:
// catalog lookup, calendar snapshot assembly (with cache), the engine run,
// and the best-effort downstream effects (audit event, metrics).
package computation

import (
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/internal/domain/engine"
)

// PartyInput is one litigant as submitted by the caller.
type PartyInput struct {
	Name      string `json:"name,omitempty"`
	Pole      string `json:"pole" binding:"required"`
	Type      string `json:"type" binding:"required"`
	CounselID string `json:"counsel_id,omitempty"`
}

// ComputeRequest is the external computation request.  TriggerDate accepts
// a civil date (2006-01-02) or a full RFC 3339 timestamp.  CountingMode,
// when set, overrides the catalog entry's mode (a court order fixing a term
// in calendar days where the statute counts business days); StateCode scopes
// state holidays to the case's state.
type ComputeRequest struct {
	CatalogCode      string       `json:"catalog_code" binding:"required"`
	BaseDaysOverride *int         `json:"base_days_override,omitempty"`
	CountingMode     string       `json:"counting_mode,omitempty"`
	TriggerDate      string       `json:"trigger_date" binding:"required"`
	ServiceMethod    string       `json:"service_method" binding:"required"`
	TribunalCode     string       `json:"tribunal_code" binding:"required"`
	StateCode        string       `json:"state_code,omitempty"`
	Parties          []PartyInput `json:"parties,omitempty"`
}

// ComputeResponse is the computation result returned to the caller.
type ComputeResponse struct {
	ComputationID string `json:"computation_id"`
	TribunalCode  string `json:"tribunal_code"`
	CatalogCode   string `json:"catalog_code"`
	CatalogName   string `json:"catalog_name"`
	Statute       string `json:"statute,omitempty"`

	TriggerDate time.Time `json:"trigger_date"`

	// StartDate and DueDate are nil on a no-fixed-term result.
	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	BaseDays      int    `json:"base_days"`
	EffectiveDays int    `json:"effective_days"`
	CountingMode  string `json:"counting_mode"`

	HolidaysSkipped       int `json:"holidays_skipped"`
	SuspensionDaysSkipped int `json:"suspension_days_skipped"`

	DoublingApplied bool   `json:"doubling_applied"`
	DoublingReason  string `json:"doubling_reason,omitempty"`
	NoFixedTerm     bool   `json:"no_fixed_term"`

	Steps []engine.AuditEntry `json:"steps"`

	// SnapshotYears lists the calendar years merged into the snapshot the
	// count walked.
	SnapshotYears []int `json:"snapshot_years"`

	ComputedAt time.Time `json:"computed_at"`
}

// CalendarUpdatedEvent announces a calendar upsert so downstream consumers
// can refresh their snapshots.
type CalendarUpdatedEvent struct {
	TribunalCode string    `json:"tribunal_code"`
	Year         int       `json:"year"`
	Holidays     int       `json:"holidays"`
	Suspensions  int       `json:"suspensions"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ComputedEvent is the audit event published after a successful computation.
type ComputedEvent struct {
	ComputationID   string     `json:"computation_id"`
	TribunalCode    string     `json:"tribunal_code"`
	CatalogCode     string     `json:"catalog_code"`
	TriggerDate     time.Time  `json:"trigger_date"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	EffectiveDays   int        `json:"effective_days"`
	CountingMode    string     `json:"counting_mode"`
	DoublingApplied bool       `json:"doubling_applied"`
	NoFixedTerm     bool       `json:"no_fixed_term"`
	ComputedAt      time.Time  `json:"computed_at"`
}

func buildResponse(id, tribunal string, entry *catalog.Entry, res *engine.Result, years []int, at time.Time) *ComputeResponse {
	var start, due *time.Time
	if !res.NoFixedTerm {
		s, d := res.StartDate, res.DueDate
		start, due = &s, &d
	}
	return &ComputeResponse{
		ComputationID:         id,
		TribunalCode:          tribunal,
		CatalogCode:           entry.Code,
		CatalogName:           entry.Name,
		Statute:               entry.Statute,
		TriggerDate:           res.TriggerDate,
		StartDate:             start,
		DueDate:               due,
		BaseDays:              res.BaseDays,
		EffectiveDays:         res.EffectiveDays,
		CountingMode:          string(res.Mode),
		HolidaysSkipped:       res.HolidaysSkipped,
		SuspensionDaysSkipped: res.SuspensionDaysSkipped,
		DoublingApplied:       res.DoublingApplied,
		DoublingReason:        res.DoublingReason,
		NoFixedTerm:           res.NoFixedTerm,
		Steps:                 res.Steps,
		SnapshotYears:         years,
		ComputedAt:            at,
	}
}

func (r *ComputeResponse) event() ComputedEvent {
	return ComputedEvent{
		ComputationID:   r.ComputationID,
		TribunalCode:    r.TribunalCode,
		CatalogCode:     r.CatalogCode,
		TriggerDate:     r.TriggerDate,
		StartDate:       r.StartDate,
		DueDate:         r.DueDate,
		EffectiveDays:   r.EffectiveDays,
		CountingMode:    r.CountingMode,
		DoublingApplied: r.DoublingApplied,
		NoFixedTerm:     r.NoFixedTerm,
		ComputedAt:      r.ComputedAt,
	}
}
