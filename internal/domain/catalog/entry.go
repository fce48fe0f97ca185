// Package catalog defines the deadline-type catalog: one entry per procedural
// act, carrying the statutory base term, counting mode, and doubling
// eligibility the engine consumes.
package catalog

import (
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// CountingMode selects the arithmetic the engine applies to a term.
type CountingMode string

const (
	// ModeBusinessDays counts only countable days (CPC art. 219).
	ModeBusinessDays CountingMode = "business_days"
	// ModeCalendarDays counts every civil day, subject to suspension tolling.
	ModeCalendarDays CountingMode = "calendar_days"
	// ModeHours counts wall-clock hours with no calendar adjustment.
	ModeHours CountingMode = "hours"
)

// DeadlineClass captures the consequence regime of missing the term.
type DeadlineClass string

const (
	// ClassPeremptory deadlines extinguish the right to act when missed.
	ClassPeremptory DeadlineClass = "peremptory"
	// ClassDilatory deadlines may be modified by party agreement.
	ClassDilatory DeadlineClass = "dilatory"
	// ClassImproper deadlines bind court personnel without preclusion.
	ClassImproper DeadlineClass = "improper"
)

// ProceduralCategory groups entries by the actor the act belongs to.
type ProceduralCategory string

const (
	CategoryPartyAct          ProceduralCategory = "party_act"
	CategoryAppellateAct      ProceduralCategory = "appellate_act"
	CategoryJudgeAct          ProceduralCategory = "judge_act"
	CategoryPublicMinistryAct ProceduralCategory = "public_ministry_act"
	CategoryExpertAct         ProceduralCategory = "expert_act"
	CategoryAncillaryAct      ProceduralCategory = "ancillary_act"
)

// Entry describes one deadline type.  BaseDays carries the statutory count in
// the unit implied by Mode (days or hours); zero means the act has no fixed
// term and the engine short-circuits.
type Entry struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	BaseDays int                `json:"base_days"`
	Mode     CountingMode       `json:"mode"`
	Class    DeadlineClass      `json:"class"`
	Category ProceduralCategory `json:"category"`

	// Statute is the legal basis, e.g. "CPC art. 335".
	Statute string `json:"statute"`

	// AllowsDoubling gates the statutory prerogatives of public parties
	// (CPC arts. 180, 183, 186); decadential terms set it false.
	AllowsDoubling bool `json:"allows_doubling"`

	// AllowsJoinderDoubling gates the distinct-counsel joinder rule
	// (CPC art. 229).
	AllowsJoinderDoubling bool `json:"allows_joinder_doubling"`

	// ExtendsOnNonBusinessDay controls the landing rule: when false (e.g.
	// decadential terms), a due date falling on a non-business day stands.
	ExtendsOnNonBusinessDay bool `json:"extends_on_non_business_day"`

	// NonComplianceEffect describes what missing the term entails.
	NonComplianceEffect string `json:"non_compliance_effect,omitempty"`

	// TriggerDescription documents the act that opens the count.
	TriggerDescription string `json:"trigger_description,omitempty"`
}

// HasFixedTerm reports whether the entry carries a statutory count at all.
func (e *Entry) HasFixedTerm() bool { return e.BaseDays > 0 }

// Validate checks the entry's structural invariants.
func (e *Entry) Validate() error {
	if e.Code == "" {
		return errors.New(errors.ErrCodeCatalogEntryInvalid, "entry code is required")
	}
	if e.Name == "" {
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid, "entry %s has no name", e.Code)
	}
	if e.BaseDays < 0 {
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid,
			"entry %s has negative base term %d", e.Code, e.BaseDays)
	}

	switch e.Mode {
	case ModeBusinessDays, ModeCalendarDays, ModeHours:
	default:
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid,
			"entry %s has unknown counting mode %q", e.Code, e.Mode)
	}

	switch e.Class {
	case ClassPeremptory, ClassDilatory, ClassImproper:
	default:
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid,
			"entry %s has unknown deadline class %q", e.Code, e.Class)
	}

	switch e.Category {
	case CategoryPartyAct, CategoryAppellateAct, CategoryJudgeAct,
		CategoryPublicMinistryAct, CategoryExpertAct, CategoryAncillaryAct:
	default:
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid,
			"entry %s has unknown procedural category %q", e.Code, e.Category)
	}

	if e.Mode == ModeHours && e.AllowsDoubling {
		return errors.Newf(errors.ErrCodeCatalogEntryInvalid,
			"entry %s counts hours and cannot allow doubling", e.Code)
	}

	return nil
}
