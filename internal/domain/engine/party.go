// Package engine implements the deadline computation pipeline: trigger
// resolution, statutory doubling, day-by-day counting, and the audit log
// that makes every computed due date independently verifiable.  The engine
// is pure: it performs no I/O and reads calendar data only through the
// snapshot handed to it.
package engine

import (
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// Pole places a party on one side of the case.
type Pole string

const (
	PoleClaimant   Pole = "claimant"
	PoleRespondent Pole = "respondent"
	PoleThirdParty Pole = "third_party"
)

// PartyType is the closed set of party categories the doubling resolver
// reasons about.  Keeping it closed lets the eligibility switch below be
// checked exhaustively.
type PartyType string

const (
	PartyIndividual          PartyType = "individual"
	PartyLegalEntity         PartyType = "legal_entity"
	PartyFederalTreasury     PartyType = "federal_treasury"
	PartyStateTreasury       PartyType = "state_treasury"
	PartyMunicipalTreasury   PartyType = "municipal_treasury"
	PartyAutonomousAgency    PartyType = "autonomous_agency"
	PartyPublicFoundation    PartyType = "public_foundation"
	PartyPublicMinistry      PartyType = "public_ministry"
	PartyPublicDefender      PartyType = "public_defender"
	PartyPublicCompany       PartyType = "public_company"
	PartyMixedEconomyCompany PartyType = "mixed_economy_company"
)

// Party is the case-scoped view of one litigant, ephemeral per computation.
// CounselID identifies the counsel or firm of record; the doubling resolver
// compares it across same-pole parties to detect the distinct-counsel
// joinder condition.
type Party struct {
	Name      string    `json:"name,omitempty"`
	Pole      Pole      `json:"pole"`
	Type      PartyType `json:"type"`
	CounselID string    `json:"counsel_id,omitempty"`
}

// Validate reports ENG_002 when the pole or type is missing or outside the
// closed sets.
func (p Party) Validate() error {
	switch p.Pole {
	case PoleClaimant, PoleRespondent, PoleThirdParty:
	default:
		return errors.Newf(errors.ErrCodeInvalidPartyComposition,
			"party %q has unknown pole %q", p.Name, p.Pole)
	}

	switch p.Type {
	case PartyIndividual, PartyLegalEntity,
		PartyFederalTreasury, PartyStateTreasury, PartyMunicipalTreasury,
		PartyAutonomousAgency, PartyPublicFoundation,
		PartyPublicMinistry, PartyPublicDefender,
		PartyPublicCompany, PartyMixedEconomyCompany:
	default:
		return errors.Newf(errors.ErrCodeInvalidPartyComposition,
			"party %q has unknown type %q", p.Name, p.Type)
	}

	return nil
}

// StatutoryDoublingBasis returns the statute granting the party type a
// doubled term, if any.  Public and mixed-economy companies litigate under
// the ordinary regime and carry no prerogative.
func (t PartyType) StatutoryDoublingBasis() (string, bool) {
	switch t {
	case PartyFederalTreasury, PartyStateTreasury, PartyMunicipalTreasury,
		PartyAutonomousAgency, PartyPublicFoundation:
		return "CPC art. 183", true
	case PartyPublicMinistry:
		return "CPC art. 180", true
	case PartyPublicDefender:
		return "CPC art. 186", true
	case PartyIndividual, PartyLegalEntity,
		PartyPublicCompany, PartyMixedEconomyCompany:
		return "", false
	}
	return "", false
}

// Label is the Portuguese description used in doubling reason strings.
func (t PartyType) Label() string {
	switch t {
	case PartyIndividual:
		return "pessoa física"
	case PartyLegalEntity:
		return "pessoa jurídica de direito privado"
	case PartyFederalTreasury:
		return "Fazenda Pública federal"
	case PartyStateTreasury:
		return "Fazenda Pública estadual"
	case PartyMunicipalTreasury:
		return "Fazenda Pública municipal"
	case PartyAutonomousAgency:
		return "autarquia"
	case PartyPublicFoundation:
		return "fundação pública"
	case PartyPublicMinistry:
		return "Ministério Público"
	case PartyPublicDefender:
		return "Defensoria Pública"
	case PartyPublicCompany:
		return "empresa pública"
	case PartyMixedEconomyCompany:
		return "sociedade de economia mista"
	}
	return string(t)
}
