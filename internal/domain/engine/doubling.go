package engine

import (
	"fmt"
	"strings"

	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
)

// Doubling is the outcome of the effective-term resolution.  The term either
// doubles once or not at all; when both conditions hold, the reasons are
// concatenated and the multiplier still applies a single time.
type Doubling struct {
	EffectiveDays int
	Applied       bool
	Reason        string
}

// ResolveEffectiveDays applies the statutory doubling rules to a base term.
// Catalog entries with AllowsDoubling=false never double, regardless of who
// the parties are.  Otherwise the term doubles when any party carries a
// statutory prerogative (CPC arts. 180, 183, 186), or when the entry admits
// the joinder rule and two or more same-pole parties appear through distinct
// counsel (CPC art. 229).
func ResolveEffectiveDays(baseDays int, entry *catalog.Entry, parties []Party) Doubling {
	if !entry.AllowsDoubling {
		return Doubling{EffectiveDays: baseDays}
	}

	var reasons []string

	for _, p := range parties {
		if basis, ok := p.Type.StatutoryDoublingBasis(); ok {
			reasons = append(reasons,
				fmt.Sprintf("prerrogativa de prazo em dobro de %s (%s)", p.Type.Label(), basis))
			break
		}
	}

	if entry.AllowsJoinderDoubling && hasDistinctCounselJoinder(parties) {
		reasons = append(reasons,
			"litisconsortes no mesmo polo com procuradores distintos (CPC art. 229)")
	}

	if len(reasons) == 0 {
		return Doubling{EffectiveDays: baseDays}
	}

	return Doubling{
		EffectiveDays: baseDays * 2,
		Applied:       true,
		Reason:        strings.Join(reasons, "; "),
	}
}

// hasDistinctCounselJoinder reports whether any pole carries two or more
// parties represented by different counsel.  Parties without a counsel of
// record cannot establish the condition.
func hasDistinctCounselJoinder(parties []Party) bool {
	counselByPole := make(map[Pole]map[string]struct{})
	for _, p := range parties {
		if p.CounselID == "" {
			continue
		}
		set, ok := counselByPole[p.Pole]
		if !ok {
			set = make(map[string]struct{})
			counselByPole[p.Pole] = set
		}
		set[p.CounselID] = struct{}{}
		if len(set) >= 2 {
			return true
		}
	}
	return false
}
