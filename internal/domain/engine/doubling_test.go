package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

func eligibleEntry() *catalog.Entry {
	return &catalog.Entry{
		Code:                  "CONTESTACAO",
		Name:                  "Contestação",
		BaseDays:              15,
		Mode:                  catalog.ModeBusinessDays,
		Class:                 catalog.ClassPeremptory,
		Category:              catalog.CategoryPartyAct,
		AllowsDoubling:        true,
		AllowsJoinderDoubling: true,
	}
}

func TestPartyValidate(t *testing.T) {
	ok := Party{Name: "União", Pole: PoleRespondent, Type: PartyFederalTreasury}
	assert.NoError(t, ok.Validate())

	missingPole := Party{Name: "X", Type: PartyIndividual}
	err := missingPole.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPartyComposition))

	badType := Party{Name: "X", Pole: PoleClaimant, Type: "robot"}
	err = badType.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidPartyComposition))
}

func TestStatutoryDoublingBasis(t *testing.T) {
	entitled := map[PartyType]string{
		PartyFederalTreasury:   "CPC art. 183",
		PartyStateTreasury:     "CPC art. 183",
		PartyMunicipalTreasury: "CPC art. 183",
		PartyAutonomousAgency:  "CPC art. 183",
		PartyPublicFoundation:  "CPC art. 183",
		PartyPublicMinistry:    "CPC art. 180",
		PartyPublicDefender:    "CPC art. 186",
	}
	for typ, statute := range entitled {
		basis, ok := typ.StatutoryDoublingBasis()
		assert.True(t, ok, "%s must carry the prerogative", typ)
		assert.Equal(t, statute, basis)
	}

	for _, typ := range []PartyType{
		PartyIndividual, PartyLegalEntity, PartyPublicCompany, PartyMixedEconomyCompany,
	} {
		_, ok := typ.StatutoryDoublingBasis()
		assert.False(t, ok, "%s must not carry the prerogative", typ)
	}
}

func TestResolveEffectiveDays(t *testing.T) {
	t.Run("ineligible entry never doubles", func(t *testing.T) {
		entry := eligibleEntry()
		entry.AllowsDoubling = false

		d := ResolveEffectiveDays(15, entry, []Party{
			{Pole: PoleRespondent, Type: PartyFederalTreasury},
		})
		assert.Equal(t, 15, d.EffectiveDays)
		assert.False(t, d.Applied)
		assert.Empty(t, d.Reason)
	})

	t.Run("statutory party doubles", func(t *testing.T) {
		d := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleClaimant, Type: PartyIndividual, CounselID: "OAB-1"},
			{Pole: PoleRespondent, Type: PartyFederalTreasury},
		})
		assert.Equal(t, 30, d.EffectiveDays)
		assert.True(t, d.Applied)
		assert.Contains(t, d.Reason, "CPC art. 183")
	})

	t.Run("joinder with distinct counsel doubles", func(t *testing.T) {
		d := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-1"},
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-2"},
		})
		assert.Equal(t, 30, d.EffectiveDays)
		assert.True(t, d.Applied)
		assert.Contains(t, d.Reason, "CPC art. 229")
	})

	t.Run("joinder with shared counsel does not double", func(t *testing.T) {
		d := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-1"},
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-1"},
		})
		assert.Equal(t, 15, d.EffectiveDays)
		assert.False(t, d.Applied)
	})

	t.Run("joinder across opposite poles does not double", func(t *testing.T) {
		d := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleClaimant, Type: PartyLegalEntity, CounselID: "OAB-1"},
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-2"},
		})
		assert.False(t, d.Applied)
	})

	t.Run("parties without counsel of record cannot establish joinder", func(t *testing.T) {
		d := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleRespondent, Type: PartyLegalEntity},
			{Pole: PoleRespondent, Type: PartyLegalEntity},
		})
		assert.False(t, d.Applied)
	})

	t.Run("entry without joinder eligibility ignores the joinder condition", func(t *testing.T) {
		entry := eligibleEntry()
		entry.AllowsJoinderDoubling = false

		d := ResolveEffectiveDays(15, entry, []Party{
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-1"},
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-2"},
		})
		assert.False(t, d.Applied)
	})

	t.Run("doubling is boolean, never cumulative", func(t *testing.T) {
		both := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleRespondent, Type: PartyFederalTreasury, CounselID: "AGU-1"},
			{Pole: PoleRespondent, Type: PartyLegalEntity, CounselID: "OAB-2"},
		})
		onlyStatutory := ResolveEffectiveDays(15, eligibleEntry(), []Party{
			{Pole: PoleRespondent, Type: PartyFederalTreasury},
		})

		assert.Equal(t, 30, both.EffectiveDays)
		assert.Equal(t, onlyStatutory.EffectiveDays, both.EffectiveDays)
		assert.Contains(t, both.Reason, "; ", "both reasons must be concatenated")
		assert.Contains(t, both.Reason, "CPC art. 183")
		assert.Contains(t, both.Reason, "CPC art. 229")
	})
}
