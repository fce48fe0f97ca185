package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

func tjsp2025() *CourtCalendar {
	return &CourtCalendar{
		TribunalCode: "TJSP",
		TribunalName: "Tribunal de Justiça de São Paulo",
		Category:     CategoryStateCourt,
		StateCode:    "SP",
		Year:         2025,
		Holidays: []Holiday{
			{
				Date:             Date(2025, time.November, 20),
				Name:             "Dia da Consciência Negra",
				Category:         HolidayNational,
				SuspendsBusiness: true,
				ExtendsDeadlines: true,
			},
			{
				Date:             Date(2025, time.December, 8),
				Name:             "Dia da Justiça",
				Category:         HolidayJusticeDay,
				SuspendsBusiness: true,
				ExtendsDeadlines: true,
			},
			{
				Date:             Date(2025, time.June, 12),
				Name:             "Dia dos Namorados",
				Category:         HolidayOptional,
				SuspendsBusiness: false,
			},
		},
		Suspensions: []Suspension{{
			Start:             Date(2025, time.December, 20),
			End:               Date(2026, time.January, 20),
			Name:              "Recesso forense",
			Category:          SuspensionYearEndRecess,
			SuspendsDeadlines: true,
			SuspendsHearings:  true,
			SuspendsSessions:  true,
			EmergencyDuty:     true,
		}},
	}
}

func tjsp2026() *CourtCalendar {
	return &CourtCalendar{
		TribunalCode: "TJSP",
		TribunalName: "Tribunal de Justiça de São Paulo",
		Category:     CategoryStateCourt,
		StateCode:    "SP",
		Year:         2026,
		Holidays: []Holiday{{
			Date:             Date(2026, time.February, 17),
			Name:             "Carnaval",
			Category:         HolidayNational,
			SuspendsBusiness: true,
			ExtendsDeadlines: true,
		}},
	}
}

func TestNewSnapshot(t *testing.T) {
	t.Run("requires at least one calendar", func(t *testing.T) {
		_, err := NewSnapshot()
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCalendarInvalid))
	})

	t.Run("rejects mixed tribunals", func(t *testing.T) {
		other := tjsp2026()
		other.TribunalCode = "TJRJ"
		_, err := NewSnapshot(tjsp2025(), other)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeCalendarInvalid))
	})

	t.Run("merges consecutive years", func(t *testing.T) {
		snap, err := NewSnapshot(tjsp2025(), tjsp2026())
		require.NoError(t, err)

		assert.Equal(t, "TJSP", snap.TribunalCode())
		assert.Equal(t, []int{2025, 2026}, snap.Years())

		_, ok := snap.HolidayOn(Date(2025, time.November, 20))
		assert.True(t, ok)
		_, ok = snap.HolidayOn(Date(2026, time.February, 17))
		assert.True(t, ok)
	})
}

func TestSnapshotClassify(t *testing.T) {
	snap, err := NewSnapshot(tjsp2025(), tjsp2026())
	require.NoError(t, err)

	tests := []struct {
		name   string
		date   time.Time
		kind   DayKind
		detail string
	}{
		{"ordinary weekday", Date(2025, time.March, 12), DayCountable, ""},
		{"saturday", Date(2025, time.March, 15), DayWeekend, "weekend"},
		{"sunday", Date(2025, time.March, 16), DayWeekend, "weekend"},
		{"suspending holiday", Date(2025, time.November, 20), DayHoliday, "Dia da Consciência Negra"},
		{"informational holiday still counts", Date(2025, time.June, 12), DayCountable, ""},
		{"recess weekday", Date(2025, time.December, 22), DaySuspension, "Recesso forense"},
		{"recess day in following year", Date(2026, time.January, 19), DaySuspension, "Recesso forense"},
		{"recess weekend classified as weekend", Date(2025, time.December, 21), DayWeekend, "weekend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.Classify(tt.date)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.detail, got.Detail)
		})
	}
}

func TestSnapshotStateScopedHolidays(t *testing.T) {
	// Wednesday, a working day everywhere except RJ.
	holiday := Date(2025, time.March, 5)

	trf2 := &CourtCalendar{
		TribunalCode: "TRF2",
		Category:     CategoryFederalRegional,
		Year:         2025,
		Holidays: []Holiday{{
			Date:             holiday,
			Name:             "Feriado estadual",
			Category:         HolidayState,
			StateCode:        "RJ",
			SuspendsBusiness: true,
			ExtendsDeadlines: true,
		}},
	}

	snap, err := NewSnapshot(trf2)
	require.NoError(t, err)

	t.Run("no case state means no match on a stateless calendar", func(t *testing.T) {
		assert.Equal(t, DayCountable, snap.Classify(holiday).Kind)
	})

	t.Run("matching case state applies the holiday", func(t *testing.T) {
		view := snap.ForState("RJ")
		assert.Equal(t, DayHoliday, view.Classify(holiday).Kind)
		assert.False(t, view.IsBusinessDay(holiday))
	})

	t.Run("state codes compare case-insensitively", func(t *testing.T) {
		assert.Equal(t, DayHoliday, snap.ForState("rj").Classify(holiday).Kind)
	})

	t.Run("other case state skips the holiday", func(t *testing.T) {
		assert.Equal(t, DayCountable, snap.ForState("SP").Classify(holiday).Kind)
	})

	t.Run("calendar state is the fallback", func(t *testing.T) {
		tjrj := &CourtCalendar{
			TribunalCode: "TJRJ",
			Category:     CategoryStateCourt,
			StateCode:    "RJ",
			Year:         2025,
			Holidays:     trf2.Holidays,
		}
		own, err := NewSnapshot(tjrj)
		require.NoError(t, err)
		assert.Equal(t, DayHoliday, own.Classify(holiday).Kind)
	})
}

func TestSnapshotIsBusinessDay(t *testing.T) {
	snap, err := NewSnapshot(tjsp2025())
	require.NoError(t, err)

	assert.True(t, snap.IsBusinessDay(Date(2025, time.March, 12)))
	assert.False(t, snap.IsBusinessDay(Date(2025, time.March, 15)))
	assert.False(t, snap.IsBusinessDay(Date(2025, time.November, 20)))
	assert.False(t, snap.IsBusinessDay(Date(2025, time.December, 29)))
}

func TestSnapshotSuspensionOn(t *testing.T) {
	snap, err := NewSnapshot(tjsp2025())
	require.NoError(t, err)

	sp, ok := snap.SuspensionOn(Date(2026, time.January, 5))
	require.True(t, ok)
	assert.Equal(t, "Recesso forense", sp.Name)

	_, ok = snap.SuspensionOn(Date(2025, time.May, 5))
	assert.False(t, ok)

	all := snap.DeadlineSuspensions()
	require.Len(t, all, 1)
	assert.Equal(t, SuspensionYearEndRecess, all[0].Category)
}
