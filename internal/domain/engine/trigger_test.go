package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

func quietSnapshot(t *testing.T) *calendar.Snapshot {
	t.Helper()
	snap, err := calendar.NewSnapshot(&calendar.CourtCalendar{
		TribunalCode: "TJSP",
		Category:     calendar.CategoryStateCourt,
		Year:         2025,
	})
	require.NoError(t, err)
	return snap
}

func TestServiceMethods(t *testing.T) {
	rules := ServiceMethods()
	assert.Len(t, rules, 12)

	for i := 1; i < len(rules); i++ {
		assert.Less(t, string(rules[i-1].Method), string(rules[i].Method))
	}
	for _, r := range rules {
		assert.NotEmpty(t, r.Citation, "method %s must cite its statute", r.Method)
		assert.NotEmpty(t, r.Description)
	}
}

func TestRuleFor(t *testing.T) {
	r, err := RuleFor(MethodPostalAck)
	require.NoError(t, err)
	assert.Equal(t, StartNextBusinessDay, r.Rule)

	r, err = RuleFor(MethodOpenCourtDecision)
	require.NoError(t, err)
	assert.Equal(t, StartOnActDate, r.Rule)

	_, err = RuleFor("carrier_pigeon")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidServiceMethod))
}

func TestResolveStart(t *testing.T) {
	snap := quietSnapshot(t)

	t.Run("next business day rule on a weekday", func(t *testing.T) {
		// Monday 2025-03-03 -> Tuesday 2025-03-04.
		start, err := ResolveStart(calendar.Date(2025, time.March, 3), MethodPostalAck, snap)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2025, time.March, 4), start)
	})

	t.Run("next business day rule rolls over the weekend", func(t *testing.T) {
		// Friday 2025-03-07 -> Monday 2025-03-10.
		start, err := ResolveStart(calendar.Date(2025, time.March, 7), MethodPostalAck, snap)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2025, time.March, 10), start)
	})

	t.Run("act date rule stays on the act's day", func(t *testing.T) {
		start, err := ResolveStart(calendar.Date(2025, time.March, 3), MethodHearingIntimation, snap)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2025, time.March, 3), start)
	})

	t.Run("act date rule still rolls off a weekend", func(t *testing.T) {
		// Saturday 2025-03-08 -> Monday 2025-03-10.
		start, err := ResolveStart(calendar.Date(2025, time.March, 8), MethodDutyService, snap)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2025, time.March, 10), start)
	})

	t.Run("rolls past a holiday", func(t *testing.T) {
		withHoliday, err := calendar.NewSnapshot(&calendar.CourtCalendar{
			TribunalCode: "TJSP",
			Year:         2025,
			Holidays: []calendar.Holiday{{
				Date:             calendar.Date(2025, time.March, 10),
				Name:             "Feriado local",
				Category:         calendar.HolidayState,
				SuspendsBusiness: true,
				ExtendsDeadlines: true,
			}},
		})
		require.NoError(t, err)

		start, err := ResolveStart(calendar.Date(2025, time.March, 7), MethodPostalAck, withHoliday)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2025, time.March, 11), start)
	})

	t.Run("start inside a suspension moves past its end", func(t *testing.T) {
		withRecess, err := calendar.NewSnapshot(&calendar.CourtCalendar{
			TribunalCode: "TJSP",
			Year:         2025,
			Suspensions: []calendar.Suspension{{
				Start:             calendar.Date(2025, time.December, 20),
				End:               calendar.Date(2026, time.January, 20),
				Name:              "Recesso forense",
				Category:          calendar.SuspensionYearEndRecess,
				SuspendsDeadlines: true,
			}},
		})
		require.NoError(t, err)

		// Friday 2025-12-19: the next day is already inside the recess, so
		// counting starts on the first business day after it ends.
		start, err := ResolveStart(calendar.Date(2025, time.December, 19), MethodPostalAck, withRecess)
		require.NoError(t, err)
		assert.Equal(t, calendar.Date(2026, time.January, 21), start)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := ResolveStart(calendar.Date(2025, time.March, 3), "smoke_signal", snap)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidServiceMethod))
	})
}
