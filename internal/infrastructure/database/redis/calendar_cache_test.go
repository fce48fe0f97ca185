package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
)

func TestCalendarCacheKeyFor(t *testing.T) {
	c := NewCalendarCache(NewClientWithBackend(nil, logging.NewNopLogger()), logging.NewNopLogger())
	assert.Equal(t, "prazo:calendar:TJSP:2025", c.KeyFor("TJSP", 2025))

	custom := NewCalendarCache(
		NewClientWithBackend(nil, logging.NewNopLogger()),
		logging.NewNopLogger(),
		WithPrefix("staging:"),
		WithTTL(time.Minute),
	)
	assert.Equal(t, "staging:calendar:TJRJ:2026", custom.KeyFor("TJRJ", 2026))
	assert.Equal(t, time.Minute, custom.ttl)
}
