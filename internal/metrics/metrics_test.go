package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New()

	c.ObserveSearch("knowledge", ModeOffline, 2*time.Millisecond)
	c.ObserveSearch("knowledge", ModeOffline, time.Millisecond)
	c.ObserveSearch("beats", ModeOnline, time.Millisecond)
	c.Fallback()
	c.EmbeddingRequest(nil)
	c.EmbeddingRequest(errors.New("boom"))
	c.EmbeddingRequest(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.searches.WithLabelValues("knowledge", ModeOffline)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.searches.WithLabelValues("beats", ModeOnline)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.embeddingRequests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.embeddingRequests.WithLabelValues(OutcomeError)))

	expected := `
# HELP motionkb_offline_fallbacks_total Times the retrieval client degraded to offline fixtures on connect.
# TYPE motionkb_offline_fallbacks_total counter
motionkb_offline_fallbacks_total 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "motionkb_offline_fallbacks_total"))
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveSearch("knowledge", ModeOnline, time.Second)
		c.Fallback()
		c.EmbeddingRequest(nil)
	})
	assert.Nil(t, c.Registry())
}
