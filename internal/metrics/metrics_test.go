package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCacheHit("attrs")
	c.RecordCacheHit("attrs")
	c.RecordCacheMiss("attrs")
	c.RecordCacheError("directory")
	c.RecordHistoryAppend("job")
	c.RecordEventRelayed("employee_created")
	c.RecordRelayFailure("employee_created")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.cacheHits.WithLabelValues("attrs")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.cacheMisses.WithLabelValues("attrs")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.cacheErrors.WithLabelValues("directory")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.historyAppends.WithLabelValues("job")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.eventsRelayed.WithLabelValues("employee_created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.relayFailures.WithLabelValues("employee_created")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordCacheMiss("attrs")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	assert.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "hrm_cache_misses_total"))
}
