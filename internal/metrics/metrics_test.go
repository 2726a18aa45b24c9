package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(false)

	m.Classified("unsafe")
	m.Classified("unsafe")
	m.AdvisoryOpened("field", "caution")
	m.ActionTaken("return_to_safety")
	m.FieldEvent("password")
	m.MessageAnswered("scam")
	m.ListReload(true)
	m.ListReload(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.classifications.WithLabelValues("unsafe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.advisories.WithLabelValues("field", "caution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("return_to_safety")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fieldEvents.WithLabelValues("password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messages.WithLabelValues("scam")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listReloads.WithLabelValues("error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Classified("safe")
		m.AdvisoryOpened("navigation", "safe")
		m.ActionTaken("dismiss")
		m.FieldEvent("email")
		m.MessageAnswered("fallback")
		m.ListReload(true)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New(false)
	m.Classified("caution")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), `safeharbor_classifications_total{tier="caution"} 1`))
}
