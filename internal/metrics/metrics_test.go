package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.IncidentResolved()
	m.IncidentResolved()
	m.EventDropped()
	m.SetHubClients(3)
	m.ObserveHTTP(http.MethodPatch, "PATCH /api/incidents/{id}/resolve", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.incidentsResolved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hubDropped))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.hubClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequests.WithLabelValues(http.MethodPatch, "PATCH /api/incidents/{id}/resolve", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncidentResolved()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "incidents_resolved_total 1")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	m.IncidentResolved()
	m.EventDropped()
	m.SetHubClients(1)
	m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
