package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-bff/internal/infrastructure/metrics"
)

func TestRecordDegraded(t *testing.T) {
	m := metrics.New(false)
	m.RecordDegraded("inventory")
	m.RecordDegraded("inventory")
	m.RecordDegraded("ratings")

	n, err := testutil.GatherAndCount(m.Registry, "storefront_degraded_branches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por rama")
}

func TestHandlerExponeLasSeries(t *testing.T) {
	m := metrics.New(false)
	m.ObserveUpstream("catalog", "list_trending", metrics.OutcomeOK, 20*time.Millisecond)
	m.ObserveHTTP("get", "/api/storefront/categories", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `storefront_upstream_requests_total{operation="list_trending",outcome="ok",service="catalog"} 1`)
	assert.Contains(t, body, `storefront_http_requests_total{method="GET",route="/api/storefront/categories",status="200"} 1`)
}

func TestNew_ConRuntimeRegistraColectoresDelProceso(t *testing.T) {
	m := metrics.New(true)

	n, err := testutil.GatherAndCount(m.Registry, "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
