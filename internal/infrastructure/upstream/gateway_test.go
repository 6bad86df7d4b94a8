package upstream_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/infrastructure/metrics"
	"github.com/jhoicas/storefront-bff/internal/infrastructure/upstream"
	"github.com/jhoicas/storefront-bff/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type captured struct {
	mu      sync.Mutex
	method  string
	path    string
	query   string
	headers http.Header
	body    string
	calls   int
}

func (c *captured) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, _ := io.ReadAll(r.Body)
	c.method, c.path, c.query = r.Method, r.URL.Path, r.URL.RawQuery
	c.headers = r.Header.Clone()
	c.body = string(b)
	c.calls++
}

// serve levanta un servidor que responde status + body y registra la última petición.
func serve(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func ok(data string) string { return `{"success":true,"data":` + data + `}` }

func client(srv *httptest.Server, service string) *upstream.Client {
	return upstream.NewClient(upstream.ClientConfig{
		Service: service,
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_ListRecentEnviaConsultaYCorrelacion(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[
		{"id":"p1","sku":"SKU-1","name":"Bota","price":"59.90","category":"Footwear","createdAt":"2026-03-01T10:00:00Z","isActive":true},
		{"id":"p2","name":"Anillo","price":120,"category":"Jewelry"}
	]`))
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	got, err := gw.ListRecent(context.Background(), 12, "products-trending-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, http.MethodGet, c.method)
	assert.Equal(t, "/api/products", c.path)
	assert.Equal(t, "active=true&limit=12&order=desc&sort=created_at", c.query)
	assert.Equal(t, "products-trending-1", c.headers.Get(upstream.HeaderCorrelationID))

	assert.Equal(t, "SKU-1", got[0].SKU)
	assert.Equal(t, "59.9", got[0].Price.String())
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), got[0].CreatedAt.UTC())
	assert.False(t, got[1].HasSKU())
}

func TestCatalog_GetProduct404EsNotFound(t *testing.T) {
	srv, _ := serve(t, http.StatusNotFound, `{"success":false,"error":{"message":"Product not found"}}`)
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	_, err := gw.GetProduct(context.Background(), "nope", "corr")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCatalog_Error500EsUpstreamError(t *testing.T) {
	srv, _ := serve(t, http.StatusInternalServerError, `{"success":false,"error":{"message":"db down"}}`)
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	_, err := gw.ListTrending(context.Background(), 4, "corr")
	require.Error(t, err)

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "catalog", ue.Service)
	assert.Equal(t, "list_trending", ue.Operation)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, "db down", ue.Reason)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCatalog_SobreConSuccessFalseEsError(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"success":false,"error":"maintenance"}`)
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	_, err := gw.ListCategories(context.Background(), "corr")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestCatalog_PayloadNoJSONEsError(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `<html>oops</html>`)
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	_, err := gw.ListCategories(context.Background(), "corr")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCatalog_CountByCategory(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`{"count":42}`))
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	n, err := gw.CountByCategory(context.Background(), "Kids", "Footwear", "corr")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, "/api/categories/count", c.path)
	assert.Equal(t, "category=Footwear&department=Kids", c.query)
}

func TestCatalog_ListTrendingCategories(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, ok(`[{"name":"Footwear","productCount":12,"averagePrice":"45.50","trendingScore":8.2}]`))
	gw := upstream.NewCatalogGateway(client(srv, "catalog"))

	got, err := gw.ListTrendingCategories(context.Background(), 5, "corr")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Footwear", got[0].Name)
	assert.Equal(t, 12, got[0].ProductCount)
	assert.Equal(t, "45.5", got[0].AveragePrice.String())
}

func TestCatalog_TimeoutEsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	gw := upstream.NewCatalogGateway(upstream.NewClient(upstream.ClientConfig{
		Service: "catalog",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, nil, nil))

	start := time.Now()
	_, err := gw.ListTrending(context.Background(), 4, "corr")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_GetBatch(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[{"sku":"A","quantityAvailable":3},{"sku":"B","quantityAvailable":0}]`))
	gw := upstream.NewInventoryGateway(client(srv, "inventory"))

	got, err := gw.GetBatch(context.Background(), []string{"A", "B", "C"}, "corr")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/api/inventory/batch", c.path)
	assert.JSONEq(t, `{"skus":["A","B","C"]}`, c.body)
	assert.Equal(t, "application/json", c.headers.Get("Content-Type"))

	assert.Len(t, got, 2)
	assert.Equal(t, 3, got["A"].QuantityAvailable)
	_, found := got["C"]
	assert.False(t, found)
}

func TestInventory_ListaVaciaNoLlama(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[]`))
	gw := upstream.NewInventoryGateway(client(srv, "inventory"))

	got, err := gw.GetBatch(context.Background(), nil, "corr")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, c.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestReviews_RatingsBatch(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[
		{"productId":"p1","averageRating":4.2,"totalReviews":10,"ratingDistribution":{"1":0,"2":1,"3":1,"4":3,"5":5}}
	]`))
	gw := upstream.NewReviewGateway(client(srv, "reviews"))

	got, err := gw.GetProductRatingsBatch(context.Background(), []string{"p1", "p2"}, "corr")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.JSONEq(t, `{"productIds":["p1","p2"]}`, c.body)
	assert.Equal(t, 4.2, got[0].AverageRating)
	assert.Equal(t, 5, got[0].Distribution[4])
}

func TestReviews_RatingsBatchLimites(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[]`))
	gw := upstream.NewReviewGateway(client(srv, "reviews"))

	got, err := gw.GetProductRatingsBatch(context.Background(), []string{}, "corr")
	require.NoError(t, err)
	assert.Empty(t, got)

	ids := make([]string, domain.MaxRatingsBatch+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}
	_, err = gw.GetProductRatingsBatch(context.Background(), ids, "corr")
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
	assert.Equal(t, 0, c.calls)
}

func TestReviews_GetProductRating404EsCero(t *testing.T) {
	srv, _ := serve(t, http.StatusNotFound, `{"success":false,"error":{"message":"no reviews"}}`)
	gw := upstream.NewReviewGateway(client(srv, "reviews"))

	got, err := gw.GetProductRating(context.Background(), "p1", "corr")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProductID)
	assert.Zero(t, got.TotalReviews)
}

func TestReviews_ListProductReviews(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`{
		"reviews":[{"id":"r1","productId":"p1","author":"Ana","rating":5,"comment":"Genial"}],
		"pagination":{"page":2,"limit":5,"total":6,"totalPages":2}
	}`))
	gw := upstream.NewReviewGateway(client(srv, "reviews"))

	got, err := gw.ListProductReviews(context.Background(), "p1", 2, 5, "corr")
	require.NoError(t, err)

	assert.Equal(t, "/api/reviews/products/p1", c.path)
	assert.Equal(t, "limit=5&page=2", c.query)
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, "Ana", got.Reviews[0].Author)
	assert.Equal(t, 6, got.Pagination.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cliente: token de servicio, sobre opcional y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_AdjuntaTokenDeServicio(t *testing.T) {
	srv, c := serve(t, http.StatusOK, ok(`[]`))
	cl := upstream.NewClient(upstream.ClientConfig{
		Service:   "catalog",
		BaseURL:   srv.URL,
		JWTSecret: "s3cret",
		JWTIssuer: "storefront-bff",
	}, nil, nil)

	_, err := upstream.NewCatalogGateway(cl).ListCategories(context.Background(), "corr-9")
	require.NoError(t, err)

	auth := c.headers.Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))
	claims, err := jwt.ParseServiceToken("s3cret", "catalog", strings.TrimPrefix(auth, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "corr-9", claims.CorrelationID)
}

func TestClient_CuerpoSinSobreSeAceptaTalCual(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `["Footwear","Jewelry"]`)

	got, err := upstream.NewCatalogGateway(client(srv, "catalog")).ListCategories(context.Background(), "corr")
	require.NoError(t, err)
	assert.Equal(t, []string{"Footwear", "Jewelry"}, got)
}

func TestClient_RegistraMetricas(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, ok(`[]`))
	m := metrics.New(false)
	cl := upstream.NewClient(upstream.ClientConfig{Service: "catalog", BaseURL: srv.URL}, nil, m)

	_, err := upstream.NewCatalogGateway(cl).ListCategories(context.Background(), "corr")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `storefront_upstream_requests_total{operation="list_categories",outcome="ok",service="catalog"} 1`)
}

func TestClient_PayloadConFormaInvalidaCuentaComoError(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, ok(`{"not":"a list"}`))
	m := metrics.New(false)
	cl := upstream.NewClient(upstream.ClientConfig{Service: "inventory", BaseURL: srv.URL}, nil, m)

	_, err := upstream.NewInventoryGateway(cl).GetBatch(context.Background(), []string{"A"}, "corr")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `storefront_upstream_requests_total{operation="get_batch",outcome="error",service="inventory"} 1`)
	assert.NotContains(t, body, `storefront_upstream_requests_total{operation="get_batch",outcome="ok",service="inventory"}`)
}

func TestCatalog_CountSinCampoCuentaComoError(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, ok(`{"total":3}`))
	m := metrics.New(false)
	cl := upstream.NewClient(upstream.ClientConfig{Service: "catalog", BaseURL: srv.URL}, nil, m)

	_, err := upstream.NewCatalogGateway(cl).CountByCategory(context.Background(), "Kids", "Footwear", "corr")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `storefront_upstream_requests_total{operation="count_by_category",outcome="error",service="catalog"} 1`)
}

func TestError_Mensaje(t *testing.T) {
	err := &upstream.Error{Service: "reviews", Operation: "get_rating", StatusCode: 503, Reason: "unavailable"}
	assert.Equal(t, "reviews.get_rating: HTTP 503: unavailable", err.Error())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.False(t, upstream.IsNotFound(err))
}
