package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/fixtures"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T) serverDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products, err := fixtures.Products()
	require.NoError(t, err)
	catalog := services.NewMemoryProvider(products)
	productService := services.NewCatalogService(catalog, cache.NewMemoryCountCache())
	tokens, err := services.NewTokenService("server-secret", time.Hour)
	require.NoError(t, err)

	return serverDeps{
		cfg:      config.AppConfig{AppEnv: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		catalog:  catalog,
		products: productService,
		sessions: services.NewSessionService(productService),
		carts:    services.NewCartService(catalog),
		tokens:   tokens,
		metadata: cache.NewMetadataCache(time.Minute),
	}
}

func TestRouterServesStorefront(t *testing.T) {
	r := newRouter(testDeps(t))

	for _, path := range []string{"/healthz", "/api/v1/store/products", "/api/v1/store/filters/metadata"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"), path)
	}
}

func TestRouterCORS(t *testing.T) {
	r := newRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/store/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRateLimitsWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deps := testDeps(t)
	deps.redis = client
	deps.cfg.RateLimitRequests = 1
	deps.cfg.RateLimitWindow = time.Minute
	r := newRouter(deps)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/store/sessions", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)

	// reads are not limited
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/products", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestHealthHandlerReportsFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", healthHandler([]healthCheck{
		{"postgres", func(context.Context) error { return nil }},
		{"redis", func(context.Context) error { return errors.New("connection refused") }},
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "connection refused"}, resp.Data)
}

func TestPruneIdleStopsWithContext(t *testing.T) {
	deps := testDeps(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pruneIdle(ctx, deps.sessions, deps.carts, 40*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruneIdle did not stop")
	}
}
