package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ulidgen/internal/application/generator"
	"github.com/go-ulidgen/internal/config"
	"github.com/go-ulidgen/internal/transport/http/handler"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		AllowedOrigins: []string{"https://example.com"},
		MaxBatchSize:   10,
	}
	cfg.RateLimit.RequestsPerSecond = 100
	cfg.RateLimit.Burst = 100
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRouter(ctx, cfg, &Deps{Generator: generator.NewSystemService(nil, cfg.MaxBatchSize)})
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestRouter_HealthCheck(t *testing.T) {
	r := newTestRouter(t, testConfig())

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handler.MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "pong", resp.Message)

	rr = serve(r, httptest.NewRequest(http.MethodGet, "/v1/health-check/other", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_GenerateAndInspect(t *testing.T) {
	r := newTestRouter(t, testConfig())

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/v1/ulids?count=5&timestamp=1716214200123", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var batch handler.ULIDsEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&batch))
	require.Len(t, batch.ULIDs, 5)
	assert.True(t, sort.StringsAreSorted(batch.ULIDs))
	for _, s := range batch.ULIDs {
		assert.Equal(t, "01HYB5CXSV", s[:10])
	}

	rr = serve(r, httptest.NewRequest(http.MethodGet, "/v1/ulids/"+batch.ULIDs[0], nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var insp handler.InspectionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&insp))
	assert.Equal(t, batch.ULIDs[0], insp.ULID)
	assert.Equal(t, uint64(1716214200123), insp.UnixMs)
	assert.Equal(t, "2024-05-20T14:10:00.123+00:00", insp.Timestamp)
}

func TestRouter_PostGenerate(t *testing.T) {
	r := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/ulids",
		strings.NewReader(`{"count":3,"case":"lower","datetime":"2024-05-20T14:10:00.123Z"}`))
	rr := serve(r, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var batch handler.ULIDsEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&batch))
	require.Len(t, batch.ULIDs, 3)
	for _, s := range batch.ULIDs {
		assert.Equal(t, "01hyb5cxsv", s[:10])
	}
}

func TestRouter_ErrorStatuses(t *testing.T) {
	r := newTestRouter(t, testConfig())

	tests := map[string]int{
		"/v1/ulids?count=11":                               http.StatusRequestEntityTooLarge,
		"/v1/ulids?count=0":                                http.StatusBadRequest,
		"/v1/ulids?case=title":                             http.StatusBadRequest,
		"/v1/ulids?timestamp=281474976710656":              http.StatusBadRequest,
		"/v1/ulids?datetime=yesterday":                     http.StatusBadRequest,
		"/v1/ulids?timestamp=1&datetime=1970-01-01T00:00Z": http.StatusBadRequest,
		"/v1/ulids/8ZZZZZZZZZZZZZZZZZZZZZZZZZ":              http.StatusBadRequest,
		"/v1/ulids/short":                                  http.StatusBadRequest,
		"/v1/unknown":                                      http.StatusNotFound,
	}
	for target, want := range tests {
		t.Run(target, func(t *testing.T) {
			rr := serve(r, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, want, rr.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/ulids", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := serve(r, req)

	assert.Equal(t, "https://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitAppliesToULIDRoutesOnly(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.RequestsPerSecond = 0.001
	cfg.RateLimit.Burst = 1
	r := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/v1/ulids", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/v1/ulids", nil)).Code)

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil)).Code)
	}
}
