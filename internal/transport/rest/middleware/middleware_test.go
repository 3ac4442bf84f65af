package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"icebreak/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func echoClientID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetClientID(r.Context())))
	})
}

func TestClientID(t *testing.T) {
	h := ClientID(echoClientID())

	t.Run("keeps a valid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ClientIDHeader, "device_42-a")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "device_42-a", rec.Body.String())
		assert.Equal(t, "device_42-a", rec.Header().Get(ClientIDHeader))
	})

	for _, bad := range []string{"", "has space", "../../etc", string(make([]byte, 65))} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ClientIDHeader, bad)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		issued := rec.Header().Get(ClientIDHeader)
		assert.Len(t, issued, 36, "replaces %q with a uuid", bad)
		assert.Equal(t, issued, rec.Body.String())
	}
}

func TestGetClientID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetClientID(req.Context()))
}

func TestRateLimit(t *testing.T) {
	h := ClientID(RateLimit(RateLimitConfig{RequestsPerMinute: 1, Burst: 2})(echoClientID()))

	do := func(clientID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(ClientIDHeader, clientID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("a").Code)
	assert.Equal(t, http.StatusOK, do("a").Code)

	limited := do("a")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"请求过于频繁，请稍后再试"}`, limited.Body.String())

	// budgets are per client
	assert.Equal(t, http.StatusOK, do("b").Code)
}

func TestRateLimit_DisabledByZeroConfig(t *testing.T) {
	h := RateLimit(RateLimitConfig{})(echoClientID())
	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitKey_FallsBackToIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", rateLimitKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "ip:203.0.113.7", rateLimitKey(req))
}

func TestObserve_RecoversPanicAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)

	r := mux.NewRouter()
	r.Use(ClientID)
	r.Use(Observe(zap.New(core), m))
	r.HandleFunc("/boom/{id}", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/7", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 1, logs.FilterMessage("panic serving request").Len())

	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, "/boom/{id}", requests[0].ContextMap()["route"])
	assert.EqualValues(t, 500, requests[0].ContextMap()["status"])
	assert.EqualValues(t, 201, requests[1].ContextMap()["status"])
	assert.NotEmpty(t, requests[1].ContextMap()["client_id"])

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "icebreak_http_request_duration_seconds" {
			found = true
			assert.Len(t, f.GetMetric(), 2)
		}
	}
	assert.True(t, found)
}
