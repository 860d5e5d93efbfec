package metrics

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestStatusRecorderForwardsHijack(t *testing.T) {
	underlying := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	rec := &statusRecorder{ResponseWriter: underlying, status: http.StatusOK}

	var hj http.Hijacker = rec
	_, _, err := hj.Hijack()
	require.NoError(t, err)
	assert.True(t, underlying.hijacked)
}

func TestStatusRecorderHijackUnsupported(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	_, _, err := rec.Hijack()
	assert.Error(t, err)
}

func TestMiddlewareLabelsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/sessions/{id}/question", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(mux)

	const pattern = "GET /v1/sessions/{id}/question"
	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, pattern, "200"))

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/7b0e4f2a-9c11-4f6f-8d2e-1a2b3c4d5e6f/question", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, pattern, "200"))
	assert.Equal(t, before+1, after, "counter should label the route pattern, not the raw path")
}

func TestMiddlewareBucketsUnmatchedRoutes(t *testing.T) {
	handler := Middleware(http.NewServeMux())

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404"))

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404"))
	assert.Equal(t, before+1, after)
}
