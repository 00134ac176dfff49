package telemetry

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestHTTPMiddleware_CountsRequests(t *testing.T) {
	metrics := NewMetrics(func() float64 { return 0 })

	handler := metrics.HTTPMiddleware(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	for i := 0; i < 3; i++ {
		ctx := &fasthttp.RequestCtx{}
		ctx.Request.Header.SetMethod(fasthttp.MethodPost)
		ctx.Request.SetRequestURI("/v1/chat/completions")
		handler(ctx)
	}

	count := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("/v1/chat/completions", "POST", "200"))
	assert.Equal(t, 3.0, count)
}

func TestSessionsActive_TracksStoreSize(t *testing.T) {
	size := 0.0
	metrics := NewMetrics(func() float64 { return size })

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SessionsActive))
	size = 7
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.SessionsActive))
}

func TestExpositionHandler_ServesRegistry(t *testing.T) {
	metrics := NewMetrics(func() float64 { return 1 })

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/metrics")
	metrics.ExpositionHandler()(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.True(t, strings.Contains(body, "bridge_sessions_active 1"), "exposition should include the sessions gauge")
	assert.True(t, strings.Contains(body, "go_goroutines"), "exposition should include the Go collector")
}
