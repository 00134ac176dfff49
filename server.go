package main

import (
	"github.com/fasthttp/router"
	"github.com/majdzarai/bridge-tavus/core"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/majdzarai/bridge-tavus/handlers"
	"github.com/majdzarai/bridge-tavus/lib"
	"github.com/majdzarai/bridge-tavus/telemetry"
	"github.com/valyala/fasthttp"
)

// newServer wires the handlers, middleware chain and metrics endpoint into a
// fasthttp server.
func newServer(config *lib.Config, bridge *core.Bridge, metrics *telemetry.Metrics, logger schemas.Logger) *fasthttp.Server {
	r := router.New()

	serviceHandler := handlers.NewServiceHandler(handlers.ServiceInfo{
		Service:     lib.ServiceName,
		Version:     lib.ServiceVersion,
		Status:      "running",
		Description: "OpenAI-compatible bridge for Tavus avatars",
		Backend:     config.TeacherAPIURL,
	}, logger)
	completionHandler := handlers.NewCompletionHandler(bridge, config.StreamWordDelay, logger)

	serviceHandler.RegisterRoutes(r)
	completionHandler.RegisterRoutes(r)

	r.GET("/metrics", metrics.ExpositionHandler())

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		handlers.SendError(ctx, fasthttp.StatusNotFound, "route not found: "+string(ctx.Path()), logger)
	}

	// The /metrics endpoint is excluded from its own instrumentation.
	chained := handlers.ChainMiddlewares(r.Handler, handlers.CorsMiddleware(), metrics.HTTPMiddleware)

	return &fasthttp.Server{
		Name: lib.ServiceName,
		Handler: func(ctx *fasthttp.RequestCtx) {
			if string(ctx.Path()) == "/metrics" {
				r.Handler(ctx)
				return
			}
			chained(ctx)
		},
	}
}
