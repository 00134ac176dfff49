package handlers

import (
	"github.com/valyala/fasthttp"
)

// Middleware wraps a fasthttp handler with additional behavior.
type Middleware func(next fasthttp.RequestHandler) fasthttp.RequestHandler

// ChainMiddlewares applies middlewares to handler in order, so the first
// middleware in the list is the outermost.
func ChainMiddlewares(handler fasthttp.RequestHandler, middlewares ...Middleware) fasthttp.RequestHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// CorsMiddleware allows cross-origin requests from any origin. The bridge is
// called by browser-embedded avatar clients served from arbitrary hosts, so
// the policy is deliberately open.
func CorsMiddleware() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			if origin == "" {
				origin = "*"
			}
			ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
			ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS, HEAD")
			ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			ctx.Response.Header.Set("Access-Control-Allow-Credentials", "true")
			ctx.Response.Header.Set("Access-Control-Max-Age", "86400")

			// Handle preflight OPTIONS requests
			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.SetStatusCode(fasthttp.StatusOK)
				return
			}
			next(ctx)
		}
	}
}
