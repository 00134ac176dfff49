package handlers

import (
	"github.com/fasthttp/router"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/valyala/fasthttp"
)

// Fixed model catalog advertised to OpenAI-compatible clients. The avatar
// platform probes /v1/models before sending completions; the ids are not
// backend-derived.
var modelCatalog = []schemas.Model{
	{ID: "ai-teacher", Object: "model"},
	{ID: "tavus-bridge", Object: "model"},
}

// ServiceInfo describes the running bridge, returned by the root endpoint.
type ServiceInfo struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Backend     string `json:"backend"`
}

// ServiceHandler manages the informational endpoints: service descriptor,
// liveness and the static model catalog.
type ServiceHandler struct {
	info   ServiceInfo
	logger schemas.Logger
}

// NewServiceHandler creates a new service handler instance.
func NewServiceHandler(info ServiceInfo, logger schemas.Logger) *ServiceHandler {
	return &ServiceHandler{
		info:   info,
		logger: logger,
	}
}

// RegisterRoutes registers the informational routes.
func (h *ServiceHandler) RegisterRoutes(r *router.Router) {
	r.GET("/", h.getRoot)
	r.GET("/health", h.getHealth)
	r.GET("/v1/models", h.listModels)
}

// getRoot handles GET / - return the service descriptor.
func (h *ServiceHandler) getRoot(ctx *fasthttp.RequestCtx) {
	SendJSON(ctx, h.info, h.logger)
}

// getHealth handles GET /health - liveness indicator.
func (h *ServiceHandler) getHealth(ctx *fasthttp.RequestCtx) {
	SendJSON(ctx, map[string]string{"status": "healthy"}, h.logger)
}

// listModels handles GET /v1/models - return the static model catalog.
func (h *ServiceHandler) listModels(ctx *fasthttp.RequestCtx) {
	SendJSON(ctx, schemas.ModelList{
		Object: "list",
		Data:   modelCatalog,
	}, h.logger)
}
