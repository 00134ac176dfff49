// Package handlers provides the fasthttp request handlers of the bridge HTTP
// surface: chat completions, the informational endpoints and the middleware
// chain.
package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/majdzarai/bridge-tavus/core"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/valyala/fasthttp"
)

// defaultWordDelay paces word events to approximate natural speech cadence.
// It is a presentation choice, not a correctness requirement; ordering and
// framing are preserved at any value, including zero.
const defaultWordDelay = 20 * time.Millisecond

// CompletionHandler manages HTTP requests for chat completion operations.
type CompletionHandler struct {
	bridge    *core.Bridge
	wordDelay time.Duration
	logger    schemas.Logger
}

// NewCompletionHandler creates a new completion handler instance. A negative
// wordDelay selects the default pacing.
func NewCompletionHandler(bridge *core.Bridge, wordDelay time.Duration, logger schemas.Logger) *CompletionHandler {
	if wordDelay < 0 {
		wordDelay = defaultWordDelay
	}
	return &CompletionHandler{
		bridge:    bridge,
		wordDelay: wordDelay,
		logger:    logger,
	}
}

// RegisterRoutes registers all completion-related routes.
func (h *CompletionHandler) RegisterRoutes(r *router.Router) {
	r.POST("/v1/chat/completions", h.ChatCompletion)
}

// ChatCompletion handles POST /v1/chat/completions. The teacher reply is
// resolved by the bridge core, then returned either as a single JSON
// completion or as a word-chunked SSE stream, per the request's stream flag.
func (h *CompletionHandler) ChatCompletion(ctx *fasthttp.RequestCtx) {
	var req schemas.ChatCompletionRequest
	if err := sonic.Unmarshal(ctx.PostBody(), &req); err != nil {
		SendError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("invalid request format: %v", err), h.logger)
		return
	}

	if len(req.Messages) == 0 {
		SendError(ctx, fasthttp.StatusBadRequest, "messages array is required", h.logger)
		return
	}

	reply := h.bridge.Complete(ctx, &req)
	chatID := uuid.New().String()

	if req.IsStreaming() {
		h.streamReply(ctx, chatID, req.Model, reply)
		return
	}

	SendJSON(ctx, core.NewChatCompletionResponse(chatID, req.Model, reply), h.logger)
}

// streamReply writes the reply as Server-Sent Events: one chunk per word, a
// terminal stop chunk, then the literal [DONE] sentinel. Emission stops as
// soon as a write or flush fails, so a disconnected client does not keep the
// producer running.
func (h *CompletionHandler) streamReply(ctx *fasthttp.RequestCtx, chatID, model, reply string) {
	ctx.SetContentType("text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")

	chunks := core.WordChunks(chatID, model, time.Now().Unix(), reply)

	ctx.Response.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer w.Flush()

		for i, chunk := range chunks {
			chunkJSON, err := sonic.Marshal(chunk)
			if err != nil {
				h.logger.Warn(fmt.Sprintf("failed to marshal streaming chunk: %v", err))
				continue
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", chunkJSON); err != nil {
				h.logger.Warn(fmt.Sprintf("failed to write SSE data: %v", err))
				return
			}

			// Flush immediately to send the chunk.
			if err := w.Flush(); err != nil {
				h.logger.Warn(fmt.Sprintf("failed to flush SSE data: %v", err))
				return
			}

			// Pace word chunks only; the terminal stop chunk follows the last
			// word without delay.
			if h.wordDelay > 0 && i < len(chunks)-1 {
				time.Sleep(h.wordDelay)
			}
		}

		if _, err := fmt.Fprint(w, "data: [DONE]\n\n"); err != nil {
			h.logger.Warn(fmt.Sprintf("failed to write SSE done marker: %v", err))
		}
	})
}
