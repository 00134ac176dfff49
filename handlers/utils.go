package handlers

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/valyala/fasthttp"
)

// ErrorResponse is the JSON body of inbound HTTP errors, in the OpenAI error
// envelope shape.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the message of an ErrorResponse.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// SendJSON sends a JSON response with 200 OK status.
func SendJSON(ctx *fasthttp.RequestCtx, data interface{}, logger schemas.Logger) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")

	body, err := sonic.Marshal(data)
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to encode JSON response: %v", err))
		SendError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), logger)
		return
	}
	ctx.SetBody(body)
}

// SendError sends an error response with the given status code and message.
func SendError(ctx *fasthttp.RequestCtx, statusCode int, message string, logger schemas.Logger) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")

	body, err := sonic.Marshal(ErrorResponse{
		Error: ErrorDetail{
			Message: message,
			Type:    "invalid_request_error",
		},
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to encode error response: %v", err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(message)
		return
	}
	ctx.SetBody(body)
}
