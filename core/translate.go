package core

import (
	"strings"
	"time"

	"github.com/majdzarai/bridge-tavus/core/schemas"
)

const (
	objectChatCompletion      = "chat.completion"
	objectChatCompletionChunk = "chat.completion.chunk"

	finishReasonStop = "stop"
)

// NewChatCompletionResponse wraps a teacher reply as a single completed
// OpenAI-shaped chat response with one assistant choice.
func NewChatCompletionResponse(id, model, text string) *schemas.ChatCompletionResponse {
	stop := finishReasonStop
	return &schemas.ChatCompletionResponse{
		ID:      id,
		Object:  objectChatCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []schemas.ChatCompletionChoice{
			{
				Index: 0,
				Message: &schemas.ChatMessage{
					Role:    schemas.ChatMessageRoleAssistant,
					Content: text,
				},
				FinishReason: &stop,
			},
		},
	}
}

// WordChunks converts a teacher reply into the ordered chunk sequence of an
// OpenAI-shaped streaming response. The text is split on whitespace; each
// word becomes one chunk whose delta carries the word plus a single trailing
// space, so reassembly collapses any inner whitespace to single spaces. The
// sequence always ends with one terminal chunk carrying an empty delta and
// finish reason "stop", even for empty text.
//
// All chunks share the given id, model and creation timestamp. The [DONE]
// sentinel is SSE framing, not a chunk, and is written by the transport.
func WordChunks(id, model string, created int64, text string) []schemas.ChatCompletionChunk {
	words := strings.Fields(text)
	chunks := make([]schemas.ChatCompletionChunk, 0, len(words)+1)

	for _, word := range words {
		chunks = append(chunks, schemas.ChatCompletionChunk{
			ID:      id,
			Object:  objectChatCompletionChunk,
			Created: created,
			Model:   model,
			Choices: []schemas.ChatStreamChoice{
				{
					Index:        0,
					Delta:        schemas.ChatStreamDelta{Content: word + " "},
					FinishReason: nil,
				},
			},
		})
	}

	stop := finishReasonStop
	chunks = append(chunks, schemas.ChatCompletionChunk{
		ID:      id,
		Object:  objectChatCompletionChunk,
		Created: created,
		Model:   model,
		Choices: []schemas.ChatStreamChoice{
			{
				Index:        0,
				Delta:        schemas.ChatStreamDelta{},
				FinishReason: &stop,
			},
		},
	})

	return chunks
}
