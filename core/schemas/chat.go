package schemas

// ChatMessageRole represents the role of a chat message author.
type ChatMessageRole string

const (
	ChatMessageRoleSystem    ChatMessageRole = "system"
	ChatMessageRoleUser      ChatMessageRole = "user"
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    ChatMessageRole `json:"role"`    // Author of the message
	Content string          `json:"content"` // Message text
}

// ChatCompletionRequest represents an incoming OpenAI-compatible chat completion request.
// Temperature and MaxTokens are accepted for client compatibility but are not
// forwarded to the teacher backend.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`                 // Model name echoed back in responses
	Messages    []ChatMessage `json:"messages"`              // Ordered conversation messages
	Stream      *bool         `json:"stream,omitempty"`      // Whether to stream the response (default true)
	Temperature *float64      `json:"temperature,omitempty"` // Accepted and ignored
	MaxTokens   *int          `json:"max_tokens,omitempty"`  // Accepted and ignored
}

// IsStreaming reports whether the caller requested a streaming response.
// Absent stream flags default to streaming, matching the avatar clients
// this bridge serves.
func (r *ChatCompletionRequest) IsStreaming() bool {
	return r.Stream == nil || *r.Stream
}

// ChatCompletionResponse represents a complete, non-streaming chat completion.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`      // Unique identifier for the completion
	Object  string                 `json:"object"`  // Always "chat.completion"
	Created int64                  `json:"created"` // Unix timestamp of completion creation
	Model   string                 `json:"model"`   // Model name echoed from the request
	Choices []ChatCompletionChoice `json:"choices"` // Array of completion choices
}

// ChatCompletionChoice represents one choice in a non-streaming completion.
type ChatCompletionChoice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason *string      `json:"finish_reason"`
}

// ChatCompletionChunk represents one incremental unit of a streamed completion.
type ChatCompletionChunk struct {
	ID      string            `json:"id"`      // Same identifier across all chunks of one response
	Object  string            `json:"object"`  // Always "chat.completion.chunk"
	Created int64             `json:"created"` // Unix timestamp shared by all chunks of one response
	Model   string            `json:"model"`   // Model name echoed from the request
	Choices []ChatStreamChoice `json:"choices"`
}

// ChatStreamChoice represents one choice in a streamed chunk.
type ChatStreamChoice struct {
	Index        int             `json:"index"`
	Delta        ChatStreamDelta `json:"delta"`
	FinishReason *string         `json:"finish_reason"`
}

// ChatStreamDelta carries the partial message content of a streamed chunk.
// The terminal chunk of a stream carries an empty delta.
type ChatStreamDelta struct {
	Content string `json:"content,omitempty"`
}

// Model represents a single entry in the model catalog.
type Model struct {
	ID     string `json:"id"`
	Object string `json:"object"` // Always "model"
}

// ModelList represents the response of the /v1/models endpoint.
type ModelList struct {
	Object string  `json:"object"` // Always "list"
	Data   []Model `json:"data"`
}
