// Package llms provides the chat-completions client used by agents.
// Both supported providers (OpenAI, Gemini's OpenAI-compatible endpoint)
// speak the same wire format, so one provider implementation covers both.
package llms

import "context"

// Message is one turn of a conversation sent to the model.
type Message struct {
	// Role is "system", "user", "assistant", or "tool".
	Role string

	// Content is the plain-text body of the message.
	Content string

	// ToolCalls holds calls made by the assistant in this turn.
	ToolCalls []ToolCall

	// ToolCallID links a "tool" role message to the call it answers.
	ToolCallID string

	// Name is the tool name for "tool" role messages.
	Name string
}

// ToolCall is a structured invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolDefinition describes a callable function exposed to the model.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChunkType discriminates streaming chunks.
type ChunkType string

const (
	ChunkTypeText     ChunkType = "text"
	ChunkTypeToolCall ChunkType = "tool_call"
	ChunkTypeDone     ChunkType = "done"
	ChunkTypeError    ChunkType = "error"
)

// StreamChunk is one incremental unit of a streaming response.
type StreamChunk struct {
	Type     ChunkType
	Text     string
	ToolCall *ToolCall
	Tokens   int
	Err      error
}

// Provider is the model client interface agents run against.
type Provider interface {
	// Generate performs a blocking request and returns the assistant text,
	// any tool calls, and total tokens used.
	Generate(ctx context.Context, messages []Message, tools []ToolDefinition) (string, []ToolCall, int, error)

	// GenerateStreaming performs a streaming request. The returned channel
	// is closed after a done or error chunk.
	GenerateStreaming(ctx context.Context, messages []Message, tools []ToolDefinition) (<-chan StreamChunk, error)

	// ModelName reports the configured model.
	ModelName() string

	Close() error
}
