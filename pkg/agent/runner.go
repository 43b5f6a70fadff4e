package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/umfat/helpdesk/pkg/httpclient"
	"github.com/umfat/helpdesk/pkg/llms"
)

// DefaultMaxTurns caps model round-trips per run. The loop normally
// terminates when the model answers without tool calls; this is a safety
// valve only.
const DefaultMaxTurns = 10

// Runner executes requests against an agent graph.
type Runner struct {
	provider llms.Provider
	maxTurns int
}

type RunnerOption func(*Runner)

// WithMaxTurns overrides the round-trip safety cap.
func WithMaxTurns(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

// NewRunner creates a runner backed by the given provider.
func NewRunner(provider llms.Provider, opts ...RunnerOption) *Runner {
	r := &Runner{
		provider: provider,
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes input against start to completion and returns the final
// result. Guardrail rejections surface as *GuardrailError.
func (r *Runner) Run(ctx context.Context, start *Agent, input string) (*RunResult, error) {
	return r.run(ctx, start, input, nil)
}

// RunStreaming executes input against start, emitting events as they happen.
// The channel closes after a terminal done or error event.
func (r *Runner) RunStreaming(ctx context.Context, start *Agent, input string) (<-chan StreamEvent, error) {
	if start == nil {
		return nil, fmt.Errorf("starting agent cannot be nil")
	}

	events := make(chan StreamEvent, 100)

	go func() {
		defer close(events)

		result, err := r.run(ctx, start, input, events)
		if err != nil {
			events <- StreamEvent{Type: EventTypeError, Err: err}
			return
		}
		events <- StreamEvent{Type: EventTypeDone, Result: result}
	}()

	return events, nil
}

// run is the orchestration loop. A nil events channel means blocking mode.
func (r *Runner) run(ctx context.Context, start *Agent, input string, events chan<- StreamEvent) (*RunResult, error) {
	if start == nil {
		return nil, fmt.Errorf("starting agent cannot be nil")
	}

	active := start
	conversation := []llms.Message{{Role: "user", Content: input}}
	result := &RunResult{}

	for turn := 1; turn <= r.maxTurns; turn++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result.Turns = turn

		messages := append([]llms.Message{{Role: "system", Content: active.Instructions}}, conversation...)
		toolDefs := active.toolDefinitions()

		slog.Debug("Model turn", "agent", active.Name, "turn", turn, "tools", len(toolDefs))

		text, toolCalls, tokens, err := r.callModel(ctx, messages, toolDefs, events)
		if err != nil {
			// One agent-level retry when the HTTP layer exhausted its own
			// retries on a rate limit and told us how long to wait.
			var retryErr *httpclient.RetryableError
			if errors.As(err, &retryErr) {
				waitTime := retryErr.RetryAfter
				if waitTime == 0 {
					waitTime = 30 * time.Second
				}
				slog.Warn("Rate limited, waiting before retry", "status", retryErr.StatusCode, "wait", waitTime)
				time.Sleep(waitTime)

				text, toolCalls, tokens, err = r.callModel(ctx, messages, toolDefs, events)
			}
			if err != nil {
				return nil, fmt.Errorf("model call failed: %w", err)
			}
		}

		result.TokensUsed += tokens

		if len(toolCalls) == 0 {
			result.FinalOutput = text
			result.LastAgent = active.Name
			if err := checkGuardrails(ctx, start, active, result); err != nil {
				return nil, err
			}
			return result, nil
		}

		// The assistant message carrying tool_calls must precede the tool
		// results for a valid round-trip.
		conversation = append(conversation, llms.Message{
			Role:      "assistant",
			Content:   text,
			ToolCalls: toolCalls,
		})

		caller := active
		for _, call := range toolCalls {
			if target, ok := caller.findHandoff(call.Name); ok {
				if active != caller {
					// A handoff already happened this turn; answer the
					// duplicate call without switching again.
					conversation = append(conversation, toolMessage(call, "A transfer is already in progress."))
					continue
				}

				slog.Debug("Handoff", "from", caller.Name, "to", target.Name)
				if events != nil {
					events <- StreamEvent{Type: EventTypeHandoff, ToolName: target.Name}
				}

				conversation = append(conversation, toolMessage(call, fmt.Sprintf("Transferred to %s.", target.Name)))
				result.HandoffPath = append(result.HandoffPath, target.Name)
				active = target
				continue
			}

			conversation = append(conversation, r.executeTool(ctx, caller, call, result, events))
		}
	}

	return nil, fmt.Errorf("max turns (%d) exceeded without a final answer", r.maxTurns)
}

// executeTool dispatches one tool call on the calling agent and returns the
// tool result message. Execution failures are reported back to the model
// rather than aborting the run.
func (r *Runner) executeTool(ctx context.Context, caller *Agent, call llms.ToolCall, result *RunResult, events chan<- StreamEvent) llms.Message {
	tool, ok := caller.findTool(call.Name)
	if !ok {
		slog.Warn("Model requested unknown tool", "agent", caller.Name, "tool", call.Name)
		return toolMessage(call, fmt.Sprintf("Tool %q is not available.", call.Name))
	}

	if events != nil {
		events <- StreamEvent{Type: EventTypeToolCall, ToolName: call.Name}
	}

	toolResult, err := tool.Execute(ctx, call.Args)
	result.ToolsUsed = append(result.ToolsUsed, call.Name)

	if err != nil {
		slog.Warn("Tool execution failed", "tool", call.Name, "error", err)
		return toolMessage(call, fmt.Sprintf("Error: %v", err))
	}

	slog.Debug("Tool executed", "tool", call.Name, "duration", toolResult.ExecutionTime)
	return toolMessage(call, toolResult.Content)
}

// callModel performs one model round-trip, streaming text chunks to events
// when present.
func (r *Runner) callModel(ctx context.Context, messages []llms.Message, toolDefs []llms.ToolDefinition, events chan<- StreamEvent) (string, []llms.ToolCall, int, error) {
	if events == nil {
		return r.provider.Generate(ctx, messages, toolDefs)
	}

	chunks, err := r.provider.GenerateStreaming(ctx, messages, toolDefs)
	if err != nil {
		return "", nil, 0, err
	}

	var text strings.Builder
	var toolCalls []llms.ToolCall
	tokens := 0

	for chunk := range chunks {
		switch chunk.Type {
		case llms.ChunkTypeText:
			text.WriteString(chunk.Text)
			events <- StreamEvent{Type: EventTypeText, Text: chunk.Text}
		case llms.ChunkTypeToolCall:
			if chunk.ToolCall != nil {
				toolCalls = append(toolCalls, *chunk.ToolCall)
			}
		case llms.ChunkTypeDone:
			tokens = chunk.Tokens
		case llms.ChunkTypeError:
			return "", nil, 0, chunk.Err
		}
	}

	return text.String(), toolCalls, tokens, nil
}

func toolMessage(call llms.ToolCall, content string) llms.Message {
	return llms.Message{
		Role:       "tool",
		Content:    content,
		ToolCallID: call.ID,
		Name:       call.Name,
	}
}
