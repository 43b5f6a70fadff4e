package agent

// EventType discriminates streaming run events.
type EventType string

const (
	// EventTypeText carries an incremental chunk of assistant output.
	EventTypeText EventType = "text"

	// EventTypeToolCall signals a tool about to be executed.
	EventTypeToolCall EventType = "tool_call"

	// EventTypeHandoff signals the active agent changed.
	EventTypeHandoff EventType = "handoff"

	// EventTypeDone carries the final RunResult. Terminal.
	EventTypeDone EventType = "done"

	// EventTypeError carries a run failure (including guardrail
	// rejections). Terminal.
	EventTypeError EventType = "error"
)

// StreamEvent is one unit of a streaming run. The channel closes after a
// done or error event.
type StreamEvent struct {
	Type EventType

	// Text for EventTypeText chunks.
	Text string

	// ToolName for tool_call events; target agent name for handoff events.
	ToolName string

	// Result for EventTypeDone.
	Result *RunResult

	// Err for EventTypeError.
	Err error
}

// RunResult is the outcome of a completed run.
type RunResult struct {
	// FinalOutput is the assistant text of the last turn.
	FinalOutput string

	// LastAgent is the name of the agent that produced the final output.
	LastAgent string

	// ToolsUsed lists tool names executed during the run, in order.
	ToolsUsed []string

	// HandoffPath lists agent names visited after the starting agent.
	HandoffPath []string

	// TokensUsed is the total token usage across turns, when reported.
	TokensUsed int

	// Turns is the number of model round-trips taken.
	Turns int
}

// UsedTool reports whether the named tool was executed during the run.
func (r *RunResult) UsedTool(name string) bool {
	for _, used := range r.ToolsUsed {
		if used == name {
			return true
		}
	}
	return false
}
