// Package agent implements the orchestration runner: a tool-call loop over a
// chat-completions provider with handoff between agent personas and post-hoc
// output guardrails.
//
// Key components:
//   - Agent: a named persona with instructions, tools, and handoff targets
//   - Runner: executes a request against an agent, blocking or streaming
//   - OutputGuardrail: validates a finished run, able to reject it
package agent

import (
	"strings"

	"github.com/umfat/helpdesk/pkg/llms"
	"github.com/umfat/helpdesk/pkg/tools"
)

// Agent is a persona the model can act as. Handoffs are surfaced to the
// model as transfer tools; when called, the runner switches the active agent.
type Agent struct {
	// Name identifies the agent (e.g. "Billing Support Agent").
	Name string

	// Description is a short routing hint shown to other agents.
	Description string

	// Instructions is the system prompt for this persona.
	Instructions string

	// Tools this agent may invoke.
	Tools []tools.Tool

	// Handoffs are agents this one may delegate to.
	Handoffs []*Agent

	// OutputGuardrails validate the final result of runs that end on this
	// agent's turn.
	OutputGuardrails []OutputGuardrail
}

// HandoffToolName derives the transfer tool name for an agent, e.g.
// "Billing Support Agent" -> "transfer_to_billing_support_agent".
func HandoffToolName(agentName string) string {
	name := strings.ToLower(strings.TrimSpace(agentName))
	name = strings.Join(strings.Fields(name), "_")
	return "transfer_to_" + name
}

// toolDefinitions builds the model-facing tool list: the agent's own tools
// plus one transfer tool per handoff target.
func (a *Agent) toolDefinitions() []llms.ToolDefinition {
	defs := make([]llms.ToolDefinition, 0, len(a.Tools)+len(a.Handoffs))

	for _, tool := range a.Tools {
		defs = append(defs, tool.GetInfo().Definition())
	}

	for _, target := range a.Handoffs {
		description := target.Description
		if description == "" {
			description = "Handoff to the " + target.Name + "."
		}
		defs = append(defs, llms.ToolDefinition{
			Name:        HandoffToolName(target.Name),
			Description: description,
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
				"required":   []string{},
			},
		})
	}

	return defs
}

// findTool returns the agent's tool with the given name.
func (a *Agent) findTool(name string) (tools.Tool, bool) {
	for _, tool := range a.Tools {
		if tool.GetName() == name {
			return tool, true
		}
	}
	return nil, false
}

// findHandoff resolves a transfer tool name to its target agent.
func (a *Agent) findHandoff(toolName string) (*Agent, bool) {
	for _, target := range a.Handoffs {
		if HandoffToolName(target.Name) == toolName {
			return target, true
		}
	}
	return nil, false
}
