package support

import (
	"context"
	"fmt"

	"github.com/umfat/helpdesk/pkg/agent"
)

// TechnicalRoutingGuardrail rejects runs where a technical query was answered
// without ever reaching the technical side of the team: the run must either
// end on the technical agent or have invoked the technical info tool.
type TechnicalRoutingGuardrail struct {
	user *UserContext
}

func NewTechnicalRoutingGuardrail(user *UserContext) *TechnicalRoutingGuardrail {
	return &TechnicalRoutingGuardrail{user: user}
}

func (g *TechnicalRoutingGuardrail) Name() string {
	return "technical_routing"
}

func (g *TechnicalRoutingGuardrail) Check(ctx context.Context, result *agent.RunResult) error {
	if g.user.IssueType != IssueTechnical {
		return nil
	}

	if result.LastAgent == TechnicalAgentName || result.UsedTool(ToolNameTechnicalInfo) {
		return nil
	}

	return &agent.GuardrailError{
		Guardrail: g.Name(),
		Reason: fmt.Sprintf("technical query was answered by %q without consulting technical support",
			result.LastAgent),
	}
}
