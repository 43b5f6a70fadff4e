package support

import (
	"github.com/umfat/helpdesk/pkg/agent"
	"github.com/umfat/helpdesk/pkg/tools"
)

// Agent names. The triage agent routes; the others answer.
const (
	TriageAgentName    = "Triage Agent"
	BillingAgentName   = "Billing Support Agent"
	TechnicalAgentName = "Technical Support Agent"
	GeneralAgentName   = "General Support Agent"
)

const (
	billingInstructions = "You are a billing support agent. Answer questions related to billing, " +
		"payments, invoices, and refunds. Use your tools to look up the customer's billing record " +
		"and to process refunds when asked. If you don't know the answer, say 'I don't know'."

	technicalInstructions = "You are a technical support agent. Answer questions related to technical " +
		"issues, troubleshooting, and product features. Use your tools to look up the customer's " +
		"technical record. If you don't know the answer, say 'I don't know'."

	generalInstructions = "You are a general support agent. Answer general questions about the company, " +
		"products, and services. Use your tools to look up account details and product information. " +
		"If you don't know the answer, say 'I don't know'."

	triageInstructions = "You are a triage agent. Your job is to determine the type of support needed " +
		"and hand off to the appropriate agent: billing for payments, invoices, and refunds; technical " +
		"for errors, outages, and troubleshooting; general for everything else. Always hand off rather " +
		"than answering yourself. If you don't know the answer, say 'I don't know'."
)

// Team is the wired agent graph for one session. Triage is the entry point.
type Team struct {
	Triage    *agent.Agent
	Billing   *agent.Agent
	Technical *agent.Agent
	General   *agent.Agent
}

// NewTriageTeam builds the minimal variant: three specialists with one info
// tool each, and a triage agent that only hands off.
func NewTriageTeam(user *UserContext) *Team {
	billing := &agent.Agent{
		Name:         BillingAgentName,
		Description:  "Handles billing, payment, and invoice questions.",
		Instructions: billingInstructions,
		Tools:        []tools.Tool{NewBillingInfoTool(user)},
	}

	technical := &agent.Agent{
		Name:         TechnicalAgentName,
		Description:  "Handles technical issues and troubleshooting.",
		Instructions: technicalInstructions,
		Tools:        []tools.Tool{NewTechnicalInfoTool(user)},
	}

	general := &agent.Agent{
		Name:         GeneralAgentName,
		Description:  "Handles general company, product, and service questions.",
		Instructions: generalInstructions,
		Tools:        []tools.Tool{NewGeneralInfoTool(user)},
	}

	triage := &agent.Agent{
		Name:         TriageAgentName,
		Description:  "Routes support requests to the right specialist.",
		Instructions: triageInstructions,
		Handoffs:     []*agent.Agent{billing, technical, general},
	}

	return &Team{
		Triage:    triage,
		Billing:   billing,
		Technical: technical,
		General:   general,
	}
}

// ToolRegistry collects every tool across the team for discovery. Tool names
// are unique across agents, so registration conflicts indicate a wiring bug.
func (t *Team) ToolRegistry() (*tools.Registry, error) {
	registry := tools.NewRegistry()
	for _, member := range []*agent.Agent{t.Triage, t.Billing, t.Technical, t.General} {
		for _, tool := range member.Tools {
			if err := registry.Register(tool); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

// NewSupportTeam builds the full variant: the triage team plus the product
// catalog lookup, the premium-gated refund tool, and the technical-routing
// output guardrail on the entry agent.
func NewSupportTeam(user *UserContext) *Team {
	team := NewTriageTeam(user)

	team.Billing.Tools = append(team.Billing.Tools, NewProcessRefundTool(user))
	team.General.Tools = append(team.General.Tools, NewLookupProductTool())

	team.Triage.OutputGuardrails = []agent.OutputGuardrail{
		NewTechnicalRoutingGuardrail(user),
	}

	return team
}
