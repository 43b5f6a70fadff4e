package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umfat/helpdesk/pkg/agent"
)

func TestTechnicalRoutingGuardrail(t *testing.T) {
	user := testUser(false)
	guardrail := NewTechnicalRoutingGuardrail(user)
	ctx := context.Background()

	t.Run("non-technical issue passes", func(t *testing.T) {
		user.IssueType = IssueBilling
		err := guardrail.Check(ctx, &agent.RunResult{LastAgent: BillingAgentName})
		assert.NoError(t, err)
	})

	t.Run("technical issue ending on technical agent passes", func(t *testing.T) {
		user.IssueType = IssueTechnical
		err := guardrail.Check(ctx, &agent.RunResult{LastAgent: TechnicalAgentName})
		assert.NoError(t, err)
	})

	t.Run("technical issue that used the technical tool passes", func(t *testing.T) {
		user.IssueType = IssueTechnical
		err := guardrail.Check(ctx, &agent.RunResult{
			LastAgent: GeneralAgentName,
			ToolsUsed: []string{ToolNameTechnicalInfo},
		})
		assert.NoError(t, err)
	})

	t.Run("technical issue answered elsewhere trips", func(t *testing.T) {
		user.IssueType = IssueTechnical
		err := guardrail.Check(ctx, &agent.RunResult{LastAgent: GeneralAgentName})
		require.Error(t, err)
		assert.True(t, agent.IsGuardrailError(err))
	})
}

func TestNewSupportTeam(t *testing.T) {
	user := testUser(true)
	team := NewSupportTeam(user)

	require.NotNil(t, team.Triage)
	assert.Empty(t, team.Triage.Tools)
	assert.Len(t, team.Triage.Handoffs, 3)
	assert.Len(t, team.Triage.OutputGuardrails, 1)

	billingTools := toolNames(team.Billing)
	assert.Contains(t, billingTools, ToolNameBillingInfo)
	assert.Contains(t, billingTools, ToolNameProcessRefund)

	generalTools := toolNames(team.General)
	assert.Contains(t, generalTools, ToolNameGeneralInfo)
	assert.Contains(t, generalTools, ToolNameLookupProduct)

	assert.Equal(t, []string{ToolNameTechnicalInfo}, toolNames(team.Technical))
}

func TestNewTriageTeam(t *testing.T) {
	team := NewTriageTeam(testUser(false))

	assert.Len(t, team.Triage.Handoffs, 3)
	assert.Empty(t, team.Triage.OutputGuardrails)
	assert.Equal(t, []string{ToolNameBillingInfo}, toolNames(team.Billing))
	assert.Equal(t, []string{ToolNameGeneralInfo}, toolNames(team.General))
}

func TestToolRegistry(t *testing.T) {
	team := NewSupportTeam(testUser(true))

	registry, err := team.ToolRegistry()
	require.NoError(t, err)
	assert.Equal(t, 5, registry.Count())

	_, ok := registry.Get(ToolNameProcessRefund)
	assert.True(t, ok)
}

func toolNames(a *agent.Agent) []string {
	names := make([]string, 0, len(a.Tools))
	for _, tool := range a.Tools {
		names = append(names, tool.GetName())
	}
	return names
}
