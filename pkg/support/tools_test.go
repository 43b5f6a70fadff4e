package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(premium bool) *UserContext {
	return &UserContext{
		Name:    "Umer Ali",
		Email:   "umerali54544@gmail.com",
		OrderID: 410635,
		Premium: premium,
	}
}

func TestBillingInfoTool(t *testing.T) {
	tool := NewBillingInfoTool(testUser(false))

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Billing information for Umer Ali with email umerali54544@gmail.com and order ID 410635.", result.Content)
}

func TestTechnicalInfoTool(t *testing.T) {
	tool := NewTechnicalInfoTool(testUser(false))

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Technical information for Umer Ali")
	assert.Contains(t, result.Content, "410635")
}

func TestGeneralInfoTool(t *testing.T) {
	tool := NewGeneralInfoTool(testUser(false))

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "General information for Umer Ali")
}

func TestProcessRefundTool_NonPremium(t *testing.T) {
	tool := NewProcessRefundTool(testUser(false))

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)

	// The refusal is a fixed message, never a processed-refund confirmation.
	assert.Equal(t, RefundRefusalMessage, result.Content)
	assert.NotContains(t, result.Content, "processed")
}

func TestProcessRefundTool_Premium(t *testing.T) {
	user := testUser(true)
	tool := NewProcessRefundTool(user)

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, user.Name)
	assert.Contains(t, result.Content, "processed")
	assert.NotEqual(t, RefundRefusalMessage, result.Content)
}

func TestProcessRefundTool_GateFollowsContext(t *testing.T) {
	// The tool reads the live context, so flipping the premium flag after
	// construction changes the outcome.
	user := testUser(false)
	tool := NewProcessRefundTool(user)

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, RefundRefusalMessage, result.Content)

	user.Premium = true
	result, err = tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, user.Name)
}

func TestLookupProductTool(t *testing.T) {
	tool := NewLookupProductTool()

	result, err := tool.Execute(context.Background(), map[string]any{"name": "notebook"})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Notebook")
	assert.Contains(t, result.Content, "$4.99")

	result, err = tool.Execute(context.Background(), map[string]any{"name": "teleporter"})
	require.NoError(t, err)
	assert.Contains(t, result.Content, "No product matching")
	assert.Contains(t, result.Content, "Notebook")
}

func TestLookupProductTool_Definition(t *testing.T) {
	def := NewLookupProductTool().GetInfo().Definition()

	assert.Equal(t, ToolNameLookupProduct, def.Name)

	properties, ok := def.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "name")
	assert.Equal(t, []string{"name"}, def.Parameters["required"])
}
