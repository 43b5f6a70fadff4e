package support

import (
	"context"
	"fmt"
	"strings"

	"github.com/umfat/helpdesk/pkg/tools"
)

// Tool names exposed to the model.
const (
	ToolNameBillingInfo   = "get_billing_info"
	ToolNameTechnicalInfo = "get_technical_info"
	ToolNameGeneralInfo   = "get_general_info"
	ToolNameLookupProduct = "lookup_product"
	ToolNameProcessRefund = "process_refund"
)

// RefundRefusalMessage is returned verbatim when a non-premium customer
// invokes the refund tool.
const RefundRefusalMessage = "Refunds are only available to premium members. Please upgrade your plan to request a refund."

// NewBillingInfoTool returns the billing record lookup for the session user.
func NewBillingInfoTool(user *UserContext) tools.Tool {
	return tools.NewFuncTool(tools.ToolInfo{
		Name:        ToolNameBillingInfo,
		Description: "Retrieve billing information for the current customer.",
	}, func(ctx context.Context, args map[string]any) (string, error) {
		return fmt.Sprintf("Billing information for %s with email %s and order ID %d.",
			user.Name, user.Email, user.OrderID), nil
	})
}

// NewTechnicalInfoTool returns the technical record lookup for the session
// user.
func NewTechnicalInfoTool(user *UserContext) tools.Tool {
	return tools.NewFuncTool(tools.ToolInfo{
		Name:        ToolNameTechnicalInfo,
		Description: "Retrieve technical information for the current customer.",
	}, func(ctx context.Context, args map[string]any) (string, error) {
		return fmt.Sprintf("Technical information for %s with email %s and order ID %d.",
			user.Name, user.Email, user.OrderID), nil
	})
}

// NewGeneralInfoTool returns the general account lookup for the session user.
func NewGeneralInfoTool(user *UserContext) tools.Tool {
	return tools.NewFuncTool(tools.ToolInfo{
		Name:        ToolNameGeneralInfo,
		Description: "Retrieve general account information for the current customer.",
	}, func(ctx context.Context, args map[string]any) (string, error) {
		return fmt.Sprintf("General information for %s with email %s and order ID %d.",
			user.Name, user.Email, user.OrderID), nil
	})
}

// NewLookupProductTool searches the product catalog by name.
func NewLookupProductTool() tools.Tool {
	return tools.NewFuncTool(tools.ToolInfo{
		Name:        ToolNameLookupProduct,
		Description: "Look up a product in the catalog by name. Returns price, stock, and description.",
		Parameters: []tools.ToolParameter{
			{
				Name:        "name",
				Type:        "string",
				Description: "Product name or part of it.",
				Required:    true,
			},
		},
	}, func(ctx context.Context, args map[string]any) (string, error) {
		name := tools.StringArg(args, "name")

		if product, ok := FindProduct(name); ok {
			return FormatProduct(product), nil
		}

		available := make([]string, 0, len(Catalog()))
		for _, p := range Catalog() {
			available = append(available, p.Name)
		}
		return fmt.Sprintf("No product matching %q. Available products: %s.",
			name, strings.Join(available, ", ")), nil
	})
}

// NewProcessRefundTool issues a refund for the session user's order. The
// tool is premium-gated: non-premium customers always receive the fixed
// refusal message.
func NewProcessRefundTool(user *UserContext) tools.Tool {
	return tools.NewFuncTool(tools.ToolInfo{
		Name:        ToolNameProcessRefund,
		Description: "Process a refund for the customer's current order. Only available to premium members.",
	}, func(ctx context.Context, args map[string]any) (string, error) {
		if !user.Premium {
			return RefundRefusalMessage, nil
		}

		return fmt.Sprintf("Refund for order #%d has been processed for %s. The amount will be returned within 5-7 business days.",
			user.OrderID, user.Name), nil
	})
}
