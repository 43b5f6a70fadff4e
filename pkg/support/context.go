// Package support implements the helpdesk domain: the customer context,
// issue classification, the product catalog, the lookup and refund tools,
// and the agent personas wired together into a triage team.
package support

import "github.com/umfat/helpdesk/pkg/config"

// IssueType labels a customer prompt with the kind of support needed.
type IssueType string

const (
	IssueBilling   IssueType = "billing"
	IssueTechnical IssueType = "technical"
	IssueProduct   IssueType = "product"
)

// UserContext is the customer record attached to a session. Created once at
// startup; IssueType is reassigned before each request by the classifier.
// There is exactly one logical thread of control, so no locking.
type UserContext struct {
	Name    string
	Email   string
	OrderID int
	Premium bool

	// IssueType is the label detected for the current prompt, empty before
	// the first request.
	IssueType IssueType
}

// NewUserContext builds the session context from configuration.
func NewUserContext(cfg config.UserConfig) *UserContext {
	return &UserContext{
		Name:    cfg.Name,
		Email:   cfg.Email,
		OrderID: cfg.OrderID,
		Premium: cfg.Premium,
	}
}
