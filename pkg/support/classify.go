package support

import "strings"

// technicalKeywords mark a prompt as a technical issue when "refund" is
// absent.
var technicalKeywords = []string{"service", "error", "technical", "restart"}

// DetectIssueType classifies a prompt by keyword. First matching rule wins:
// "refund" means billing, any technical keyword means technical, everything
// else is a product question. Matching is case-insensitive.
func DetectIssueType(prompt string) IssueType {
	p := strings.ToLower(prompt)

	if strings.Contains(p, "refund") {
		return IssueBilling
	}

	for _, keyword := range technicalKeywords {
		if strings.Contains(p, keyword) {
			return IssueTechnical
		}
	}

	return IssueProduct
}
