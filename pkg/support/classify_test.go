package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIssueType(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   IssueType
	}{
		{"refund keyword", "I need a refund", IssueBilling},
		{"refund uppercase", "I WANT A REFUND NOW", IssueBilling},
		{"refund embedded", "how do refunds work?", IssueBilling},
		{"refund wins over technical", "refund me, your service is broken", IssueBilling},
		{"service keyword", "My service keeps crashing", IssueTechnical},
		{"error keyword", "I keep getting an ERROR on checkout", IssueTechnical},
		{"technical keyword", "this is a technical question", IssueTechnical},
		{"restart keyword", "do I need to Restart the device?", IssueTechnical},
		{"product fallback", "How much is a notebook?", IssueProduct},
		{"empty prompt", "", IssueProduct},
		{"generic question", "what are your opening hours", IssueProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIssueType(tt.prompt))
		})
	}
}
