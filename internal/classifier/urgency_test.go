package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyDetector(t *testing.T) {
	d := NewUrgencyDetector()

	tests := []struct {
		name    string
		subject string
		body    string
		want    bool
	}{
		{
			name:    "urgent in subject",
			subject: "URGENT: system is down, need a manager",
			body:    "",
			want:    true,
		},
		{
			name:    "urgent in body only",
			subject: "quick question",
			body:    "This is urgent, we launch tomorrow.",
			want:    true,
		},
		{
			name:    "case insensitive",
			subject: "Please reply ASAP",
			body:    "",
			want:    true,
		},
		{
			name:    "pricing question is not urgent",
			subject: "Pricing",
			body:    "What is the price for your enterprise plan?",
			want:    false,
		},
		{
			name:    "empty message",
			subject: "",
			body:    "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Urgent(tt.subject, tt.body))
		})
	}
}
