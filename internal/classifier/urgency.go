package classifier

import "strings"

// Fixed keyword list for urgency detection, matched case-insensitively as
// substrings of subject + body
var urgencyKeywords = []string{
	"urgent",
	"asap",
	"immediately",
	"right away",
	"emergency",
	"critical",
	"as soon as possible",
	"time sensitive",
	"time-sensitive",
	"production down",
	"system is down",
	"cannot wait",
}

// UrgencyDetector flags messages that need a fast response
type UrgencyDetector struct{}

// NewUrgencyDetector creates a new urgency detector
func NewUrgencyDetector() *UrgencyDetector {
	return &UrgencyDetector{}
}

// Urgent returns true if any urgency keyword appears in subject or body
func (d *UrgencyDetector) Urgent(subject, body string) bool {
	text := strings.ToLower(subject + " " + body)
	for _, kw := range urgencyKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
