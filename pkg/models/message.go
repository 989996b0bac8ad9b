package models

import "time"

// Intent is a classification label assigned to an inbound message
type Intent string

const (
	IntentSupportRequest     Intent = "support_request"
	IntentPricingInquiry     Intent = "pricing_inquiry"
	IntentPurchaseIntent     Intent = "purchase_intent"
	IntentDemoRequest        Intent = "demo_request"
	IntentInformationRequest Intent = "information_request"
	IntentGeneralInquiry     Intent = "general_inquiry"
)

// Message is the normalized form of one inbound email.
// It is never persisted; it lives for the duration of a single pipeline pass.
type Message struct {
	UID        uint32
	MessageID  string // Message-ID header
	ThreadID   string // In-Reply-To when present, else Message-ID
	FromAddr   string
	FromName   string
	Subject    string
	BodyText   string // cleaned plain text, quoted history stripped
	BodyHTML   string // original HTML body, if any
	ReceivedAt time.Time
	Intent     Intent
	Confidence float64
	Urgent     bool
}
