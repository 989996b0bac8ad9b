package classifier

import (
	"regexp"

	"github.com/nkoval/replyflow/pkg/models"
)

// IntentClassifier assigns an intent label to a message body using a fixed
// priority-ordered pattern table. First match wins.
type IntentClassifier struct {
	patterns []*intentPattern
}

type intentPattern struct {
	Intent     models.Intent
	Confidence float64
	Regex      *regexp.Regexp
}

// NewIntentClassifier creates a classifier with the built-in pattern table
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		patterns: []*intentPattern{
			// Support requests win over everything else
			{
				Intent:     models.IntentSupportRequest,
				Confidence: 0.9,
				Regex:      regexp.MustCompile(`(?i)\b(broken|not working|doesn'?t work|won'?t (load|start|open)|error|errors|issue|issues|problem|problems|bug|crash|crashed|down|outage|failing|failed|can'?t (log ?in|sign ?in|access)|troubleshoot)\b`),
			},
			{
				Intent:     models.IntentPricingInquiry,
				Confidence: 0.85,
				Regex:      regexp.MustCompile(`(?i)\b(price|prices|pricing|cost|costs|how much|quote|quotation|rate|rates|fee|fees|per (month|year|seat|user)|discount)\b`),
			},
			{
				Intent:     models.IntentPurchaseIntent,
				Confidence: 0.85,
				Regex:      regexp.MustCompile(`(?i)\b(buy|purchase|purchasing|sign ?up|subscribe|upgrade|ready to (go|start|move|proceed)|send (me )?(the |a )?(contract|invoice|agreement)|place an order|payment details)\b`),
			},
			{
				Intent:     models.IntentDemoRequest,
				Confidence: 0.8,
				Regex:      regexp.MustCompile(`(?i)\b(demo|demonstration|walkthrough|free trial|trial|see it in action|schedule a (call|meeting)|book a (call|meeting))\b`),
			},
			{
				Intent:     models.IntentInformationRequest,
				Confidence: 0.7,
				Regex:      regexp.MustCompile(`(?i)\b(how (do|does|can|would)|what (is|are|does)|tell me (more )?about|documentation|docs|learn more|more (info|information|details)|compare|comparison)\b`),
			},
		},
	}
}

// Classify returns the first matching intent in priority order, defaulting to
// general_inquiry when nothing matches
func (c *IntentClassifier) Classify(body string) (models.Intent, float64) {
	for _, p := range c.patterns {
		if p.Regex.MatchString(body) {
			return p.Intent, p.Confidence
		}
	}
	return models.IntentGeneralInquiry, 0.5
}
