package classifier

import (
	"strings"

	"github.com/nkoval/replyflow/pkg/models"
)

// Phrases that explicitly ask for a human
var humanRequestPhrases = []string{
	"speak to a human",
	"talk to a human",
	"speak to a person",
	"talk to a person",
	"real person",
	"human agent",
	"speak to a manager",
	"talk to a manager",
	"speak with a representative",
	"talk to someone",
}

// Conversion probability above which a purchase-intent message goes to a human
const escalationConvThreshold = 0.7

// ShouldEscalate decides whether a message is handed to a human instead of
// getting an automated reply. Urgent messages always escalate.
func ShouldEscalate(msg *models.Message, customer *models.Customer) bool {
	if msg.Urgent {
		return true
	}
	if msg.Intent == models.IntentSupportRequest {
		return true
	}

	body := strings.ToLower(msg.BodyText)
	for _, phrase := range humanRequestPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}

	if customer != nil && customer.ConversionProb > escalationConvThreshold &&
		msg.Intent == models.IntentPurchaseIntent {
		return true
	}

	return false
}
