package classifier

import (
	"regexp"
	"strings"

	"github.com/nkoval/replyflow/pkg/models"
)

// Small word lexicons for the sentiment nudge. This is a deterministic
// heuristic, not a model: each message moves the stored score by a clamped
// delta.
var (
	positiveWords = []string{
		"thanks", "thank you", "great", "love", "awesome", "perfect",
		"excellent", "happy", "appreciate", "helpful", "wonderful", "excited",
	}
	negativeWords = []string{
		"frustrated", "angry", "disappointed", "terrible", "awful",
		"unacceptable", "worst", "annoyed", "useless", "cancel", "refund",
		"waste",
	}

	wordSplitRegex = regexp.MustCompile(`[^a-z']+`)
)

const (
	sentimentStep     = 0.05
	sentimentMaxDelta = 0.2
)

// SentimentDelta returns the adjustment for one message body, in
// [-sentimentMaxDelta, +sentimentMaxDelta]
func SentimentDelta(body string) float64 {
	text := " " + strings.Join(wordSplitRegex.Split(strings.ToLower(body), -1), " ") + " "

	var score float64
	for _, w := range positiveWords {
		if strings.Contains(text, " "+w+" ") {
			score += sentimentStep
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, " "+w+" ") {
			score -= sentimentStep
		}
	}

	if score > sentimentMaxDelta {
		return sentimentMaxDelta
	}
	if score < -sentimentMaxDelta {
		return -sentimentMaxDelta
	}
	return score
}

// ConversionDelta returns the conversion-probability adjustment for an intent
func ConversionDelta(intent models.Intent) float64 {
	switch intent {
	case models.IntentPurchaseIntent:
		return 0.15
	case models.IntentDemoRequest:
		return 0.1
	case models.IntentPricingInquiry:
		return 0.05
	case models.IntentSupportRequest:
		return -0.05
	default:
		return 0
	}
}

// Clamp01 clamps v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
