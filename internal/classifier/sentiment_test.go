package classifier

import (
	"testing"

	"github.com/nkoval/replyflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSentimentDelta(t *testing.T) {
	assert.Greater(t, SentimentDelta("Thanks, this is great, really appreciate it"), 0.0)
	assert.Less(t, SentimentDelta("I am frustrated and disappointed, this is unacceptable"), 0.0)
	assert.Equal(t, 0.0, SentimentDelta("Can you send the onboarding checklist?"))

	// Delta is bounded even for word-stuffed bodies
	angry := "frustrated angry disappointed terrible awful unacceptable worst annoyed useless"
	assert.GreaterOrEqual(t, SentimentDelta(angry), -sentimentMaxDelta)
}

func TestConversionDelta(t *testing.T) {
	assert.Greater(t, ConversionDelta(models.IntentPurchaseIntent), ConversionDelta(models.IntentDemoRequest))
	assert.Greater(t, ConversionDelta(models.IntentDemoRequest), ConversionDelta(models.IntentPricingInquiry))
	assert.Equal(t, 0.0, ConversionDelta(models.IntentGeneralInquiry))
	assert.Less(t, ConversionDelta(models.IntentSupportRequest), 0.0)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.42, Clamp01(0.42))
}
