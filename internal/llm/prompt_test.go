package llm

import (
	"strings"
	"testing"

	"github.com/nkoval/replyflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestAssemblePrompt(t *testing.T) {
	msg := &models.Message{
		Subject:  "Enterprise pricing",
		BodyText: "What is the price for your enterprise plan?",
		Intent:   models.IntentPricingInquiry,
	}
	customer := &models.Customer{
		Name:             "Dana Wright",
		Company:          "Wright Logistics",
		Stage:            models.StageInformationGathering,
		InteractionCount: 3,
		Notes:            "budget around 10k",
	}
	history := []*models.Interaction{
		{Direction: models.DirectionOutbound, Subject: "Re: intro", Body: "Welcome aboard"},
		{Direction: models.DirectionInbound, Subject: "intro", Body: "Hi, we're evaluating tools"},
	}

	p := AssemblePrompt("Acme", msg, customer, history)

	assert.Contains(t, p.System, "Acme")
	assert.Contains(t, p.System, "Do not include a greeting")

	assert.Contains(t, p.User, "Dana Wright")
	assert.Contains(t, p.User, "Wright Logistics")
	assert.Contains(t, p.User, string(models.StageInformationGathering))
	assert.Contains(t, p.User, "budget around 10k")
	assert.Contains(t, p.User, "Welcome aboard")
	assert.Contains(t, p.User, "Enterprise pricing")
	assert.Contains(t, p.User, "What is the price for your enterprise plan?")
	assert.Contains(t, p.User, string(models.IntentPricingInquiry))
}

func TestAssemblePromptFallsBackToEmail(t *testing.T) {
	msg := &models.Message{Subject: "hi", BodyText: "hello"}
	customer := &models.Customer{Email: "sam@example.com"}

	p := AssemblePrompt("Acme", msg, customer, nil)
	assert.Contains(t, p.User, "sam@example.com")
	assert.NotContains(t, p.User, "Recent history")
}

func TestSummarizeTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := summarize(long, 50)
	assert.LessOrEqual(t, len([]rune(got)), 53)
	assert.True(t, strings.HasSuffix(got, "..."))
}
