package llm

import (
	"fmt"
	"strings"

	"github.com/nkoval/replyflow/pkg/models"
)

// Prompt is a role-tagged prompt payload for the completion service
type Prompt struct {
	System string
	User   string
}

// AssemblePrompt merges the normalized message, the customer record and
// recent interaction history into a single prompt payload
func AssemblePrompt(companyName string, msg *models.Message, customer *models.Customer, history []*models.Interaction) *Prompt {
	var sb strings.Builder

	sb.WriteString("## Customer\n")
	name := customer.Name
	if name == "" {
		name = customer.Email
	}
	sb.WriteString(fmt.Sprintf("Name: %s\n", name))
	if customer.Company != "" {
		sb.WriteString(fmt.Sprintf("Company: %s\n", customer.Company))
	}
	sb.WriteString(fmt.Sprintf("Conversation stage: %s\n", customer.Stage))
	sb.WriteString(fmt.Sprintf("Previous interactions: %d\n", customer.InteractionCount))
	if customer.Notes != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", customer.Notes))
	}

	if len(history) > 0 {
		sb.WriteString("\n## Recent history (newest first)\n")
		for _, in := range history {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", in.Direction, in.Subject, summarize(in.Body, 300)))
		}
	}

	sb.WriteString("\n## Current message\n")
	sb.WriteString(fmt.Sprintf("Subject: %s\n", msg.Subject))
	sb.WriteString(fmt.Sprintf("Detected intent: %s\n", msg.Intent))
	sb.WriteString("\n")
	sb.WriteString(msg.BodyText)

	return &Prompt{
		System: systemPrompt(companyName),
		User:   sb.String(),
	}
}

func systemPrompt(companyName string) string {
	return fmt.Sprintf(
		"You are a customer support agent for %s. Write the body of a reply "+
			"to the customer's email below. Be concise, friendly and concrete. "+
			"Answer only what was asked; if you do not know something, say a "+
			"teammate will follow up. Do not include a greeting line or a "+
			"signature, they are added separately. Plain text only.",
		companyName,
	)
}

// summarize truncates text for the history block
func summarize(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
