package formatter

import (
	"fmt"
	"html"
	"strings"

	"github.com/nkoval/replyflow/pkg/models"
)

// ReplyFormatter wraps generated text with greeting, stage call-to-action and
// signature, in plain text and a simple HTML rendering
type ReplyFormatter struct {
	companyName string
	agentName   string
}

// NewReplyFormatter creates a new reply formatter
func NewReplyFormatter(companyName, agentName string) *ReplyFormatter {
	return &ReplyFormatter{
		companyName: companyName,
		agentName:   agentName,
	}
}

// FormatReply builds the outbound reply around the generated body
func (f *ReplyFormatter) FormatReply(customer *models.Customer, generated string) (text, htmlBody string) {
	var sb strings.Builder

	sb.WriteString(f.greeting(customer))
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(generated))
	sb.WriteString("\n\n")
	sb.WriteString(callToAction(customer.Stage))
	sb.WriteString("\n\n")
	sb.WriteString(f.signature())

	text = sb.String()
	return text, f.renderHTML(text)
}

// FormatAck builds the short acknowledgment sent when a message is escalated
// to a human instead of being answered automatically
func (f *ReplyFormatter) FormatAck(customer *models.Customer) (text, htmlBody string) {
	var sb strings.Builder

	sb.WriteString(f.greeting(customer))
	sb.WriteString("\n\n")
	sb.WriteString("Thanks for reaching out. Your message has been passed to a member of our team, ")
	sb.WriteString("and someone will get back to you personally as soon as possible.")
	sb.WriteString("\n\n")
	sb.WriteString(f.signature())

	text = sb.String()
	return text, f.renderHTML(text)
}

// ReplySubject prefixes the original subject with "Re: " unless it already is
// a reply
func (f *ReplyFormatter) ReplySubject(original string) string {
	trimmed := strings.TrimSpace(original)
	if trimmed == "" {
		return "Re: your message"
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "re:") {
		return trimmed
	}
	return "Re: " + trimmed
}

// ForwardSubject prefixes the original subject for an escalation forward
func (f *ReplyFormatter) ForwardSubject(original string) string {
	trimmed := strings.TrimSpace(original)
	if trimmed == "" {
		trimmed = "(no subject)"
	}
	return "[escalation] " + trimmed
}

func (f *ReplyFormatter) greeting(customer *models.Customer) string {
	name := firstName(customer.Name)
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hi %s,", name)
}

func (f *ReplyFormatter) signature() string {
	return fmt.Sprintf("Best regards,\n%s\n%s", f.agentName, f.companyName)
}

// callToAction returns the follow-up line for a funnel stage
func callToAction(stage models.Stage) string {
	switch stage {
	case models.StageInitialInquiry:
		return "Is there anything specific you'd like to know more about?"
	case models.StageInformationGathering:
		return "Could you share a bit more about your requirements so we can point you to the right option?"
	case models.StageProductMatching:
		return "Would you like us to set up a quick demo so you can see it in action?"
	case models.StageObjectionHandling:
		return "Happy to walk through any concerns on a short call if that helps."
	case models.StageClosing:
		return "Just let us know and we can get the paperwork started."
	case models.StageChurned:
		return "We'd love to have you back - let us know if anything has changed."
	default:
		return "Let us know if there's anything else we can help with."
	}
}

// renderHTML turns the plain-text reply into minimal paragraph HTML
func (f *ReplyFormatter) renderHTML(text string) string {
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		escaped := html.EscapeString(para)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		sb.WriteString("<p>")
		sb.WriteString(escaped)
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

// firstName extracts the first word of a display name
func firstName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
