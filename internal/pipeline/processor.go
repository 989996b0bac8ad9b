package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nkoval/replyflow/internal/classifier"
	"github.com/nkoval/replyflow/internal/database"
	"github.com/nkoval/replyflow/internal/email"
	"github.com/nkoval/replyflow/internal/formatter"
	"github.com/nkoval/replyflow/internal/llm"
	"github.com/nkoval/replyflow/internal/mailer"
	"github.com/nkoval/replyflow/internal/parser"
	"github.com/nkoval/replyflow/pkg/models"
)

// Store is the record-store surface the pipeline needs
type Store interface {
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	RecordContact(ctx context.Context, id int64, stage models.Stage, sentiment, conversionProb float64, contactAt time.Time) error
	CreateInteraction(ctx context.Context, in *models.Interaction) error
	GetRecentInteractions(ctx context.Context, customerID int64, limit int) ([]*models.Interaction, error)
	ClaimMessage(ctx context.Context, messageID string) error
}

// Completer requests generated reply text
type Completer interface {
	Complete(ctx context.Context, p *llm.Prompt) (string, error)
}

// MailSender submits outbound mail
type MailSender interface {
	Send(m *mailer.OutboundMail) error
}

// Deps wires the processor's collaborators
type Deps struct {
	Store           Store
	Completer       Completer
	Sender          MailSender
	HTMLParser      *parser.HTMLParser
	Intents         *classifier.IntentClassifier
	Urgency         *classifier.UrgencyDetector
	Formatter       *formatter.ReplyFormatter
	EscalationEmail string
	CompanyName     string
	HistoryLimit    int
	Logger          *slog.Logger
}

// Processor runs one inbound email through the whole pipeline:
// normalize, resolve customer, assemble context, complete, format, send,
// update records
type Processor struct {
	deps Deps
}

// New creates a new processor
func New(deps Deps) *Processor {
	if deps.HistoryLimit <= 0 {
		deps.HistoryLimit = 5
	}
	deps.Logger = deps.Logger.With("component", "pipeline")
	return &Processor{deps: deps}
}

// Process handles one inbound email end to end. A nil error means the reply
// was sent (or the message was a duplicate and skipped).
func (p *Processor) Process(ctx context.Context, raw *email.InboundEmail) error {
	msg := p.normalize(raw)
	logger := p.deps.Logger.With("message_id", msg.MessageID, "from", msg.FromAddr)

	if msg.FromAddr == "" {
		logger.Warn("skipping message without sender address", "uid", msg.UID)
		return nil
	}

	// Claim before any side effect so a restart cannot answer twice.
	// Messages without a Message-ID header are keyed by IMAP UID.
	claimKey := msg.MessageID
	if claimKey == "" {
		claimKey = fmt.Sprintf("uid:%d", msg.UID)
	}
	if err := p.deps.Store.ClaimMessage(ctx, claimKey); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			logger.Debug("message already processed, skipping")
			return nil
		}
		return fmt.Errorf("failed to claim message: %w", err)
	}

	customer, created, err := p.resolveCustomer(ctx, msg)
	if err != nil {
		return err
	}
	logger = logger.With("customer_id", customer.ID)
	if created {
		logger.Info("created new customer", "stage", customer.Stage)
	}

	escalate := classifier.ShouldEscalate(msg, customer)
	logger.Info("message classified",
		"intent", msg.Intent,
		"confidence", msg.Confidence,
		"urgent", msg.Urgent,
		"escalate", escalate,
	)

	inbound := &models.Interaction{
		CustomerID: customer.ID,
		Direction:  models.DirectionInbound,
		Subject:    msg.Subject,
		Body:       msg.BodyText,
		Intent:     msg.Intent,
		Escalated:  escalate,
		Confidence: msg.Confidence,
	}
	if err := p.deps.Store.CreateInteraction(ctx, inbound); err != nil {
		return fmt.Errorf("failed to record inbound interaction: %w", err)
	}

	var replyText, replyHTML string
	if escalate {
		replyText, replyHTML = p.deps.Formatter.FormatAck(customer)
		if err := p.forwardToHuman(msg, customer); err != nil {
			// The acknowledgment still goes out; a human sees the log
			logger.Error("failed to forward escalated message", "error", err)
		}
	} else {
		generated, err := p.generateReply(ctx, msg, customer)
		if err != nil {
			return err
		}
		replyText, replyHTML = p.deps.Formatter.FormatReply(customer, generated)
	}

	out := &mailer.OutboundMail{
		To:         msg.FromAddr,
		Subject:    p.deps.Formatter.ReplySubject(msg.Subject),
		Text:       replyText,
		HTML:       replyHTML,
		InReplyTo:  msg.MessageID,
		References: msg.ThreadID,
	}
	if err := p.deps.Sender.Send(out); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	logger.Info("reply sent", "escalated", escalate)

	// Post-send bookkeeping. The reply is already out, so failures here are
	// reported but never trigger a re-send.
	outbound := &models.Interaction{
		CustomerID: customer.ID,
		Direction:  models.DirectionOutbound,
		Subject:    out.Subject,
		Body:       replyText,
		Intent:     msg.Intent,
		Escalated:  escalate,
	}
	if err := p.deps.Store.CreateInteraction(ctx, outbound); err != nil {
		logger.Error("failed to record outbound interaction", "error", err)
	}

	stage := classifier.NextStage(customer.Stage, msg.Intent)
	sentiment := classifier.Clamp01(customer.Sentiment + classifier.SentimentDelta(msg.BodyText))
	conversion := classifier.Clamp01(customer.ConversionProb + classifier.ConversionDelta(msg.Intent))

	contactAt := msg.ReceivedAt
	if customer.LastContactAt.After(contactAt) {
		contactAt = customer.LastContactAt
	}
	if err := p.deps.Store.RecordContact(ctx, customer.ID, stage, sentiment, conversion, contactAt); err != nil {
		return fmt.Errorf("failed to update customer record: %w", err)
	}

	if stage != customer.Stage {
		logger.Info("customer stage advanced", "from", customer.Stage, "to", stage)
	}
	return nil
}

// normalize turns a raw email into the transient pipeline message
func (p *Processor) normalize(raw *email.InboundEmail) *models.Message {
	body := raw.BodyText
	if body == "" && raw.BodyHTML != "" {
		parsed, err := p.deps.HTMLParser.Parse(raw.BodyHTML)
		if err != nil {
			p.deps.Logger.Warn("failed to parse HTML body", "uid", raw.UID, "error", err)
		} else {
			body = parsed
		}
	}
	body = parser.StripQuoted(body)

	threadID := raw.InReplyTo
	if threadID == "" {
		threadID = raw.MessageID
	}

	receivedAt := raw.Date
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	msg := &models.Message{
		UID:        raw.UID,
		MessageID:  raw.MessageID,
		ThreadID:   threadID,
		FromAddr:   raw.From.Address,
		FromName:   raw.From.Name,
		Subject:    raw.Subject,
		BodyText:   body,
		BodyHTML:   raw.BodyHTML,
		ReceivedAt: receivedAt,
	}
	msg.Intent, msg.Confidence = p.deps.Intents.Classify(body)
	msg.Urgent = p.deps.Urgency.Urgent(msg.Subject, body)
	return msg
}

// resolveCustomer loads the customer for a sender, creating one on first
// contact
func (p *Processor) resolveCustomer(ctx context.Context, msg *models.Message) (*models.Customer, bool, error) {
	customer, err := p.deps.Store.GetCustomerByEmail(ctx, msg.FromAddr)
	if err == nil {
		return customer, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer = &models.Customer{
		Email:          msg.FromAddr,
		Name:           msg.FromName,
		Stage:          models.StageInitialInquiry,
		FirstContactAt: msg.ReceivedAt,
		LastContactAt:  msg.ReceivedAt,
		Sentiment:      0.5,
		ConversionProb: 0.1,
	}
	if err := p.deps.Store.CreateCustomer(ctx, customer); err != nil {
		return nil, false, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, true, nil
}

// generateReply assembles the prompt and asks the completion service
func (p *Processor) generateReply(ctx context.Context, msg *models.Message, customer *models.Customer) (string, error) {
	history, err := p.deps.Store.GetRecentInteractions(ctx, customer.ID, p.deps.HistoryLimit)
	if err != nil {
		// A reply without history is still better than none
		p.deps.Logger.Warn("failed to load interaction history", "customer_id", customer.ID, "error", err)
		history = nil
	}

	prompt := llm.AssemblePrompt(p.deps.CompanyName, msg, customer, history)
	return p.deps.Completer.Complete(ctx, prompt)
}

// forwardToHuman sends the original message to the escalation address
func (p *Processor) forwardToHuman(msg *models.Message, customer *models.Customer) error {
	body := fmt.Sprintf(
		"Escalated message from %s <%s> (stage: %s, intent: %s, urgent: %v)\n\nSubject: %s\n\n%s",
		msg.FromName, msg.FromAddr, customer.Stage, msg.Intent, msg.Urgent,
		msg.Subject, msg.BodyText,
	)
	return p.deps.Sender.Send(&mailer.OutboundMail{
		To:      p.deps.EscalationEmail,
		Subject: p.deps.Formatter.ForwardSubject(msg.Subject),
		Text:    body,
	})
}
