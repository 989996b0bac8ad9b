package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// InboundEmail is one message fetched from the watched inbox
type InboundEmail struct {
	UID       uint32
	MessageID string
	InReplyTo string
	From      *Address
	Subject   string
	Date      time.Time
	BodyHTML  string
	BodyText  string
}

// Address represents an email address
type Address struct {
	Name    string
	Address string
}

// ClientConfig configuration for the IMAP client
type ClientConfig struct {
	Email       string
	Password    string
	Server      string // host:port
	DialTimeout time.Duration
}

// Client IMAP client for the support inbox
type Client struct {
	config    ClientConfig
	client    *client.Client
	logger    *slog.Logger
	mu        sync.Mutex
	connected bool
}

// NewClient creates a new IMAP client
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		logger: logger.With("inbox", cfg.Email),
	}
}

// Connect connects to the IMAP server
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	c.logger.Info("connecting to IMAP server", "server", c.config.Server)

	timeout := c.config.DialTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", c.config.Server, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	imapClient, err := client.New(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create IMAP client: %w", err)
	}

	if err := imapClient.Login(c.config.Email, c.config.Password); err != nil {
		imapClient.Logout()
		return fmt.Errorf("failed to login: %w", err)
	}

	c.client = imapClient
	c.connected = true
	c.logger.Info("connected to IMAP server")

	return nil
}

// SelectINBOX selects the INBOX mailbox
func (c *Client) SelectINBOX(ctx context.Context) (*imap.MailboxStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	mbox, err := c.client.Select("INBOX", false)
	if err != nil {
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	return mbox, nil
}

// FetchNewMessages fetches messages with UID > sinceUID, in UID order
func (c *Client) FetchNewMessages(ctx context.Context, sinceUID uint32) ([]*InboundEmail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddRange(sinceUID+1, 0) // 0 means * (all)

	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid, imap.FetchBody}
	section := &imap.BodySectionName{}
	items = append(items, section.FetchItem())

	messages := make(chan *imap.Message, 100)
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqSet, items, messages)
	}()

	var emails []*InboundEmail
	for msg := range messages {
		em, err := c.parseMessage(msg, section)
		if err != nil {
			c.logger.Warn("failed to parse message", "uid", msg.Uid, "error", err)
			continue
		}
		emails = append(emails, em)
	}

	if err := <-done; err != nil {
		return emails, fmt.Errorf("failed to fetch: %w", err)
	}

	return emails, nil
}

// parseMessage parses an IMAP message into InboundEmail
func (c *Client) parseMessage(msg *imap.Message, section *imap.BodySectionName) (*InboundEmail, error) {
	em := &InboundEmail{
		UID: msg.Uid,
	}

	if msg.Envelope != nil {
		em.Subject = msg.Envelope.Subject
		em.Date = msg.Envelope.Date
		em.MessageID = msg.Envelope.MessageId
		em.InReplyTo = msg.Envelope.InReplyTo

		if len(msg.Envelope.From) > 0 {
			from := msg.Envelope.From[0]
			em.From = &Address{
				Name:    from.PersonalName,
				Address: from.Address(),
			}
		}
	}

	bodyReader := msg.GetBody(section)
	if bodyReader != nil {
		mr, err := mail.CreateReader(bodyReader)
		if err != nil {
			c.logger.Warn("failed to create mail reader", "error", err)
		} else {
			for {
				part, err := mr.NextPart()
				if err == io.EOF {
					break
				}
				if err != nil {
					c.logger.Warn("failed to read part", "error", err)
					break
				}

				switch h := part.Header.(type) {
				case *mail.InlineHeader:
					ct, _, _ := h.ContentType()
					body, err := io.ReadAll(part.Body)
					if err != nil {
						continue
					}

					if strings.HasPrefix(ct, "text/html") {
						em.BodyHTML = string(body)
					} else if strings.HasPrefix(ct, "text/plain") {
						em.BodyText = string(body)
					}
				}
			}
		}
	}

	if em.From == nil {
		em.From = &Address{}
	}

	return em, nil
}

// MarkAsRead marks a message as read (adds \Seen flag)
func (c *Client) MarkAsRead(ctx context.Context, uid uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		return fmt.Errorf("not connected")
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}

	if err := c.client.UidStore(seqSet, item, flags, nil); err != nil {
		return fmt.Errorf("failed to mark as read: %w", err)
	}

	return nil
}

// GetHighestUID returns the highest UID currently in the mailbox
func (c *Client) GetHighestUID(ctx context.Context) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.client == nil {
		return 0, fmt.Errorf("not connected")
	}

	criteria := imap.NewSearchCriteria()
	uids, err := c.client.UidSearch(criteria)
	if err != nil {
		return 0, fmt.Errorf("failed to search: %w", err)
	}

	var highest uint32
	for _, uid := range uids {
		if uid > highest {
			highest = uid
		}
	}

	return highest, nil
}

// Disconnect drops the connection so the next fetch reconnects
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false
	if c.client != nil {
		c.client.Logout()
		c.client = nil
	}
}

// Close logs out and terminates the connection
func (c *Client) Close() {
	c.mu.Lock()
	imapClient := c.client
	c.client = nil
	c.connected = false
	c.mu.Unlock()

	if imapClient == nil {
		return
	}

	// Try logout with timeout, then force close
	done := make(chan struct{})
	go func() {
		imapClient.Logout()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		imapClient.Terminate()
	}
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
