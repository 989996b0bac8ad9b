package email

import (
	"context"
	"log/slog"
	"time"
)

// MessageHandler handles one new inbound email
type MessageHandler func(msg *InboundEmail)

// ErrorHandler handles watcher errors
type ErrorHandler func(err error)

// UIDStore persists the high-water UID mark across restarts
type UIDStore interface {
	LastUID(ctx context.Context) (uint32, error)
	SetLastUID(ctx context.Context, uid uint32) error
}

// Watcher polls a single inbox and hands each new message to the handler.
// Messages within a fetch batch are delivered sequentially in UID order.
type Watcher struct {
	client    *Client
	uids      UIDStore
	interval  time.Duration
	logger    *slog.Logger
	onMessage MessageHandler
	onError   ErrorHandler
	lastUID   uint32
}

// NewWatcher creates a new inbox watcher
func NewWatcher(client *Client, uids UIDStore, interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		client:   client,
		uids:     uids,
		interval: interval,
		logger:   logger.With("component", "watcher"),
	}
}

// SetMessageHandler sets the handler for new messages
func (w *Watcher) SetMessageHandler(handler MessageHandler) {
	w.onMessage = handler
}

// SetErrorHandler sets the handler for errors
func (w *Watcher) SetErrorHandler(handler ErrorHandler) {
	w.onError = handler
}

// Run connects, seeds the UID mark and polls until the context is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.client.Connect(ctx); err != nil {
		return err
	}
	if _, err := w.client.SelectINBOX(ctx); err != nil {
		return err
	}

	lastUID, err := w.uids.LastUID(ctx)
	if err != nil {
		return err
	}

	// First run: start from the current high-water mark so the backlog of
	// old mail is not answered in bulk
	if lastUID == 0 {
		highest, err := w.client.GetHighestUID(ctx)
		if err != nil {
			return err
		}
		lastUID = highest
		if err := w.uids.SetLastUID(ctx, highest); err != nil {
			return err
		}
		w.logger.Info("seeded UID mark", "uid", highest)
	}
	w.lastUID = lastUID

	w.logger.Info("watching inbox", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.client.Close()
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll fetches and dispatches new messages once
func (w *Watcher) poll(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if !w.client.IsConnected() {
		if err := w.client.Connect(fctx); err != nil {
			w.reportError(err)
			return
		}
		if _, err := w.client.SelectINBOX(fctx); err != nil {
			w.reportError(err)
			w.client.Disconnect()
			return
		}
	}

	messages, err := w.client.FetchNewMessages(fctx, w.lastUID)
	if err != nil {
		w.reportError(err)
		w.client.Disconnect()
		return
	}

	for _, msg := range messages {
		// UID FETCH n:* returns the highest-UID message even when n exceeds
		// it, so already-seen messages must be skipped here
		if msg.UID <= w.lastUID {
			continue
		}

		if w.onMessage != nil {
			w.onMessage(msg)
		}

		if err := w.client.MarkAsRead(fctx, msg.UID); err != nil {
			w.logger.Warn("failed to mark message as read", "uid", msg.UID, "error", err)
		}

		if msg.UID > w.lastUID {
			w.lastUID = msg.UID
			if err := w.uids.SetLastUID(ctx, msg.UID); err != nil {
				w.logger.Error("failed to persist UID mark", "uid", msg.UID, "error", err)
			}
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.logger.Error("watcher error", "error", err)
	if w.onError != nil {
		w.onError(err)
	}
}
