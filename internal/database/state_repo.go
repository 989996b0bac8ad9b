package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ClaimMessage records a message id as processed. Returns ErrAlreadyExists if
// the message was already claimed, which makes outbound replies at-most-once
// per message id even across restarts.
func (db *DB) ClaimMessage(ctx context.Context, messageID string) error {
	query := `INSERT OR IGNORE INTO processed_messages (message_id, processed_at) VALUES (?, ?)`
	result, err := db.ExecContext(ctx, query, messageID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to claim message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// LastUID returns the high-water IMAP UID mark for the watched inbox
func (db *DB) LastUID(ctx context.Context) (uint32, error) {
	var uid uint32
	query := `SELECT last_uid FROM inbox_state WHERE id = 1`
	err := db.GetContext(ctx, &uid, query)
	if errors.Is(err, sql.ErrNoRows) {
		// No row yet means nothing processed
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get last uid: %w", err)
	}
	return uid, nil
}

// SetLastUID stores the high-water IMAP UID mark
func (db *DB) SetLastUID(ctx context.Context, uid uint32) error {
	query := `
		INSERT INTO inbox_state (id, last_uid, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_uid = excluded.last_uid, updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query, uid, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set last uid: %w", err)
	}
	return nil
}
