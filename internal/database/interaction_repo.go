package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nkoval/replyflow/pkg/models"
)

// CreateInteraction appends an interaction record for a customer
func (db *DB) CreateInteraction(ctx context.Context, in *models.Interaction) error {
	query := `
		INSERT INTO interactions (customer_id, direction, subject, body, intent, escalated, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		in.CustomerID,
		in.Direction,
		in.Subject,
		in.Body,
		in.Intent,
		in.Escalated,
		in.Confidence,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	in.ID = id
	in.CreatedAt = now
	return nil
}

// GetRecentInteractions returns the most recent interactions for a customer,
// newest first
func (db *DB) GetRecentInteractions(ctx context.Context, customerID int64, limit int) ([]*models.Interaction, error) {
	var interactions []*models.Interaction
	query := `SELECT * FROM interactions WHERE customer_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	err := db.SelectContext(ctx, &interactions, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	return interactions, nil
}

// CountInteractions returns the number of interactions recorded for a customer
func (db *DB) CountInteractions(ctx context.Context, customerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interactions WHERE customer_id = ?`
	err := db.GetContext(ctx, &count, query, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}
