package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nkoval/replyflow/pkg/models"
)

// ErrNotFound is returned when a record is not found
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when trying to insert a duplicate record
var ErrAlreadyExists = errors.New("record already exists")

// CreateCustomer creates a new customer record
func (db *DB) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (email, name, company, stage, first_contact_at, last_contact_at, interaction_count, sentiment, conversion_prob, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		customer.Email,
		customer.Name,
		customer.Company,
		customer.Stage,
		customer.FirstContactAt,
		customer.LastContactAt,
		customer.InteractionCount,
		customer.Sentiment,
		customer.ConversionProb,
		customer.Notes,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return nil
}

// GetCustomerByEmail returns a customer by email address
func (db *DB) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	query := `SELECT * FROM customers WHERE email = ?`
	err := db.GetContext(ctx, &customer, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// GetCustomerByID returns a customer by ID
func (db *DB) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	query := `SELECT * FROM customers WHERE id = ?`
	err := db.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// RecordContact bumps the interaction count and advances the funnel fields
// after one processed message. last_contact_at must already be the maximum of
// the stored value and the new contact time; the caller computes it.
func (db *DB) RecordContact(ctx context.Context, id int64, stage models.Stage, sentiment, conversionProb float64, contactAt time.Time) error {
	query := `
		UPDATE customers
		SET stage = ?, sentiment = ?, conversion_prob = ?,
		    last_contact_at = ?, interaction_count = interaction_count + 1,
		    updated_at = ?
		WHERE id = ?
	`
	_, err := db.ExecContext(ctx, query, stage, sentiment, conversionProb, contactAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to record contact: %w", err)
	}
	return nil
}

// UpdateCustomerNotes replaces the free-text notes for a customer
func (db *DB) UpdateCustomerNotes(ctx context.Context, id int64, notes string) error {
	query := `UPDATE customers SET notes = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, notes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	return nil
}

// SetCustomerStage sets the conversation stage directly (manual override)
func (db *DB) SetCustomerStage(ctx context.Context, id int64, stage models.Stage) error {
	query := `UPDATE customers SET stage = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, stage, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set stage: %w", err)
	}
	return nil
}
