package models

import "time"

// Direction of an interaction relative to us
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Interaction is one recorded email exchange with a customer.
// Rows are immutable after insert.
type Interaction struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"` // FK to Customer
	Direction  Direction `db:"direction"`
	Subject    string    `db:"subject"`
	Body       string    `db:"body"`
	Intent     Intent    `db:"intent"`
	Escalated  bool      `db:"escalated"`
	Confidence float64   `db:"confidence"`
	CreatedAt  time.Time `db:"created_at"`
}
