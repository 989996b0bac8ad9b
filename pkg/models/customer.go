package models

import "time"

// Stage is a customer's position in the conversation funnel.
type Stage string

const (
	StageInitialInquiry       Stage = "initial_inquiry"
	StageInformationGathering Stage = "information_gathering"
	StageProductMatching      Stage = "product_matching"
	StageObjectionHandling    Stage = "objection_handling"
	StageClosing              Stage = "closing"
	StageCustomer             Stage = "customer"
	StageChurned              Stage = "churned"
)

// Terminal returns true for stages a customer never leaves automatically
func (s Stage) Terminal() bool {
	return s == StageCustomer || s == StageChurned
}

// Customer represents one person we exchange email with
type Customer struct {
	ID               int64     `db:"id"`
	Email            string    `db:"email"` // unique key
	Name             string    `db:"name"`
	Company          string    `db:"company"`
	Stage            Stage     `db:"stage"`
	FirstContactAt   time.Time `db:"first_contact_at"`
	LastContactAt    time.Time `db:"last_contact_at"`    // never moves backwards
	InteractionCount int       `db:"interaction_count"`  // never decreases
	Sentiment        float64   `db:"sentiment"`          // 0.0 - 1.0
	ConversionProb   float64   `db:"conversion_prob"`    // 0.0 - 1.0
	Notes            string    `db:"notes"`              // free-text budget/timeline notes
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
