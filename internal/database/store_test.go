package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nkoval/replyflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestCustomerLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	customer := &models.Customer{
		Email:          "dana@example.com",
		Name:           "Dana Wright",
		Stage:          models.StageInitialInquiry,
		FirstContactAt: now,
		LastContactAt:  now,
		Sentiment:      0.5,
		ConversionProb: 0.1,
	}

	require.NoError(t, db.CreateCustomer(ctx, customer))
	assert.NotZero(t, customer.ID)

	got, err := db.GetCustomerByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.ID)
	assert.Equal(t, models.StageInitialInquiry, got.Stage)
	assert.Equal(t, 0, got.InteractionCount)

	// Duplicate email is rejected by the unique constraint
	dup := &models.Customer{Email: "dana@example.com", FirstContactAt: now, LastContactAt: now}
	assert.Error(t, db.CreateCustomer(ctx, dup))
}

func TestGetCustomerByEmailNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCustomerByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordContactIncrementsMonotonically(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	customer := &models.Customer{
		Email:          "sam@example.com",
		Stage:          models.StageInitialInquiry,
		FirstContactAt: first,
		LastContactAt:  first,
	}
	require.NoError(t, db.CreateCustomer(ctx, customer))

	second := first.Add(30 * time.Minute)
	require.NoError(t, db.RecordContact(ctx, customer.ID, models.StageInformationGathering, 0.55, 0.15, second))

	got, err := db.GetCustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.InteractionCount)
	assert.Equal(t, models.StageInformationGathering, got.Stage)
	assert.InDelta(t, 0.55, got.Sentiment, 1e-9)
	assert.False(t, got.LastContactAt.Before(second))

	third := second.Add(30 * time.Minute)
	require.NoError(t, db.RecordContact(ctx, customer.ID, models.StageProductMatching, 0.6, 0.25, third))

	got, err = db.GetCustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.InteractionCount)
	assert.False(t, got.LastContactAt.Before(third))
}

func TestInteractions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	customer := &models.Customer{Email: "sam@example.com", FirstContactAt: now, LastContactAt: now}
	require.NoError(t, db.CreateCustomer(ctx, customer))

	inbound := &models.Interaction{
		CustomerID: customer.ID,
		Direction:  models.DirectionInbound,
		Subject:    "pricing",
		Body:       "how much?",
		Intent:     models.IntentPricingInquiry,
		Confidence: 0.85,
	}
	require.NoError(t, db.CreateInteraction(ctx, inbound))
	assert.NotZero(t, inbound.ID)

	outbound := &models.Interaction{
		CustomerID: customer.ID,
		Direction:  models.DirectionOutbound,
		Subject:    "Re: pricing",
		Body:       "here is the deal",
		Intent:     models.IntentPricingInquiry,
	}
	require.NoError(t, db.CreateInteraction(ctx, outbound))

	recent, err := db.GetRecentInteractions(ctx, customer.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first
	assert.Equal(t, models.DirectionOutbound, recent[0].Direction)
	assert.Equal(t, models.DirectionInbound, recent[1].Direction)

	count, err := db.CountInteractions(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClaimMessage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.ClaimMessage(ctx, "<msg-1@example.com>"))
	assert.ErrorIs(t, db.ClaimMessage(ctx, "<msg-1@example.com>"), ErrAlreadyExists)
	require.NoError(t, db.ClaimMessage(ctx, "<msg-2@example.com>"))
}

func TestUIDState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	uid, err := db.LastUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), uid)

	require.NoError(t, db.SetLastUID(ctx, 42))
	uid, err = db.LastUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), uid)

	require.NoError(t, db.SetLastUID(ctx, 99))
	uid, err = db.LastUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), uid)
}
