package services

import (
	"encoding/json"
	"errors"
	"time"

	"matchup/internal/events"
	"matchup/internal/models"
	"matchup/internal/store"
	"matchup/internal/validator"

	"github.com/google/uuid"
)

var (
	ErrFieldNotFound     = errors.New("field not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrPayoutNotFound    = errors.New("payout not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrMatchFull         = errors.New("match is full")
	ErrMatchClosed       = errors.New("match is closed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidMaxPlayers = errors.New("max players must be positive")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrUnbalancedLedger  = errors.New("ledger entries are not balanced")
)

var (
	ErrEmptyTitle        = validator.ErrEmptyTitle
	ErrInvalidAmount     = validator.ErrInvalidAmount
	ErrInvalidFee        = validator.ErrInvalidFee
	ErrInvalidDiscount   = validator.ErrInvalidDiscount
	ErrInvalidTransition = models.ErrInvalidTransition
)

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

func publisherOrNop(p events.Publisher) events.Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// mapNotFound turns the store's generic miss into the entity-specific error.
func mapNotFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

func ensureBalanced(entries []models.LedgerEntry) error {
	var sum int64
	for _, entry := range entries {
		sum += entry.AmountCents
	}
	if sum != 0 {
		return ErrUnbalancedLedger
	}
	return nil
}

// transfer builds the two legs of a movement from one account to another.
func transfer(transactionID, fieldID, from, to string, amountCents int64, description string, at time.Time) []models.LedgerEntry {
	return []models.LedgerEntry{
		{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			Account:       from,
			FieldID:       &fieldID,
			AmountCents:   -amountCents,
			Description:   description,
			CreatedAt:     at,
		},
		{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			Account:       to,
			FieldID:       &fieldID,
			AmountCents:   amountCents,
			Description:   description,
			CreatedAt:     at,
		},
	}
}

func auditEntry(actor, action, entityType, entityID string, data map[string]any, at time.Time) models.AuditLog {
	payload, _ := json.Marshal(data)
	return models.AuditLog{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       string(payload),
		CreatedAt:  at,
	}
}
