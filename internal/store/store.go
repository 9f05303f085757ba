package store

import (
	"context"
	"errors"

	"matchup/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Reader interface {
	ListFields(ctx context.Context) ([]models.Field, error)
	GetField(ctx context.Context, fieldID string) (models.Field, error)
	ListMatches(ctx context.Context, fieldID string) ([]models.Match, error)
	GetMatch(ctx context.Context, matchID string) (models.Match, error)
	ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error)
	GetWallet(ctx context.Context, fieldID string) (models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	ListPayouts(ctx context.Context, fieldID string) ([]models.PayoutRequest, error)
	GetPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error)
	ListPromotions(ctx context.Context, fieldID string) ([]models.Promotion, error)
	GetPromotion(ctx context.Context, promotionID string) (models.Promotion, error)
	ListAds(ctx context.Context, fieldID string) ([]models.Ad, error)
	ListLedger(ctx context.Context, fieldID string) ([]models.LedgerEntry, error)
	SumLedger(ctx context.Context, account string) (int64, error)
	ListAudit(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

// Tx is the write side. Every mutation goes through one, so a failed
// operation leaves no partial state behind.
type Tx interface {
	Reader
	LockMatch(ctx context.Context, matchID string) (models.Match, error)
	LockWallet(ctx context.Context, fieldID string) (models.Wallet, error)
	LockPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error)
	LockPromotion(ctx context.Context, promotionID string) (models.Promotion, error)
	InsertMatch(ctx context.Context, match models.Match) error
	UpdateMatch(ctx context.Context, match models.Match) error
	HasAttendee(ctx context.Context, matchID, playerID string) (bool, error)
	AddAttendee(ctx context.Context, attendance models.Attendance) error
	UpdateWallet(ctx context.Context, wallet models.Wallet) error
	InsertPayout(ctx context.Context, payout models.PayoutRequest) error
	UpdatePayout(ctx context.Context, payout models.PayoutRequest) error
	InsertPromotion(ctx context.Context, promotion models.Promotion) error
	UpdatePromotion(ctx context.Context, promotion models.Promotion) error
	InsertLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error
	LogAudit(ctx context.Context, entry models.AuditLog) error
}

type Store interface {
	Reader
	WithTx(ctx context.Context, fn func(Tx) error) error
}
