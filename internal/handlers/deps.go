package handlers

import (
	"context"

	"matchup/internal/models"
	"matchup/internal/services"
)

type FieldService interface {
	ListFields(ctx context.Context) ([]models.Field, error)
	GetField(ctx context.Context, fieldID string) (models.Field, error)
}

type MatchService interface {
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListMatchesForField(ctx context.Context, fieldID string) ([]models.Match, error)
	GetMatch(ctx context.Context, matchID string) (models.Match, error)
	ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error)
	CreateMatch(ctx context.Context, req services.CreateMatchRequest) (models.Match, error)
	ConfirmAndPay(ctx context.Context, matchID, playerID string) (services.ConfirmResult, error)
	UpdateMatchStatus(ctx context.Context, actor, matchID string, status models.MatchStatus) (models.Match, error)
}

type LedgerService interface {
	GetWallet(ctx context.Context, fieldID string) (models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	ListPayouts(ctx context.Context, fieldID string) ([]models.PayoutRequest, error)
	ListLedger(ctx context.Context, fieldID string) ([]models.LedgerEntry, error)
	ListAudit(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
	RequestPayout(ctx context.Context, req services.PayoutRequestInput) (models.PayoutRequest, error)
	TransitionPayout(ctx context.Context, actor, payoutID string, status models.PayoutStatus) (models.PayoutRequest, error)
	Reconcile(ctx context.Context) ([]services.WalletDrift, error)
}

type PromotionService interface {
	CreatePromotion(ctx context.Context, req services.CreatePromotionRequest) (models.Promotion, error)
	ListPromotions(ctx context.Context, fieldID string) ([]models.Promotion, error)
	SetPromotionActive(ctx context.Context, actor, promotionID string, active bool) (models.Promotion, error)
	GetPromotion(ctx context.Context, promotionID string) (models.Promotion, error)
	ListAds(ctx context.Context, fieldID string) ([]models.Ad, error)
}
