package services

import (
	"context"
	"strings"
	"time"

	"matchup/internal/events"
	"matchup/internal/models"
	"matchup/internal/store"
	"matchup/internal/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultPromotionDescription = "Custom field promotion"

type PromotionService struct {
	store  store.Store
	events events.Publisher
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewPromotionService(st store.Store, publisher events.Publisher, logger logrus.FieldLogger) *PromotionService {
	return &PromotionService{
		store:  st,
		events: publisherOrNop(publisher),
		logger: logger,
		now:    time.Now,
	}
}

type CreatePromotionRequest struct {
	Actor           string
	FieldID         string
	Title           string
	Description     string
	DiscountPercent *int
	PromoCode       *string
	// IsActive defaults to true when nil.
	IsActive *bool
}

func (s *PromotionService) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (models.Promotion, error) {
	if err := validator.ValidateTitle(req.Title); err != nil {
		return models.Promotion{}, err
	}
	if req.DiscountPercent != nil {
		if err := validator.ValidateDiscount(*req.DiscountPercent); err != nil {
			return models.Promotion{}, err
		}
	}
	var promoCode *string
	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) != "" {
		code, err := validator.NormalizePromoCode(*req.PromoCode)
		if err != nil {
			return models.Promotion{}, err
		}
		promoCode = &code
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultPromotionDescription
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	promotion := models.Promotion{
		ID:              uuid.NewString(),
		FieldID:         req.FieldID,
		Title:           strings.TrimSpace(req.Title),
		Description:     description,
		DiscountPercent: req.DiscountPercent,
		PromoCode:       promoCode,
		IsActive:        active,
	}
	now := s.now().UTC()
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.GetField(ctx, req.FieldID); err != nil {
			return mapNotFound(err, ErrFieldNotFound)
		}
		if err := tx.InsertPromotion(ctx, promotion); err != nil {
			return err
		}
		return tx.LogAudit(ctx, auditEntry(req.Actor, events.PromotionCreated, "promotion", promotion.ID, map[string]any{
			"field_id": promotion.FieldID,
			"title":    promotion.Title,
		}, now))
	})
	if err != nil {
		return models.Promotion{}, err
	}
	s.logger.WithFields(logrus.Fields{"promotion_id": promotion.ID, "field_id": promotion.FieldID}).Info("promotion created")
	s.events.Publish(events.Event{Type: events.PromotionCreated, FieldID: promotion.FieldID, EntityID: promotion.ID, Payload: promotion, OccurredAt: now})
	return promotion, nil
}

func (s *PromotionService) ListPromotions(ctx context.Context, fieldID string) ([]models.Promotion, error) {
	return s.store.ListPromotions(ctx, fieldID)
}

func (s *PromotionService) GetPromotion(ctx context.Context, promotionID string) (models.Promotion, error) {
	promotion, err := s.store.GetPromotion(ctx, promotionID)
	return promotion, mapNotFound(err, ErrPromotionNotFound)
}

func (s *PromotionService) SetPromotionActive(ctx context.Context, actor, promotionID string, active bool) (models.Promotion, error) {
	var promotion models.Promotion
	now := s.now().UTC()
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		promotion, err = tx.LockPromotion(ctx, promotionID)
		if err != nil {
			return mapNotFound(err, ErrPromotionNotFound)
		}
		promotion.IsActive = active
		if err := tx.UpdatePromotion(ctx, promotion); err != nil {
			return err
		}
		return tx.LogAudit(ctx, auditEntry(actor, events.PromotionUpdated, "promotion", promotion.ID, map[string]any{
			"is_active": active,
		}, now))
	})
	if err != nil {
		return models.Promotion{}, err
	}
	s.events.Publish(events.Event{Type: events.PromotionUpdated, FieldID: promotion.FieldID, EntityID: promotion.ID, Payload: promotion, OccurredAt: now})
	return promotion, nil
}

// ListAds returns field-specific ads plus the global ones.
func (s *PromotionService) ListAds(ctx context.Context, fieldID string) ([]models.Ad, error) {
	return s.store.ListAds(ctx, fieldID)
}
