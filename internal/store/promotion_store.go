package store

import (
	"context"

	"matchup/internal/models"
)

type PromotionStore struct {
	db DB
}

const promotionColumns = `id, field_id, title, description, discount_percent, promo_code, is_active`

func NewPromotionStore(db DB) *PromotionStore {
	return &PromotionStore{db: db}
}

func (s *PromotionStore) List(ctx context.Context, fieldID string) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	query := `SELECT ` + promotionColumns + ` FROM promotions`
	args := []any{}
	if fieldID != "" {
		query += " WHERE field_id = $1"
		args = append(args, fieldID)
	}
	query += " ORDER BY seq DESC"
	if err := s.db.SelectContext(ctx, &promotions, query, args...); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (s *PromotionStore) GetByID(ctx context.Context, promotionID string) (models.Promotion, error) {
	var promotion models.Promotion
	err := s.db.GetContext(ctx, &promotion, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, promotionID)
	return promotion, notFound(err)
}

func (s *PromotionStore) GetForUpdate(ctx context.Context, tx Getter, promotionID string) (models.Promotion, error) {
	var promotion models.Promotion
	err := tx.GetContext(ctx, &promotion, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1 FOR UPDATE`, promotionID)
	return promotion, notFound(err)
}

func (s *PromotionStore) Create(ctx context.Context, tx Execer, promotion models.Promotion) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO promotions (id, field_id, title, description, discount_percent, promo_code, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, promotion.ID, promotion.FieldID, promotion.Title, promotion.Description, promotion.DiscountPercent, promotion.PromoCode, promotion.IsActive)
	return err
}

func (s *PromotionStore) Update(ctx context.Context, tx Execer, promotion models.Promotion) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE promotions
		SET title = $1, description = $2, discount_percent = $3, promo_code = $4, is_active = $5
		WHERE id = $6
	`, promotion.Title, promotion.Description, promotion.DiscountPercent, promotion.PromoCode, promotion.IsActive, promotion.ID)
	return requireRow(res, err)
}
