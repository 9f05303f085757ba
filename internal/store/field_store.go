package store

import (
	"context"
	"database/sql"
	"errors"

	"matchup/internal/db"
	"matchup/internal/models"
)

type FieldStore struct {
	db DB
}

func NewFieldStore(db DB) *FieldStore {
	return &FieldStore{db: db}
}

func (s *FieldStore) List(ctx context.Context) ([]models.Field, error) {
	fields := []models.Field{}
	err := s.db.SelectContext(ctx, &fields, `
		SELECT id, name, address, lat, lng, pricing_default_cents, listing_fee_cents
		FROM fields
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *FieldStore) GetByID(ctx context.Context, fieldID string) (models.Field, error) {
	var field models.Field
	err := s.db.GetContext(ctx, &field, `
		SELECT id, name, address, lat, lng, pricing_default_cents, listing_fee_cents
		FROM fields
		WHERE id = $1
	`, fieldID)
	return field, notFound(err)
}

func (s *FieldStore) ListAds(ctx context.Context, fieldID string) ([]models.Ad, error) {
	ads := []models.Ad{}
	query := `
		SELECT id, field_id, title, description, is_active
		FROM ads
	`
	args := []any{}
	if fieldID != "" {
		query += " WHERE field_id IS NULL OR field_id = $1"
		args = append(args, fieldID)
	}
	query += " ORDER BY seq"
	if err := s.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, err
	}
	return ads, nil
}

// duplicate tags unique-key violations so callers can match on ErrDuplicate.
func duplicate(err error) error {
	if !errors.Is(err, ErrDuplicate) && db.IsUniqueViolation(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
