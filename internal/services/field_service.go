package services

import (
	"context"

	"matchup/internal/models"
	"matchup/internal/store"
)

type FieldService struct {
	store store.Reader
}

func NewFieldService(st store.Reader) *FieldService {
	return &FieldService{store: st}
}

func (s *FieldService) ListFields(ctx context.Context) ([]models.Field, error) {
	return s.store.ListFields(ctx)
}

func (s *FieldService) GetField(ctx context.Context, fieldID string) (models.Field, error) {
	field, err := s.store.GetField(ctx, fieldID)
	return field, mapNotFound(err, ErrFieldNotFound)
}
