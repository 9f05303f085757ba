package store

import (
	"context"

	"matchup/internal/models"
)

type PayoutStore struct {
	db DB
}

const payoutColumns = `id, field_id, manager_name, amount_cents, reserved_cents, status, requested_at, updated_at`

func NewPayoutStore(db DB) *PayoutStore {
	return &PayoutStore{db: db}
}

func (s *PayoutStore) List(ctx context.Context, fieldID string) ([]models.PayoutRequest, error) {
	payouts := []models.PayoutRequest{}
	query := `SELECT ` + payoutColumns + ` FROM payout_requests`
	args := []any{}
	if fieldID != "" {
		query += " WHERE field_id = $1"
		args = append(args, fieldID)
	}
	query += " ORDER BY seq DESC"
	if err := s.db.SelectContext(ctx, &payouts, query, args...); err != nil {
		return nil, err
	}
	return payouts, nil
}

func (s *PayoutStore) GetByID(ctx context.Context, payoutID string) (models.PayoutRequest, error) {
	var payout models.PayoutRequest
	err := s.db.GetContext(ctx, &payout, `SELECT `+payoutColumns+` FROM payout_requests WHERE id = $1`, payoutID)
	return payout, notFound(err)
}

func (s *PayoutStore) GetForUpdate(ctx context.Context, tx Getter, payoutID string) (models.PayoutRequest, error) {
	var payout models.PayoutRequest
	err := tx.GetContext(ctx, &payout, `SELECT `+payoutColumns+` FROM payout_requests WHERE id = $1 FOR UPDATE`, payoutID)
	return payout, notFound(err)
}

func (s *PayoutStore) Create(ctx context.Context, tx Execer, payout models.PayoutRequest) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO payout_requests (id, field_id, manager_name, amount_cents, reserved_cents, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, payout.ID, payout.FieldID, payout.ManagerName, payout.AmountCents, payout.ReservedCents, string(payout.Status), payout.RequestedAt)
	return err
}

func (s *PayoutStore) UpdateStatus(ctx context.Context, tx Execer, payout models.PayoutRequest) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE payout_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, string(payout.Status), payout.UpdatedAt, payout.ID)
	return requireRow(res, err)
}
