package store

import (
	"context"

	"matchup/internal/models"
)

type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) InsertEntries(ctx context.Context, tx Execer, entries []models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, transaction_id, account, field_id, amount_cents, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, entry.ID, entry.TransactionID, entry.Account, entry.FieldID, entry.AmountCents, entry.Description, entry.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (s *LedgerStore) SumByAccount(ctx context.Context, account string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM ledger_entries
		WHERE account = $1
	`, account)
	return sum, err
}

func (s *LedgerStore) ListByField(ctx context.Context, fieldID string) ([]models.LedgerEntry, error) {
	entries := []models.LedgerEntry{}
	query := `
		SELECT id, transaction_id, account, field_id, amount_cents, description, created_at
		FROM ledger_entries
	`
	args := []any{}
	if fieldID != "" {
		query += " WHERE field_id = $1"
		args = append(args, fieldID)
	}
	query += " ORDER BY seq DESC"
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}
