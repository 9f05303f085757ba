package store

import (
	"context"
	"database/sql"

	"matchup/internal/models"
)

type WalletStore struct {
	db DB
}

const walletColumns = `field_id, balance_cents, pending_payout_cents, total_earned_cents, total_fees_cents`

func NewWalletStore(db DB) *WalletStore {
	return &WalletStore{db: db}
}

func (s *WalletStore) GetByField(ctx context.Context, fieldID string) (models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.GetContext(ctx, &wallet, `SELECT `+walletColumns+` FROM wallets WHERE field_id = $1`, fieldID)
	return wallet, notFound(err)
}

func (s *WalletStore) GetForUpdate(ctx context.Context, tx Getter, fieldID string) (models.Wallet, error) {
	var wallet models.Wallet
	err := tx.GetContext(ctx, &wallet, `SELECT `+walletColumns+` FROM wallets WHERE field_id = $1 FOR UPDATE`, fieldID)
	return wallet, notFound(err)
}

func (s *WalletStore) ListAll(ctx context.Context) ([]models.Wallet, error) {
	wallets := []models.Wallet{}
	err := s.db.SelectContext(ctx, &wallets, `
		SELECT w.field_id, w.balance_cents, w.pending_payout_cents, w.total_earned_cents, w.total_fees_cents
		FROM wallets w
		JOIN fields f ON f.id = w.field_id
		ORDER BY f.seq
	`)
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

func (s *WalletStore) Update(ctx context.Context, tx Execer, wallet models.Wallet) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance_cents = $1, pending_payout_cents = $2, total_earned_cents = $3, total_fees_cents = $4, updated_at = NOW()
		WHERE field_id = $5
	`, wallet.BalanceCents, wallet.PendingPayoutCents, wallet.TotalEarnedCents, wallet.TotalFeesCents, wallet.FieldID)
	return requireRow(res, err)
}

func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
