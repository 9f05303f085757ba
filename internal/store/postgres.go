package store

import (
	"context"

	"matchup/internal/db"
	"matchup/internal/models"

	"github.com/jmoiron/sqlx"
)

type pgStores struct {
	fields     *FieldStore
	matches    *MatchStore
	wallets    *WalletStore
	payouts    *PayoutStore
	promotions *PromotionStore
	ledger     *LedgerStore
	audit      *AuditStore
}

func newPGStores(q DB) pgStores {
	return pgStores{
		fields:     NewFieldStore(q),
		matches:    NewMatchStore(q),
		wallets:    NewWalletStore(q),
		payouts:    NewPayoutStore(q),
		promotions: NewPromotionStore(q),
		ledger:     NewLedgerStore(q),
		audit:      NewAuditStore(q),
	}
}

func (p pgStores) ListFields(ctx context.Context) ([]models.Field, error) {
	return p.fields.List(ctx)
}

func (p pgStores) GetField(ctx context.Context, fieldID string) (models.Field, error) {
	return p.fields.GetByID(ctx, fieldID)
}

func (p pgStores) ListMatches(ctx context.Context, fieldID string) ([]models.Match, error) {
	return p.matches.List(ctx, fieldID)
}

func (p pgStores) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	return p.matches.GetByID(ctx, matchID)
}

func (p pgStores) ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error) {
	return p.matches.ListAttendees(ctx, matchID)
}

func (p pgStores) GetWallet(ctx context.Context, fieldID string) (models.Wallet, error) {
	return p.wallets.GetByField(ctx, fieldID)
}

func (p pgStores) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	return p.wallets.ListAll(ctx)
}

func (p pgStores) ListPayouts(ctx context.Context, fieldID string) ([]models.PayoutRequest, error) {
	return p.payouts.List(ctx, fieldID)
}

func (p pgStores) GetPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error) {
	return p.payouts.GetByID(ctx, payoutID)
}

func (p pgStores) ListPromotions(ctx context.Context, fieldID string) ([]models.Promotion, error) {
	return p.promotions.List(ctx, fieldID)
}

func (p pgStores) GetPromotion(ctx context.Context, promotionID string) (models.Promotion, error) {
	return p.promotions.GetByID(ctx, promotionID)
}

func (p pgStores) ListAds(ctx context.Context, fieldID string) ([]models.Ad, error) {
	return p.fields.ListAds(ctx, fieldID)
}

func (p pgStores) ListLedger(ctx context.Context, fieldID string) ([]models.LedgerEntry, error) {
	return p.ledger.ListByField(ctx, fieldID)
}

func (p pgStores) SumLedger(ctx context.Context, account string) (int64, error) {
	return p.ledger.SumByAccount(ctx, account)
}

func (p pgStores) ListAudit(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return p.audit.List(ctx, limit, offset)
}

// PostgresStore serves reads from the pool and runs writes through the
// serializable retry runner.
type PostgresStore struct {
	pgStores
	runner db.TxRunner
}

func NewPostgresStore(database DB, runner db.TxRunner) *PostgresStore {
	return &PostgresStore{pgStores: newPGStores(database), runner: runner}
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(Tx) error) error {
	err := s.runner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(newPGTx(tx))
	})
	// Concurrent inserts of the same key can also surface at commit.
	return duplicate(err)
}

type pgTx struct {
	pgStores
	tx DB
}

func newPGTx(tx DB) *pgTx {
	return &pgTx{pgStores: newPGStores(tx), tx: tx}
}

func (t *pgTx) LockMatch(ctx context.Context, matchID string) (models.Match, error) {
	return t.matches.GetForUpdate(ctx, t.tx, matchID)
}

func (t *pgTx) LockWallet(ctx context.Context, fieldID string) (models.Wallet, error) {
	return t.wallets.GetForUpdate(ctx, t.tx, fieldID)
}

func (t *pgTx) LockPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error) {
	return t.payouts.GetForUpdate(ctx, t.tx, payoutID)
}

func (t *pgTx) LockPromotion(ctx context.Context, promotionID string) (models.Promotion, error) {
	return t.promotions.GetForUpdate(ctx, t.tx, promotionID)
}

func (t *pgTx) InsertMatch(ctx context.Context, match models.Match) error {
	return t.matches.Create(ctx, t.tx, match)
}

func (t *pgTx) UpdateMatch(ctx context.Context, match models.Match) error {
	return t.matches.Update(ctx, t.tx, match)
}

func (t *pgTx) HasAttendee(ctx context.Context, matchID, playerID string) (bool, error) {
	return t.matches.HasAttendee(ctx, t.tx, matchID, playerID)
}

func (t *pgTx) AddAttendee(ctx context.Context, attendance models.Attendance) error {
	return t.matches.AddAttendee(ctx, t.tx, attendance)
}

func (t *pgTx) UpdateWallet(ctx context.Context, wallet models.Wallet) error {
	return t.wallets.Update(ctx, t.tx, wallet)
}

func (t *pgTx) InsertPayout(ctx context.Context, payout models.PayoutRequest) error {
	return t.payouts.Create(ctx, t.tx, payout)
}

func (t *pgTx) UpdatePayout(ctx context.Context, payout models.PayoutRequest) error {
	return t.payouts.UpdateStatus(ctx, t.tx, payout)
}

func (t *pgTx) InsertPromotion(ctx context.Context, promotion models.Promotion) error {
	return t.promotions.Create(ctx, t.tx, promotion)
}

func (t *pgTx) UpdatePromotion(ctx context.Context, promotion models.Promotion) error {
	return t.promotions.Update(ctx, t.tx, promotion)
}

func (t *pgTx) InsertLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error {
	return t.ledger.InsertEntries(ctx, t.tx, entries)
}

func (t *pgTx) LogAudit(ctx context.Context, entry models.AuditLog) error {
	return t.audit.Log(ctx, t.tx, entry)
}
