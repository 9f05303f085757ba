package store

import (
	"context"
	"sync"
	"time"

	"matchup/internal/models"
)

// MemoryStore keeps every collection in process. Writers are serialized by
// mu; a transaction works on a copy and is swapped in only when fn succeeds.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

type memoryState struct {
	fields     []models.Field
	matches    []models.Match
	attendees  map[string][]models.Attendance
	wallets    []models.Wallet
	payouts    []models.PayoutRequest
	promotions []models.Promotion
	ads        []models.Ad
	ledger     []models.LedgerEntry
	audit      []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{attendees: map[string][]models.Attendance{}}}
}

// NewSeededMemoryStore loads seed in order and books opening ledger entries.
func NewSeededMemoryStore(seed Seed, now time.Time) *MemoryStore {
	s := NewMemoryStore()
	st := s.state
	st.fields = append(st.fields, seed.Fields...)
	st.matches = append(st.matches, seed.Matches...)
	st.wallets = append(st.wallets, seed.Wallets...)
	st.payouts = append(st.payouts, seed.Payouts...)
	st.promotions = append(st.promotions, seed.Promotions...)
	st.ads = append(st.ads, seed.Ads...)
	st.ledger = append(st.ledger, OpeningEntries(seed.Wallets, now.UTC())...)
	return s
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.state.clone()
	if err := fn(&memoryTx{memoryReader{state: working}}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *MemoryStore) read() memoryReader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memoryReader{state: s.state}
}

func (s *MemoryStore) ListFields(ctx context.Context) ([]models.Field, error) {
	return s.read().ListFields(ctx)
}

func (s *MemoryStore) GetField(ctx context.Context, fieldID string) (models.Field, error) {
	return s.read().GetField(ctx, fieldID)
}

func (s *MemoryStore) ListMatches(ctx context.Context, fieldID string) ([]models.Match, error) {
	return s.read().ListMatches(ctx, fieldID)
}

func (s *MemoryStore) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	return s.read().GetMatch(ctx, matchID)
}

func (s *MemoryStore) ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error) {
	return s.read().ListAttendees(ctx, matchID)
}

func (s *MemoryStore) GetWallet(ctx context.Context, fieldID string) (models.Wallet, error) {
	return s.read().GetWallet(ctx, fieldID)
}

func (s *MemoryStore) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	return s.read().ListWallets(ctx)
}

func (s *MemoryStore) ListPayouts(ctx context.Context, fieldID string) ([]models.PayoutRequest, error) {
	return s.read().ListPayouts(ctx, fieldID)
}

func (s *MemoryStore) GetPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error) {
	return s.read().GetPayout(ctx, payoutID)
}

func (s *MemoryStore) ListPromotions(ctx context.Context, fieldID string) ([]models.Promotion, error) {
	return s.read().ListPromotions(ctx, fieldID)
}

func (s *MemoryStore) GetPromotion(ctx context.Context, promotionID string) (models.Promotion, error) {
	return s.read().GetPromotion(ctx, promotionID)
}

func (s *MemoryStore) ListAds(ctx context.Context, fieldID string) ([]models.Ad, error) {
	return s.read().ListAds(ctx, fieldID)
}

func (s *MemoryStore) ListLedger(ctx context.Context, fieldID string) ([]models.LedgerEntry, error) {
	return s.read().ListLedger(ctx, fieldID)
}

func (s *MemoryStore) SumLedger(ctx context.Context, account string) (int64, error) {
	return s.read().SumLedger(ctx, account)
}

func (s *MemoryStore) ListAudit(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.read().ListAudit(ctx, limit, offset)
}

// memoryReader reads one immutable snapshot. Committed states are never
// mutated in place, so readers need no lock after grabbing the pointer.
type memoryReader struct {
	state *memoryState
}

func (r memoryReader) ListFields(context.Context) ([]models.Field, error) {
	return append([]models.Field{}, r.state.fields...), nil
}

func (r memoryReader) GetField(_ context.Context, fieldID string) (models.Field, error) {
	for _, field := range r.state.fields {
		if field.ID == fieldID {
			return field, nil
		}
	}
	return models.Field{}, ErrNotFound
}

func (r memoryReader) ListMatches(_ context.Context, fieldID string) ([]models.Match, error) {
	matches := []models.Match{}
	for _, match := range r.state.matches {
		if fieldID == "" || match.FieldID == fieldID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (r memoryReader) GetMatch(_ context.Context, matchID string) (models.Match, error) {
	if i := r.state.matchIndex(matchID); i >= 0 {
		return r.state.matches[i], nil
	}
	return models.Match{}, ErrNotFound
}

func (r memoryReader) ListAttendees(_ context.Context, matchID string) ([]models.Attendance, error) {
	return append([]models.Attendance{}, r.state.attendees[matchID]...), nil
}

func (r memoryReader) GetWallet(_ context.Context, fieldID string) (models.Wallet, error) {
	if i := r.state.walletIndex(fieldID); i >= 0 {
		return r.state.wallets[i], nil
	}
	return models.Wallet{}, ErrNotFound
}

func (r memoryReader) ListWallets(context.Context) ([]models.Wallet, error) {
	return append([]models.Wallet{}, r.state.wallets...), nil
}

func (r memoryReader) ListPayouts(_ context.Context, fieldID string) ([]models.PayoutRequest, error) {
	payouts := []models.PayoutRequest{}
	for _, payout := range r.state.payouts {
		if fieldID == "" || payout.FieldID == fieldID {
			payouts = append(payouts, payout)
		}
	}
	return payouts, nil
}

func (r memoryReader) GetPayout(_ context.Context, payoutID string) (models.PayoutRequest, error) {
	if i := r.state.payoutIndex(payoutID); i >= 0 {
		return r.state.payouts[i], nil
	}
	return models.PayoutRequest{}, ErrNotFound
}

func (r memoryReader) ListPromotions(_ context.Context, fieldID string) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	for _, promotion := range r.state.promotions {
		if fieldID == "" || promotion.FieldID == fieldID {
			promotions = append(promotions, promotion)
		}
	}
	return promotions, nil
}

func (r memoryReader) GetPromotion(_ context.Context, promotionID string) (models.Promotion, error) {
	if i := r.state.promotionIndex(promotionID); i >= 0 {
		return r.state.promotions[i], nil
	}
	return models.Promotion{}, ErrNotFound
}

func (r memoryReader) ListAds(_ context.Context, fieldID string) ([]models.Ad, error) {
	ads := []models.Ad{}
	for _, ad := range r.state.ads {
		if fieldID == "" || ad.FieldID == nil || *ad.FieldID == fieldID {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

func (r memoryReader) ListLedger(_ context.Context, fieldID string) ([]models.LedgerEntry, error) {
	entries := []models.LedgerEntry{}
	for i := len(r.state.ledger) - 1; i >= 0; i-- {
		entry := r.state.ledger[i]
		if fieldID == "" || (entry.FieldID != nil && *entry.FieldID == fieldID) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r memoryReader) SumLedger(_ context.Context, account string) (int64, error) {
	var sum int64
	for _, entry := range r.state.ledger {
		if entry.Account == account {
			sum += entry.AmountCents
		}
	}
	return sum, nil
}

func (r memoryReader) ListAudit(_ context.Context, limit, offset int) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	for i := len(r.state.audit) - 1 - offset; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, r.state.audit[i])
	}
	return logs, nil
}

type memoryTx struct {
	memoryReader
}

func (t *memoryTx) LockMatch(ctx context.Context, matchID string) (models.Match, error) {
	return t.GetMatch(ctx, matchID)
}

func (t *memoryTx) LockWallet(ctx context.Context, fieldID string) (models.Wallet, error) {
	return t.GetWallet(ctx, fieldID)
}

func (t *memoryTx) LockPayout(ctx context.Context, payoutID string) (models.PayoutRequest, error) {
	return t.GetPayout(ctx, payoutID)
}

func (t *memoryTx) LockPromotion(ctx context.Context, promotionID string) (models.Promotion, error) {
	return t.GetPromotion(ctx, promotionID)
}

func (t *memoryTx) InsertMatch(_ context.Context, match models.Match) error {
	t.state.matches = prepend(t.state.matches, match)
	return nil
}

func (t *memoryTx) UpdateMatch(_ context.Context, match models.Match) error {
	i := t.state.matchIndex(match.ID)
	if i < 0 {
		return ErrNotFound
	}
	t.state.matches[i] = match
	return nil
}

func (t *memoryTx) HasAttendee(_ context.Context, matchID, playerID string) (bool, error) {
	for _, attendance := range t.state.attendees[matchID] {
		if attendance.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) AddAttendee(ctx context.Context, attendance models.Attendance) error {
	if exists, _ := t.HasAttendee(ctx, attendance.MatchID, attendance.PlayerID); exists {
		return ErrDuplicate
	}
	t.state.attendees[attendance.MatchID] = append(t.state.attendees[attendance.MatchID], attendance)
	return nil
}

func (t *memoryTx) UpdateWallet(_ context.Context, wallet models.Wallet) error {
	i := t.state.walletIndex(wallet.FieldID)
	if i < 0 {
		return ErrNotFound
	}
	t.state.wallets[i] = wallet
	return nil
}

func (t *memoryTx) InsertPayout(_ context.Context, payout models.PayoutRequest) error {
	t.state.payouts = prepend(t.state.payouts, payout)
	return nil
}

func (t *memoryTx) UpdatePayout(_ context.Context, payout models.PayoutRequest) error {
	i := t.state.payoutIndex(payout.ID)
	if i < 0 {
		return ErrNotFound
	}
	t.state.payouts[i] = payout
	return nil
}

func (t *memoryTx) InsertPromotion(_ context.Context, promotion models.Promotion) error {
	t.state.promotions = prepend(t.state.promotions, promotion)
	return nil
}

func (t *memoryTx) UpdatePromotion(_ context.Context, promotion models.Promotion) error {
	i := t.state.promotionIndex(promotion.ID)
	if i < 0 {
		return ErrNotFound
	}
	t.state.promotions[i] = promotion
	return nil
}

func (t *memoryTx) InsertLedgerEntries(_ context.Context, entries []models.LedgerEntry) error {
	t.state.ledger = append(t.state.ledger, entries...)
	return nil
}

func (t *memoryTx) LogAudit(_ context.Context, entry models.AuditLog) error {
	t.state.audit = append(t.state.audit, entry)
	return nil
}

// clone copies the mutable collections. Append-only ones (attendees, ledger,
// audit) share their backing arrays: WithTx serializes writers, and a
// committed state never reads past its own length, so a transaction's appends
// stay invisible until the swap.
func (st *memoryState) clone() *memoryState {
	attendees := make(map[string][]models.Attendance, len(st.attendees))
	for matchID, list := range st.attendees {
		attendees[matchID] = list
	}
	return &memoryState{
		fields:     append([]models.Field{}, st.fields...),
		matches:    append([]models.Match{}, st.matches...),
		attendees:  attendees,
		wallets:    append([]models.Wallet{}, st.wallets...),
		payouts:    append([]models.PayoutRequest{}, st.payouts...),
		promotions: append([]models.Promotion{}, st.promotions...),
		ads:        append([]models.Ad{}, st.ads...),
		ledger:     st.ledger,
		audit:      st.audit,
	}
}

func (st *memoryState) matchIndex(matchID string) int {
	for i, match := range st.matches {
		if match.ID == matchID {
			return i
		}
	}
	return -1
}

func (st *memoryState) walletIndex(fieldID string) int {
	for i, wallet := range st.wallets {
		if wallet.FieldID == fieldID {
			return i
		}
	}
	return -1
}

func (st *memoryState) payoutIndex(payoutID string) int {
	for i, payout := range st.payouts {
		if payout.ID == payoutID {
			return i
		}
	}
	return -1
}

func (st *memoryState) promotionIndex(promotionID string) int {
	for i, promotion := range st.promotions {
		if promotion.ID == promotionID {
			return i
		}
	}
	return -1
}

func prepend[T any](values []T, value T) []T {
	return append([]T{value}, values...)
}
