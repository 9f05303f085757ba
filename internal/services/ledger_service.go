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

// LedgerService owns field wallets and payouts. Payout funds are reserved
// when the request is made: the amount leaves the balance and sits in the
// pending column until the payout is paid or rejected.
type LedgerService struct {
	store  store.Store
	events events.Publisher
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewLedgerService(st store.Store, publisher events.Publisher, logger logrus.FieldLogger) *LedgerService {
	return &LedgerService{
		store:  st,
		events: publisherOrNop(publisher),
		logger: logger,
		now:    time.Now,
	}
}

func (s *LedgerService) GetWallet(ctx context.Context, fieldID string) (models.Wallet, error) {
	wallet, err := s.store.GetWallet(ctx, fieldID)
	return wallet, mapNotFound(err, ErrWalletNotFound)
}

func (s *LedgerService) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	return s.store.ListWallets(ctx)
}

func (s *LedgerService) ListPayouts(ctx context.Context, fieldID string) ([]models.PayoutRequest, error) {
	return s.store.ListPayouts(ctx, fieldID)
}

func (s *LedgerService) ListLedger(ctx context.Context, fieldID string) ([]models.LedgerEntry, error) {
	return s.store.ListLedger(ctx, fieldID)
}

func (s *LedgerService) ListAudit(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListAudit(ctx, limit, offset)
}

type PayoutRequestInput struct {
	Actor       string
	FieldID     string
	ManagerName string
	AmountCents int64
}

func (s *LedgerService) RequestPayout(ctx context.Context, req PayoutRequestInput) (models.PayoutRequest, error) {
	if err := validator.ValidatePositiveAmount(req.AmountCents); err != nil {
		return models.PayoutRequest{}, err
	}
	now := s.now().UTC()
	payout := models.PayoutRequest{
		ID:            uuid.NewString(),
		FieldID:       req.FieldID,
		ManagerName:   strings.TrimSpace(req.ManagerName),
		AmountCents:   req.AmountCents,
		ReservedCents: req.AmountCents,
		Status:        models.PayoutRequested,
		RequestedAt:   now,
	}
	var wallet models.Wallet
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		wallet, err = tx.LockWallet(ctx, req.FieldID)
		if err != nil {
			return mapNotFound(err, ErrWalletNotFound)
		}
		if req.AmountCents > wallet.BalanceCents {
			return ErrInsufficientFunds
		}
		wallet.BalanceCents -= req.AmountCents
		wallet.PendingPayoutCents += req.AmountCents
		if err := tx.UpdateWallet(ctx, wallet); err != nil {
			return err
		}
		if err := tx.InsertPayout(ctx, payout); err != nil {
			return err
		}
		entries := transfer(payout.ID, req.FieldID, models.WalletAccount(req.FieldID), models.PayoutReserveAccount(req.FieldID), req.AmountCents, "Payout reserve", now)
		if err := ensureBalanced(entries); err != nil {
			return err
		}
		if err := tx.InsertLedgerEntries(ctx, entries); err != nil {
			return err
		}
		return tx.LogAudit(ctx, auditEntry(req.Actor, events.PayoutRequested, "payout", payout.ID, map[string]any{
			"field_id":     req.FieldID,
			"amount_cents": req.AmountCents,
		}, now))
	})
	if err != nil {
		return models.PayoutRequest{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"payout_id":    payout.ID,
		"field_id":     payout.FieldID,
		"amount_cents": payout.AmountCents,
	}).Info("payout requested")
	s.events.Publish(events.Event{Type: events.PayoutRequested, FieldID: payout.FieldID, EntityID: payout.ID, Payload: payout, OccurredAt: now})
	s.events.Publish(events.Event{Type: events.WalletUpdated, FieldID: wallet.FieldID, EntityID: wallet.FieldID, Payload: wallet, OccurredAt: now})
	return payout, nil
}

// TransitionPayout moves a payout along requested → processing → paid, or to
// rejected from either open state, settling the reservation as it goes.
func (s *LedgerService) TransitionPayout(ctx context.Context, actor, payoutID string, status models.PayoutStatus) (models.PayoutRequest, error) {
	if !status.Valid() {
		return models.PayoutRequest{}, ErrInvalidStatus
	}
	now := s.now().UTC()
	var payout models.PayoutRequest
	var wallet models.Wallet
	walletChanged := false
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		payout, err = tx.LockPayout(ctx, payoutID)
		if err != nil {
			return mapNotFound(err, ErrPayoutNotFound)
		}
		if !payout.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}
		from := payout.Status
		payout.Status = status
		payout.UpdatedAt = &now
		if err := tx.UpdatePayout(ctx, payout); err != nil {
			return err
		}
		if status.Terminal() {
			wallet, err = tx.LockWallet(ctx, payout.FieldID)
			if err != nil {
				return mapNotFound(err, ErrWalletNotFound)
			}
			settled := payout.ReservedCents
			if settled > wallet.PendingPayoutCents {
				return ErrUnbalancedLedger
			}
			wallet.PendingPayoutCents -= settled
			reserve := models.PayoutReserveAccount(payout.FieldID)
			var entries []models.LedgerEntry
			if status == models.PayoutPaid {
				entries = transfer(payout.ID, payout.FieldID, reserve, models.AccountPayoutClearing, settled, "Payout paid", now)
			} else {
				wallet.BalanceCents += settled
				entries = transfer(payout.ID, payout.FieldID, reserve, models.WalletAccount(payout.FieldID), settled, "Payout rejected", now)
			}
			if err := tx.UpdateWallet(ctx, wallet); err != nil {
				return err
			}
			if err := ensureBalanced(entries); err != nil {
				return err
			}
			if err := tx.InsertLedgerEntries(ctx, entries); err != nil {
				return err
			}
			walletChanged = true
		}
		return tx.LogAudit(ctx, auditEntry(actor, events.PayoutStatusChanged, "payout", payout.ID, map[string]any{
			"from": from,
			"to":   status,
		}, now))
	})
	if err != nil {
		return models.PayoutRequest{}, err
	}
	s.logger.WithFields(logrus.Fields{"payout_id": payout.ID, "status": payout.Status}).Info("payout status changed")
	s.events.Publish(events.Event{Type: events.PayoutStatusChanged, FieldID: payout.FieldID, EntityID: payout.ID, Payload: payout, OccurredAt: now})
	if walletChanged {
		s.events.Publish(events.Event{Type: events.WalletUpdated, FieldID: wallet.FieldID, EntityID: wallet.FieldID, Payload: wallet, OccurredAt: now})
	}
	return payout, nil
}

type WalletDrift struct {
	FieldID            string `json:"field_id"`
	BalanceCents       int64  `json:"balance_cents"`
	LedgerBalanceCents int64  `json:"ledger_balance_cents"`
	PendingPayoutCents int64  `json:"pending_payout_cents"`
	LedgerReserveCents int64  `json:"ledger_reserve_cents"`
	Balanced           bool   `json:"balanced"`
}

// Reconcile compares each wallet's columns with the ledger sums of its
// wallet and payout reserve accounts.
func (s *LedgerService) Reconcile(ctx context.Context) ([]WalletDrift, error) {
	wallets, err := s.store.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	report := make([]WalletDrift, 0, len(wallets))
	for _, wallet := range wallets {
		ledgerBalance, err := s.store.SumLedger(ctx, models.WalletAccount(wallet.FieldID))
		if err != nil {
			return nil, err
		}
		ledgerReserve, err := s.store.SumLedger(ctx, models.PayoutReserveAccount(wallet.FieldID))
		if err != nil {
			return nil, err
		}
		drift := WalletDrift{
			FieldID:            wallet.FieldID,
			BalanceCents:       wallet.BalanceCents,
			LedgerBalanceCents: ledgerBalance,
			PendingPayoutCents: wallet.PendingPayoutCents,
			LedgerReserveCents: ledgerReserve,
		}
		drift.Balanced = drift.BalanceCents == drift.LedgerBalanceCents && drift.PendingPayoutCents == drift.LedgerReserveCents
		if !drift.Balanced {
			s.logger.WithFields(logrus.Fields{
				"field_id":       wallet.FieldID,
				"balance_cents":  wallet.BalanceCents,
				"ledger_balance": ledgerBalance,
			}).Warn("wallet drift detected")
		}
		report = append(report, drift)
	}
	return report, nil
}
