package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"matchup/internal/events"
	"matchup/internal/models"
	"matchup/internal/store"
	"matchup/internal/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type MatchService struct {
	store             store.Store
	events            events.Publisher
	logger            logrus.FieldLogger
	defaultMaxPlayers int
	now               func() time.Time
}

func NewMatchService(st store.Store, publisher events.Publisher, logger logrus.FieldLogger, defaultMaxPlayers int) *MatchService {
	if defaultMaxPlayers <= 0 {
		defaultMaxPlayers = 14
	}
	return &MatchService{
		store:             st,
		events:            publisherOrNop(publisher),
		logger:            logger,
		defaultMaxPlayers: defaultMaxPlayers,
		now:               time.Now,
	}
}

func (s *MatchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	return s.store.ListMatches(ctx, "")
}

// ListMatchesForField keeps store order: newest created first, then seed order.
func (s *MatchService) ListMatchesForField(ctx context.Context, fieldID string) ([]models.Match, error) {
	return s.store.ListMatches(ctx, fieldID)
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (models.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	return match, mapNotFound(err, ErrMatchNotFound)
}

func (s *MatchService) ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error) {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}
	return s.store.ListAttendees(ctx, matchID)
}

type CreateMatchRequest struct {
	OrganizerID       string
	Title             string
	FieldID           string
	PerPlayerFeeCents int64
	MaxPlayers        int
	ScheduledAt       *time.Time
}

func (s *MatchService) CreateMatch(ctx context.Context, req CreateMatchRequest) (models.Match, error) {
	if err := validator.ValidateTitle(req.Title); err != nil {
		return models.Match{}, err
	}
	if err := validator.ValidateFee(req.PerPlayerFeeCents); err != nil {
		return models.Match{}, err
	}
	maxPlayers := req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = s.defaultMaxPlayers
	}
	if maxPlayers < 0 {
		return models.Match{}, ErrInvalidMaxPlayers
	}
	now := s.now().UTC()
	scheduledAt := now
	if req.ScheduledAt != nil {
		scheduledAt = req.ScheduledAt.UTC()
	}
	match := models.Match{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(req.Title),
		FieldID:           req.FieldID,
		OrganizerID:       req.OrganizerID,
		ScheduledAt:       scheduledAt,
		PerPlayerFeeCents: req.PerPlayerFeeCents,
		MaxPlayers:        maxPlayers,
		ConfirmedCount:    0,
		Status:            models.MatchPending,
	}
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.GetField(ctx, req.FieldID); err != nil {
			return mapNotFound(err, ErrFieldNotFound)
		}
		if err := tx.InsertMatch(ctx, match); err != nil {
			return err
		}
		return tx.LogAudit(ctx, auditEntry(req.OrganizerID, events.MatchCreated, "match", match.ID, map[string]any{
			"field_id":             match.FieldID,
			"per_player_fee_cents": match.PerPlayerFeeCents,
			"max_players":          match.MaxPlayers,
		}, now))
	})
	if err != nil {
		return models.Match{}, err
	}
	s.logger.WithFields(logrus.Fields{"match_id": match.ID, "field_id": match.FieldID}).Info("match created")
	s.events.Publish(events.Event{Type: events.MatchCreated, FieldID: match.FieldID, EntityID: match.ID, Payload: match, OccurredAt: now})
	return match, nil
}

type ConfirmResult struct {
	Match            models.Match
	AlreadyConfirmed bool
}

// ConfirmAndPay records playerID as an attendee and credits the field wallet
// with the per-player fee. Confirming again is a no-op.
func (s *MatchService) ConfirmAndPay(ctx context.Context, matchID, playerID string) (ConfirmResult, error) {
	var result ConfirmResult
	var wallet models.Wallet
	now := s.now().UTC()
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		match, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return mapNotFound(err, ErrMatchNotFound)
		}
		already, err := tx.HasAttendee(ctx, matchID, playerID)
		if err != nil {
			return err
		}
		if already {
			result = ConfirmResult{Match: match, AlreadyConfirmed: true}
			return nil
		}
		if match.Status == models.MatchCompleted {
			return ErrMatchClosed
		}
		if match.IsFull() {
			return ErrMatchFull
		}
		wallet, err = tx.LockWallet(ctx, match.FieldID)
		if err != nil {
			return mapNotFound(err, ErrWalletNotFound)
		}
		fee := match.PerPlayerFeeCents
		if err := tx.AddAttendee(ctx, models.Attendance{MatchID: matchID, PlayerID: playerID, PaidCents: fee, ConfirmedAt: now}); err != nil {
			return err
		}
		match.ConfirmedCount++
		if err := tx.UpdateMatch(ctx, match); err != nil {
			return err
		}
		if fee > 0 {
			wallet.BalanceCents += fee
			wallet.TotalEarnedCents += fee
			if err := tx.UpdateWallet(ctx, wallet); err != nil {
				return err
			}
			entries := transfer(uuid.NewString(), match.FieldID, models.PlayerAccount(playerID), models.WalletAccount(match.FieldID), fee, "Match fee "+match.ID, now)
			if err := ensureBalanced(entries); err != nil {
				return err
			}
			if err := tx.InsertLedgerEntries(ctx, entries); err != nil {
				return err
			}
		}
		result = ConfirmResult{Match: match}
		return tx.LogAudit(ctx, auditEntry(playerID, events.MatchConfirmed, "match", match.ID, map[string]any{
			"field_id":   match.FieldID,
			"paid_cents": fee,
		}, now))
	})
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent confirm by the same player won the insert.
		match, getErr := s.store.GetMatch(ctx, matchID)
		if getErr != nil {
			return ConfirmResult{}, mapNotFound(getErr, ErrMatchNotFound)
		}
		return ConfirmResult{Match: match, AlreadyConfirmed: true}, nil
	}
	if err != nil {
		return ConfirmResult{}, err
	}
	if result.AlreadyConfirmed {
		return result, nil
	}
	match := result.Match
	s.logger.WithFields(logrus.Fields{
		"match_id":     match.ID,
		"field_id":     match.FieldID,
		"player_id":    playerID,
		"amount_cents": match.PerPlayerFeeCents,
	}).Info("match confirmed and paid")
	s.events.Publish(events.Event{Type: events.MatchConfirmed, FieldID: match.FieldID, EntityID: match.ID, Payload: match, OccurredAt: now})
	if match.PerPlayerFeeCents > 0 {
		s.events.Publish(events.Event{Type: events.WalletUpdated, FieldID: wallet.FieldID, EntityID: wallet.FieldID, Payload: wallet, OccurredAt: now})
	}
	return result, nil
}

func (s *MatchService) UpdateMatchStatus(ctx context.Context, actor, matchID string, status models.MatchStatus) (models.Match, error) {
	if !status.Valid() {
		return models.Match{}, ErrInvalidStatus
	}
	var match models.Match
	now := s.now().UTC()
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		match, err = tx.LockMatch(ctx, matchID)
		if err != nil {
			return mapNotFound(err, ErrMatchNotFound)
		}
		if !match.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}
		from := match.Status
		match.Status = status
		if err := tx.UpdateMatch(ctx, match); err != nil {
			return err
		}
		return tx.LogAudit(ctx, auditEntry(actor, events.MatchStatusChanged, "match", match.ID, map[string]any{
			"from": from,
			"to":   status,
		}, now))
	})
	if err != nil {
		return models.Match{}, err
	}
	s.logger.WithFields(logrus.Fields{"match_id": match.ID, "status": match.Status}).Info("match status changed")
	s.events.Publish(events.Event{Type: events.MatchStatusChanged, FieldID: match.FieldID, EntityID: match.ID, Payload: match, OccurredAt: now})
	return match, nil
}
