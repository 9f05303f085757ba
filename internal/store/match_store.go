package store

import (
	"context"

	"matchup/internal/models"
)

type MatchStore struct {
	db DB
}

const matchColumns = `id, title, field_id, organizer_id, scheduled_at, per_player_fee_cents, max_players, confirmed_count, status`

func NewMatchStore(db DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) List(ctx context.Context, fieldID string) ([]models.Match, error) {
	matches := []models.Match{}
	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{}
	if fieldID != "" {
		query += " WHERE field_id = $1"
		args = append(args, fieldID)
	}
	query += " ORDER BY seq DESC"
	if err := s.db.SelectContext(ctx, &matches, query, args...); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MatchStore) GetByID(ctx context.Context, matchID string) (models.Match, error) {
	var match models.Match
	err := s.db.GetContext(ctx, &match, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID)
	return match, notFound(err)
}

func (s *MatchStore) GetForUpdate(ctx context.Context, tx Getter, matchID string) (models.Match, error) {
	var match models.Match
	err := tx.GetContext(ctx, &match, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, matchID)
	return match, notFound(err)
}

func (s *MatchStore) Create(ctx context.Context, tx Execer, match models.Match) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO matches (id, title, field_id, organizer_id, scheduled_at, per_player_fee_cents, max_players, confirmed_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, match.ID, match.Title, match.FieldID, match.OrganizerID, match.ScheduledAt, match.PerPlayerFeeCents, match.MaxPlayers, match.ConfirmedCount, string(match.Status))
	return err
}

func (s *MatchStore) Update(ctx context.Context, tx Execer, match models.Match) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE matches
		SET confirmed_count = $1, status = $2
		WHERE id = $3
	`, match.ConfirmedCount, string(match.Status), match.ID)
	return requireRow(res, err)
}

func (s *MatchStore) ListAttendees(ctx context.Context, matchID string) ([]models.Attendance, error) {
	attendees := []models.Attendance{}
	err := s.db.SelectContext(ctx, &attendees, `
		SELECT match_id, player_id, paid_cents, confirmed_at
		FROM match_attendees
		WHERE match_id = $1
		ORDER BY confirmed_at
	`, matchID)
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (s *MatchStore) HasAttendee(ctx context.Context, tx Getter, matchID, playerID string) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, `
		SELECT COUNT(1)
		FROM match_attendees
		WHERE match_id = $1 AND player_id = $2
	`, matchID, playerID)
	return count > 0, err
}

func (s *MatchStore) AddAttendee(ctx context.Context, tx Execer, attendance models.Attendance) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO match_attendees (match_id, player_id, paid_cents, confirmed_at)
		VALUES ($1, $2, $3, $4)
	`, attendance.MatchID, attendance.PlayerID, attendance.PaidCents, attendance.ConfirmedAt)
	return duplicate(err)
}
