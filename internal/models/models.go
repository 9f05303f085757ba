package models

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Role string

const (
	RolePlayer       Role = "player"
	RoleOrganizer    Role = "organizer"
	RoleFieldManager Role = "field_manager"
	RoleAdmin        Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RolePlayer, RoleOrganizer, RoleFieldManager, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

type Field struct {
	ID                  string  `db:"id" json:"id"`
	Name                string  `db:"name" json:"name"`
	Address             string  `db:"address" json:"address"`
	Lat                 float64 `db:"lat" json:"lat"`
	Lng                 float64 `db:"lng" json:"lng"`
	PricingDefaultCents int64   `db:"pricing_default_cents" json:"pricing_default_cents"`
	ListingFeeCents     int64   `db:"listing_fee_cents" json:"listing_fee_cents"`
}

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchConfirmed MatchStatus = "confirmed"
	MatchCompleted MatchStatus = "completed"
)

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchPending:   {MatchConfirmed},
	MatchConfirmed: {MatchCompleted},
}

func (s MatchStatus) Valid() bool {
	return s == MatchPending || s == MatchConfirmed || s == MatchCompleted
}

func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	return contains(matchTransitions[s], next)
}

type Match struct {
	ID                string      `db:"id" json:"id"`
	Title             string      `db:"title" json:"title"`
	FieldID           string      `db:"field_id" json:"field_id"`
	OrganizerID       string      `db:"organizer_id" json:"organizer_id,omitempty"`
	ScheduledAt       time.Time   `db:"scheduled_at" json:"scheduled_at"`
	PerPlayerFeeCents int64       `db:"per_player_fee_cents" json:"per_player_fee_cents"`
	MaxPlayers        int         `db:"max_players" json:"max_players"`
	ConfirmedCount    int         `db:"confirmed_count" json:"confirmed_count"`
	Status            MatchStatus `db:"status" json:"status"`
}

func (m Match) IsFull() bool {
	return m.ConfirmedCount >= m.MaxPlayers
}

func (m Match) SpotsLeft() int {
	if m.IsFull() {
		return 0
	}
	return m.MaxPlayers - m.ConfirmedCount
}

type Attendance struct {
	MatchID     string    `db:"match_id" json:"match_id"`
	PlayerID    string    `db:"player_id" json:"player_id"`
	PaidCents   int64     `db:"paid_cents" json:"paid_cents"`
	ConfirmedAt time.Time `db:"confirmed_at" json:"confirmed_at"`
}

type Wallet struct {
	FieldID            string `db:"field_id" json:"field_id"`
	BalanceCents       int64  `db:"balance_cents" json:"balance_cents"`
	PendingPayoutCents int64  `db:"pending_payout_cents" json:"pending_payout_cents"`
	TotalEarnedCents   int64  `db:"total_earned_cents" json:"total_earned_cents"`
	TotalFeesCents     int64  `db:"total_fees_cents" json:"total_fees_cents"`
}

type PayoutStatus string

const (
	PayoutRequested  PayoutStatus = "requested"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
	PayoutRejected   PayoutStatus = "rejected"
)

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutRequested:  {PayoutProcessing, PayoutRejected},
	PayoutProcessing: {PayoutPaid, PayoutRejected},
}

func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutRequested, PayoutProcessing, PayoutPaid, PayoutRejected:
		return true
	}
	return false
}

func (s PayoutStatus) Terminal() bool {
	return s == PayoutPaid || s == PayoutRejected
}

func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	return contains(payoutTransitions[s], next)
}

type PayoutRequest struct {
	ID            string       `db:"id" json:"id"`
	FieldID       string       `db:"field_id" json:"field_id"`
	ManagerName   string       `db:"manager_name" json:"manager_name"`
	AmountCents   int64        `db:"amount_cents" json:"amount_cents"`
	// ReservedCents is what the request moved into the field's payout reserve.
	ReservedCents int64        `db:"reserved_cents" json:"reserved_cents"`
	Status        PayoutStatus `db:"status" json:"status"`
	RequestedAt   time.Time    `db:"requested_at" json:"requested_at"`
	UpdatedAt     *time.Time   `db:"updated_at" json:"updated_at,omitempty"`
}

type Promotion struct {
	ID              string  `db:"id" json:"id"`
	FieldID         string  `db:"field_id" json:"field_id"`
	Title           string  `db:"title" json:"title"`
	Description     string  `db:"description" json:"description"`
	DiscountPercent *int    `db:"discount_percent" json:"discount_percent,omitempty"`
	PromoCode       *string `db:"promo_code" json:"promo_code,omitempty"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

type Ad struct {
	ID          string  `db:"id" json:"id"`
	FieldID     *string `db:"field_id" json:"field_id,omitempty"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

type LedgerEntry struct {
	ID            string    `db:"id" json:"id"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Account       string    `db:"account" json:"account"`
	FieldID       *string   `db:"field_id" json:"field_id,omitempty"`
	AmountCents   int64     `db:"amount_cents" json:"amount_cents"`
	Description   string    `db:"description" json:"description"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   string    `db:"entity_id" json:"entity_id"`
	Data       string    `db:"data" json:"data"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Ledger account names.
const AccountOpening = "opening"
const AccountPayoutClearing = "payout_clearing"

func WalletAccount(fieldID string) string {
	return "wallet:" + fieldID
}

func PayoutReserveAccount(fieldID string) string {
	return "payout_reserve:" + fieldID
}

func PlayerAccount(playerID string) string {
	return "player:" + playerID
}

func contains[T comparable](values []T, target T) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
