package handlers

import (
	"time"

	"matchup/internal/models"
	"matchup/internal/money"
	"matchup/internal/services"
)

type fieldView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	PricingDefault string  `json:"pricing_default"`
	ListingFee     string  `json:"listing_fee"`
}

func newFieldView(field models.Field) fieldView {
	return fieldView{
		ID:             field.ID,
		Name:           field.Name,
		Address:        field.Address,
		Lat:            field.Lat,
		Lng:            field.Lng,
		PricingDefault: money.FormatCents(field.PricingDefaultCents),
		ListingFee:     money.FormatCents(field.ListingFeeCents),
	}
}

type matchView struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	FieldID        string             `json:"field_id"`
	OrganizerID    string             `json:"organizer_id,omitempty"`
	ScheduledAt    time.Time          `json:"scheduled_at"`
	PerPlayerFee   string             `json:"per_player_fee"`
	MaxPlayers     int                `json:"max_players"`
	ConfirmedCount int                `json:"confirmed_count"`
	SpotsLeft      int                `json:"spots_left"`
	Status         models.MatchStatus `json:"status"`
}

func newMatchView(match models.Match) matchView {
	return matchView{
		ID:             match.ID,
		Title:          match.Title,
		FieldID:        match.FieldID,
		OrganizerID:    match.OrganizerID,
		ScheduledAt:    match.ScheduledAt,
		PerPlayerFee:   money.FormatCents(match.PerPlayerFeeCents),
		MaxPlayers:     match.MaxPlayers,
		ConfirmedCount: match.ConfirmedCount,
		SpotsLeft:      match.SpotsLeft(),
		Status:         match.Status,
	}
}

func newMatchViews(matches []models.Match) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, newMatchView(match))
	}
	return views
}

type walletView struct {
	FieldID       string `json:"field_id"`
	Balance       string `json:"balance"`
	PendingPayout string `json:"pending_payout"`
	TotalEarned   string `json:"total_earned"`
	TotalFees     string `json:"total_fees"`
}

func newWalletView(wallet models.Wallet) walletView {
	return walletView{
		FieldID:       wallet.FieldID,
		Balance:       money.FormatCents(wallet.BalanceCents),
		PendingPayout: money.FormatCents(wallet.PendingPayoutCents),
		TotalEarned:   money.FormatCents(wallet.TotalEarnedCents),
		TotalFees:     money.FormatCents(wallet.TotalFeesCents),
	}
}

type payoutView struct {
	ID          string              `json:"id"`
	FieldID     string              `json:"field_id"`
	ManagerName string              `json:"manager_name"`
	Amount      string              `json:"amount"`
	Reserved    string              `json:"reserved"`
	Status      models.PayoutStatus `json:"status"`
	RequestedAt time.Time           `json:"requested_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

func newPayoutView(payout models.PayoutRequest) payoutView {
	return payoutView{
		ID:          payout.ID,
		FieldID:     payout.FieldID,
		ManagerName: payout.ManagerName,
		Amount:      money.FormatCents(payout.AmountCents),
		Reserved:    money.FormatCents(payout.ReservedCents),
		Status:      payout.Status,
		RequestedAt: payout.RequestedAt,
		UpdatedAt:   payout.UpdatedAt,
	}
}

func newPayoutViews(payouts []models.PayoutRequest) []payoutView {
	views := make([]payoutView, 0, len(payouts))
	for _, payout := range payouts {
		views = append(views, newPayoutView(payout))
	}
	return views
}

type ledgerEntryView struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Account       string    `json:"account"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func newLedgerViews(entries []models.LedgerEntry) []ledgerEntryView {
	views := make([]ledgerEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, ledgerEntryView{
			ID:            entry.ID,
			TransactionID: entry.TransactionID,
			Account:       entry.Account,
			Amount:        money.FormatCents(entry.AmountCents),
			Description:   entry.Description,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return views
}

type driftView struct {
	FieldID       string `json:"field_id"`
	Balance       string `json:"balance"`
	LedgerBalance string `json:"ledger_balance"`
	PendingPayout string `json:"pending_payout"`
	LedgerReserve string `json:"ledger_reserve"`
	Balanced      bool   `json:"balanced"`
}

func newDriftViews(report []services.WalletDrift) []driftView {
	views := make([]driftView, 0, len(report))
	for _, drift := range report {
		views = append(views, driftView{
			FieldID:       drift.FieldID,
			Balance:       money.FormatCents(drift.BalanceCents),
			LedgerBalance: money.FormatCents(drift.LedgerBalanceCents),
			PendingPayout: money.FormatCents(drift.PendingPayoutCents),
			LedgerReserve: money.FormatCents(drift.LedgerReserveCents),
			Balanced:      drift.Balanced,
		})
	}
	return views
}
