package store

import (
	"time"

	"matchup/internal/models"
)

type Seed struct {
	Fields     []models.Field
	Matches    []models.Match
	Wallets    []models.Wallet
	Payouts    []models.PayoutRequest
	Promotions []models.Promotion
	Ads        []models.Ad
}

// DefaultSeed is the demo data set every fresh process starts with.
func DefaultSeed(now time.Time) Seed {
	now = now.UTC()
	return Seed{
		Fields: []models.Field{
			{ID: "field1", Name: "Downtown Arena", Address: "123 Main St", Lat: -26.2041, Lng: 28.0473, PricingDefaultCents: 5000, ListingFeeCents: 1000},
			{ID: "field2", Name: "Lakeside Pitch", Address: "456 Lake Rd", Lat: -26.1, Lng: 28.05, PricingDefaultCents: 6000, ListingFeeCents: 1200},
		},
		Matches: []models.Match{
			{ID: "m1", Title: "Sunday 7v7", FieldID: "field1", ScheduledAt: now, PerPlayerFeeCents: 700, MaxPlayers: 14, ConfirmedCount: 6, Status: models.MatchPending},
			{ID: "m2", Title: "Friday Night Game", FieldID: "field2", ScheduledAt: now, PerPlayerFeeCents: 800, MaxPlayers: 14, ConfirmedCount: 10, Status: models.MatchConfirmed},
		},
		Wallets: []models.Wallet{
			{FieldID: "field1", BalanceCents: 25000, PendingPayoutCents: 5000, TotalEarnedCents: 80000, TotalFeesCents: 3000},
			{FieldID: "field2", BalanceCents: 32000, PendingPayoutCents: 0, TotalEarnedCents: 100000, TotalFeesCents: 4500},
		},
		Payouts: []models.PayoutRequest{
			// p1 is only backed by the seeded pending amount.
			{ID: "p1", FieldID: "field1", ManagerName: "Alice Manager", AmountCents: 10000, ReservedCents: 5000, Status: models.PayoutRequested, RequestedAt: now},
		},
		Promotions: []models.Promotion{
			{ID: "promo1", FieldID: "field1", Title: "Early Bird 10% Off", Description: "Book before Friday 5pm and get 10% off.", DiscountPercent: intPtr(10), PromoCode: stringPtr("EARLY10"), IsActive: true},
		},
		Ads: []models.Ad{
			{ID: "ad1", FieldID: stringPtr("field1"), Title: "Downtown Arena Promo", Description: "Prime slots available this week!", IsActive: true},
			{ID: "ad2", Title: "Sponsor: Local Sports Shop", Description: "Get 15% off gear with code MATCHUP.", IsActive: true},
		},
	}
}

// OpeningEntries books the seeded wallet balances against the opening
// account so the ledger reconciles from the first request.
func OpeningEntries(wallets []models.Wallet, now time.Time) []models.LedgerEntry {
	var entries []models.LedgerEntry
	for _, wallet := range wallets {
		fieldID := wallet.FieldID
		transactionID := "opening-" + fieldID
		entries = append(entries, models.LedgerEntry{
			ID:            transactionID + "-debit",
			TransactionID: transactionID,
			Account:       models.AccountOpening,
			FieldID:       &fieldID,
			AmountCents:   -(wallet.BalanceCents + wallet.PendingPayoutCents),
			Description:   "Opening balance debit",
			CreatedAt:     now,
		}, models.LedgerEntry{
			ID:            transactionID + "-wallet",
			TransactionID: transactionID,
			Account:       models.WalletAccount(fieldID),
			FieldID:       &fieldID,
			AmountCents:   wallet.BalanceCents,
			Description:   "Opening balance credit",
			CreatedAt:     now,
		})
		if wallet.PendingPayoutCents > 0 {
			entries = append(entries, models.LedgerEntry{
				ID:            transactionID + "-reserve",
				TransactionID: transactionID,
				Account:       models.PayoutReserveAccount(fieldID),
				FieldID:       &fieldID,
				AmountCents:   wallet.PendingPayoutCents,
				Description:   "Opening payout reserve",
				CreatedAt:     now,
			})
		}
	}
	return entries
}

func intPtr(value int) *int {
	return &value
}

func stringPtr(value string) *string {
	return &value
}
