package handlers

import (
	"strings"

	"matchup/internal/money"
	"matchup/internal/validator"
)

// parseAmount reads a positive major-unit amount ("100", "7.50").
func parseAmount(raw string) (int64, error) {
	amount, err := money.ParseMajor(raw)
	if err != nil || amount <= 0 {
		return 0, validator.ErrInvalidAmount
	}
	return amount, nil
}

// parseFee reads a per-player fee. An empty fee means a free match.
func parseFee(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	fee, err := money.ParseMajor(raw)
	if err != nil {
		return 0, validator.ErrInvalidFee
	}
	return fee, nil
}
