package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title is too long")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidFee       = errors.New("fee must not be negative")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 100")
	ErrInvalidPromoCode = errors.New("invalid promo code")
	ErrInvalidName      = errors.New("invalid name")
)

const maxTitleLength = 120

var (
	promoCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)
	nameRegex      = regexp.MustCompile(`^[\p{L}0-9 .'_-]{1,60}$`)
)

func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	if len(trimmed) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func ValidatePositiveAmount(amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func ValidateFee(feeCents int64) error {
	if feeCents < 0 {
		return ErrInvalidFee
	}
	return nil
}

func ValidateDiscount(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// NormalizePromoCode trims and upper-cases a code before validating it.
func NormalizePromoCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !promoCodeRegex.MatchString(normalized) {
		return "", ErrInvalidPromoCode
	}
	return normalized, nil
}

func ValidateName(name string) error {
	if !nameRegex.MatchString(strings.TrimSpace(name)) {
		return ErrInvalidName
	}
	return nil
}
