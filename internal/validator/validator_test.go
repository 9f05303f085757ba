package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Sunday 7v7"))
	assert.ErrorIs(t, ValidateTitle(""), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateTitle("   \t"), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateTitle(strings.Repeat("x", 121)), ErrTitleTooLong)
}

func TestValidateAmounts(t *testing.T) {
	assert.NoError(t, ValidatePositiveAmount(1))
	assert.ErrorIs(t, ValidatePositiveAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidatePositiveAmount(-100), ErrInvalidAmount)
	assert.NoError(t, ValidateFee(0))
	assert.ErrorIs(t, ValidateFee(-1), ErrInvalidFee)
}

func TestValidateDiscount(t *testing.T) {
	assert.NoError(t, ValidateDiscount(0))
	assert.NoError(t, ValidateDiscount(100))
	assert.ErrorIs(t, ValidateDiscount(101), ErrInvalidDiscount)
	assert.ErrorIs(t, ValidateDiscount(-1), ErrInvalidDiscount)
}

func TestNormalizePromoCode(t *testing.T) {
	code, err := NormalizePromoCode("  early10 ")
	require.NoError(t, err)
	assert.Equal(t, "EARLY10", code)
	_, err = NormalizePromoCode("a b")
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice Manager"))
	assert.NoError(t, ValidateName("Zoë O'Neil"))
	assert.ErrorIs(t, ValidateName(""), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("<script>"), ErrInvalidName)
}
