package services

import (
	"context"
	"testing"

	"matchup/internal/events"
	"matchup/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePromotionDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	promotion, err := f.promotions.CreatePromotion(ctx, CreatePromotionRequest{FieldID: "field1", Title: "Happy Hour"})
	require.NoError(t, err)
	assert.Equal(t, "Custom field promotion", promotion.Description)
	assert.True(t, promotion.IsActive)
	assert.Nil(t, promotion.PromoCode)

	listed, err := f.promotions.ListPromotions(ctx, "field1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, promotion.ID, listed[0].ID)
	assert.Equal(t, []string{events.PromotionCreated}, f.events.types())
}

func TestCreatePromotionNormalizesCode(t *testing.T) {
	f := newFixture(t)
	discount := 15
	code := " late15 "
	inactive := false
	promotion, err := f.promotions.CreatePromotion(context.Background(), CreatePromotionRequest{
		FieldID: "field2", Title: "Late", DiscountPercent: &discount, PromoCode: &code, IsActive: &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, promotion.PromoCode)
	assert.Equal(t, "LATE15", *promotion.PromoCode)
	assert.False(t, promotion.IsActive)
}

func TestCreatePromotionValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tooMuch := 120
	badCode := "!!"

	_, err := f.promotions.CreatePromotion(ctx, CreatePromotionRequest{FieldID: "field1", Title: " "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = f.promotions.CreatePromotion(ctx, CreatePromotionRequest{FieldID: "field1", Title: "x", DiscountPercent: &tooMuch})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = f.promotions.CreatePromotion(ctx, CreatePromotionRequest{FieldID: "field1", Title: "x", PromoCode: &badCode})
	assert.ErrorIs(t, err, validator.ErrInvalidPromoCode)
	_, err = f.promotions.CreatePromotion(ctx, CreatePromotionRequest{FieldID: "ghost", Title: "x"})
	assert.ErrorIs(t, err, ErrFieldNotFound)

	all, err := f.promotions.ListPromotions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSetPromotionActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	promotion, err := f.promotions.SetPromotionActive(ctx, "mgr1", "promo1", false)
	require.NoError(t, err)
	assert.False(t, promotion.IsActive)

	stored, err := f.promotions.GetPromotion(ctx, "promo1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	_, err = f.promotions.SetPromotionActive(ctx, "mgr1", "ghost", true)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
	assert.Equal(t, []string{events.PromotionUpdated}, f.events.types())
}

func TestListAdsAndFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ads, err := f.promotions.ListAds(ctx, "field2")
	require.NoError(t, err)
	assert.Len(t, ads, 1)

	fields, err := f.fields.ListFields(ctx)
	require.NoError(t, err)
	assert.Len(t, fields, 2)
	_, err = f.fields.GetField(ctx, "nope")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
