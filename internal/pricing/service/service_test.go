package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/btcforcorps/orangepages/internal/config"
	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	pricingrepo "github.com/btcforcorps/orangepages/internal/pricing/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// failingThresholdRepo wraps the real repository but fails threshold reads.
type failingThresholdRepo struct {
	pricingdomain.Repository
}

func (f *failingThresholdRepo) ListActiveThresholds(ctx context.Context, db *gorm.DB) ([]pricingdomain.PricingThreshold, error) {
	return nil, errors.New("connection reset")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&pricingdomain.Benefit{},
		&pricingdomain.PricingThreshold{},
	))
	return db
}

func newService(t *testing.T, db *gorm.DB, repo pricingdomain.Repository) pricingdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewBenefitsConfigHolder()
	require.NoError(t, err)

	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repo,
		Benefits: holder,
	})
}

func seedBenefit(t *testing.T, db *gorm.DB, id int64, price float64) string {
	t.Helper()
	require.NoError(t, db.Create(&pricingdomain.Benefit{
		ID:        snowflake.ID(id),
		Code:      snowflake.ID(id).String(),
		Name:      "benefit",
		BasePrice: price,
		Active:    true,
	}).Error)
	return snowflake.ID(id).String()
}

func TestQuote_AppliesBestThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, pricingrepo.Provide())
	ctx := context.Background()

	a := seedBenefit(t, db, 1, 100)
	b := seedBenefit(t, db, 2, 200)

	_, err := svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdBenefitCount, Value: 2, DiscountPercentage: 5, IsActive: true,
	})
	require.NoError(t, err)
	_, err = svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdTotalValue, Value: 250, DiscountPercentage: 10, IsActive: true, DisplayOrder: 1,
	})
	require.NoError(t, err)

	quote, err := svc.Quote(ctx, pricingdomain.QuoteRequest{BenefitIDs: []string{a, b}})
	require.NoError(t, err)

	assert.Equal(t, 300.0, quote.BenefitTotal)
	assert.Len(t, quote.AppliedThresholds, 2)
	assert.Equal(t, 10.0, quote.MaxDiscount)
	assert.Equal(t, 270.0, quote.DiscountedBenefitTotal)
	assert.Equal(t, 30.0, quote.Savings)
}

func TestQuote_InactiveThresholdIgnored(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, pricingrepo.Provide())
	ctx := context.Background()

	a := seedBenefit(t, db, 3, 500)

	_, err := svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdTotalValue, Value: 100, DiscountPercentage: 20, IsActive: false,
	})
	require.NoError(t, err)

	quote, err := svc.Quote(ctx, pricingdomain.QuoteRequest{BenefitIDs: []string{a}})
	require.NoError(t, err)
	assert.Zero(t, quote.MaxDiscount)
	assert.Equal(t, 500.0, quote.DiscountedBenefitTotal)
}

func TestQuote_ThresholdFetchFailureDegradesToFullPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, &failingThresholdRepo{Repository: pricingrepo.Provide()})
	ctx := context.Background()

	a := seedBenefit(t, db, 4, 100)
	b := seedBenefit(t, db, 5, 200)

	quote, err := svc.Quote(ctx, pricingdomain.QuoteRequest{BenefitIDs: []string{a, b}})
	require.NoError(t, err)

	assert.Equal(t, 300.0, quote.BenefitTotal)
	assert.Empty(t, quote.AppliedThresholds)
	assert.Zero(t, quote.MaxDiscount)
	assert.Equal(t, 300.0, quote.DiscountedBenefitTotal)
}

func TestQuote_UnknownBenefit(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, pricingrepo.Provide())

	_, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		BenefitIDs: []string{snowflake.ID(999).String()},
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidBenefit)
}

func TestThresholdValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db, pricingrepo.Provide())
	ctx := context.Background()

	_, err := svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdType("loyalty"), Value: 1, DiscountPercentage: 5,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidThresholdType)

	_, err = svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdBenefitCount, Value: 1, DiscountPercentage: 120,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidDiscount)

	// tier_based thresholds may be stored even though the calculator
	// never matches them.
	_, err = svc.CreateThreshold(ctx, pricingdomain.UpsertThresholdRequest{
		Type: pricingdomain.ThresholdTierBased, Value: 1, DiscountPercentage: 15, IsActive: true,
	})
	assert.NoError(t, err)
}
