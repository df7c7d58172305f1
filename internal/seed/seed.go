// Package seed inserts the baseline rows a fresh install needs.
package seed

import (
	"context"
	"errors"
	"time"

	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// EnsureDefaultPricing seeds the standard benefit catalog and discount
// thresholds when the tables are empty. Existing rows are left alone so
// admin edits survive restarts.
func EnsureDefaultPricing(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureBenefits(ctx, tx, node); err != nil {
			return err
		}
		return ensureThresholds(ctx, tx, node)
	})
}

func ensureBenefits(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&pricingdomain.Benefit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	defaults := []pricingdomain.Benefit{
		{Code: "directory-spotlight", Name: "Directory spotlight", BasePrice: 250},
		{Code: "newsletter-feature", Name: "Newsletter feature", BasePrice: 150},
		{Code: "logo-placement", Name: "Event logo placement", BasePrice: 400},
		{Code: "booth-space", Name: "Expo booth space", BasePrice: 900},
	}
	for i := range defaults {
		defaults[i].ID = node.Generate()
		defaults[i].Active = true
		defaults[i].CreatedAt = now
		defaults[i].UpdatedAt = now
	}
	return tx.WithContext(ctx).Create(&defaults).Error
}

func ensureThresholds(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&pricingdomain.PricingThreshold{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	defaults := []pricingdomain.PricingThreshold{
		{Type: pricingdomain.ThresholdBenefitCount, Value: 3, DiscountPercentage: 5, DisplayOrder: 1},
		{Type: pricingdomain.ThresholdBenefitCount, Value: 5, DiscountPercentage: 10, DisplayOrder: 2},
		{Type: pricingdomain.ThresholdTotalValue, Value: 1500, DiscountPercentage: 12, DisplayOrder: 3},
	}
	for i := range defaults {
		defaults[i].ID = node.Generate()
		defaults[i].IsActive = true
		defaults[i].CreatedAt = now
		defaults[i].UpdatedAt = now
	}
	return tx.WithContext(ctx).Create(&defaults).Error
}
