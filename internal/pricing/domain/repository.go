package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertThreshold(ctx context.Context, db *gorm.DB, th *PricingThreshold) error
	UpdateThreshold(ctx context.Context, db *gorm.DB, th *PricingThreshold) error
	DeleteThreshold(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindThresholdByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingThreshold, error)
	// ListActiveThresholds returns active thresholds ordered by display_order.
	ListActiveThresholds(ctx context.Context, db *gorm.DB) ([]PricingThreshold, error)
	ListThresholds(ctx context.Context, db *gorm.DB) ([]PricingThreshold, error)

	FindBenefitsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Benefit, error)
	ListActiveBenefits(ctx context.Context, db *gorm.DB) ([]Benefit, error)
}
