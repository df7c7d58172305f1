// Package domain contains benefits, pricing thresholds and the dynamic
// pricing calculator.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ThresholdType selects what a pricing threshold is measured against.
type ThresholdType string

const (
	ThresholdBenefitCount ThresholdType = "benefit_count"
	ThresholdTotalValue   ThresholdType = "total_value"
	// ThresholdTierBased exists in the admin console and data model but is
	// not matched by the calculator. Kept as-is pending product direction.
	ThresholdTierBased ThresholdType = "tier_based"
)

func (t ThresholdType) Valid() bool {
	switch t {
	case ThresholdBenefitCount, ThresholdTotalValue, ThresholdTierBased:
		return true
	}
	return false
}

// Benefit is a priced perk a company can select when composing a package.
type Benefit struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	Code             string            `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name             string            `gorm:"type:text;not null" json:"name"`
	Description      *string           `gorm:"type:text" json:"description,omitempty"`
	BasePrice        float64           `gorm:"column:base_price;not null;default:0" json:"base_price"`
	RegionMultiplier *float64          `gorm:"column:region_multiplier" json:"region_multiplier,omitempty"`
	Active           bool              `gorm:"not null;default:true" json:"active"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Benefit) TableName() string { return "benefits" }

// PricingThreshold grants a discount once a measured quantity is reached.
// Thresholds never stack; the single best discount applies.
type PricingThreshold struct {
	ID                 snowflake.ID  `gorm:"primaryKey" json:"id"`
	Type               ThresholdType `gorm:"column:threshold_type;type:text;not null" json:"threshold_type"`
	Value              float64       `gorm:"column:threshold_value;not null" json:"threshold_value"`
	DiscountPercentage float64       `gorm:"column:discount_percentage;not null" json:"discount_percentage"`
	IsActive           bool          `gorm:"not null;default:true" json:"is_active"`
	DisplayOrder       int           `gorm:"not null;default:0" json:"display_order"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PricingThreshold) TableName() string { return "pricing_thresholds" }
