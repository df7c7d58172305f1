package domain

import (
	"context"
	"errors"
)

type UpsertThresholdRequest struct {
	ID                 string        `json:"id,omitempty"`
	Type               ThresholdType `json:"threshold_type"`
	Value              float64       `json:"threshold_value"`
	DiscountPercentage float64       `json:"discount_percentage"`
	IsActive           bool          `json:"is_active"`
	DisplayOrder       int           `json:"display_order"`
}

type QuoteRequest struct {
	BenefitIDs []string `json:"benefit_ids"`
	Region     string   `json:"region,omitempty"`
}

type Service interface {
	CreateThreshold(ctx context.Context, req UpsertThresholdRequest) (*PricingThreshold, error)
	UpdateThreshold(ctx context.Context, req UpsertThresholdRequest) (*PricingThreshold, error)
	DeleteThreshold(ctx context.Context, id string) error
	ListThresholds(ctx context.Context) ([]PricingThreshold, error)

	ListBenefits(ctx context.Context) ([]Benefit, error)

	// Quote prices a benefit selection. A failed threshold fetch degrades
	// to full price rather than failing the quote.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

var (
	ErrInvalidThresholdType  = errors.New("invalid_threshold_type")
	ErrInvalidThresholdValue = errors.New("invalid_threshold_value")
	ErrInvalidDiscount       = errors.New("invalid_discount_percentage")
	ErrInvalidID             = errors.New("invalid_id")
	ErrNotFound              = errors.New("not_found")
	ErrInvalidBenefit        = errors.New("invalid_benefit")
)
