package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/btcforcorps/orangepages/internal/config"
	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     pricingdomain.Repository
	Benefits *config.BenefitsConfigHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     pricingdomain.Repository
	benefits *config.BenefitsConfigHolder
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("pricing.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		benefits: p.Benefits,
	}
}

func (s *Service) CreateThreshold(ctx context.Context, req pricingdomain.UpsertThresholdRequest) (*pricingdomain.PricingThreshold, error) {
	if err := validateThreshold(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &pricingdomain.PricingThreshold{
		ID:                 s.genID.Generate(),
		Type:               req.Type,
		Value:              req.Value,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           req.IsActive,
		DisplayOrder:       req.DisplayOrder,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.InsertThreshold(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) UpdateThreshold(ctx context.Context, req pricingdomain.UpsertThresholdRequest) (*pricingdomain.PricingThreshold, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, pricingdomain.ErrInvalidID
	}
	if err := validateThreshold(req); err != nil {
		return nil, err
	}

	entity, err := s.repo.FindThresholdByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricingdomain.ErrNotFound
	}

	entity.Type = req.Type
	entity.Value = req.Value
	entity.DiscountPercentage = req.DiscountPercentage
	entity.IsActive = req.IsActive
	entity.DisplayOrder = req.DisplayOrder
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateThreshold(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) DeleteThreshold(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return pricingdomain.ErrInvalidID
	}
	return s.repo.DeleteThreshold(ctx, s.db, id)
}

func (s *Service) ListThresholds(ctx context.Context) ([]pricingdomain.PricingThreshold, error) {
	return s.repo.ListThresholds(ctx, s.db)
}

func (s *Service) ListBenefits(ctx context.Context) ([]pricingdomain.Benefit, error) {
	return s.repo.ListActiveBenefits(ctx, s.db)
}

func (s *Service) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	ids := make([]snowflake.ID, 0, len(req.BenefitIDs))
	for _, raw := range req.BenefitIDs {
		id, err := parseID(raw)
		if err != nil {
			return nil, pricingdomain.ErrInvalidBenefit
		}
		ids = append(ids, id)
	}

	benefits, err := s.repo.FindBenefitsByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if len(benefits) != len(ids) {
		return nil, pricingdomain.ErrInvalidBenefit
	}

	regionMultiplier := 1.0
	if req.Region != "" {
		if m, ok := s.benefits.Current().RegionMultipliers[strings.ToLower(req.Region)]; ok && m > 0 {
			regionMultiplier = m
		}
	}

	// A broken threshold table must not break checkout: quote at full
	// price when the fetch fails.
	thresholds, err := s.repo.ListActiveThresholds(ctx, s.db)
	if err != nil {
		s.log.Warn("threshold fetch failed, quoting full price", zap.Error(err))
		thresholds = nil
	}

	quote := pricingdomain.CalculateDynamicPricing(benefits, regionMultiplier, thresholds)
	return &quote, nil
}

func validateThreshold(req pricingdomain.UpsertThresholdRequest) error {
	if !req.Type.Valid() {
		return pricingdomain.ErrInvalidThresholdType
	}
	if req.Value < 0 {
		return pricingdomain.ErrInvalidThresholdValue
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return pricingdomain.ErrInvalidDiscount
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
