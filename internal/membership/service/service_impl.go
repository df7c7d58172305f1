package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  membershipdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  membershipdomain.Repository
}

func New(p Params) membershipdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("membership.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Grant(ctx context.Context, req membershipdomain.GrantRequest) (*membershipdomain.Response, error) {
	businessID, err := parseID(req.BusinessID)
	if err != nil {
		return nil, membershipdomain.ErrInvalidBusiness
	}
	if !req.Tier.Valid() {
		return nil, membershipdomain.ErrInvalidTier
	}

	existing, err := s.repo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, membershipdomain.ErrAlreadyActive
	}

	now := time.Now().UTC()
	entity := &membershipdomain.Membership{
		ID:          s.genID.Generate(),
		BusinessID:  businessID,
		Tier:        req.Tier,
		IsActive:    true,
		StartedAt:   now,
		ExpiresAt:   req.ExpiresAt,
		AmountCents: req.AmountCents,
		BillingRef:  req.BillingRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("membership granted",
		zap.String("business_id", businessID.String()),
		zap.String("tier", string(req.Tier)),
	)

	return toResponse(entity), nil
}

func (s *Service) ChangeTier(ctx context.Context, req membershipdomain.ChangeTierRequest) (*membershipdomain.Response, error) {
	businessID, err := parseID(req.BusinessID)
	if err != nil {
		return nil, membershipdomain.ErrInvalidBusiness
	}
	if !req.Tier.Valid() {
		return nil, membershipdomain.ErrInvalidTier
	}

	entity, err := s.repo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, membershipdomain.ErrNoActiveMembership
	}

	entity.Tier = req.Tier
	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("membership tier changed",
		zap.String("business_id", businessID.String()),
		zap.String("tier", string(req.Tier)),
	)

	return toResponse(entity), nil
}

func (s *Service) Deactivate(ctx context.Context, rawBusinessID string) error {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return membershipdomain.ErrInvalidBusiness
	}

	entity, err := s.repo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return err
	}
	if entity == nil {
		return membershipdomain.ErrNoActiveMembership
	}

	entity.IsActive = false
	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return err
	}

	s.log.Info("membership deactivated", zap.String("business_id", businessID.String()))
	return nil
}

func (s *Service) GetActive(ctx context.Context, rawBusinessID string) (*membershipdomain.Response, error) {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return nil, membershipdomain.ErrInvalidBusiness
	}

	entity, err := s.repo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}
	return toResponse(entity), nil
}

func (s *Service) History(ctx context.Context, rawBusinessID string) ([]membershipdomain.Response, error) {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return nil, membershipdomain.ErrInvalidBusiness
	}

	items, err := s.repo.ListByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}

	resp := make([]membershipdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(m *membershipdomain.Membership) *membershipdomain.Response {
	return &membershipdomain.Response{
		ID:          m.ID.String(),
		BusinessID:  m.BusinessID.String(),
		Tier:        m.Tier,
		IsActive:    m.IsActive,
		StartedAt:   m.StartedAt,
		ExpiresAt:   m.ExpiresAt,
		AmountCents: m.AmountCents,
		CreatedAt:   m.CreatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
