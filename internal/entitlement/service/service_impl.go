package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	TeamRepo       teamdomain.Repository
	MembershipRepo membershipdomain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	teamRepo       teamdomain.Repository
	membershipRepo membershipdomain.Repository
}

func New(p Params) entitlementdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("entitlement.service"),
		teamRepo:       p.TeamRepo,
		membershipRepo: p.MembershipRepo,
	}
}

func (s *Service) Profile(ctx context.Context, rawUserID, rawBusinessID string) (*entitlementdomain.MemberProfile, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(rawUserID))
	if err != nil {
		return nil, entitlementdomain.ErrInvalidUser
	}
	businessID, err := snowflake.ParseString(strings.TrimSpace(rawBusinessID))
	if err != nil {
		return nil, entitlementdomain.ErrInvalidBusiness
	}

	member, err := s.teamRepo.Find(ctx, s.db, userID, businessID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, entitlementdomain.ErrNotTeamMember
	}

	membership, err := s.membershipRepo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}

	var tier *entitlementdomain.MemberTier
	isActive := false
	if membership != nil && membership.IsActive {
		tier = &membership.Tier
		isActive = true
	}

	return &entitlementdomain.MemberProfile{
		UserID:      userID.String(),
		BusinessID:  businessID.String(),
		TeamRole:    member.Role,
		Tier:        tier,
		Permissions: entitlementdomain.DerivePermissions(member.Role, tier, isActive),
	}, nil
}
