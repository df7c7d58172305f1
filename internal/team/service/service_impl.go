package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  teamdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  teamdomain.Repository
}

func New(p Params) teamdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("team.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Add(ctx context.Context, req teamdomain.AddMemberRequest) (*teamdomain.TeamMember, error) {
	businessID, err := parseID(req.BusinessID)
	if err != nil {
		return nil, teamdomain.ErrInvalidBusiness
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, teamdomain.ErrInvalidUser
	}
	if !req.Role.Valid() {
		return nil, teamdomain.ErrInvalidRole
	}

	existing, err := s.repo.Find(ctx, s.db, userID, businessID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, teamdomain.ErrAlreadyOnTeam
	}

	now := time.Now().UTC()
	entity := &teamdomain.TeamMember{
		ID:         s.genID.Generate(),
		UserID:     userID,
		BusinessID: businessID,
		Role:       req.Role,
		Title:      req.Title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("team member added",
		zap.String("business_id", businessID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", string(req.Role)),
	)

	return entity, nil
}

func (s *Service) ChangeRole(ctx context.Context, req teamdomain.ChangeRoleRequest) (*teamdomain.TeamMember, error) {
	businessID, err := parseID(req.BusinessID)
	if err != nil {
		return nil, teamdomain.ErrInvalidBusiness
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, teamdomain.ErrInvalidUser
	}
	if !req.Role.Valid() {
		return nil, teamdomain.ErrInvalidRole
	}

	entity, err := s.repo.Find(ctx, s.db, userID, businessID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, teamdomain.ErrNotOnTeam
	}

	if err := s.guardLastOwner(ctx, entity, req.Role); err != nil {
		return nil, err
	}

	entity.Role = req.Role
	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Remove(ctx context.Context, rawBusinessID, rawUserID string) error {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return teamdomain.ErrInvalidBusiness
	}
	userID, err := parseID(rawUserID)
	if err != nil {
		return teamdomain.ErrInvalidUser
	}

	entity, err := s.repo.Find(ctx, s.db, userID, businessID)
	if err != nil {
		return err
	}
	if entity == nil {
		return teamdomain.ErrNotOnTeam
	}

	if err := s.guardLastOwner(ctx, entity, ""); err != nil {
		return err
	}

	return s.repo.Delete(ctx, s.db, entity.ID)
}

func (s *Service) List(ctx context.Context, rawBusinessID string) ([]teamdomain.TeamMember, error) {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return nil, teamdomain.ErrInvalidBusiness
	}
	return s.repo.ListByBusiness(ctx, s.db, businessID)
}

func (s *Service) SetPrimary(ctx context.Context, rawUserID, rawBusinessID string) error {
	userID, err := parseID(rawUserID)
	if err != nil {
		return teamdomain.ErrInvalidUser
	}
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return teamdomain.ErrInvalidBusiness
	}

	entity, err := s.repo.Find(ctx, s.db, userID, businessID)
	if err != nil {
		return err
	}
	if entity == nil {
		return teamdomain.ErrNotOnTeam
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ClearPrimary(ctx, tx, userID); err != nil {
			return err
		}
		entity.IsPrimary = true
		entity.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, entity)
	})
}

// guardLastOwner rejects demoting or removing a business's only owner.
func (s *Service) guardLastOwner(ctx context.Context, m *teamdomain.TeamMember, newRole entitlementdomain.TeamRole) error {
	if m.Role != entitlementdomain.RoleOwner || newRole == entitlementdomain.RoleOwner {
		return nil
	}
	owners, err := s.repo.CountByRole(ctx, s.db, m.BusinessID, entitlementdomain.RoleOwner)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return teamdomain.ErrLastOwner
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
