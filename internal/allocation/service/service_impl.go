package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Repo           allocationdomain.Repository
	MembershipRepo membershipdomain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           allocationdomain.Repository
	membershipRepo membershipdomain.Repository
}

func New(p Params) allocationdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("allocation.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		membershipRepo: p.MembershipRepo,
	}
}

func (s *Service) SetTierDefault(ctx context.Context, req allocationdomain.SetTierDefaultRequest) (*allocationdomain.EventAllocation, error) {
	eventID, err := parseID(req.EventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}
	if !req.Tier.Valid() {
		return nil, allocationdomain.ErrInvalidTier
	}

	now := time.Now().UTC()
	entity := &allocationdomain.EventAllocation{
		ID:             s.genID.Generate(),
		EventID:        eventID,
		Tier:           req.Tier,
		GATickets:      req.GATickets,
		ProTickets:     req.ProTickets,
		WhaleTickets:   req.WhaleTickets,
		CustomTickets:  req.CustomTickets,
		CustomPassName: req.CustomPassName,
		SymposiumSeats: req.SymposiumSeats,
		VIPDinnerSeats: req.VIPDinnerSeats,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.UpsertTierDefault(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("tier default set",
		zap.String("event_id", eventID.String()),
		zap.String("tier", string(req.Tier)),
	)

	return entity, nil
}

func (s *Service) ListTierDefaults(ctx context.Context, rawEventID string) ([]allocationdomain.EventAllocation, error) {
	eventID, err := parseID(rawEventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}
	return s.repo.ListTierDefaults(ctx, s.db, eventID)
}

func (s *Service) UpsertOverride(ctx context.Context, req allocationdomain.UpsertOverrideRequest) (*allocationdomain.AllocationOverride, error) {
	businessID, err := parseID(req.BusinessID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidBusiness
	}
	eventID, err := parseID(req.EventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}
	if !req.Mode.Valid() {
		return nil, allocationdomain.ErrInvalidMode
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, allocationdomain.ErrReasonRequired
	}

	now := time.Now().UTC()
	entity := &allocationdomain.AllocationOverride{
		ID:             s.genID.Generate(),
		BusinessID:     businessID,
		EventID:        eventID,
		Mode:           req.Mode,
		GATickets:      req.GATickets,
		ProTickets:     req.ProTickets,
		WhaleTickets:   req.WhaleTickets,
		CustomTickets:  req.CustomTickets,
		CustomPassName: req.CustomPassName,
		SymposiumSeats: req.SymposiumSeats,
		VIPDinnerSeats: req.VIPDinnerSeats,
		Reason:         strings.TrimSpace(req.Reason),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.UpsertOverride(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("allocation override saved",
		zap.String("business_id", businessID.String()),
		zap.String("event_id", eventID.String()),
		zap.String("mode", string(req.Mode)),
	)

	return entity, nil
}

func (s *Service) GetOverride(ctx context.Context, rawBusinessID, rawEventID string) (*allocationdomain.AllocationOverride, error) {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidBusiness
	}
	eventID, err := parseID(rawEventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}
	return s.repo.FindOverride(ctx, s.db, businessID, eventID)
}

func (s *Service) DeleteOverride(ctx context.Context, rawBusinessID, rawEventID string) error {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return allocationdomain.ErrInvalidBusiness
	}
	eventID, err := parseID(rawEventID)
	if err != nil {
		return allocationdomain.ErrInvalidEvent
	}

	if err := s.repo.DeleteOverride(ctx, s.db, businessID, eventID); err != nil {
		return err
	}

	s.log.Info("allocation override deleted",
		zap.String("business_id", businessID.String()),
		zap.String("event_id", eventID.String()),
	)
	return nil
}

func (s *Service) ListOverrides(ctx context.Context, rawEventID string) ([]allocationdomain.AllocationOverride, error) {
	eventID, err := parseID(rawEventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}
	return s.repo.ListOverridesByEvent(ctx, s.db, eventID)
}

// Resolve fetches the tier default and the override inside one call so a
// caller can never pair a stale default with a fresh override.
func (s *Service) Resolve(ctx context.Context, rawBusinessID, rawEventID string) (*allocationdomain.EffectiveAllocation, error) {
	businessID, err := parseID(rawBusinessID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidBusiness
	}
	eventID, err := parseID(rawEventID)
	if err != nil {
		return nil, allocationdomain.ErrInvalidEvent
	}

	membership, err := s.membershipRepo.FindActiveByBusiness(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, allocationdomain.ErrNoActiveMembership
	}

	def, err := s.repo.FindTierDefault(ctx, s.db, eventID, membership.Tier)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, allocationdomain.ErrNoTierDefault
	}

	ov, err := s.repo.FindOverride(ctx, s.db, businessID, eventID)
	if err != nil {
		return nil, err
	}

	eff := allocationdomain.ComputeEffective(*def, ov)
	return &eff, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
