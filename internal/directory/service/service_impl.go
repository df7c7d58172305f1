package service

import (
	"context"
	"strings"
	"time"

	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"github.com/btcforcorps/orangepages/internal/providers/email"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/btcforcorps/orangepages/pkg/db/pagination"
	"github.com/btcforcorps/orangepages/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     directorydomain.Repository
	TeamRepo teamdomain.Repository
	Users    repository.Repository[userdomain.User]
	Email    email.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     directorydomain.Repository
	teamRepo teamdomain.Repository
	users    repository.Repository[userdomain.User]
	email    email.Provider
}

func New(p Params) directorydomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("directory.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		teamRepo: p.TeamRepo,
		users:    p.Users,
		email:    p.Email,
	}
}

func (s *Service) Submit(ctx context.Context, req directorydomain.SubmitListingRequest) (*directorydomain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, directorydomain.ErrInvalidName
	}
	contactEmail := strings.TrimSpace(req.ContactEmail)
	if contactEmail != "" && !strings.Contains(contactEmail, "@") {
		return nil, directorydomain.ErrInvalidEmail
	}

	businessSlug := slug.Make(name)
	existing, err := s.repo.FindBusinessBySlug(ctx, s.db, businessSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, directorydomain.ErrSlugTaken
	}

	now := time.Now().UTC()
	business := &directorydomain.Business{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         businessSlug,
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		Region:       strings.TrimSpace(req.Region),
		Website:      strings.TrimSpace(req.Website),
		ContactEmail: contactEmail,
		Status:       directorydomain.BusinessPending,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.InsertBusiness(ctx, s.db, business); err != nil {
		return nil, err
	}

	s.log.Info("listing submitted",
		zap.String("business_id", business.ID.String()),
		zap.String("slug", business.Slug),
	)
	return business, nil
}

func (s *Service) Get(ctx context.Context, businessID string) (*directorydomain.Business, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(businessID))
	if err != nil {
		return nil, directorydomain.ErrInvalidBusiness
	}
	business, err := s.repo.FindBusinessByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, directorydomain.ErrBusinessNotFound
	}
	return business, nil
}

func (s *Service) GetBySlug(ctx context.Context, rawSlug string) (*directorydomain.Business, error) {
	business, err := s.repo.FindBusinessBySlug(ctx, s.db, strings.TrimSpace(rawSlug))
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, directorydomain.ErrBusinessNotFound
	}
	return business, nil
}

func (s *Service) List(ctx context.Context, filter directorydomain.ListFilter, page pagination.Pagination) ([]*directorydomain.Business, *pagination.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, directorydomain.ErrInvalidStatus
	}
	return s.repo.ListBusinesses(ctx, s.db, filter, page)
}

func (s *Service) SetStatus(ctx context.Context, rawBusinessID string, status directorydomain.BusinessStatus) (*directorydomain.Business, error) {
	if !status.Valid() {
		return nil, directorydomain.ErrInvalidStatus
	}
	businessID, err := snowflake.ParseString(strings.TrimSpace(rawBusinessID))
	if err != nil {
		return nil, directorydomain.ErrInvalidBusiness
	}

	business, err := s.repo.FindBusinessByID(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, directorydomain.ErrBusinessNotFound
	}

	business.Status = status
	business.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateBusiness(ctx, s.db, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *Service) SubmitClaim(ctx context.Context, req directorydomain.SubmitClaimRequest) (*directorydomain.ClaimRequest, error) {
	businessID, err := snowflake.ParseString(strings.TrimSpace(req.BusinessID))
	if err != nil {
		return nil, directorydomain.ErrInvalidBusiness
	}
	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil {
		return nil, directorydomain.ErrInvalidUser
	}

	business, err := s.repo.FindBusinessByID(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, directorydomain.ErrBusinessNotFound
	}

	pending, err := s.repo.FindPendingClaim(ctx, s.db, businessID, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, directorydomain.ErrClaimExists
	}

	now := time.Now().UTC()
	claim := &directorydomain.ClaimRequest{
		ID:         s.genID.Generate(),
		BusinessID: businessID,
		UserID:     userID,
		Status:     directorydomain.ClaimPending,
		Message:    strings.TrimSpace(req.Message),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertClaim(ctx, s.db, claim); err != nil {
		return nil, err
	}

	s.log.Info("claim submitted",
		zap.String("claim_id", claim.ID.String()),
		zap.String("business_id", businessID.String()),
		zap.String("user_id", userID.String()),
	)
	return claim, nil
}

func (s *Service) ListClaims(ctx context.Context, status directorydomain.ClaimStatus) ([]directorydomain.ClaimRequest, error) {
	return s.repo.ListClaims(ctx, s.db, status)
}

func (s *Service) ReviewClaim(ctx context.Context, req directorydomain.ReviewClaimRequest) (*directorydomain.ClaimRequest, error) {
	claimID, err := snowflake.ParseString(strings.TrimSpace(req.ClaimID))
	if err != nil {
		return nil, directorydomain.ErrClaimNotFound
	}
	reviewerID, err := snowflake.ParseString(strings.TrimSpace(req.ReviewerID))
	if err != nil {
		return nil, directorydomain.ErrInvalidUser
	}

	claim, err := s.repo.FindClaimByID(ctx, s.db, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, directorydomain.ErrClaimNotFound
	}
	if claim.Status != directorydomain.ClaimPending {
		return nil, directorydomain.ErrClaimNotPending
	}

	business, err := s.repo.FindBusinessByID(ctx, s.db, claim.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, directorydomain.ErrBusinessNotFound
	}

	now := time.Now().UTC()
	claim.ReviewedBy = &reviewerID
	claim.ReviewedAt = &now
	claim.ReviewNote = strings.TrimSpace(req.Note)
	claim.UpdatedAt = now

	if !req.Approve {
		claim.Status = directorydomain.ClaimRejected
		if err := s.repo.UpdateClaim(ctx, s.db, claim); err != nil {
			return nil, err
		}
		s.notifyClaimant(ctx, claim, business, "claim_rejected")
		return claim, nil
	}

	claim.Status = directorydomain.ClaimApproved
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateClaim(ctx, tx, claim); err != nil {
			return err
		}

		member, err := s.teamRepo.Find(ctx, tx, claim.UserID, claim.BusinessID)
		if err != nil {
			return err
		}
		if member != nil {
			member.Role = entitlementdomain.RoleOwner
			member.UpdatedAt = now
			return s.teamRepo.Update(ctx, tx, member)
		}

		return s.teamRepo.Insert(ctx, tx, &teamdomain.TeamMember{
			ID:         s.genID.Generate(),
			UserID:     claim.UserID,
			BusinessID: claim.BusinessID,
			Role:       entitlementdomain.RoleOwner,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notifyClaimant(ctx, claim, business, "claim_approved")
	return claim, nil
}

// notifyClaimant sends the review outcome. Mail failures are logged,
// never surfaced to the reviewer.
func (s *Service) notifyClaimant(ctx context.Context, claim *directorydomain.ClaimRequest, business *directorydomain.Business, templateName string) {
	user, err := s.users.FindOne(ctx, &userdomain.User{ID: claim.UserID})
	if err != nil || user == nil {
		s.log.Warn("claimant lookup failed", zap.String("claim_id", claim.ID.String()), zap.Error(err))
		return
	}

	data := map[string]interface{}{
		"display_name":  user.DisplayName,
		"business_name": business.Name,
		"note":          claim.ReviewNote,
	}
	if err := s.email.SendTemplate(ctx, []string{user.Email}, templateName, data); err != nil {
		s.log.Warn("claim notification failed",
			zap.String("claim_id", claim.ID.String()),
			zap.Error(err),
		)
	}
}
