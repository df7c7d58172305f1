package domain

import (
	"context"
	"errors"

	"github.com/btcforcorps/orangepages/pkg/db/pagination"
)

type SubmitListingRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Region       string `json:"region"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
}

type SubmitClaimRequest struct {
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
}

type ReviewClaimRequest struct {
	ClaimID    string `json:"claim_id"`
	ReviewerID string `json:"reviewer_id"`
	Approve    bool   `json:"approve"`
	Note       string `json:"note"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitListingRequest) (*Business, error)
	Get(ctx context.Context, businessID string) (*Business, error)
	GetBySlug(ctx context.Context, slug string) (*Business, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Business, *pagination.PageInfo, error)
	// SetStatus is the admin approve/hide action.
	SetStatus(ctx context.Context, businessID string, status BusinessStatus) (*Business, error)

	SubmitClaim(ctx context.Context, req SubmitClaimRequest) (*ClaimRequest, error)
	ListClaims(ctx context.Context, status ClaimStatus) ([]ClaimRequest, error)
	// ReviewClaim approves or rejects a pending claim. Approval makes the
	// requester the owner of the business and notifies them by email.
	ReviewClaim(ctx context.Context, req ReviewClaimRequest) (*ClaimRequest, error)
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrSlugTaken        = errors.New("slug_taken")
	ErrBusinessNotFound = errors.New("business_not_found")
	ErrInvalidBusiness  = errors.New("invalid_business")
	ErrInvalidUser      = errors.New("invalid_user")
	ErrClaimExists      = errors.New("claim_exists")
	ErrClaimNotFound    = errors.New("claim_not_found")
	ErrClaimNotPending  = errors.New("claim_not_pending")
)
