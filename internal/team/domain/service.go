package domain

import (
	"context"
	"errors"

	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
)

type AddMemberRequest struct {
	BusinessID string                     `json:"business_id"`
	UserID     string                     `json:"user_id"`
	Role       entitlementdomain.TeamRole `json:"role"`
	Title      *string                    `json:"title,omitempty"`
}

type ChangeRoleRequest struct {
	BusinessID string                     `json:"business_id"`
	UserID     string                     `json:"user_id"`
	Role       entitlementdomain.TeamRole `json:"role"`
}

type Service interface {
	Add(ctx context.Context, req AddMemberRequest) (*TeamMember, error)
	ChangeRole(ctx context.Context, req ChangeRoleRequest) (*TeamMember, error)
	Remove(ctx context.Context, businessID, userID string) error
	List(ctx context.Context, businessID string) ([]TeamMember, error)
	// SetPrimary marks a business as the user's primary company,
	// clearing any previous primary flag.
	SetPrimary(ctx context.Context, userID, businessID string) error
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidUser     = errors.New("invalid_user")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrAlreadyOnTeam   = errors.New("already_on_team")
	ErrNotOnTeam       = errors.New("not_on_team")
	ErrLastOwner       = errors.New("last_owner")
)
