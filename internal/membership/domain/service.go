package domain

import (
	"context"
	"errors"
	"time"

	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
)

type GrantRequest struct {
	BusinessID  string                       `json:"business_id"`
	Tier        entitlementdomain.MemberTier `json:"tier"`
	ExpiresAt   *time.Time                   `json:"expires_at,omitempty"`
	AmountCents int64                        `json:"amount_cents"`
	BillingRef  *string                      `json:"billing_ref,omitempty"`
}

type ChangeTierRequest struct {
	BusinessID string                       `json:"business_id"`
	Tier       entitlementdomain.MemberTier `json:"tier"`
}

type Response struct {
	ID          string                       `json:"id"`
	BusinessID  string                       `json:"business_id"`
	Tier        entitlementdomain.MemberTier `json:"tier"`
	IsActive    bool                         `json:"is_active"`
	StartedAt   time.Time                    `json:"started_at"`
	ExpiresAt   *time.Time                   `json:"expires_at,omitempty"`
	AmountCents int64                        `json:"amount_cents"`
	CreatedAt   time.Time                    `json:"created_at"`
}

type Service interface {
	// Grant creates an active membership for a business. Fails when the
	// business already holds an active membership.
	Grant(ctx context.Context, req GrantRequest) (*Response, error)
	// ChangeTier mutates the tier of the active membership.
	ChangeTier(ctx context.Context, req ChangeTierRequest) (*Response, error)
	// Deactivate retires the active membership without deleting it.
	Deactivate(ctx context.Context, businessID string) error
	// GetActive returns the active membership, nil when the business has none.
	GetActive(ctx context.Context, businessID string) (*Response, error)
	// History lists every membership record for a business, newest first.
	History(ctx context.Context, businessID string) ([]Response, error)
}

var (
	ErrInvalidBusiness    = errors.New("invalid_business")
	ErrInvalidTier        = errors.New("invalid_tier")
	ErrAlreadyActive      = errors.New("membership_already_active")
	ErrNoActiveMembership = errors.New("no_active_membership")
)
