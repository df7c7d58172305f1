package domain

import (
	"context"
	"errors"

	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
)

type SetTierDefaultRequest struct {
	EventID string                       `json:"event_id"`
	Tier    entitlementdomain.MemberTier `json:"tier"`

	GATickets      int     `json:"ga_tickets"`
	ProTickets     int     `json:"pro_tickets"`
	WhaleTickets   int     `json:"whale_tickets"`
	CustomTickets  int     `json:"custom_tickets"`
	CustomPassName *string `json:"custom_pass_name,omitempty"`
	SymposiumSeats int     `json:"symposium_seats"`
	VIPDinnerSeats int     `json:"vip_dinner_seats"`
}

type UpsertOverrideRequest struct {
	BusinessID string       `json:"business_id"`
	EventID    string       `json:"event_id"`
	Mode       OverrideMode `json:"override_mode"`

	GATickets      *int    `json:"ga_tickets_override,omitempty"`
	ProTickets     *int    `json:"pro_tickets_override,omitempty"`
	WhaleTickets   *int    `json:"whale_tickets_override,omitempty"`
	CustomTickets  *int    `json:"custom_tickets_override,omitempty"`
	CustomPassName *string `json:"custom_pass_name_override,omitempty"`
	SymposiumSeats *int    `json:"symposium_seats_override,omitempty"`
	VIPDinnerSeats *int    `json:"vip_dinner_seats_override,omitempty"`

	Reason string `json:"reason"`
}

type Service interface {
	// SetTierDefault creates or replaces the (event, tier) baseline.
	SetTierDefault(ctx context.Context, req SetTierDefaultRequest) (*EventAllocation, error)
	// ListTierDefaults returns every tier baseline for an event.
	ListTierDefaults(ctx context.Context, eventID string) ([]EventAllocation, error)

	// UpsertOverride creates or replaces the (business, event) override.
	UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (*AllocationOverride, error)
	// GetOverride returns the override row, nil when none exists.
	GetOverride(ctx context.Context, businessID, eventID string) (*AllocationOverride, error)
	// DeleteOverride removes the override so the tier default applies again.
	DeleteOverride(ctx context.Context, businessID, eventID string) error
	// ListOverrides returns all overrides for an event, for the admin audit view.
	ListOverrides(ctx context.Context, eventID string) ([]AllocationOverride, error)

	// Resolve loads the business's active tier, the matching tier default
	// and the override in one pass and returns the merged allocation.
	Resolve(ctx context.Context, businessID, eventID string) (*EffectiveAllocation, error)
}

var (
	ErrInvalidEvent       = errors.New("invalid_event")
	ErrInvalidBusiness    = errors.New("invalid_business")
	ErrInvalidTier        = errors.New("invalid_tier")
	ErrInvalidMode        = errors.New("invalid_override_mode")
	ErrReasonRequired     = errors.New("override_reason_required")
	ErrNoActiveMembership = errors.New("no_active_membership")
	ErrNoTierDefault      = errors.New("no_tier_default")
)
