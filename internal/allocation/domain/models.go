// Package domain contains tier-default event allocations, company
// overrides and the merged effective allocation.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
)

// OverrideMode selects how a company override combines with the tier default.
type OverrideMode string

const (
	// OverrideModeAbsolute replaces the tier default outright.
	OverrideModeAbsolute OverrideMode = "absolute"
	// OverrideModeAdditive applies the override as a delta, which may be
	// negative.
	OverrideModeAdditive OverrideMode = "additive"
)

func (m OverrideMode) Valid() bool {
	return m == OverrideModeAbsolute || m == OverrideModeAdditive
}

// EventAllocation is the baseline entitlement for every company at a tier
// for one event. One row per (event, tier).
type EventAllocation struct {
	ID      snowflake.ID                 `gorm:"primaryKey" json:"id"`
	EventID snowflake.ID                 `gorm:"not null;index;uniqueIndex:ux_event_allocations_event_tier,priority:1" json:"event_id"`
	Tier    entitlementdomain.MemberTier `gorm:"type:text;not null;uniqueIndex:ux_event_allocations_event_tier,priority:2" json:"tier"`

	GATickets      int     `gorm:"column:ga_tickets;not null;default:0" json:"ga_tickets"`
	ProTickets     int     `gorm:"column:pro_tickets;not null;default:0" json:"pro_tickets"`
	WhaleTickets   int     `gorm:"column:whale_tickets;not null;default:0" json:"whale_tickets"`
	CustomTickets  int     `gorm:"column:custom_tickets;not null;default:0" json:"custom_tickets"`
	CustomPassName *string `gorm:"column:custom_pass_name;type:text" json:"custom_pass_name,omitempty"`
	SymposiumSeats int     `gorm:"column:symposium_seats;not null;default:0" json:"symposium_seats"`
	VIPDinnerSeats int     `gorm:"column:vip_dinner_seats;not null;default:0" json:"vip_dinner_seats"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (EventAllocation) TableName() string { return "event_allocations" }

// AllocationOverride adjusts one company's allocation for one event. A nil
// field means the tier default stands even though the row exists. One row
// per (business, event).
type AllocationOverride struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_allocation_overrides_business_event,priority:1" json:"business_id"`
	EventID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_allocation_overrides_business_event,priority:2" json:"event_id"`
	Mode       OverrideMode `gorm:"column:override_mode;type:text;not null" json:"override_mode"`

	GATickets      *int    `gorm:"column:ga_tickets_override" json:"ga_tickets_override,omitempty"`
	ProTickets     *int    `gorm:"column:pro_tickets_override" json:"pro_tickets_override,omitempty"`
	WhaleTickets   *int    `gorm:"column:whale_tickets_override" json:"whale_tickets_override,omitempty"`
	CustomTickets  *int    `gorm:"column:custom_tickets_override" json:"custom_tickets_override,omitempty"`
	CustomPassName *string `gorm:"column:custom_pass_name_override;type:text" json:"custom_pass_name_override,omitempty"`
	SymposiumSeats *int    `gorm:"column:symposium_seats_override" json:"symposium_seats_override,omitempty"`
	VIPDinnerSeats *int    `gorm:"column:vip_dinner_seats_override" json:"vip_dinner_seats_override,omitempty"`

	Reason    string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AllocationOverride) TableName() string { return "allocation_overrides" }

// EffectiveAllocation is the merged per-event entitlement for one company.
// Computed on demand, never persisted.
type EffectiveAllocation struct {
	EventID string                       `json:"event_id"`
	Tier    entitlementdomain.MemberTier `json:"tier"`

	GATickets      int     `json:"ga_tickets"`
	ProTickets     int     `json:"pro_tickets"`
	WhaleTickets   int     `json:"whale_tickets"`
	CustomTickets  int     `json:"custom_tickets"`
	CustomPassName *string `json:"custom_pass_name,omitempty"`
	SymposiumSeats int     `json:"symposium_seats"`
	VIPDinnerSeats int     `json:"vip_dinner_seats"`

	HasOverride    bool         `json:"has_override"`
	OverrideMode   OverrideMode `json:"override_mode,omitempty"`
	OverrideReason string       `json:"override_reason,omitempty"`
}
