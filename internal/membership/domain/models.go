// Package domain contains persistence models for business memberships.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"gorm.io/datatypes"
)

// Membership is a business's paid membership at a given tier. A business
// has at most one active membership; superseded memberships are
// deactivated, never deleted.
type Membership struct {
	ID         snowflake.ID                 `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID                 `gorm:"not null;index" json:"business_id"`
	Tier       entitlementdomain.MemberTier `gorm:"type:text;not null" json:"tier"`
	IsActive   bool                         `gorm:"not null;default:true" json:"is_active"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt   *time.Time `gorm:"" json:"expires_at,omitempty"`
	AmountCents int64      `gorm:"not null;default:0" json:"amount_cents"`
	BillingRef  *string    `gorm:"type:text" json:"billing_ref,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Membership) TableName() string { return "memberships" }
