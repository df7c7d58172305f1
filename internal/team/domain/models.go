// Package domain contains persistence models for business teams.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
)

// TeamMember links a user to a business with a role. A user may sit on
// several teams but marks at most one business as primary.
type TeamMember struct {
	ID         snowflake.ID               `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID               `gorm:"not null;index;uniqueIndex:ux_team_members_user_business,priority:1" json:"user_id"`
	BusinessID snowflake.ID               `gorm:"not null;index;uniqueIndex:ux_team_members_user_business,priority:2" json:"business_id"`
	Role       entitlementdomain.TeamRole `gorm:"type:text;not null" json:"role"`
	IsPrimary  bool                       `gorm:"not null;default:false" json:"is_primary"`
	Title      *string                    `gorm:"type:text" json:"title,omitempty"`
	CreatedAt  time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TeamMember) TableName() string { return "team_members" }
