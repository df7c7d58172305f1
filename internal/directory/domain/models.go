// Package domain contains persistence models for the public directory.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type BusinessStatus string

const (
	BusinessPending BusinessStatus = "pending"
	BusinessActive  BusinessStatus = "active"
	BusinessHidden  BusinessStatus = "hidden"
)

func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessPending, BusinessActive, BusinessHidden:
		return true
	}
	return false
}

// Business is a directory listing. Submissions start as pending and
// become visible once an admin approves them.
type Business struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:text;not null" json:"name"`
	Slug         string            `gorm:"type:text;not null;uniqueIndex:ux_businesses_slug" json:"slug"`
	Description  string            `gorm:"type:text" json:"description"`
	Category     string            `gorm:"type:text;index" json:"category"`
	Region       string            `gorm:"type:text;index" json:"region"`
	Website      string            `gorm:"type:text" json:"website"`
	ContactEmail string            `gorm:"type:text;column:contact_email" json:"contact_email"`
	Status       BusinessStatus    `gorm:"type:text;not null;index" json:"status"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Business) TableName() string { return "businesses" }

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// ClaimRequest is a user's request to take stewardship of a listing.
// Approval makes the requester the owner of the business.
type ClaimRequest struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID  `gorm:"not null;index" json:"business_id"`
	UserID     snowflake.ID  `gorm:"not null;index" json:"user_id"`
	Status     ClaimStatus   `gorm:"type:text;not null;index" json:"status"`
	Message    string        `gorm:"type:text" json:"message"`
	ReviewNote string        `gorm:"type:text;column:review_note" json:"review_note"`
	ReviewedBy *snowflake.ID `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time    `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ClaimRequest) TableName() string { return "claim_requests" }
