package domain

import (
	"context"
	"errors"
)

// MemberProfile is the assembled per-request view of a user acting for a
// business: team role, active membership tier and derived permissions.
// It is rebuilt from storage on every call so a tier change or override
// edit is visible on the next request.
type MemberProfile struct {
	UserID      string      `json:"user_id"`
	BusinessID  string      `json:"business_id"`
	TeamRole    TeamRole    `json:"team_role"`
	Tier        *MemberTier `json:"tier,omitempty"`
	Permissions Permissions `json:"permissions"`
}

type Service interface {
	// Profile derives the member profile for a user acting on a business.
	Profile(ctx context.Context, userID, businessID string) (*MemberProfile, error)
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrNotTeamMember   = errors.New("not_team_member")
)
