package domain

// Permissions is the full derived permission set for a user acting on
// behalf of a business. It is computed on demand and never persisted.
type Permissions struct {
	IsMember bool        `json:"is_member"`
	TeamRole TeamRole    `json:"team_role"`
	Tier     *MemberTier `json:"tier,omitempty"`

	CanClaimTickets     bool `json:"can_claim_tickets"`
	CanRegisterEvents   bool `json:"can_register_events"`
	CanApplySpeaking    bool `json:"can_apply_speaking"`
	CanRsvpDinners      bool `json:"can_rsvp_dinners"`
	CanRequestResources bool `json:"can_request_resources"`

	CanEditProfile      bool `json:"can_edit_profile"`
	CanManageTeam       bool `json:"can_manage_team"`
	CanManageLeadership bool `json:"can_manage_leadership"`
}

// DerivePermissions maps (role, tier, active membership) to a permission set.
//
// Management access follows the team role alone: an owner manages everything
// regardless of tier, an admin manages profile and team but not leadership.
// Benefit access follows the membership flag alone; the tier is carried
// through for display and allocation lookup, it does not gate individual
// benefits. The two axes are independent.
func DerivePermissions(role TeamRole, tier *MemberTier, isActiveMember bool) Permissions {
	p := Permissions{
		IsMember: isActiveMember,
		TeamRole: role,
		Tier:     tier,

		CanClaimTickets:     isActiveMember,
		CanRegisterEvents:   isActiveMember,
		CanApplySpeaking:    isActiveMember,
		CanRsvpDinners:      isActiveMember,
		CanRequestResources: isActiveMember,
	}

	switch role {
	case RoleOwner:
		p.CanEditProfile = true
		p.CanManageTeam = true
		p.CanManageLeadership = true
	case RoleAdmin:
		p.CanEditProfile = true
		p.CanManageTeam = true
	}

	return p
}
