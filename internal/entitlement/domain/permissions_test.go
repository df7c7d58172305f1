package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tierPtr(t MemberTier) *MemberTier { return &t }

func benefitFlags(p Permissions) []bool {
	return []bool{
		p.CanClaimTickets,
		p.CanRegisterEvents,
		p.CanApplySpeaking,
		p.CanRsvpDinners,
		p.CanRequestResources,
	}
}

func TestDerivePermissions_ManagementByRole(t *testing.T) {
	tests := []struct {
		name           string
		role           TeamRole
		wantEdit       bool
		wantTeam       bool
		wantLeadership bool
	}{
		{"owner", RoleOwner, true, true, true},
		{"admin", RoleAdmin, true, true, false},
		{"member", RoleMember, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DerivePermissions(tc.role, tierPtr(TierGold), true)
			assert.Equal(t, tc.wantEdit, p.CanEditProfile)
			assert.Equal(t, tc.wantTeam, p.CanManageTeam)
			assert.Equal(t, tc.wantLeadership, p.CanManageLeadership)
		})
	}
}

func TestDerivePermissions_OwnerWithoutMembership(t *testing.T) {
	// Management access and benefit access are independent axes: a lapsed
	// owner keeps full management rights but loses every benefit.
	for _, tier := range append(Tiers(), MemberTier("")) {
		p := DerivePermissions(RoleOwner, tierPtr(tier), false)

		assert.True(t, p.CanEditProfile)
		assert.True(t, p.CanManageTeam)
		assert.True(t, p.CanManageLeadership)
		for _, flag := range benefitFlags(p) {
			assert.False(t, flag)
		}
		assert.False(t, p.IsMember)
	}
}

func TestDerivePermissions_BenefitGate(t *testing.T) {
	for _, role := range []TeamRole{RoleOwner, RoleAdmin, RoleMember} {
		inactive := DerivePermissions(role, tierPtr(TierChairman), false)
		for _, flag := range benefitFlags(inactive) {
			assert.False(t, flag)
		}

		active := DerivePermissions(role, tierPtr(TierChairman), true)
		for _, flag := range benefitFlags(active) {
			assert.True(t, flag)
		}
	}
}

func TestDerivePermissions_MemberWithActiveMembership(t *testing.T) {
	p := DerivePermissions(RoleMember, tierPtr(TierIndustry), true)

	for _, flag := range benefitFlags(p) {
		assert.True(t, flag)
	}
	assert.False(t, p.CanEditProfile)
	assert.False(t, p.CanManageTeam)
	assert.False(t, p.CanManageLeadership)
}

func TestDerivePermissions_Passthrough(t *testing.T) {
	tier := tierPtr(TierSponsor)
	p := DerivePermissions(RoleAdmin, tier, true)

	assert.True(t, p.IsMember)
	assert.Equal(t, RoleAdmin, p.TeamRole)
	assert.Equal(t, tier, p.Tier)

	nilTier := DerivePermissions(RoleMember, nil, false)
	assert.Nil(t, nilTier.Tier)
}

func TestTierRanks(t *testing.T) {
	assert.Less(t, TierSilver.Rank(), TierGold.Rank())
	assert.Less(t, TierGold.Rank(), TierPlatinum.Rank())
	assert.Less(t, TierIndustry.Rank(), TierPremier.Rank())
	assert.Less(t, TierPremier.Rank(), TierExecutive.Rank())
	assert.Less(t, TierExecutive.Rank(), TierSponsor.Rank())
	assert.Less(t, TierSponsor.Rank(), TierChairman.Rank())
	assert.Zero(t, MemberTier("bronze").Rank())
}
