// Package domain defines team roles, membership tiers and the permission
// set derived from them.
package domain

// TeamRole is a user's role within a business team.
type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

func (r TeamRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// MemberTier is a ranked membership level. Two tier sets are in circulation:
// the legacy set sold before the program relaunch and the current set. Both
// remain valid on active memberships.
type MemberTier string

const (
	// Legacy tiers.
	TierSilver   MemberTier = "silver"
	TierGold     MemberTier = "gold"
	TierPlatinum MemberTier = "platinum"

	// Current tiers. Chairman and Executive exist in both sets and keep a
	// single rank.
	TierIndustry  MemberTier = "industry"
	TierPremier   MemberTier = "premier"
	TierExecutive MemberTier = "executive"
	TierSponsor   MemberTier = "sponsor"
	TierChairman  MemberTier = "chairman"
)

var tierRanks = map[MemberTier]int{
	TierSilver:    1,
	TierGold:      2,
	TierPlatinum:  3,
	TierIndustry:  1,
	TierPremier:   2,
	TierExecutive: 3,
	TierSponsor:   4,
	TierChairman:  5,
}

// Rank returns the ordering position of the tier, 0 for unknown tiers.
func (t MemberTier) Rank() int {
	return tierRanks[t]
}

func (t MemberTier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// Tiers lists every accepted tier value.
func Tiers() []MemberTier {
	return []MemberTier{
		TierSilver, TierGold, TierPlatinum,
		TierIndustry, TierPremier, TierExecutive, TierSponsor, TierChairman,
	}
}
