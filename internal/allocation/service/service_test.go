package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	allocationrepo "github.com/btcforcorps/orangepages/internal/allocation/repository"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	membershiprepo "github.com/btcforcorps/orangepages/internal/membership/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  allocationdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&allocationdomain.EventAllocation{},
		&allocationdomain.AllocationOverride{},
		&membershipdomain.Membership{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:             db,
		Log:            zap.NewNop(),
		GenID:          node,
		Repo:           allocationrepo.Provide(),
		MembershipRepo: membershiprepo.Provide(),
	})

	return &fixture{db: db, node: node, svc: svc}
}

func (f *fixture) activeMembership(t *testing.T, businessID snowflake.ID, tier entitlementdomain.MemberTier) {
	t.Helper()
	require.NoError(t, f.db.Create(&membershipdomain.Membership{
		ID:         f.node.Generate(),
		BusinessID: businessID,
		Tier:       tier,
		IsActive:   true,
		StartedAt:  time.Now().UTC(),
	}).Error)
}

func TestResolve_TierDefaultOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	businessID := f.node.Generate()
	eventID := f.node.Generate()
	f.activeMembership(t, businessID, entitlementdomain.TierPremier)

	_, err := f.svc.SetTierDefault(ctx, allocationdomain.SetTierDefaultRequest{
		EventID:        eventID.String(),
		Tier:           entitlementdomain.TierPremier,
		GATickets:      8,
		SymposiumSeats: 2,
	})
	require.NoError(t, err)

	eff, err := f.svc.Resolve(ctx, businessID.String(), eventID.String())
	require.NoError(t, err)
	assert.Equal(t, 8, eff.GATickets)
	assert.Equal(t, 2, eff.SymposiumSeats)
	assert.False(t, eff.HasOverride)
}

func TestResolve_WithAdditiveOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	businessID := f.node.Generate()
	eventID := f.node.Generate()
	f.activeMembership(t, businessID, entitlementdomain.TierGold)

	_, err := f.svc.SetTierDefault(ctx, allocationdomain.SetTierDefaultRequest{
		EventID:   eventID.String(),
		Tier:      entitlementdomain.TierGold,
		GATickets: 5,
	})
	require.NoError(t, err)

	delta := -8
	_, err = f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: businessID.String(),
		EventID:    eventID.String(),
		Mode:       allocationdomain.OverrideModeAdditive,
		GATickets:  &delta,
		Reason:     "tickets reallocated to partner event",
	})
	require.NoError(t, err)

	eff, err := f.svc.Resolve(ctx, businessID.String(), eventID.String())
	require.NoError(t, err)
	// Negative effective counts pass through unclamped.
	assert.Equal(t, -3, eff.GATickets)
	assert.True(t, eff.HasOverride)
	assert.Equal(t, allocationdomain.OverrideModeAdditive, eff.OverrideMode)
}

func TestResolve_OverrideFollowsTierChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	businessID := f.node.Generate()
	eventID := f.node.Generate()
	f.activeMembership(t, businessID, entitlementdomain.TierIndustry)

	for tier, ga := range map[entitlementdomain.MemberTier]int{
		entitlementdomain.TierIndustry: 2,
		entitlementdomain.TierSponsor:  10,
	} {
		_, err := f.svc.SetTierDefault(ctx, allocationdomain.SetTierDefaultRequest{
			EventID:   eventID.String(),
			Tier:      tier,
			GATickets: ga,
		})
		require.NoError(t, err)
	}

	extra := 3
	_, err := f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: businessID.String(),
		EventID:    eventID.String(),
		Mode:       allocationdomain.OverrideModeAdditive,
		GATickets:  &extra,
		Reason:     "board seat holder",
	})
	require.NoError(t, err)

	eff, err := f.svc.Resolve(ctx, businessID.String(), eventID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, eff.GATickets)

	// Upgrading the tier re-bases the additive override on the new default.
	require.NoError(t, f.db.Model(&membershipdomain.Membership{}).
		Where("business_id = ?", businessID).
		Update("tier", entitlementdomain.TierSponsor).Error)

	eff, err = f.svc.Resolve(ctx, businessID.String(), eventID.String())
	require.NoError(t, err)
	assert.Equal(t, 13, eff.GATickets)
}

func TestResolve_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	businessID := f.node.Generate()
	eventID := f.node.Generate()

	_, err := f.svc.Resolve(ctx, businessID.String(), eventID.String())
	assert.ErrorIs(t, err, allocationdomain.ErrNoActiveMembership)

	f.activeMembership(t, businessID, entitlementdomain.TierSilver)
	_, err = f.svc.Resolve(ctx, businessID.String(), eventID.String())
	assert.ErrorIs(t, err, allocationdomain.ErrNoTierDefault)
}

func TestUpsertOverride_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.node.Generate().String()

	_, err := f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: id,
		EventID:    id,
		Mode:       allocationdomain.OverrideMode("multiplicative"),
		Reason:     "r",
	})
	assert.ErrorIs(t, err, allocationdomain.ErrInvalidMode)

	_, err = f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: id,
		EventID:    id,
		Mode:       allocationdomain.OverrideModeAbsolute,
		Reason:     "   ",
	})
	assert.ErrorIs(t, err, allocationdomain.ErrReasonRequired)
}

func TestUpsertOverride_ReplacesExistingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	businessID := f.node.Generate()
	eventID := f.node.Generate()
	f.activeMembership(t, businessID, entitlementdomain.TierExecutive)

	_, err := f.svc.SetTierDefault(ctx, allocationdomain.SetTierDefaultRequest{
		EventID:   eventID.String(),
		Tier:      entitlementdomain.TierExecutive,
		GATickets: 6,
	})
	require.NoError(t, err)

	first := 20
	_, err = f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: businessID.String(),
		EventID:    eventID.String(),
		Mode:       allocationdomain.OverrideModeAbsolute,
		GATickets:  &first,
		Reason:     "initial deal",
	})
	require.NoError(t, err)

	second := 2
	_, err = f.svc.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: businessID.String(),
		EventID:    eventID.String(),
		Mode:       allocationdomain.OverrideModeAdditive,
		GATickets:  &second,
		Reason:     "revised deal",
	})
	require.NoError(t, err)

	rows, err := f.svc.ListOverrides(ctx, eventID.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, allocationdomain.OverrideModeAdditive, rows[0].Mode)
	assert.Equal(t, "revised deal", rows[0].Reason)

	eff, err := f.svc.Resolve(ctx, businessID.String(), eventID.String())
	require.NoError(t, err)
	assert.Equal(t, 8, eff.GATickets)
}
