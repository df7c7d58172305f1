package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"github.com/btcforcorps/orangepages/internal/membership/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) membershipdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&membershipdomain.Membership{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestGrant_OneActivePerBusiness(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(1001).String()

	granted, err := svc.Grant(ctx, membershipdomain.GrantRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierPremier,
	})
	require.NoError(t, err)
	assert.True(t, granted.IsActive)
	assert.Equal(t, entitlementdomain.TierPremier, granted.Tier)

	_, err = svc.Grant(ctx, membershipdomain.GrantRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierChairman,
	})
	assert.ErrorIs(t, err, membershipdomain.ErrAlreadyActive)
}

func TestGrant_RejectsUnknownTier(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Grant(context.Background(), membershipdomain.GrantRequest{
		BusinessID: snowflake.ID(1002).String(),
		Tier:       entitlementdomain.MemberTier("bronze"),
	})
	assert.ErrorIs(t, err, membershipdomain.ErrInvalidTier)
}

func TestChangeTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(1003).String()

	_, err := svc.Grant(ctx, membershipdomain.GrantRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierIndustry,
	})
	require.NoError(t, err)

	changed, err := svc.ChangeTier(ctx, membershipdomain.ChangeTierRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierSponsor,
	})
	require.NoError(t, err)
	assert.Equal(t, entitlementdomain.TierSponsor, changed.Tier)

	active, err := svc.GetActive(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, entitlementdomain.TierSponsor, active.Tier)
}

func TestDeactivate_KeepsHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(1004).String()

	_, err := svc.Grant(ctx, membershipdomain.GrantRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierGold,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, businessID))

	active, err := svc.GetActive(ctx, businessID)
	require.NoError(t, err)
	assert.Nil(t, active)

	// Deactivated memberships survive as history and a new grant succeeds.
	history, err := svc.History(ctx, businessID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.False(t, history[0].IsActive)

	_, err = svc.Grant(ctx, membershipdomain.GrantRequest{
		BusinessID: businessID,
		Tier:       entitlementdomain.TierPlatinum,
	})
	assert.NoError(t, err)

	err = svc.Deactivate(ctx, snowflake.ID(9999).String())
	assert.ErrorIs(t, err, membershipdomain.ErrNoActiveMembership)
}
