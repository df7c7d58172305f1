package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"github.com/btcforcorps/orangepages/internal/team/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) teamdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&teamdomain.TeamMember{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestAdd_AndDuplicateRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(2001).String()
	userID := snowflake.ID(9001).String()

	member, err := svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     userID,
		Role:       entitlementdomain.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, entitlementdomain.RoleOwner, member.Role)
	assert.False(t, member.IsPrimary)

	_, err = svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     userID,
		Role:       entitlementdomain.RoleMember,
	})
	assert.ErrorIs(t, err, teamdomain.ErrAlreadyOnTeam)
}

func TestAdd_RejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Add(context.Background(), teamdomain.AddMemberRequest{
		BusinessID: snowflake.ID(2002).String(),
		UserID:     snowflake.ID(9002).String(),
		Role:       entitlementdomain.TeamRole("superuser"),
	})
	assert.ErrorIs(t, err, teamdomain.ErrInvalidRole)
}

func TestChangeRole_LastOwnerGuard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(2003).String()
	ownerID := snowflake.ID(9003).String()

	_, err := svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     ownerID,
		Role:       entitlementdomain.RoleOwner,
	})
	require.NoError(t, err)

	_, err = svc.ChangeRole(ctx, teamdomain.ChangeRoleRequest{
		BusinessID: businessID,
		UserID:     ownerID,
		Role:       entitlementdomain.RoleMember,
	})
	assert.ErrorIs(t, err, teamdomain.ErrLastOwner)

	secondOwnerID := snowflake.ID(9004).String()
	_, err = svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     secondOwnerID,
		Role:       entitlementdomain.RoleOwner,
	})
	require.NoError(t, err)

	updated, err := svc.ChangeRole(ctx, teamdomain.ChangeRoleRequest{
		BusinessID: businessID,
		UserID:     ownerID,
		Role:       entitlementdomain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entitlementdomain.RoleAdmin, updated.Role)
}

func TestRemove_LastOwnerGuard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(2004).String()
	ownerID := snowflake.ID(9005).String()
	memberID := snowflake.ID(9006).String()

	_, err := svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     ownerID,
		Role:       entitlementdomain.RoleOwner,
	})
	require.NoError(t, err)
	_, err = svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: businessID,
		UserID:     memberID,
		Role:       entitlementdomain.RoleMember,
	})
	require.NoError(t, err)

	err = svc.Remove(ctx, businessID, ownerID)
	assert.ErrorIs(t, err, teamdomain.ErrLastOwner)

	require.NoError(t, svc.Remove(ctx, businessID, memberID))

	members, err := svc.List(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, entitlementdomain.RoleOwner, members[0].Role)
}

func TestSetPrimary_ClearsPrevious(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(9007).String()
	firstBusiness := snowflake.ID(2005).String()
	secondBusiness := snowflake.ID(2006).String()

	_, err := svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: firstBusiness,
		UserID:     userID,
		Role:       entitlementdomain.RoleOwner,
	})
	require.NoError(t, err)
	_, err = svc.Add(ctx, teamdomain.AddMemberRequest{
		BusinessID: secondBusiness,
		UserID:     userID,
		Role:       entitlementdomain.RoleAdmin,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetPrimary(ctx, userID, firstBusiness))
	require.NoError(t, svc.SetPrimary(ctx, userID, secondBusiness))

	first, err := svc.List(ctx, firstBusiness)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].IsPrimary)

	second, err := svc.List(ctx, secondBusiness)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].IsPrimary)
}

func TestRemove_NotOnTeam(t *testing.T) {
	svc := newTestService(t)

	err := svc.Remove(context.Background(), snowflake.ID(2007).String(), snowflake.ID(9008).String())
	assert.ErrorIs(t, err, teamdomain.ErrNotOnTeam)
}
