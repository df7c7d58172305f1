package authorization

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	return NewService(Params{
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})
}

func TestAuthorize_StaffRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(4001).String()
	actor := "user:" + userID

	err := svc.Authorize(ctx, actor, ObjectEvent, ActionCreate)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.GrantRole(ctx, userID, RoleStaff))

	assert.NoError(t, svc.Authorize(ctx, actor, ObjectEvent, ActionCreate))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectClaimRequest, ActionApprove))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectOverride, ActionDelete))

	// Staff cannot manage staff.
	err = svc.Authorize(ctx, actor, ObjectStaff, ActionGrant)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.RevokeRole(ctx, userID, RoleStaff))
	err = svc.Authorize(ctx, actor, ObjectEvent, ActionCreate)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_SuperadminInheritsStaff(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(4002).String()
	actor := "user:" + userID

	require.NoError(t, svc.GrantRole(ctx, userID, RoleSuperadmin))

	assert.NoError(t, svc.Authorize(ctx, actor, ObjectStaff, ActionGrant))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectEvent, ActionCreate))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectBenefit, ActionUpdate))
}

func TestAuthorize_InvalidActor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Authorize(ctx, "user:not-a-snowflake", ObjectEvent, ActionView)
	assert.ErrorIs(t, err, ErrInvalidActor)

	err = svc.Authorize(ctx, "api_key:123", ObjectEvent, ActionView)
	assert.ErrorIs(t, err, ErrInvalidActor)

	assert.NoError(t, svc.Authorize(ctx, "system", ObjectMembership, ActionUpdate))
}
