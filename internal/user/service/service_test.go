package service

import (
	"context"
	"testing"

	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	pkgrepository "github.com/btcforcorps/orangepages/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) userdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Users: pkgrepository.ProvideStore[userdomain.User](db),
	})
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, userdomain.RegisterRequest{
		Email:       "  Satoshi@Example.COM ",
		DisplayName: "Satoshi",
		Password:    "running bitcoin",
	})
	require.NoError(t, err)
	assert.Equal(t, "satoshi@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "running bitcoin")

	_, err = svc.Register(ctx, userdomain.RegisterRequest{
		Email:       "satoshi@example.com",
		DisplayName: "Impostor",
		Password:    "another pass",
	})
	assert.ErrorIs(t, err, userdomain.ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, userdomain.RegisterRequest{Email: "not-an-email", DisplayName: "X", Password: "long enough"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidEmail)

	_, err = svc.Register(ctx, userdomain.RegisterRequest{Email: "a@b.co", DisplayName: "", Password: "long enough"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidName)

	_, err = svc.Register(ctx, userdomain.RegisterRequest{Email: "a@b.co", DisplayName: "X", Password: "short"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidPassword)
}

func TestAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, userdomain.RegisterRequest{
		Email:       "hal@example.com",
		DisplayName: "Hal",
		Password:    "first transaction",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "HAL@example.com", "first transaction")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "hal@example.com", "wrong password")
	assert.ErrorIs(t, err, userdomain.ErrBadCredentials)

	// Unknown accounts fail the same way as wrong passwords.
	_, err = svc.Authenticate(ctx, "nobody@example.com", "first transaction")
	assert.ErrorIs(t, err, userdomain.ErrBadCredentials)
}
