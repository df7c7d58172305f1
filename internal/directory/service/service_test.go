package service

import (
	"context"
	"testing"

	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	"github.com/btcforcorps/orangepages/internal/directory/repository"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	teamrepo "github.com/btcforcorps/orangepages/internal/team/repository"
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/btcforcorps/orangepages/pkg/db/pagination"
	pkgrepository "github.com/btcforcorps/orangepages/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMail struct {
	to       []string
	template string
	data     interface{}
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (m *recordingMailer) SendTemplate(ctx context.Context, to []string, templateName string, data interface{}) error {
	m.sent = append(m.sent, sentMail{to: to, template: templateName, data: data})
	return nil
}

type fixture struct {
	db     *gorm.DB
	node   *snowflake.Node
	svc    directorydomain.Service
	mailer *recordingMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&directorydomain.Business{},
		&directorydomain.ClaimRequest{},
		&teamdomain.TeamMember{},
		&userdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	mailer := &recordingMailer{}
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		TeamRepo: teamrepo.Provide(),
		Users:    pkgrepository.ProvideStore[userdomain.User](db),
		Email:    mailer,
	})

	return &fixture{db: db, node: node, svc: svc, mailer: mailer}
}

func (f *fixture) addUser(t *testing.T, id snowflake.ID, email string) {
	t.Helper()
	require.NoError(t, f.db.Create(&userdomain.User{
		ID:          id,
		Email:       email,
		DisplayName: "Test User",
	}).Error)
}

func TestSubmit_PendingWithSlug(t *testing.T) {
	f := newFixture(t)

	business, err := f.svc.Submit(context.Background(), directorydomain.SubmitListingRequest{
		Name:     "Satoshi Hardware Co.",
		Category: "hardware",
		Region:   "emea",
	})
	require.NoError(t, err)
	assert.Equal(t, directorydomain.BusinessPending, business.Status)
	assert.Equal(t, "satoshi-hardware-co", business.Slug)

	_, err = f.svc.Submit(context.Background(), directorydomain.SubmitListingRequest{
		Name: "Satoshi Hardware Co.",
	})
	assert.ErrorIs(t, err, directorydomain.ErrSlugTaken)
}

func TestSetStatus_ApproveThenHide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	business, err := f.svc.Submit(ctx, directorydomain.SubmitListingRequest{Name: "Lightning Cafe"})
	require.NoError(t, err)

	approved, err := f.svc.SetStatus(ctx, business.ID.String(), directorydomain.BusinessActive)
	require.NoError(t, err)
	assert.Equal(t, directorydomain.BusinessActive, approved.Status)

	hidden, err := f.svc.SetStatus(ctx, business.ID.String(), directorydomain.BusinessHidden)
	require.NoError(t, err)
	assert.Equal(t, directorydomain.BusinessHidden, hidden.Status)

	_, err = f.svc.SetStatus(ctx, business.ID.String(), directorydomain.BusinessStatus("archived"))
	assert.ErrorIs(t, err, directorydomain.ErrInvalidStatus)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	names := []string{"Alpha Mining", "Beta Custody", "Gamma Mining", "Delta Payments"}
	for i, name := range names {
		category := "finance"
		if i%2 == 0 {
			category = "mining"
		}
		business, err := f.svc.Submit(ctx, directorydomain.SubmitListingRequest{
			Name:     name,
			Category: category,
		})
		require.NoError(t, err)
		_, err = f.svc.SetStatus(ctx, business.ID.String(), directorydomain.BusinessActive)
		require.NoError(t, err)
	}

	mining, _, err := f.svc.List(ctx, directorydomain.ListFilter{Category: "mining"}, pagination.Pagination{PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, mining, 2)

	firstPage, info, err := f.svc.List(ctx, directorydomain.ListFilter{}, pagination.Pagination{PageSize: 3})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	require.True(t, info.HasMore)

	secondPage, info, err := f.svc.List(ctx, directorydomain.ListFilter{}, pagination.Pagination{
		PageSize:  3,
		PageToken: info.NextPageToken,
	})
	require.NoError(t, err)
	assert.Len(t, secondPage, 1)
	assert.False(t, info.HasMore)
}

func TestGetBySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, directorydomain.SubmitListingRequest{Name: "Orange Node Ops"})
	require.NoError(t, err)

	business, err := f.svc.GetBySlug(ctx, "orange-node-ops")
	require.NoError(t, err)
	assert.Equal(t, "Orange Node Ops", business.Name)

	_, err = f.svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, directorydomain.ErrBusinessNotFound)
}

func TestClaimFlow_ApprovalCreatesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	business, err := f.svc.Submit(ctx, directorydomain.SubmitListingRequest{Name: "Block Bakery"})
	require.NoError(t, err)

	claimantID := f.node.Generate()
	f.addUser(t, claimantID, "baker@example.com")
	reviewerID := f.node.Generate()

	claim, err := f.svc.SubmitClaim(ctx, directorydomain.SubmitClaimRequest{
		BusinessID: business.ID.String(),
		UserID:     claimantID.String(),
		Message:    "I run this bakery.",
	})
	require.NoError(t, err)
	assert.Equal(t, directorydomain.ClaimPending, claim.Status)

	_, err = f.svc.SubmitClaim(ctx, directorydomain.SubmitClaimRequest{
		BusinessID: business.ID.String(),
		UserID:     claimantID.String(),
	})
	assert.ErrorIs(t, err, directorydomain.ErrClaimExists)

	reviewed, err := f.svc.ReviewClaim(ctx, directorydomain.ReviewClaimRequest{
		ClaimID:    claim.ID.String(),
		ReviewerID: reviewerID.String(),
		Approve:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, directorydomain.ClaimApproved, reviewed.Status)

	var member teamdomain.TeamMember
	require.NoError(t, f.db.
		Where("user_id = ? AND business_id = ?", claimantID, business.ID).
		First(&member).Error)
	assert.Equal(t, entitlementdomain.RoleOwner, member.Role)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"baker@example.com"}, f.mailer.sent[0].to)
	assert.Equal(t, "claim_approved", f.mailer.sent[0].template)
}

func TestClaimFlow_Rejection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	business, err := f.svc.Submit(ctx, directorydomain.SubmitListingRequest{Name: "Node Runner LLC"})
	require.NoError(t, err)

	claimantID := f.node.Generate()
	f.addUser(t, claimantID, "runner@example.com")

	claim, err := f.svc.SubmitClaim(ctx, directorydomain.SubmitClaimRequest{
		BusinessID: business.ID.String(),
		UserID:     claimantID.String(),
	})
	require.NoError(t, err)

	reviewed, err := f.svc.ReviewClaim(ctx, directorydomain.ReviewClaimRequest{
		ClaimID:    claim.ID.String(),
		ReviewerID: f.node.Generate().String(),
		Approve:    false,
		Note:       "could not verify",
	})
	require.NoError(t, err)
	assert.Equal(t, directorydomain.ClaimRejected, reviewed.Status)
	assert.Equal(t, "could not verify", reviewed.ReviewNote)

	var count int64
	require.NoError(t, f.db.Model(&teamdomain.TeamMember{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = f.svc.ReviewClaim(ctx, directorydomain.ReviewClaimRequest{
		ClaimID:    claim.ID.String(),
		ReviewerID: f.node.Generate().String(),
		Approve:    true,
	})
	assert.ErrorIs(t, err, directorydomain.ErrClaimNotPending)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "claim_rejected", f.mailer.sent[0].template)
}
