package service

import (
	"context"
	"testing"
	"time"

	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	allocationrepo "github.com/btcforcorps/orangepages/internal/allocation/repository"
	allocationservice "github.com/btcforcorps/orangepages/internal/allocation/service"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	entitlementservice "github.com/btcforcorps/orangepages/internal/entitlement/service"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	"github.com/btcforcorps/orangepages/internal/event/repository"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	membershiprepo "github.com/btcforcorps/orangepages/internal/membership/repository"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	teamrepo "github.com/btcforcorps/orangepages/internal/team/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	node        *snowflake.Node
	svc         eventdomain.Service
	allocations allocationdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&eventdomain.Event{},
		&eventdomain.TicketClaim{},
		&eventdomain.SymposiumRegistration{},
		&eventdomain.DinnerRSVP{},
		&eventdomain.SpeakerApplication{},
		&teamdomain.TeamMember{},
		&membershipdomain.Membership{},
		&allocationdomain.EventAllocation{},
		&allocationdomain.AllocationOverride{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	membershipRepo := membershiprepo.Provide()
	allocations := allocationservice.New(allocationservice.Params{
		DB:             db,
		Log:            zap.NewNop(),
		GenID:          node,
		Repo:           allocationrepo.Provide(),
		MembershipRepo: membershipRepo,
	})
	entitlement := entitlementservice.New(entitlementservice.Params{
		DB:             db,
		Log:            zap.NewNop(),
		TeamRepo:       teamrepo.Provide(),
		MembershipRepo: membershipRepo,
	})
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		Allocations: allocations,
		Entitlement: entitlement,
	})

	return &fixture{db: db, node: node, svc: svc, allocations: allocations}
}

// seedMember wires user -> team -> active membership for one business.
func (f *fixture) seedMember(t *testing.T, role entitlementdomain.TeamRole, tier entitlementdomain.MemberTier, active bool) (userID, businessID snowflake.ID) {
	t.Helper()
	userID = f.node.Generate()
	businessID = f.node.Generate()

	require.NoError(t, f.db.Create(&teamdomain.TeamMember{
		ID:         f.node.Generate(),
		UserID:     userID,
		BusinessID: businessID,
		Role:       role,
	}).Error)
	m := membershipdomain.Membership{
		ID:         f.node.Generate(),
		BusinessID: businessID,
		Tier:       tier,
		IsActive:   active,
	}
	require.NoError(t, f.db.Create(&m).Error)
	// gorm substitutes the column default for zero values on insert, so
	// IsActive=false must be written with an explicit update.
	require.NoError(t, f.db.Model(&m).UpdateColumn("is_active", active).Error)
	return userID, businessID
}

func (f *fixture) seedEvent(t *testing.T, name string, status eventdomain.EventStatus) *eventdomain.Event {
	t.Helper()
	event, err := f.svc.Create(context.Background(), eventdomain.CreateEventRequest{
		Name:     name,
		Venue:    "Convention Center",
		StartsAt: time.Now().Add(24 * time.Hour),
		EndsAt:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	if status != eventdomain.EventDraft {
		event, err = f.svc.Update(context.Background(), eventdomain.UpdateEventRequest{
			EventID: event.ID.String(),
			Status:  &status,
		})
		require.NoError(t, err)
	}
	return event
}

func (f *fixture) seedTierDefault(t *testing.T, eventID snowflake.ID, tier entitlementdomain.MemberTier, ga, symposium, dinners int) {
	t.Helper()
	_, err := f.allocations.SetTierDefault(context.Background(), allocationdomain.SetTierDefaultRequest{
		EventID:        eventID.String(),
		Tier:           tier,
		GATickets:      ga,
		SymposiumSeats: symposium,
		VIPDinnerSeats: dinners,
	})
	require.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, eventdomain.CreateEventRequest{Name: "  "})
	assert.ErrorIs(t, err, eventdomain.ErrInvalidName)

	_, err = f.svc.Create(ctx, eventdomain.CreateEventRequest{
		Name:     "Backwards Conf",
		StartsAt: time.Now().Add(48 * time.Hour),
		EndsAt:   time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, eventdomain.ErrInvalidSchedule)
}

func TestClaimTickets_ConsumesAllocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleMember, entitlementdomain.TierPremier, true)
	event := f.seedEvent(t, "Bitcoin Summit", eventdomain.EventPublished)
	f.seedTierDefault(t, event.ID, entitlementdomain.TierPremier, 5, 2, 1)

	claim, err := f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, claim.Quantity)

	summary, err := f.svc.Summary(ctx, userID.String(), businessID.String(), event.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Consumed.GATickets)
	assert.Equal(t, 2, summary.Remaining.GATickets)

	_, err = f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   3,
	})
	assert.ErrorIs(t, err, eventdomain.ErrAllocationExhausted)
}

func TestClaimTickets_RequiresActiveMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleOwner, entitlementdomain.TierExecutive, false)
	event := f.seedEvent(t, "Halving Party", eventdomain.EventPublished)
	f.seedTierDefault(t, event.ID, entitlementdomain.TierExecutive, 5, 0, 0)

	_, err := f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, eventdomain.ErrPermissionDenied)
}

func TestClaimTickets_DraftEventRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleMember, entitlementdomain.TierPremier, true)
	event := f.seedEvent(t, "Quiet Meetup", eventdomain.EventDraft)
	f.seedTierDefault(t, event.ID, entitlementdomain.TierPremier, 5, 0, 0)

	_, err := f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, eventdomain.ErrEventNotOpen)
}

func TestSummary_NegativeRemainingPassesThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleMember, entitlementdomain.TierPremier, true)
	event := f.seedEvent(t, "Mining Expo", eventdomain.EventPublished)
	f.seedTierDefault(t, event.ID, entitlementdomain.TierPremier, 5, 0, 0)

	_, err := f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   4,
	})
	require.NoError(t, err)

	// An additive cut below consumption leaves a negative balance.
	delta := -3
	_, err = f.allocations.UpsertOverride(ctx, allocationdomain.UpsertOverrideRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		Mode:       allocationdomain.OverrideModeAdditive,
		GATickets:  &delta,
		Reason:     "sponsorship lapsed",
	})
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, userID.String(), businessID.String(), event.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Effective.GATickets)
	assert.Equal(t, -2, summary.Remaining.GATickets)

	_, err = f.svc.ClaimTickets(ctx, eventdomain.ClaimTicketsRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		PassType:   eventdomain.PassGA,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, eventdomain.ErrAllocationExhausted)
}

func TestRegisterSymposiumAndRsvpDinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleAdmin, entitlementdomain.TierSponsor, true)
	event := f.seedEvent(t, "Policy Symposium", eventdomain.EventPublished)
	f.seedTierDefault(t, event.ID, entitlementdomain.TierSponsor, 0, 1, 1)

	_, err := f.svc.RegisterSymposium(ctx, eventdomain.RegisterSymposiumRequest{
		BusinessID:   businessID.String(),
		EventID:      event.ID.String(),
		UserID:       userID.String(),
		AttendeeName: "Ada",
	})
	require.NoError(t, err)

	_, err = f.svc.RegisterSymposium(ctx, eventdomain.RegisterSymposiumRequest{
		BusinessID:   businessID.String(),
		EventID:      event.ID.String(),
		UserID:       userID.String(),
		AttendeeName: "Brett",
	})
	assert.ErrorIs(t, err, eventdomain.ErrAllocationExhausted)

	_, err = f.svc.RsvpDinner(ctx, eventdomain.RsvpDinnerRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		GuestName:  "Ada",
		Dietary:    "vegetarian",
	})
	require.NoError(t, err)

	_, err = f.svc.RsvpDinner(ctx, eventdomain.RsvpDinnerRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		GuestName:  "Brett",
	})
	assert.ErrorIs(t, err, eventdomain.ErrAllocationExhausted)
}

func TestApplyToSpeak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, businessID := f.seedMember(t, entitlementdomain.RoleMember, entitlementdomain.TierIndustry, true)
	event := f.seedEvent(t, "Open Mic", eventdomain.EventPublished)

	app, err := f.svc.ApplyToSpeak(ctx, eventdomain.ApplyToSpeakRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		Topic:      "Running a node fleet",
	})
	require.NoError(t, err)
	assert.Equal(t, eventdomain.ApplicationSubmitted, app.Status)

	_, err = f.svc.ApplyToSpeak(ctx, eventdomain.ApplyToSpeakRequest{
		BusinessID: businessID.String(),
		EventID:    event.ID.String(),
		UserID:     userID.String(),
		Topic:      "  ",
	})
	assert.ErrorIs(t, err, eventdomain.ErrInvalidTopic)
}
