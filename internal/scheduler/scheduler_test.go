package scheduler

import (
	"context"
	"testing"
	"time"

	auditdomain "github.com/btcforcorps/orangepages/internal/audit/domain"
	auditrepo "github.com/btcforcorps/orangepages/internal/audit/repository"
	auditservice "github.com/btcforcorps/orangepages/internal/audit/service"
	"github.com/btcforcorps/orangepages/internal/clock"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	membershiprepo "github.com/btcforcorps/orangepages/internal/membership/repository"
	membershipservice "github.com/btcforcorps/orangepages/internal/membership/service"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clk   *clock.FakeClock
	sched *Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&membershipdomain.Membership{},
		&eventdomain.Event{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	memberships := membershipservice.New(membershipservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  membershiprepo.Provide(),
	})
	audit := auditservice.NewService(auditservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  auditrepo.Provide(),
	})

	clk := clock.NewFakeClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	sched, err := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		Clock:         clk,
		MembershipSvc: memberships,
		AuditSvc:      audit,
	})
	require.NoError(t, err)

	return &fixture{db: db, node: node, clk: clk, sched: sched}
}

func (f *fixture) seedMembership(t *testing.T, expiresAt *time.Time) membershipdomain.Membership {
	t.Helper()
	m := membershipdomain.Membership{
		ID:         f.node.Generate(),
		BusinessID: f.node.Generate(),
		Tier:       entitlementdomain.TierGold,
		IsActive:   true,
		StartedAt:  f.clk.Now().AddDate(-1, 0, 0),
		ExpiresAt:  expiresAt,
	}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func (f *fixture) seedEvent(t *testing.T, status eventdomain.EventStatus, endsAt time.Time) eventdomain.Event {
	t.Helper()
	e := eventdomain.Event{
		ID:       f.node.Generate(),
		Name:     "Symposium",
		Slug:     "symposium-" + f.node.Generate().String(),
		StartsAt: endsAt.Add(-8 * time.Hour),
		EndsAt:   endsAt,
		Status:   status,
	}
	require.NoError(t, f.db.Create(&e).Error)
	return e
}

func TestSweepExpiresMemberships(t *testing.T) {
	f := newFixture(t)

	past := f.clk.Now().Add(-time.Hour)
	future := f.clk.Now().Add(24 * time.Hour)
	expired := f.seedMembership(t, &past)
	current := f.seedMembership(t, &future)
	openEnded := f.seedMembership(t, nil)

	require.NoError(t, f.sched.Sweep(context.Background()))

	var got membershipdomain.Membership
	require.NoError(t, f.db.First(&got, "id = ?", expired.ID).Error)
	assert.False(t, got.IsActive)

	got = membershipdomain.Membership{}
	require.NoError(t, f.db.First(&got, "id = ?", current.ID).Error)
	assert.True(t, got.IsActive)

	got = membershipdomain.Membership{}
	require.NoError(t, f.db.First(&got, "id = ?", openEnded.ID).Error)
	assert.True(t, got.IsActive)

	var logs []auditdomain.AuditLog
	require.NoError(t, f.db.Where("action = ?", "membership.expire").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "system", logs[0].ActorType)
}

func TestSweepPicksUpNewlyExpired(t *testing.T) {
	f := newFixture(t)

	soon := f.clk.Now().Add(30 * time.Minute)
	m := f.seedMembership(t, &soon)

	require.NoError(t, f.sched.Sweep(context.Background()))
	var got membershipdomain.Membership
	require.NoError(t, f.db.First(&got, "id = ?", m.ID).Error)
	assert.True(t, got.IsActive)

	f.clk.Advance(time.Hour)

	require.NoError(t, f.sched.Sweep(context.Background()))
	require.NoError(t, f.db.First(&got, "id = ?", m.ID).Error)
	assert.False(t, got.IsActive)
}

func TestSweepArchivesEndedEvents(t *testing.T) {
	f := newFixture(t)

	ended := f.seedEvent(t, eventdomain.EventPublished, f.clk.Now().Add(-time.Hour))
	upcoming := f.seedEvent(t, eventdomain.EventPublished, f.clk.Now().Add(48*time.Hour))
	draft := f.seedEvent(t, eventdomain.EventDraft, f.clk.Now().Add(-time.Hour))

	require.NoError(t, f.sched.Sweep(context.Background()))

	var got eventdomain.Event
	require.NoError(t, f.db.First(&got, "id = ?", ended.ID).Error)
	assert.Equal(t, eventdomain.EventArchived, got.Status)

	got = eventdomain.Event{}
	require.NoError(t, f.db.First(&got, "id = ?", upcoming.ID).Error)
	assert.Equal(t, eventdomain.EventPublished, got.Status)

	got = eventdomain.Event{}
	require.NoError(t, f.db.First(&got, "id = ?", draft.ID).Error)
	assert.Equal(t, eventdomain.EventDraft, got.Status)
}
