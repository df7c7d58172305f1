// Package scheduler runs background sweeps: expiring memberships past
// their end date and archiving events that already happened.
package scheduler

import (
	"context"
	"errors"
	"time"

	auditdomain "github.com/btcforcorps/orangepages/internal/audit/domain"
	"github.com/btcforcorps/orangepages/internal/clock"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	MembershipSvc membershipdomain.Service
	AuditSvc      auditdomain.Service
	Config        Config `optional:"true"`
}

type Scheduler struct {
	db            *gorm.DB
	log           *zap.Logger
	cfg           Config
	clock         clock.Clock
	membershipSvc membershipdomain.Service
	auditSvc      auditdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.MembershipSvc == nil || p.AuditSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:            p.DB,
		log:           p.Log.Named("scheduler"),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		membershipSvc: p.MembershipSvc,
		auditSvc:      p.AuditSvc,
	}, nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.log.Warn("sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep runs one pass of both sweeps. Errors from one sweep do not stop
// the other.
func (s *Scheduler) Sweep(ctx context.Context) error {
	var firstErr error
	if err := s.expireMemberships(ctx); err != nil {
		firstErr = err
	}
	if err := s.archiveEvents(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *Scheduler) expireMemberships(ctx context.Context) error {
	now := s.clock.Now()

	var expired []membershipdomain.Membership
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Limit(s.cfg.BatchSize).
		Find(&expired).Error
	if err != nil {
		return err
	}

	for _, m := range expired {
		businessID := m.BusinessID.String()
		if err := s.membershipSvc.Deactivate(ctx, businessID); err != nil {
			s.log.Warn("membership expiry failed",
				zap.String("business_id", businessID),
				zap.Error(err),
			)
			continue
		}

		membershipID := m.ID.String()
		_ = s.auditSvc.AuditLog(ctx, "membership.expire", "membership", &membershipID, map[string]any{
			"business_id": businessID,
			"tier":        string(m.Tier),
			"expired_at":  m.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	if len(expired) > 0 {
		s.log.Info("expired memberships", zap.Int("count", len(expired)))
	}
	return nil
}

func (s *Scheduler) archiveEvents(ctx context.Context) error {
	now := s.clock.Now()

	var ended []eventdomain.Event
	err := s.db.WithContext(ctx).
		Where("status = ? AND ends_at <= ?", eventdomain.EventPublished, now).
		Limit(s.cfg.BatchSize).
		Find(&ended).Error
	if err != nil {
		return err
	}

	for _, e := range ended {
		err := s.db.WithContext(ctx).
			Model(&eventdomain.Event{}).
			Where("id = ? AND status = ?", e.ID, eventdomain.EventPublished).
			Updates(map[string]any{"status": eventdomain.EventArchived, "updated_at": now}).Error
		if err != nil {
			s.log.Warn("event archive failed", zap.String("event_id", e.ID.String()), zap.Error(err))
			continue
		}

		eventID := e.ID.String()
		_ = s.auditSvc.AuditLog(ctx, "event.archive", "event", &eventID, map[string]any{
			"name":     e.Name,
			"ended_at": e.EndsAt.UTC().Format(time.RFC3339),
		})
	}

	if len(ended) > 0 {
		s.log.Info("archived events", zap.Int("count", len(ended)))
	}
	return nil
}
