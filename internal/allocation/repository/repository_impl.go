package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() allocationdomain.Repository {
	return &repo{}
}

func (r *repo) UpsertTierDefault(ctx context.Context, db *gorm.DB, alloc *allocationdomain.EventAllocation) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ga_tickets", "pro_tickets", "whale_tickets", "custom_tickets",
			"custom_pass_name", "symposium_seats", "vip_dinner_seats", "updated_at",
		}),
	}).Create(alloc).Error
}

func (r *repo) FindTierDefault(ctx context.Context, db *gorm.DB, eventID snowflake.ID, tier entitlementdomain.MemberTier) (*allocationdomain.EventAllocation, error) {
	var alloc allocationdomain.EventAllocation
	err := db.WithContext(ctx).
		Where("event_id = ? AND tier = ?", eventID, tier).
		First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alloc, nil
}

func (r *repo) ListTierDefaults(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]allocationdomain.EventAllocation, error) {
	var items []allocationdomain.EventAllocation
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("tier ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpsertOverride(ctx context.Context, db *gorm.DB, ov *allocationdomain.AllocationOverride) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"override_mode", "ga_tickets_override", "pro_tickets_override",
			"whale_tickets_override", "custom_tickets_override",
			"custom_pass_name_override", "symposium_seats_override",
			"vip_dinner_seats_override", "reason", "updated_at",
		}),
	}).Create(ov).Error
}

func (r *repo) FindOverride(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) (*allocationdomain.AllocationOverride, error) {
	var ov allocationdomain.AllocationOverride
	err := db.WithContext(ctx).
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		First(&ov).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ov, nil
}

func (r *repo) ListOverridesByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]allocationdomain.AllocationOverride, error) {
	var items []allocationdomain.AllocationOverride
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteOverride(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		Delete(&allocationdomain.AllocationOverride{}).Error
}
