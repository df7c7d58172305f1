package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	teamdomain "github.com/btcforcorps/orangepages/internal/team/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() teamdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *teamdomain.TeamMember) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, userID, businessID snowflake.ID) (*teamdomain.TeamMember, error) {
	var m teamdomain.TeamMember
	err := db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) ListByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]teamdomain.TeamMember, error) {
	var items []teamdomain.TeamMember
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]teamdomain.TeamMember, error) {
	var items []teamdomain.TeamMember
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountByRole(ctx context.Context, db *gorm.DB, businessID snowflake.ID, role entitlementdomain.TeamRole) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&teamdomain.TeamMember{}).
		Where("business_id = ? AND role = ?", businessID, role).
		Count(&count).Error
	return count, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *teamdomain.TeamMember) error {
	return db.WithContext(ctx).Save(m).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&teamdomain.TeamMember{}).Error
}

func (r *repo) ClearPrimary(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Model(&teamdomain.TeamMember{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Update("is_primary", false).Error
}
