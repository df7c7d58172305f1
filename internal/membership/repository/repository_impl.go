package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/btcforcorps/orangepages/internal/membership/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() membershipdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *membershipdomain.Membership) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*membershipdomain.Membership, error) {
	var m membershipdomain.Membership
	err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) FindActiveByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) (*membershipdomain.Membership, error) {
	var m membershipdomain.Membership
	err := db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) ListByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]membershipdomain.Membership, error) {
	var items []membershipdomain.Membership
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *membershipdomain.Membership) error {
	return db.WithContext(ctx).Save(m).Error
}
