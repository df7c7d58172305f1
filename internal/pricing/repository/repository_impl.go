package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/btcforcorps/orangepages/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) InsertThreshold(ctx context.Context, db *gorm.DB, th *pricingdomain.PricingThreshold) error {
	return db.WithContext(ctx).Create(th).Error
}

func (r *repo) UpdateThreshold(ctx context.Context, db *gorm.DB, th *pricingdomain.PricingThreshold) error {
	return db.WithContext(ctx).Save(th).Error
}

func (r *repo) DeleteThreshold(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pricingdomain.PricingThreshold{}).Error
}

func (r *repo) FindThresholdByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricingdomain.PricingThreshold, error) {
	var th pricingdomain.PricingThreshold
	err := db.WithContext(ctx).Where("id = ?", id).First(&th).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &th, nil
}

func (r *repo) ListActiveThresholds(ctx context.Context, db *gorm.DB) ([]pricingdomain.PricingThreshold, error) {
	var items []pricingdomain.PricingThreshold
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListThresholds(ctx context.Context, db *gorm.DB) ([]pricingdomain.PricingThreshold, error) {
	var items []pricingdomain.PricingThreshold
	err := db.WithContext(ctx).
		Order("display_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindBenefitsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]pricingdomain.Benefit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []pricingdomain.Benefit
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveBenefits(ctx context.Context, db *gorm.DB) ([]pricingdomain.Benefit, error) {
	var items []pricingdomain.Benefit
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
