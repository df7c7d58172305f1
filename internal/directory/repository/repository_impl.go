package repository

import (
	"context"
	"errors"

	directorydomain "github.com/btcforcorps/orangepages/internal/directory/domain"
	"github.com/btcforcorps/orangepages/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() directorydomain.Repository {
	return &repo{}
}

func (r *repo) InsertBusiness(ctx context.Context, db *gorm.DB, b *directorydomain.Business) error {
	return db.WithContext(ctx).Create(b).Error
}

func (r *repo) FindBusinessByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*directorydomain.Business, error) {
	var b directorydomain.Business
	err := db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) FindBusinessBySlug(ctx context.Context, db *gorm.DB, slug string) (*directorydomain.Business, error) {
	var b directorydomain.Business
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) ListBusinesses(ctx context.Context, db *gorm.DB, filter directorydomain.ListFilter, page pagination.Pagination) ([]*directorydomain.Business, *pagination.PageInfo, error) {
	stmt := db.WithContext(ctx).Model(&directorydomain.Business{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		stmt = stmt.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, nil, err
		}
		if cursor.ID != "" {
			stmt = stmt.Where("id < ?", cursor.ID)
		}
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 25
	}

	var rows []*directorydomain.Business
	err := stmt.
		Order("id desc").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	info, rows := pagination.BuildPageInfo(rows, limit, func(b *directorydomain.Business) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: b.ID.String()})
		return token
	})
	return rows, info, nil
}

func (r *repo) UpdateBusiness(ctx context.Context, db *gorm.DB, b *directorydomain.Business) error {
	return db.WithContext(ctx).Save(b).Error
}

func (r *repo) InsertClaim(ctx context.Context, db *gorm.DB, c *directorydomain.ClaimRequest) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repo) FindClaimByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*directorydomain.ClaimRequest, error) {
	var c directorydomain.ClaimRequest
	err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindPendingClaim(ctx context.Context, db *gorm.DB, businessID, userID snowflake.ID) (*directorydomain.ClaimRequest, error) {
	var c directorydomain.ClaimRequest
	err := db.WithContext(ctx).
		Where("business_id = ? AND user_id = ? AND status = ?", businessID, userID, directorydomain.ClaimPending).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) ListClaims(ctx context.Context, db *gorm.DB, status directorydomain.ClaimStatus) ([]directorydomain.ClaimRequest, error) {
	stmt := db.WithContext(ctx).Model(&directorydomain.ClaimRequest{})
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	var claims []directorydomain.ClaimRequest
	if err := stmt.Order("created_at asc").Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *repo) UpdateClaim(ctx context.Context, db *gorm.DB, c *directorydomain.ClaimRequest) error {
	return db.WithContext(ctx).Save(c).Error
}
