package domain

import (
	"context"

	"github.com/btcforcorps/orangepages/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows directory searches. Zero values are ignored.
type ListFilter struct {
	Query    string
	Category string
	Region   string
	Status   BusinessStatus
}

type Repository interface {
	InsertBusiness(ctx context.Context, db *gorm.DB, b *Business) error
	FindBusinessByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Business, error)
	FindBusinessBySlug(ctx context.Context, db *gorm.DB, slug string) (*Business, error)
	ListBusinesses(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Business, *pagination.PageInfo, error)
	UpdateBusiness(ctx context.Context, db *gorm.DB, b *Business) error

	InsertClaim(ctx context.Context, db *gorm.DB, c *ClaimRequest) error
	FindClaimByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ClaimRequest, error)
	FindPendingClaim(ctx context.Context, db *gorm.DB, businessID, userID snowflake.ID) (*ClaimRequest, error)
	ListClaims(ctx context.Context, db *gorm.DB, status ClaimStatus) ([]ClaimRequest, error)
	UpdateClaim(ctx context.Context, db *gorm.DB, c *ClaimRequest) error
}
