package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, m *TeamMember) error
	Find(ctx context.Context, db *gorm.DB, userID, businessID snowflake.ID) (*TeamMember, error)
	ListByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]TeamMember, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]TeamMember, error)
	CountByRole(ctx context.Context, db *gorm.DB, businessID snowflake.ID, role entitlementdomain.TeamRole) (int64, error)
	Update(ctx context.Context, db *gorm.DB, m *TeamMember) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ClearPrimary(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
