package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, m *Membership) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Membership, error)
	FindActiveByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) (*Membership, error)
	ListByBusiness(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]Membership, error)
	Update(ctx context.Context, db *gorm.DB, m *Membership) error
}
