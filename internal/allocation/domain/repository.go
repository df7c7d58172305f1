package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	"gorm.io/gorm"
)

type Repository interface {
	UpsertTierDefault(ctx context.Context, db *gorm.DB, alloc *EventAllocation) error
	FindTierDefault(ctx context.Context, db *gorm.DB, eventID snowflake.ID, tier entitlementdomain.MemberTier) (*EventAllocation, error)
	ListTierDefaults(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]EventAllocation, error)

	UpsertOverride(ctx context.Context, db *gorm.DB, ov *AllocationOverride) error
	FindOverride(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) (*AllocationOverride, error)
	ListOverridesByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]AllocationOverride, error)
	DeleteOverride(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) error
}
