package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Consumed totals per pool for one (business, event) pair.
type Consumed struct {
	GATickets      int
	ProTickets     int
	WhaleTickets   int
	CustomTickets  int
	SymposiumSeats int
	VIPDinnerSeats int
}

type Repository interface {
	InsertEvent(ctx context.Context, db *gorm.DB, e *Event) error
	FindEventByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Event, error)
	FindEventBySlug(ctx context.Context, db *gorm.DB, slug string) (*Event, error)
	ListEvents(ctx context.Context, db *gorm.DB, status EventStatus) ([]Event, error)
	UpdateEvent(ctx context.Context, db *gorm.DB, e *Event) error

	InsertTicketClaim(ctx context.Context, db *gorm.DB, c *TicketClaim) error
	InsertSymposiumRegistration(ctx context.Context, db *gorm.DB, r *SymposiumRegistration) error
	InsertDinnerRSVP(ctx context.Context, db *gorm.DB, r *DinnerRSVP) error
	InsertSpeakerApplication(ctx context.Context, db *gorm.DB, a *SpeakerApplication) error

	ListTicketClaims(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) ([]TicketClaim, error)
	ListSpeakerApplications(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]SpeakerApplication, error)
	UpdateSpeakerApplication(ctx context.Context, db *gorm.DB, a *SpeakerApplication) error

	// SumConsumed totals ticket claims, symposium registrations and dinner
	// RSVPs for one business at one event.
	SumConsumed(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) (*Consumed, error)
}
