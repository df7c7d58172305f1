// Package domain contains events and the member actions that consume
// event allocations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventArchived  EventStatus = "archived"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventArchived:
		return true
	}
	return false
}

type Event struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"type:text;not null" json:"name"`
	Slug     string       `gorm:"type:text;not null;uniqueIndex:ux_events_slug" json:"slug"`
	Venue    string       `gorm:"type:text" json:"venue"`
	StartsAt time.Time    `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time    `gorm:"not null" json:"ends_at"`
	Status   EventStatus  `gorm:"type:text;not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "events" }

// PassType names a ticket pool on the event allocation.
type PassType string

const (
	PassGA     PassType = "ga"
	PassPro    PassType = "pro"
	PassWhale  PassType = "whale"
	PassCustom PassType = "custom"
)

func (p PassType) Valid() bool {
	switch p {
	case PassGA, PassPro, PassWhale, PassCustom:
		return true
	}
	return false
}

type TicketClaim struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID `gorm:"not null;index" json:"business_id"`
	EventID    snowflake.ID `gorm:"not null;index" json:"event_id"`
	UserID     snowflake.ID `gorm:"not null;index" json:"user_id"`
	PassType   PassType     `gorm:"column:pass_type;type:text;not null" json:"pass_type"`
	Quantity   int          `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TicketClaim) TableName() string { return "ticket_claims" }

type SymposiumRegistration struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	BusinessID   snowflake.ID `gorm:"not null;index" json:"business_id"`
	EventID      snowflake.ID `gorm:"not null;index" json:"event_id"`
	UserID       snowflake.ID `gorm:"not null;index" json:"user_id"`
	AttendeeName string       `gorm:"column:attendee_name;type:text;not null" json:"attendee_name"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (SymposiumRegistration) TableName() string { return "symposium_registrations" }

type DinnerRSVP struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID `gorm:"not null;index" json:"business_id"`
	EventID    snowflake.ID `gorm:"not null;index" json:"event_id"`
	UserID     snowflake.ID `gorm:"not null;index" json:"user_id"`
	GuestName  string       `gorm:"column:guest_name;type:text;not null" json:"guest_name"`
	Dietary    string       `gorm:"type:text" json:"dietary"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (DinnerRSVP) TableName() string { return "dinner_rsvps" }

type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationDeclined  ApplicationStatus = "declined"
)

type SpeakerApplication struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID      `gorm:"not null;index" json:"business_id"`
	EventID    snowflake.ID      `gorm:"not null;index" json:"event_id"`
	UserID     snowflake.ID      `gorm:"not null;index" json:"user_id"`
	Topic      string            `gorm:"type:text;not null" json:"topic"`
	Abstract   string            `gorm:"type:text" json:"abstract"`
	Status     ApplicationStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (SpeakerApplication) TableName() string { return "speaker_applications" }
