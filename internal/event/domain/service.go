package domain

import (
	"context"
	"errors"
	"time"

	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
)

type CreateEventRequest struct {
	Name     string    `json:"name"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type UpdateEventRequest struct {
	EventID  string       `json:"event_id"`
	Name     *string      `json:"name,omitempty"`
	Venue    *string      `json:"venue,omitempty"`
	StartsAt *time.Time   `json:"starts_at,omitempty"`
	EndsAt   *time.Time   `json:"ends_at,omitempty"`
	Status   *EventStatus `json:"status,omitempty"`
}

// BenefitSummary is the member-facing view of one event: the effective
// allocation next to what the company already consumed. Remaining values
// are effective minus consumed and may be negative.
type BenefitSummary struct {
	Event     *Event                                `json:"event"`
	Effective *allocationdomain.EffectiveAllocation `json:"effective"`
	Consumed  Consumed                              `json:"consumed"`
	Remaining Consumed                              `json:"remaining"`
}

type ClaimTicketsRequest struct {
	BusinessID string   `json:"business_id"`
	EventID    string   `json:"event_id"`
	UserID     string   `json:"user_id"`
	PassType   PassType `json:"pass_type"`
	Quantity   int      `json:"quantity"`
}

type RegisterSymposiumRequest struct {
	BusinessID   string `json:"business_id"`
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	AttendeeName string `json:"attendee_name"`
}

type RsvpDinnerRequest struct {
	BusinessID string `json:"business_id"`
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	GuestName  string `json:"guest_name"`
	Dietary    string `json:"dietary"`
}

type ApplyToSpeakRequest struct {
	BusinessID string `json:"business_id"`
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	Topic      string `json:"topic"`
	Abstract   string `json:"abstract"`
}

type Service interface {
	Create(ctx context.Context, req CreateEventRequest) (*Event, error)
	Update(ctx context.Context, req UpdateEventRequest) (*Event, error)
	Get(ctx context.Context, eventID string) (*Event, error)
	List(ctx context.Context, status EventStatus) ([]Event, error)

	// Summary resolves the effective allocation for the business and
	// subtracts consumption. Negative remaining values pass through.
	Summary(ctx context.Context, userID, businessID, eventID string) (*BenefitSummary, error)

	ClaimTickets(ctx context.Context, req ClaimTicketsRequest) (*TicketClaim, error)
	RegisterSymposium(ctx context.Context, req RegisterSymposiumRequest) (*SymposiumRegistration, error)
	RsvpDinner(ctx context.Context, req RsvpDinnerRequest) (*DinnerRSVP, error)
	ApplyToSpeak(ctx context.Context, req ApplyToSpeakRequest) (*SpeakerApplication, error)
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSchedule     = errors.New("invalid_schedule")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrEventNotFound       = errors.New("event_not_found")
	ErrEventNotOpen        = errors.New("event_not_open")
	ErrSlugTaken           = errors.New("slug_taken")
	ErrInvalidPassType     = errors.New("invalid_pass_type")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrPermissionDenied    = errors.New("permission_denied")
	ErrAllocationExhausted = errors.New("allocation_exhausted")
	ErrInvalidAttendee     = errors.New("invalid_attendee")
	ErrInvalidTopic        = errors.New("invalid_topic")
)
