package service

import (
	"context"
	"strings"
	"time"

	allocationdomain "github.com/btcforcorps/orangepages/internal/allocation/domain"
	entitlementdomain "github.com/btcforcorps/orangepages/internal/entitlement/domain"
	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        eventdomain.Repository
	Allocations allocationdomain.Service
	Entitlement entitlementdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        eventdomain.Repository
	allocations allocationdomain.Service
	entitlement entitlementdomain.Service
}

func New(p Params) eventdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("event.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		allocations: p.Allocations,
		entitlement: p.Entitlement,
	}
}

func (s *Service) Create(ctx context.Context, req eventdomain.CreateEventRequest) (*eventdomain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, eventdomain.ErrInvalidName
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || req.EndsAt.Before(req.StartsAt) {
		return nil, eventdomain.ErrInvalidSchedule
	}

	eventSlug := slug.Make(name)
	existing, err := s.repo.FindEventBySlug(ctx, s.db, eventSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, eventdomain.ErrSlugTaken
	}

	now := time.Now().UTC()
	event := &eventdomain.Event{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      eventSlug,
		Venue:     strings.TrimSpace(req.Venue),
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    eventdomain.EventDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertEvent(ctx, s.db, event); err != nil {
		return nil, err
	}

	s.log.Info("event created", zap.String("event_id", event.ID.String()), zap.String("slug", event.Slug))
	return event, nil
}

func (s *Service) Update(ctx context.Context, req eventdomain.UpdateEventRequest) (*eventdomain.Event, error) {
	event, err := s.getByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, eventdomain.ErrInvalidName
		}
		event.Name = name
	}
	if req.Venue != nil {
		event.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if event.EndsAt.Before(event.StartsAt) {
		return nil, eventdomain.ErrInvalidSchedule
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, eventdomain.ErrInvalidStatus
		}
		event.Status = *req.Status
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateEvent(ctx, s.db, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Get(ctx context.Context, eventID string) (*eventdomain.Event, error) {
	return s.getByID(ctx, eventID)
}

func (s *Service) List(ctx context.Context, status eventdomain.EventStatus) ([]eventdomain.Event, error) {
	if status != "" && !status.Valid() {
		return nil, eventdomain.ErrInvalidStatus
	}
	return s.repo.ListEvents(ctx, s.db, status)
}

func (s *Service) Summary(ctx context.Context, userID, businessID, eventID string) (*eventdomain.BenefitSummary, error) {
	event, err := s.getByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requirePermission(ctx, userID, businessID, func(p entitlementdomain.Permissions) bool {
		return p.IsMember
	}); err != nil {
		return nil, err
	}

	effective, err := s.allocations.Resolve(ctx, businessID, eventID)
	if err != nil {
		return nil, err
	}

	bizID, _ := snowflake.ParseString(businessID)
	evID, _ := snowflake.ParseString(eventID)
	consumed, err := s.repo.SumConsumed(ctx, s.db, bizID, evID)
	if err != nil {
		return nil, err
	}

	return &eventdomain.BenefitSummary{
		Event:     event,
		Effective: effective,
		Consumed:  *consumed,
		Remaining: remaining(effective, consumed),
	}, nil
}

func (s *Service) ClaimTickets(ctx context.Context, req eventdomain.ClaimTicketsRequest) (*eventdomain.TicketClaim, error) {
	if !req.PassType.Valid() {
		return nil, eventdomain.ErrInvalidPassType
	}
	if req.Quantity <= 0 {
		return nil, eventdomain.ErrInvalidQuantity
	}

	event, err := s.requireOpenEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requirePermission(ctx, req.UserID, req.BusinessID, func(p entitlementdomain.Permissions) bool {
		return p.CanClaimTickets
	}); err != nil {
		return nil, err
	}

	effective, err := s.allocations.Resolve(ctx, req.BusinessID, req.EventID)
	if err != nil {
		return nil, err
	}

	businessID, _ := snowflake.ParseString(req.BusinessID)
	userID, _ := snowflake.ParseString(req.UserID)
	consumed, err := s.repo.SumConsumed(ctx, s.db, businessID, event.ID)
	if err != nil {
		return nil, err
	}

	left := remaining(effective, consumed)
	var pool int
	switch req.PassType {
	case eventdomain.PassGA:
		pool = left.GATickets
	case eventdomain.PassPro:
		pool = left.ProTickets
	case eventdomain.PassWhale:
		pool = left.WhaleTickets
	case eventdomain.PassCustom:
		pool = left.CustomTickets
	}
	if req.Quantity > pool {
		return nil, eventdomain.ErrAllocationExhausted
	}

	claim := &eventdomain.TicketClaim{
		ID:         s.genID.Generate(),
		BusinessID: businessID,
		EventID:    event.ID,
		UserID:     userID,
		PassType:   req.PassType,
		Quantity:   req.Quantity,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.InsertTicketClaim(ctx, s.db, claim); err != nil {
		return nil, err
	}

	s.log.Info("tickets claimed",
		zap.String("business_id", req.BusinessID),
		zap.String("event_id", req.EventID),
		zap.String("pass_type", string(req.PassType)),
		zap.Int("quantity", req.Quantity),
	)
	return claim, nil
}

func (s *Service) RegisterSymposium(ctx context.Context, req eventdomain.RegisterSymposiumRequest) (*eventdomain.SymposiumRegistration, error) {
	attendee := strings.TrimSpace(req.AttendeeName)
	if attendee == "" {
		return nil, eventdomain.ErrInvalidAttendee
	}

	event, err := s.requireOpenEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requirePermission(ctx, req.UserID, req.BusinessID, func(p entitlementdomain.Permissions) bool {
		return p.CanRegisterEvents
	}); err != nil {
		return nil, err
	}

	effective, err := s.allocations.Resolve(ctx, req.BusinessID, req.EventID)
	if err != nil {
		return nil, err
	}

	businessID, _ := snowflake.ParseString(req.BusinessID)
	userID, _ := snowflake.ParseString(req.UserID)
	consumed, err := s.repo.SumConsumed(ctx, s.db, businessID, event.ID)
	if err != nil {
		return nil, err
	}
	if remaining(effective, consumed).SymposiumSeats < 1 {
		return nil, eventdomain.ErrAllocationExhausted
	}

	reg := &eventdomain.SymposiumRegistration{
		ID:           s.genID.Generate(),
		BusinessID:   businessID,
		EventID:      event.ID,
		UserID:       userID,
		AttendeeName: attendee,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.InsertSymposiumRegistration(ctx, s.db, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *Service) RsvpDinner(ctx context.Context, req eventdomain.RsvpDinnerRequest) (*eventdomain.DinnerRSVP, error) {
	guest := strings.TrimSpace(req.GuestName)
	if guest == "" {
		return nil, eventdomain.ErrInvalidAttendee
	}

	event, err := s.requireOpenEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requirePermission(ctx, req.UserID, req.BusinessID, func(p entitlementdomain.Permissions) bool {
		return p.CanRsvpDinners
	}); err != nil {
		return nil, err
	}

	effective, err := s.allocations.Resolve(ctx, req.BusinessID, req.EventID)
	if err != nil {
		return nil, err
	}

	businessID, _ := snowflake.ParseString(req.BusinessID)
	userID, _ := snowflake.ParseString(req.UserID)
	consumed, err := s.repo.SumConsumed(ctx, s.db, businessID, event.ID)
	if err != nil {
		return nil, err
	}
	if remaining(effective, consumed).VIPDinnerSeats < 1 {
		return nil, eventdomain.ErrAllocationExhausted
	}

	rsvp := &eventdomain.DinnerRSVP{
		ID:         s.genID.Generate(),
		BusinessID: businessID,
		EventID:    event.ID,
		UserID:     userID,
		GuestName:  guest,
		Dietary:    strings.TrimSpace(req.Dietary),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.InsertDinnerRSVP(ctx, s.db, rsvp); err != nil {
		return nil, err
	}
	return rsvp, nil
}

func (s *Service) ApplyToSpeak(ctx context.Context, req eventdomain.ApplyToSpeakRequest) (*eventdomain.SpeakerApplication, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, eventdomain.ErrInvalidTopic
	}

	event, err := s.requireOpenEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requirePermission(ctx, req.UserID, req.BusinessID, func(p entitlementdomain.Permissions) bool {
		return p.CanApplySpeaking
	}); err != nil {
		return nil, err
	}

	businessID, _ := snowflake.ParseString(req.BusinessID)
	userID, _ := snowflake.ParseString(req.UserID)

	now := time.Now().UTC()
	app := &eventdomain.SpeakerApplication{
		ID:         s.genID.Generate(),
		BusinessID: businessID,
		EventID:    event.ID,
		UserID:     userID,
		Topic:      topic,
		Abstract:   strings.TrimSpace(req.Abstract),
		Status:     eventdomain.ApplicationSubmitted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.InsertSpeakerApplication(ctx, s.db, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Service) getByID(ctx context.Context, rawEventID string) (*eventdomain.Event, error) {
	eventID, err := snowflake.ParseString(strings.TrimSpace(rawEventID))
	if err != nil {
		return nil, eventdomain.ErrEventNotFound
	}
	event, err := s.repo.FindEventByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, eventdomain.ErrEventNotFound
	}
	return event, nil
}

func (s *Service) requireOpenEvent(ctx context.Context, eventID string) (*eventdomain.Event, error) {
	event, err := s.getByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != eventdomain.EventPublished {
		return nil, eventdomain.ErrEventNotOpen
	}
	return event, nil
}

func (s *Service) requirePermission(ctx context.Context, userID, businessID string, allowed func(entitlementdomain.Permissions) bool) (*entitlementdomain.MemberProfile, error) {
	profile, err := s.entitlement.Profile(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}
	if !allowed(profile.Permissions) {
		return nil, eventdomain.ErrPermissionDenied
	}
	return profile, nil
}

// remaining subtracts consumption from the effective allocation. Values
// below zero are kept so over-allocated companies see the true balance.
func remaining(effective *allocationdomain.EffectiveAllocation, consumed *eventdomain.Consumed) eventdomain.Consumed {
	return eventdomain.Consumed{
		GATickets:      effective.GATickets - consumed.GATickets,
		ProTickets:     effective.ProTickets - consumed.ProTickets,
		WhaleTickets:   effective.WhaleTickets - consumed.WhaleTickets,
		CustomTickets:  effective.CustomTickets - consumed.CustomTickets,
		SymposiumSeats: effective.SymposiumSeats - consumed.SymposiumSeats,
		VIPDinnerSeats: effective.VIPDinnerSeats - consumed.VIPDinnerSeats,
	}
}
