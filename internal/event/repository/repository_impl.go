package repository

import (
	"context"
	"errors"

	eventdomain "github.com/btcforcorps/orangepages/internal/event/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() eventdomain.Repository {
	return &repo{}
}

func (r *repo) InsertEvent(ctx context.Context, db *gorm.DB, e *eventdomain.Event) error {
	return db.WithContext(ctx).Create(e).Error
}

func (r *repo) FindEventByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*eventdomain.Event, error) {
	var e eventdomain.Event
	err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repo) FindEventBySlug(ctx context.Context, db *gorm.DB, slug string) (*eventdomain.Event, error) {
	var e eventdomain.Event
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repo) ListEvents(ctx context.Context, db *gorm.DB, status eventdomain.EventStatus) ([]eventdomain.Event, error) {
	stmt := db.WithContext(ctx).Model(&eventdomain.Event{})
	if status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	var events []eventdomain.Event
	if err := stmt.Order("starts_at asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) UpdateEvent(ctx context.Context, db *gorm.DB, e *eventdomain.Event) error {
	return db.WithContext(ctx).Save(e).Error
}

func (r *repo) InsertTicketClaim(ctx context.Context, db *gorm.DB, c *eventdomain.TicketClaim) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repo) InsertSymposiumRegistration(ctx context.Context, db *gorm.DB, reg *eventdomain.SymposiumRegistration) error {
	return db.WithContext(ctx).Create(reg).Error
}

func (r *repo) InsertDinnerRSVP(ctx context.Context, db *gorm.DB, rsvp *eventdomain.DinnerRSVP) error {
	return db.WithContext(ctx).Create(rsvp).Error
}

func (r *repo) InsertSpeakerApplication(ctx context.Context, db *gorm.DB, a *eventdomain.SpeakerApplication) error {
	return db.WithContext(ctx).Create(a).Error
}

func (r *repo) ListTicketClaims(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) ([]eventdomain.TicketClaim, error) {
	var claims []eventdomain.TicketClaim
	err := db.WithContext(ctx).
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		Order("created_at asc").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *repo) ListSpeakerApplications(ctx context.Context, db *gorm.DB, eventID snowflake.ID) ([]eventdomain.SpeakerApplication, error) {
	var apps []eventdomain.SpeakerApplication
	err := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *repo) UpdateSpeakerApplication(ctx context.Context, db *gorm.DB, a *eventdomain.SpeakerApplication) error {
	return db.WithContext(ctx).Save(a).Error
}

func (r *repo) SumConsumed(ctx context.Context, db *gorm.DB, businessID, eventID snowflake.ID) (*eventdomain.Consumed, error) {
	var consumed eventdomain.Consumed

	type poolRow struct {
		PassType eventdomain.PassType
		Total    int
	}
	var pools []poolRow
	err := db.WithContext(ctx).
		Model(&eventdomain.TicketClaim{}).
		Select("pass_type, COALESCE(SUM(quantity), 0) AS total").
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		Group("pass_type").
		Scan(&pools).Error
	if err != nil {
		return nil, err
	}
	for _, row := range pools {
		switch row.PassType {
		case eventdomain.PassGA:
			consumed.GATickets = row.Total
		case eventdomain.PassPro:
			consumed.ProTickets = row.Total
		case eventdomain.PassWhale:
			consumed.WhaleTickets = row.Total
		case eventdomain.PassCustom:
			consumed.CustomTickets = row.Total
		}
	}

	var symposium int64
	err = db.WithContext(ctx).
		Model(&eventdomain.SymposiumRegistration{}).
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		Count(&symposium).Error
	if err != nil {
		return nil, err
	}
	consumed.SymposiumSeats = int(symposium)

	var dinners int64
	err = db.WithContext(ctx).
		Model(&eventdomain.DinnerRSVP{}).
		Where("business_id = ? AND event_id = ?", businessID, eventID).
		Count(&dinners).Error
	if err != nil {
		return nil, err
	}
	consumed.VIPDinnerSeats = int(dinners)

	return &consumed, nil
}
