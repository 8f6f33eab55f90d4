package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-planner-api/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, eventID uuid.UUID) error

	AddCollaborator(ctx context.Context, collab *model.EventCollaborator) error
	FindCollaborator(ctx context.Context, eventID, userID uuid.UUID) (*model.EventCollaborator, error)
	IsCollaborator(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Collaborators").
		First(&event, "event_id = ?", eventID).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN event_collaborators ON event_collaborators.event_id = events.event_id").
		Where("event_collaborators.user_id = ?", userID).
		Order("events.created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, "event_id = ?", eventID).Error
}

func (r *eventRepository) AddCollaborator(ctx context.Context, collab *model.EventCollaborator) error {
	return r.db.WithContext(ctx).Create(collab).Error
}

func (r *eventRepository) FindCollaborator(ctx context.Context, eventID, userID uuid.UUID) (*model.EventCollaborator, error) {
	var collab model.EventCollaborator
	err := r.db.WithContext(ctx).
		First(&collab, "event_id = ? AND user_id = ?", eventID, userID).Error
	if err != nil {
		return nil, err
	}
	return &collab, nil
}

func (r *eventRepository) IsCollaborator(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventCollaborator{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}
