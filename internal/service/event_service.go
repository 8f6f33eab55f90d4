package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/model"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/response"
)

type EventService interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*model.Event, error)
	GetMyEvents(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error
	RequireCollaborator(ctx context.Context, eventID, userID uuid.UUID) error
}

type eventService struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

func NewEventService(eventRepo repository.EventRepository, logger *zap.Logger) EventService {
	return &eventService{eventRepo: eventRepo, logger: logger}
}

func (s *eventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		OwnerID:     userID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// The creator is always a collaborator with the owner role
	collab := &model.EventCollaborator{
		EventID: event.EventID,
		UserID:  userID,
		Role:    model.RoleOwner,
	}
	if err := s.eventRepo.AddCollaborator(ctx, collab); err != nil {
		return nil, fmt.Errorf("failed to add owner collaborator: %w", err)
	}

	s.logger.Info("event created",
		zap.String("eventId", event.EventID.String()),
		zap.String("ownerId", userID.String()))

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*model.Event, error) {
	if err := s.RequireCollaborator(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, eventID)
}

func (s *eventService) GetMyEvents(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	return s.eventRepo.FindByUser(ctx, userID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the owner can update an event")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = req.StartsAt
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the owner can delete an event")
	}
	return s.eventRepo.Delete(ctx, eventID)
}

// RequireCollaborator returns a typed error unless the user belongs to the event
func (s *eventService) RequireCollaborator(ctx context.Context, eventID, userID uuid.UUID) error {
	ok, err := s.eventRepo.IsCollaborator(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Event not found")
		}
		return err
	}
	if !ok {
		return response.NewAppError(response.ErrCodeForbidden, "Not a collaborator of this event")
	}
	return nil
}
