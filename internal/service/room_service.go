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

type RoomService interface {
	CreateRoom(ctx context.Context, eventID, userID uuid.UUID, req *dto.CreateRoomRequest) (*model.Room, error)
	GetRoom(ctx context.Context, roomID, userID uuid.UUID) (*model.Room, error)
	GetEventRooms(ctx context.Context, eventID, userID uuid.UUID) ([]model.Room, error)
	DeleteRoom(ctx context.Context, roomID, userID uuid.UUID) error
	JoinRoom(ctx context.Context, roomID, userID uuid.UUID) error
	LeaveRoom(ctx context.Context, roomID, userID uuid.UUID) error
	IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
}

type roomService struct {
	roomRepo  repository.RoomRepository
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

func NewRoomService(roomRepo repository.RoomRepository, eventRepo repository.EventRepository, logger *zap.Logger) RoomService {
	return &roomService{roomRepo: roomRepo, eventRepo: eventRepo, logger: logger}
}

func (s *roomService) CreateRoom(ctx context.Context, eventID, userID uuid.UUID, req *dto.CreateRoomRequest) (*model.Room, error) {
	isCollab, err := s.eventRepo.IsCollaborator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only collaborators can create rooms")
	}

	room := &model.Room{
		EventID:   eventID,
		RoomName:  req.RoomName,
		CreatedBy: userID,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	// The creator joins immediately
	participant := &model.RoomParticipant{
		RoomID:   room.RoomID,
		UserID:   userID,
		IsActive: true,
	}
	if err := s.roomRepo.AddParticipant(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to add room creator: %w", err)
	}

	s.logger.Info("room created",
		zap.String("roomId", room.RoomID.String()),
		zap.String("eventId", eventID.String()))

	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID, userID uuid.UUID) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Room not found")
		}
		return nil, err
	}

	isCollab, err := s.eventRepo.IsCollaborator(ctx, room.EventID, userID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a collaborator of this event")
	}
	return room, nil
}

func (s *roomService) GetEventRooms(ctx context.Context, eventID, userID uuid.UUID) ([]model.Room, error) {
	isCollab, err := s.eventRepo.IsCollaborator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a collaborator of this event")
	}
	return s.roomRepo.FindByEvent(ctx, eventID)
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID, userID uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Room not found")
		}
		return err
	}
	if room.CreatedBy != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the room creator can delete it")
	}
	return s.roomRepo.Delete(ctx, roomID)
}

func (s *roomService) JoinRoom(ctx context.Context, roomID, userID uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Room not found")
		}
		return err
	}

	isCollab, err := s.eventRepo.IsCollaborator(ctx, room.EventID, userID)
	if err != nil {
		return err
	}
	if !isCollab {
		return response.NewAppError(response.ErrCodeForbidden, "Only event collaborators can join rooms")
	}

	already, err := s.roomRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	return s.roomRepo.AddParticipant(ctx, &model.RoomParticipant{
		RoomID:   roomID,
		UserID:   userID,
		IsActive: true,
	})
}

func (s *roomService) LeaveRoom(ctx context.Context, roomID, userID uuid.UUID) error {
	return s.roomRepo.RemoveParticipant(ctx, roomID, userID)
}

func (s *roomService) IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	return s.roomRepo.IsParticipant(ctx, roomID, userID)
}
