package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-planner-api/internal/model"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Room, error)
	Delete(ctx context.Context, roomID uuid.UUID) error

	AddParticipant(ctx context.Context, participant *model.RoomParticipant) error
	RemoveParticipant(ctx context.Context, roomID, userID uuid.UUID) error
	IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	FindParticipants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error)
	UpdateLastRead(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Participants", "is_active = ?", true).
		First(&room, "room_id = ?", roomID).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "room_id = ?", roomID).Error
}

func (r *roomRepository) AddParticipant(ctx context.Context, participant *model.RoomParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *roomRepository) RemoveParticipant(ctx context.Context, roomID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("is_active", false).Error
}

func (r *roomRepository) IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ? AND is_active = ?", roomID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *roomRepository) FindParticipants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error) {
	var participants []model.RoomParticipant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Find(&participants).Error
	return participants, err
}

func (r *roomRepository) UpdateLastRead(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("last_read_at", at).Error
}
