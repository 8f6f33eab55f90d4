package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-planner-api/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, messageID uuid.UUID) (*model.Message, error)
	FindByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]model.Message, error)
	FindAfter(ctx context.Context, roomID uuid.UUID, after time.Time, limit int) ([]model.Message, error)
	Update(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, messageID uuid.UUID) error
	CountUnread(ctx context.Context, roomID uuid.UUID, since time.Time) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, messageID uuid.UUID) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).First(&message, "message_id = ?", messageID).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindAfter(ctx context.Context, roomID uuid.UUID, after time.Time, limit int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND created_at > ?", roomID, after).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Update(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, "message_id = ?", messageID).Error
}

func (r *messageRepository) CountUnread(ctx context.Context, roomID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("room_id = ? AND created_at > ?", roomID, since).
		Count(&count).Error
	return count, err
}
