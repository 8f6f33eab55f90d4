package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"event-planner-api/internal/model"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/response"
)

type MessageService interface {
	SendMessage(ctx context.Context, roomID, userID uuid.UUID, content string) (*model.Message, error)
	GetMessages(ctx context.Context, roomID, userID uuid.UUID, limit, offset int) ([]model.Message, error)
	DeleteMessage(ctx context.Context, messageID, userID uuid.UUID) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	redis       *redis.Client
	logger      *zap.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		redis:       redisClient,
		logger:      logger,
	}
}

func (s *messageService) SendMessage(ctx context.Context, roomID, userID uuid.UUID, content string) (*model.Message, error) {
	isParticipant, err := s.roomRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a participant of this room")
	}

	message := &model.Message{
		RoomID:      roomID,
		UserID:      userID,
		Content:     content,
		MessageType: model.MessageTypeText,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	// Broadcast is best-effort; the message is already persisted
	s.broadcast(ctx, message)

	return message, nil
}

func (s *messageService) GetMessages(ctx context.Context, roomID, userID uuid.UUID, limit, offset int) ([]model.Message, error) {
	isParticipant, err := s.roomRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a participant of this room")
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return s.messageRepo.FindByRoom(ctx, roomID, limit, offset)
}

func (s *messageService) DeleteMessage(ctx context.Context, messageID, userID uuid.UUID) error {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the author can delete a message")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

func (s *messageService) broadcast(ctx context.Context, message *model.Message) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":      "NEW_MESSAGE",
		"roomId":    message.RoomID.String(),
		"messageId": message.MessageID.String(),
		"userId":    message.UserID.String(),
		"content":   message.Content,
		"createdAt": message.CreatedAt,
	})
	if err != nil {
		s.logger.Error("failed to marshal message for broadcast", zap.Error(err))
		return
	}

	channel := fmt.Sprintf("room:%s", message.RoomID.String())
	if err := s.redis.Publish(ctx, channel, data).Err(); err != nil {
		s.logger.Warn("failed to broadcast message", zap.Error(err))
	}
}
