package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-planner-api/internal/model"
	"event-planner-api/internal/response"
)

func TestMessageService_SendMessage_RequiresParticipant(t *testing.T) {
	roomRepo := &MockRoomRepository{
		IsParticipantFunc: func(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
			return false, nil
		},
	}

	svc := NewMessageService(&MockMessageRepository{}, roomRepo, nil, zap.NewNop())
	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "hello")

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMessageService_SendMessage_Persists(t *testing.T) {
	roomID := uuid.New()
	userID := uuid.New()

	var created *model.Message
	messageRepo := &MockMessageRepository{
		CreateFunc: func(ctx context.Context, message *model.Message) error {
			message.MessageID = uuid.New()
			created = message
			return nil
		},
	}
	roomRepo := &MockRoomRepository{
		IsParticipantFunc: func(ctx context.Context, rID, uID uuid.UUID) (bool, error) {
			return true, nil
		},
	}

	svc := NewMessageService(messageRepo, roomRepo, nil, zap.NewNop())
	msg, err := svc.SendMessage(context.Background(), roomID, userID, "venue booked")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected message to be persisted")
	}
	if msg.Content != "venue booked" || msg.MessageType != model.MessageTypeText {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.RoomID != roomID || msg.UserID != userID {
		t.Error("message bound to the wrong room or user")
	}
}

func TestMessageService_GetMessages_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero defaults", 0, 50},
		{"negative defaults", -5, 50},
		{"within range", 20, 20},
		{"over cap", 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			messageRepo := &MockMessageRepository{
				FindByRoomFunc: func(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]model.Message, error) {
					gotLimit = limit
					return nil, nil
				},
			}
			roomRepo := &MockRoomRepository{
				IsParticipantFunc: func(ctx context.Context, rID, uID uuid.UUID) (bool, error) {
					return true, nil
				},
			}

			svc := NewMessageService(messageRepo, roomRepo, nil, zap.NewNop())
			if _, err := svc.GetMessages(context.Background(), uuid.New(), uuid.New(), tt.limit, 0); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestMessageService_DeleteMessage_OnlyAuthor(t *testing.T) {
	messageID := uuid.New()
	authorID := uuid.New()

	deleted := false
	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Message, error) {
			return &model.Message{MessageID: messageID, UserID: authorID}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewMessageService(messageRepo, &MockRoomRepository{}, nil, zap.NewNop())

	err := svc.DeleteMessage(context.Background(), messageID, uuid.New())
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
		t.Fatalf("expected forbidden for non-author, got %v", err)
	}
	if deleted {
		t.Fatal("message should not have been deleted")
	}

	if err := svc.DeleteMessage(context.Background(), messageID, authorID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected message to be deleted")
	}
}
