package dto

import (
	"time"

	"event-planner-api/internal/model"
)

type CreateRoomRequest struct {
	RoomName string `json:"roomName" binding:"required,max=100"`
}

type RoomResponse struct {
	RoomID    string    `json:"roomId"`
	EventID   string    `json:"eventId"`
	RoomName  string    `json:"roomName"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToRoomResponse(room *model.Room) RoomResponse {
	return RoomResponse{
		RoomID:    room.RoomID.String(),
		EventID:   room.EventID.String(),
		RoomName:  room.RoomName,
		CreatedBy: room.CreatedBy.String(),
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func ToRoomResponses(rooms []model.Room) []RoomResponse {
	responses := make([]RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = ToRoomResponse(&rooms[i])
	}
	return responses
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	MessageID   string    `json:"messageId"`
	RoomID      string    `json:"roomId"`
	UserID      string    `json:"userId"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToMessageResponse(msg *model.Message) MessageResponse {
	return MessageResponse{
		MessageID:   msg.MessageID.String(),
		RoomID:      msg.RoomID.String(),
		UserID:      msg.UserID.String(),
		Content:     msg.Content,
		MessageType: string(msg.MessageType),
		CreatedAt:   msg.CreatedAt,
	}
}

func ToMessageResponses(messages []model.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses
}
