package dto

import (
	"time"

	"event-planner-api/internal/presence"
)

type HeartbeatRequest struct {
	RoomID    string `json:"roomId"`
	EventID   string `json:"eventId"`
	SessionID string `json:"sessionId" binding:"required"`
	Status    string `json:"status"`
}

type HeartbeatResponse struct {
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type LeaveRequest struct {
	RoomID       string `json:"roomId"`
	EventID      string `json:"eventId"`
	SessionToken string `json:"sessionToken" binding:"required"`
}

type PresenceEntryResponse struct {
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId"`
	Status    string    `json:"status"`
	LastSeen  time.Time `json:"lastSeen"`
}

type OnlineUsersResponse struct {
	Context presence.Context        `json:"context"`
	Count   int                     `json:"count"`
	Users   []PresenceEntryResponse `json:"users"`
}

func ToPresenceEntryResponse(entry presence.Entry) PresenceEntryResponse {
	return PresenceEntryResponse{
		UserID:    entry.UserID.String(),
		SessionID: entry.SessionID,
		Status:    string(entry.Status),
		LastSeen:  entry.LastSeen,
	}
}

func ToOnlineUsersResponse(pc presence.Context, entries []presence.Entry) OnlineUsersResponse {
	users := make([]PresenceEntryResponse, len(entries))
	for i, entry := range entries {
		users[i] = ToPresenceEntryResponse(entry)
	}
	return OnlineUsersResponse{Context: pc, Count: len(users), Users: users}
}
