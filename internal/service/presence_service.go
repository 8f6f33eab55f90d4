package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/presence"
	"event-planner-api/internal/response"
)

// PresenceService exposes the presence store to the HTTP layer.
// Heartbeat and leave are soft operations: the handler surfaces failures
// with a 500, but clients treat them as fire-and-forget.
type PresenceService interface {
	Heartbeat(ctx context.Context, userID uuid.UUID, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error)
	Leave(ctx context.Context, req *dto.LeaveRequest) error
	Online(ctx context.Context, roomID, eventID string) (*dto.OnlineUsersResponse, error)
}

type presenceService struct {
	store  *presence.Store
	logger *zap.Logger
}

func NewPresenceService(store *presence.Store, logger *zap.Logger) PresenceService {
	return &presenceService{store: store, logger: logger}
}

func (s *presenceService) Heartbeat(ctx context.Context, userID uuid.UUID, req *dto.HeartbeatRequest) (*dto.HeartbeatResponse, error) {
	status := presence.Status(req.Status)
	if req.Status == "" {
		status = presence.StatusActive
	}
	if !presence.ValidStatus(status) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown presence status")
	}

	pc := presence.DeriveContext(presence.RouteParams{
		RoomID:  req.RoomID,
		EventID: req.EventID,
	})

	token, err := s.store.Heartbeat(ctx, pc, userID, req.SessionID, status)
	if err != nil {
		return nil, err
	}

	return &dto.HeartbeatResponse{
		SessionToken: token,
		ExpiresAt:    time.Now().Add(s.store.TTL()),
	}, nil
}

func (s *presenceService) Leave(ctx context.Context, req *dto.LeaveRequest) error {
	pc := presence.DeriveContext(presence.RouteParams{
		RoomID:  req.RoomID,
		EventID: req.EventID,
	})
	return s.store.Leave(ctx, pc, req.SessionToken)
}

func (s *presenceService) Online(ctx context.Context, roomID, eventID string) (*dto.OnlineUsersResponse, error) {
	pc := presence.DeriveContext(presence.RouteParams{
		RoomID:  roomID,
		EventID: eventID,
	})

	entries, err := s.store.List(ctx, pc)
	if err != nil {
		return nil, err
	}

	resp := dto.ToOnlineUsersResponse(pc, entries)
	return &resp, nil
}
