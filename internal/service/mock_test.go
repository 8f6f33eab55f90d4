package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"event-planner-api/internal/model"
)

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	CreateFunc           func(ctx context.Context, event *model.Event) error
	FindByIDFunc         func(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	FindByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	UpdateFunc           func(ctx context.Context, event *model.Event) error
	DeleteFunc           func(ctx context.Context, eventID uuid.UUID) error
	AddCollaboratorFunc  func(ctx context.Context, collab *model.EventCollaborator) error
	FindCollaboratorFunc func(ctx context.Context, eventID, userID uuid.UUID) (*model.EventCollaborator, error)
	IsCollaboratorFunc   func(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) FindByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockEventRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *model.Event) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, eventID)
	}
	return nil
}

func (m *MockEventRepository) AddCollaborator(ctx context.Context, collab *model.EventCollaborator) error {
	if m.AddCollaboratorFunc != nil {
		return m.AddCollaboratorFunc(ctx, collab)
	}
	return nil
}

func (m *MockEventRepository) FindCollaborator(ctx context.Context, eventID, userID uuid.UUID) (*model.EventCollaborator, error) {
	if m.FindCollaboratorFunc != nil {
		return m.FindCollaboratorFunc(ctx, eventID, userID)
	}
	return nil, nil
}

func (m *MockEventRepository) IsCollaborator(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	if m.IsCollaboratorFunc != nil {
		return m.IsCollaboratorFunc(ctx, eventID, userID)
	}
	return false, nil
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	CreateFunc        func(ctx context.Context, invitation *model.Invitation) error
	FindByIDFunc      func(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error)
	FindByTokenFunc   func(ctx context.Context, token string) (*model.Invitation, error)
	FindPendingFunc   func(ctx context.Context, eventID uuid.UUID, email string) (*model.Invitation, error)
	FindByEventFunc   func(ctx context.Context, eventID uuid.UUID) ([]model.Invitation, error)
	UpdateFunc        func(ctx context.Context, invitation *model.Invitation) error
	ExpirePendingFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, invitationID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindPending(ctx context.Context, eventID uuid.UUID, email string) (*model.Invitation, error) {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx, eventID, email)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Invitation, error) {
	if m.FindByEventFunc != nil {
		return m.FindByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) Update(ctx context.Context, invitation *model.Invitation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	if m.ExpirePendingFunc != nil {
		return m.ExpirePendingFunc(ctx, before)
	}
	return 0, nil
}

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	CreateFunc            func(ctx context.Context, room *model.Room) error
	FindByIDFunc          func(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	FindByEventFunc       func(ctx context.Context, eventID uuid.UUID) ([]model.Room, error)
	DeleteFunc            func(ctx context.Context, roomID uuid.UUID) error
	AddParticipantFunc    func(ctx context.Context, participant *model.RoomParticipant) error
	RemoveParticipantFunc func(ctx context.Context, roomID, userID uuid.UUID) error
	IsParticipantFunc     func(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	FindParticipantsFunc  func(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error)
	UpdateLastReadFunc    func(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error
}

func (m *MockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, room)
	}
	return nil
}

func (m *MockRoomRepository) FindByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, roomID)
	}
	return nil, nil
}

func (m *MockRoomRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Room, error) {
	if m.FindByEventFunc != nil {
		return m.FindByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockRoomRepository) Delete(ctx context.Context, roomID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, roomID)
	}
	return nil
}

func (m *MockRoomRepository) AddParticipant(ctx context.Context, participant *model.RoomParticipant) error {
	if m.AddParticipantFunc != nil {
		return m.AddParticipantFunc(ctx, participant)
	}
	return nil
}

func (m *MockRoomRepository) RemoveParticipant(ctx context.Context, roomID, userID uuid.UUID) error {
	if m.RemoveParticipantFunc != nil {
		return m.RemoveParticipantFunc(ctx, roomID, userID)
	}
	return nil
}

func (m *MockRoomRepository) IsParticipant(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	if m.IsParticipantFunc != nil {
		return m.IsParticipantFunc(ctx, roomID, userID)
	}
	return false, nil
}

func (m *MockRoomRepository) FindParticipants(ctx context.Context, roomID uuid.UUID) ([]model.RoomParticipant, error) {
	if m.FindParticipantsFunc != nil {
		return m.FindParticipantsFunc(ctx, roomID)
	}
	return nil, nil
}

func (m *MockRoomRepository) UpdateLastRead(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error {
	if m.UpdateLastReadFunc != nil {
		return m.UpdateLastReadFunc(ctx, roomID, userID, at)
	}
	return nil
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	CreateFunc      func(ctx context.Context, message *model.Message) error
	FindByIDFunc    func(ctx context.Context, messageID uuid.UUID) (*model.Message, error)
	FindByRoomFunc  func(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]model.Message, error)
	FindAfterFunc   func(ctx context.Context, roomID uuid.UUID, after time.Time, limit int) ([]model.Message, error)
	UpdateFunc      func(ctx context.Context, message *model.Message) error
	DeleteFunc      func(ctx context.Context, messageID uuid.UUID) error
	CountUnreadFunc func(ctx context.Context, roomID uuid.UUID, since time.Time) (int64, error)
}

func (m *MockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	return nil
}

func (m *MockMessageRepository) FindByID(ctx context.Context, messageID uuid.UUID) (*model.Message, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, messageID)
	}
	return nil, nil
}

func (m *MockMessageRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]model.Message, error) {
	if m.FindByRoomFunc != nil {
		return m.FindByRoomFunc(ctx, roomID, limit, offset)
	}
	return nil, nil
}

func (m *MockMessageRepository) FindAfter(ctx context.Context, roomID uuid.UUID, after time.Time, limit int) ([]model.Message, error) {
	if m.FindAfterFunc != nil {
		return m.FindAfterFunc(ctx, roomID, after, limit)
	}
	return nil, nil
}

func (m *MockMessageRepository) Update(ctx context.Context, message *model.Message) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, message)
	}
	return nil
}

func (m *MockMessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, messageID)
	}
	return nil
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, roomID uuid.UUID, since time.Time) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, roomID, since)
	}
	return 0, nil
}

// MockDashboardRepository is a mock implementation of DashboardRepository
type MockDashboardRepository struct {
	FindByEventFunc func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error)
	UpsertFunc      func(ctx context.Context, dashboard *model.Dashboard) error
}

func (m *MockDashboardRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
	if m.FindByEventFunc != nil {
		return m.FindByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockDashboardRepository) Upsert(ctx context.Context, dashboard *model.Dashboard) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, dashboard)
	}
	return nil
}
