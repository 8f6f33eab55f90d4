package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/model"
	"event-planner-api/internal/response"
)

func TestInvitationService_CreateInvitation(t *testing.T) {
	eventID := uuid.New()
	inviterID := uuid.New()

	tests := []struct {
		name           string
		req            *dto.CreateInvitationRequest
		mockEvent      func(*MockEventRepository)
		mockInvitation func(*MockInvitationRepository)
		wantErr        bool
		wantErrCode    string
	}{
		{
			name: "success",
			req:  &dto.CreateInvitationRequest{Email: "Guest@Example.com"},
			mockEvent: func(m *MockEventRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.Event, error) {
					return &model.Event{EventID: eventID}, nil
				}
				m.IsCollaboratorFunc = func(ctx context.Context, eID, uID uuid.UUID) (bool, error) {
					return true, nil
				}
			},
			mockInvitation: func(m *MockInvitationRepository) {
				m.FindPendingFunc = func(ctx context.Context, eID uuid.UUID, email string) (*model.Invitation, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantErr: false,
		},
		{
			name: "event not found",
			req:  &dto.CreateInvitationRequest{Email: "guest@example.com"},
			mockEvent: func(m *MockEventRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.Event, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			mockInvitation: func(m *MockInvitationRepository) {},
			wantErr:        true,
			wantErrCode:    response.ErrCodeNotFound,
		},
		{
			name: "inviter is not a collaborator",
			req:  &dto.CreateInvitationRequest{Email: "guest@example.com"},
			mockEvent: func(m *MockEventRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.Event, error) {
					return &model.Event{EventID: eventID}, nil
				}
				m.IsCollaboratorFunc = func(ctx context.Context, eID, uID uuid.UUID) (bool, error) {
					return false, nil
				}
			},
			mockInvitation: func(m *MockInvitationRepository) {},
			wantErr:        true,
			wantErrCode:    response.ErrCodeForbidden,
		},
		{
			name: "duplicate pending invitation",
			req:  &dto.CreateInvitationRequest{Email: "guest@example.com"},
			mockEvent: func(m *MockEventRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*model.Event, error) {
					return &model.Event{EventID: eventID}, nil
				}
				m.IsCollaboratorFunc = func(ctx context.Context, eID, uID uuid.UUID) (bool, error) {
					return true, nil
				}
			},
			mockInvitation: func(m *MockInvitationRepository) {
				m.FindPendingFunc = func(ctx context.Context, eID uuid.UUID, email string) (*model.Invitation, error) {
					return &model.Invitation{Email: email}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &MockEventRepository{}
			invitationRepo := &MockInvitationRepository{}
			tt.mockEvent(eventRepo)
			tt.mockInvitation(invitationRepo)

			svc := NewInvitationService(invitationRepo, eventRepo, zap.NewNop())
			invitation, err := svc.CreateInvitation(context.Background(), eventID, inviterID, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var appErr *response.AppError
				if !errors.As(err, &appErr) || appErr.Code != tt.wantErrCode {
					t.Errorf("expected error code %s, got %v", tt.wantErrCode, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if invitation.Email != "guest@example.com" {
				t.Errorf("email should be normalized, got %q", invitation.Email)
			}
			if invitation.Token == "" {
				t.Error("expected a generated token")
			}
			if invitation.Status != model.InvitationPending {
				t.Errorf("expected pending status, got %s", invitation.Status)
			}
			if remaining := time.Until(invitation.ExpiresAt); remaining < 6*24*time.Hour {
				t.Errorf("expected ~7 day validity, got %s", remaining)
			}
		})
	}
}

func TestInvitationService_Respond(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()

	pending := func(expiresAt time.Time) *model.Invitation {
		return &model.Invitation{
			InvitationID: uuid.New(),
			EventID:      eventID,
			Email:        "guest@example.com",
			Token:        "tok-1",
			Status:       model.InvitationPending,
			ExpiresAt:    expiresAt,
		}
	}

	t.Run("accept adds collaborator", func(t *testing.T) {
		var addedCollab *model.EventCollaborator
		eventRepo := &MockEventRepository{
			AddCollaboratorFunc: func(ctx context.Context, collab *model.EventCollaborator) error {
				addedCollab = collab
				return nil
			},
		}
		invitationRepo := &MockInvitationRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*model.Invitation, error) {
				return pending(time.Now().Add(time.Hour)), nil
			},
		}

		svc := NewInvitationService(invitationRepo, eventRepo, zap.NewNop())
		invitation, err := svc.Respond(context.Background(), userID, &dto.RespondInvitationRequest{Token: "tok-1", Accept: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if invitation.Status != model.InvitationAccepted {
			t.Errorf("expected accepted, got %s", invitation.Status)
		}
		if invitation.RespondedAt == nil {
			t.Error("expected respondedAt to be set")
		}
		if addedCollab == nil {
			t.Fatal("expected collaborator to be added")
		}
		if addedCollab.EventID != eventID || addedCollab.UserID != userID {
			t.Error("collaborator added for the wrong event or user")
		}
		if addedCollab.Role != model.RoleCollaborator {
			t.Errorf("expected collaborator role, got %s", addedCollab.Role)
		}
	})

	t.Run("decline does not add collaborator", func(t *testing.T) {
		eventRepo := &MockEventRepository{
			AddCollaboratorFunc: func(ctx context.Context, collab *model.EventCollaborator) error {
				t.Error("collaborator must not be added on decline")
				return nil
			},
		}
		invitationRepo := &MockInvitationRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*model.Invitation, error) {
				return pending(time.Now().Add(time.Hour)), nil
			},
		}

		svc := NewInvitationService(invitationRepo, eventRepo, zap.NewNop())
		invitation, err := svc.Respond(context.Background(), userID, &dto.RespondInvitationRequest{Token: "tok-1", Accept: false})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invitation.Status != model.InvitationDeclined {
			t.Errorf("expected declined, got %s", invitation.Status)
		}
	})

	t.Run("expired invitation is rejected and marked", func(t *testing.T) {
		var updated *model.Invitation
		invitationRepo := &MockInvitationRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*model.Invitation, error) {
				return pending(time.Now().Add(-time.Hour)), nil
			},
			UpdateFunc: func(ctx context.Context, invitation *model.Invitation) error {
				updated = invitation
				return nil
			},
		}

		svc := NewInvitationService(invitationRepo, &MockEventRepository{}, zap.NewNop())
		_, err := svc.Respond(context.Background(), userID, &dto.RespondInvitationRequest{Token: "tok-1", Accept: true})

		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		if updated == nil || updated.Status != model.InvitationExpired {
			t.Error("expected invitation persisted as expired")
		}
	})

	t.Run("already responded", func(t *testing.T) {
		invitationRepo := &MockInvitationRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*model.Invitation, error) {
				inv := pending(time.Now().Add(time.Hour))
				inv.Status = model.InvitationAccepted
				return inv, nil
			},
		}

		svc := NewInvitationService(invitationRepo, &MockEventRepository{}, zap.NewNop())
		_, err := svc.Respond(context.Background(), userID, &dto.RespondInvitationRequest{Token: "tok-1", Accept: true})

		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		invitationRepo := &MockInvitationRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*model.Invitation, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := NewInvitationService(invitationRepo, &MockEventRepository{}, zap.NewNop())
		_, err := svc.Respond(context.Background(), userID, &dto.RespondInvitationRequest{Token: "missing", Accept: true})

		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeNotFound {
			t.Fatalf("expected not found error, got %v", err)
		}
	})
}
