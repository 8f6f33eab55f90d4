package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/model"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/response"
)

// invitationValidity is how long an invitation can be accepted
const invitationValidity = 7 * 24 * time.Hour

type InvitationService interface {
	CreateInvitation(ctx context.Context, eventID, inviterID uuid.UUID, req *dto.CreateInvitationRequest) (*model.Invitation, error)
	GetEventInvitations(ctx context.Context, eventID, userID uuid.UUID) ([]model.Invitation, error)
	Respond(ctx context.Context, userID uuid.UUID, req *dto.RespondInvitationRequest) (*model.Invitation, error)
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	eventRepo      repository.EventRepository
	logger         *zap.Logger
}

func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	eventRepo repository.EventRepository,
	logger *zap.Logger,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		eventRepo:      eventRepo,
		logger:         logger,
	}
}

func (s *invitationService) CreateInvitation(ctx context.Context, eventID, inviterID uuid.UUID, req *dto.CreateInvitationRequest) (*model.Invitation, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found")
		}
		return nil, err
	}

	isCollab, err := s.eventRepo.IsCollaborator(ctx, eventID, inviterID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only collaborators can send invitations")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.invitationRepo.FindPending(ctx, eventID, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "A pending invitation for this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invitation := &model.Invitation{
		EventID:   eventID,
		Email:     email,
		Token:     uuid.NewString(),
		Status:    model.InvitationPending,
		InvitedBy: inviterID,
		ExpiresAt: time.Now().Add(invitationValidity),
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.logger.Info("invitation created",
		zap.String("eventId", eventID.String()),
		zap.String("email", email))

	return invitation, nil
}

func (s *invitationService) GetEventInvitations(ctx context.Context, eventID, userID uuid.UUID) ([]model.Invitation, error) {
	isCollab, err := s.eventRepo.IsCollaborator(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !isCollab {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a collaborator of this event")
	}
	return s.invitationRepo.FindByEvent(ctx, eventID)
}

func (s *invitationService) Respond(ctx context.Context, userID uuid.UUID, req *dto.RespondInvitationRequest) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Invitation not found")
		}
		return nil, err
	}

	if invitation.Status != model.InvitationPending {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invitation has already been responded to")
	}

	now := time.Now()
	if now.After(invitation.ExpiresAt) {
		invitation.Status = model.InvitationExpired
		if err := s.invitationRepo.Update(ctx, invitation); err != nil {
			s.logger.Warn("failed to mark invitation expired", zap.Error(err))
		}
		return nil, response.NewAppError(response.ErrCodeValidation, "Invitation has expired")
	}

	invitation.RespondedAt = &now
	if req.Accept {
		invitation.Status = model.InvitationAccepted
	} else {
		invitation.Status = model.InvitationDeclined
	}

	if err := s.invitationRepo.Update(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	if req.Accept {
		collab := &model.EventCollaborator{
			EventID: invitation.EventID,
			UserID:  userID,
			Role:    model.RoleCollaborator,
		}
		if err := s.eventRepo.AddCollaborator(ctx, collab); err != nil {
			return nil, fmt.Errorf("failed to add collaborator: %w", err)
		}
	}

	return invitation, nil
}
