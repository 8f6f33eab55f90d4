package dto

import (
	"time"

	"event-planner-api/internal/model"
)

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RespondInvitationRequest struct {
	Token  string `json:"token" binding:"required"`
	Accept bool   `json:"accept"`
}

type InvitationResponse struct {
	InvitationID string     `json:"invitationId"`
	EventID      string     `json:"eventId"`
	Email        string     `json:"email"`
	Status       string     `json:"status"`
	InvitedBy    string     `json:"invitedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	RespondedAt  *time.Time `json:"respondedAt,omitempty"`
}

func ToInvitationResponse(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: inv.InvitationID.String(),
		EventID:      inv.EventID.String(),
		Email:        inv.Email,
		Status:       string(inv.Status),
		InvitedBy:    inv.InvitedBy.String(),
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
		RespondedAt:  inv.RespondedAt,
	}
}

func ToInvitationResponses(invitations []model.Invitation) []InvitationResponse {
	responses := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		responses[i] = ToInvitationResponse(&invitations[i])
	}
	return responses
}
