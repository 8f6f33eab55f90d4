// internal/model/invitation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation invites a collaborator to an event by email.
// The token is the only credential the invitee needs to respond.
type Invitation struct {
	InvitationID uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invitationId"`
	EventID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_event_email" json:"eventId"`
	Email        string           `gorm:"type:varchar(255);not null;index:idx_event_email" json:"email"`
	Token        string           `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	Status       InvitationStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	InvitedBy    uuid.UUID        `gorm:"type:uuid;not null" json:"invitedBy"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	ExpiresAt    time.Time        `gorm:"not null" json:"expiresAt"`
	RespondedAt  *time.Time       `json:"respondedAt,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}
