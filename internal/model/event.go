// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaboratorRole string

const (
	RoleOwner        CollaboratorRole = "OWNER"
	RoleCollaborator CollaboratorRole = "COLLABORATOR"
)

// Event represents a planned event (wedding, conference, party, ...)
type Event struct {
	EventID       uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"eventId"`
	Title         string              `gorm:"type:varchar(200);not null" json:"title"`
	Description   string              `gorm:"type:text" json:"description,omitempty"`
	Location      string              `gorm:"type:varchar(255)" json:"location,omitempty"`
	StartsAt      *time.Time          `json:"startsAt,omitempty"`
	OwnerID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"ownerId"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"deletedAt,omitempty"`
	Collaborators []EventCollaborator `gorm:"foreignKey:EventID" json:"collaborators,omitempty"`
	Rooms         []Room              `gorm:"foreignKey:EventID" json:"rooms,omitempty"`
}

type EventCollaborator struct {
	CollaboratorID uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"collaboratorId"`
	EventID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_event_user" json:"eventId"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index:idx_event_user,idx_collab_user" json:"userId"`
	Role           CollaboratorRole `gorm:"type:varchar(20);default:'COLLABORATOR'" json:"role"`
	JoinedAt       time.Time        `gorm:"autoCreateTime" json:"joinedAt"`
}

func (Event) TableName() string {
	return "events"
}

func (EventCollaborator) TableName() string {
	return "event_collaborators"
}
