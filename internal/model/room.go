// internal/model/room.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room represents a per-event chat room
type Room struct {
	RoomID       uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"roomId"`
	EventID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"eventId"`
	RoomName     string            `gorm:"type:varchar(100);not null" json:"roomName"`
	CreatedBy    uuid.UUID         `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"deletedAt,omitempty"`
	Participants []RoomParticipant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
	Messages     []Message         `gorm:"foreignKey:RoomID" json:"messages,omitempty"`
}

type RoomParticipant struct {
	ParticipantID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"participantId"`
	RoomID        uuid.UUID `gorm:"type:uuid;not null;index:idx_room_user" json:"roomId"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_room_user,idx_part_user" json:"userId"`
	JoinedAt      time.Time `gorm:"autoCreateTime" json:"joinedAt"`
	LastReadAt    time.Time `gorm:"autoCreateTime" json:"lastReadAt"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
}

func (Room) TableName() string {
	return "rooms"
}

func (RoomParticipant) TableName() string {
	return "room_participants"
}
