// internal/model/message.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageTypeText   MessageType = "TEXT"
	MessageTypeSystem MessageType = "SYSTEM"
)

type Message struct {
	MessageID   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"messageId"`
	RoomID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_room_created" json:"roomId"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	MessageType MessageType    `gorm:"type:varchar(20);default:'TEXT'" json:"messageType"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
