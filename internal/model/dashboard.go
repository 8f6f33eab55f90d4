// internal/model/dashboard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dashboard stores the declarative fluid-UI config for one event.
// The config JSON is revalidated on every write and render.
type Dashboard struct {
	DashboardID uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"dashboardId"`
	EventID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"eventId"`
	Config      datatypes.JSON `gorm:"type:jsonb" json:"config"`
	UpdatedBy   uuid.UUID      `gorm:"type:uuid" json:"updatedBy"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Dashboard) TableName() string {
	return "dashboards"
}
