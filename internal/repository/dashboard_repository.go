package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-planner-api/internal/model"
)

type DashboardRepository interface {
	FindByEvent(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error)
	Upsert(ctx context.Context, dashboard *model.Dashboard) error
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
	var dashboard model.Dashboard
	err := r.db.WithContext(ctx).First(&dashboard, "event_id = ?", eventID).Error
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (r *dashboardRepository) Upsert(ctx context.Context, dashboard *model.Dashboard) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_by", "updated_at"}),
	}).Create(dashboard).Error
}
