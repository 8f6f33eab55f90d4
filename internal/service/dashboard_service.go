package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"event-planner-api/internal/fluid"
	"event-planner-api/internal/model"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/response"
)

type DashboardService interface {
	GetConfig(ctx context.Context, eventID, userID uuid.UUID) (fluid.Config, error)
	// UpdateConfig validates before persisting. An invalid config is not an
	// error in the Go sense: the full diagnostic list comes back in Result
	// so the caller can render it.
	UpdateConfig(ctx context.Context, eventID, userID uuid.UUID, cfg fluid.Config) (fluid.Result, error)
	Render(ctx context.Context, eventID, userID uuid.UUID) (fluid.RenderedDashboard, fluid.Result, error)
	Connections(ctx context.Context, eventID, userID uuid.UUID) ([]fluid.Connection, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	eventSvc      EventService
	registry      *fluid.Registry
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	eventSvc EventService,
	registry *fluid.Registry,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		eventSvc:      eventSvc,
		registry:      registry,
		logger:        logger,
	}
}

func (s *dashboardService) GetConfig(ctx context.Context, eventID, userID uuid.UUID) (fluid.Config, error) {
	if err := s.eventSvc.RequireCollaborator(ctx, eventID, userID); err != nil {
		return fluid.Config{}, err
	}
	return s.loadConfig(ctx, eventID)
}

func (s *dashboardService) UpdateConfig(ctx context.Context, eventID, userID uuid.UUID, cfg fluid.Config) (fluid.Result, error) {
	if err := s.eventSvc.RequireCollaborator(ctx, eventID, userID); err != nil {
		return fluid.Result{}, err
	}

	result := fluid.ValidateConfig(cfg, s.registry)
	if !result.Valid {
		return result, nil
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fluid.Result{}, fmt.Errorf("failed to marshal dashboard config: %w", err)
	}

	dashboard := &model.Dashboard{
		EventID:   eventID,
		Config:    datatypes.JSON(data),
		UpdatedBy: userID,
	}
	if err := s.dashboardRepo.Upsert(ctx, dashboard); err != nil {
		return fluid.Result{}, fmt.Errorf("failed to save dashboard: %w", err)
	}

	s.logger.Info("dashboard updated",
		zap.String("eventId", eventID.String()),
		zap.String("updatedBy", userID.String()))

	return result, nil
}

// Render revalidates the stored config before rendering; a config that has
// gone stale against the registry renders as diagnostics, never partially.
func (s *dashboardService) Render(ctx context.Context, eventID, userID uuid.UUID) (fluid.RenderedDashboard, fluid.Result, error) {
	if err := s.eventSvc.RequireCollaborator(ctx, eventID, userID); err != nil {
		return fluid.RenderedDashboard{}, fluid.Result{}, err
	}

	cfg, err := s.loadConfig(ctx, eventID)
	if err != nil {
		return fluid.RenderedDashboard{}, fluid.Result{}, err
	}

	result := fluid.ValidateConfig(cfg, s.registry)
	if !result.Valid {
		return fluid.RenderedDashboard{}, result, nil
	}

	rendered, err := fluid.Render(cfg, s.registry)
	if err != nil {
		return fluid.RenderedDashboard{}, fluid.Result{}, err
	}
	return rendered, result, nil
}

func (s *dashboardService) Connections(ctx context.Context, eventID, userID uuid.UUID) ([]fluid.Connection, error) {
	if err := s.eventSvc.RequireCollaborator(ctx, eventID, userID); err != nil {
		return nil, err
	}

	cfg, err := s.loadConfig(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return fluid.DetectConnections(fluid.RowComponents(cfg), s.registry), nil
}

func (s *dashboardService) loadConfig(ctx context.Context, eventID uuid.UUID) (fluid.Config, error) {
	dashboard, err := s.dashboardRepo.FindByEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No dashboard configured yet: an empty config is valid
			return fluid.Config{}, nil
		}
		return fluid.Config{}, err
	}
	cfg, err := fluid.ParseConfig(dashboard.Config)
	if err != nil {
		return fluid.Config{}, response.NewAppErrorWithDetails(
			response.ErrCodeInternal, "Stored dashboard config is corrupted", err.Error())
	}
	return cfg, nil
}
