package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"event-planner-api/internal/fluid"
	"event-planner-api/internal/model"
	"event-planner-api/internal/response"
)

func collaboratorEventService(memberID uuid.UUID) EventService {
	return NewEventService(&MockEventRepository{
		IsCollaboratorFunc: func(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
			return userID == memberID, nil
		},
	}, zap.NewNop())
}

func validDashboardConfig() fluid.Config {
	return fluid.Config{
		Sections: []fluid.Section{
			{Type: fluid.SectionText, Content: "# Plan"},
			{Type: fluid.SectionRow, Components: []fluid.ComponentRef{
				{Type: "VendorList", Props: map[string]interface{}{"eventId": "e1"}},
				{Type: "ExpenseList", Props: map[string]interface{}{"eventId": "e1"}},
			}},
		},
	}
}

func TestDashboardService_UpdateConfig_PersistsValidConfig(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()

	var saved *model.Dashboard
	dashboardRepo := &MockDashboardRepository{
		UpsertFunc: func(ctx context.Context, dashboard *model.Dashboard) error {
			saved = dashboard
			return nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	result, err := svc.UpdateConfig(context.Background(), eventID, userID, validDashboardConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
	if saved == nil {
		t.Fatal("expected dashboard to be persisted")
	}
	if saved.EventID != eventID || saved.UpdatedBy != userID {
		t.Error("dashboard saved with wrong identifiers")
	}

	var roundTripped fluid.Config
	if err := json.Unmarshal(saved.Config, &roundTripped); err != nil {
		t.Fatalf("stored config is not valid JSON: %v", err)
	}
	if len(roundTripped.Sections) != 2 {
		t.Errorf("expected 2 sections stored, got %d", len(roundTripped.Sections))
	}
}

func TestDashboardService_UpdateConfig_InvalidConfigNotPersisted(t *testing.T) {
	eventID := uuid.New()
	userID := uuid.New()

	dashboardRepo := &MockDashboardRepository{
		UpsertFunc: func(ctx context.Context, dashboard *model.Dashboard) error {
			t.Error("invalid config must not be persisted")
			return nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	cfg := fluid.Config{Sections: []fluid.Section{
		{Type: fluid.SectionRow, Components: []fluid.ComponentRef{{Type: "WeatherWidget"}}},
	}}

	result, err := svc.UpdateConfig(context.Background(), eventID, userID, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected diagnostics")
	}
}

func TestDashboardService_UpdateConfig_RequiresCollaborator(t *testing.T) {
	svc := NewDashboardService(&MockDashboardRepository{}, collaboratorEventService(uuid.New()), fluid.DefaultRegistry(), zap.NewNop())

	_, err := svc.UpdateConfig(context.Background(), uuid.New(), uuid.New(), validDashboardConfig())

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDashboardService_GetConfig_MissingDashboardIsEmpty(t *testing.T) {
	userID := uuid.New()
	dashboardRepo := &MockDashboardRepository{
		FindByEventFunc: func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	cfg, err := svc.GetConfig(context.Background(), uuid.New(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Sections) != 0 {
		t.Errorf("expected empty config, got %d sections", len(cfg.Sections))
	}
}

func TestDashboardService_Render_StoredConfig(t *testing.T) {
	userID := uuid.New()
	data, _ := json.Marshal(validDashboardConfig())

	dashboardRepo := &MockDashboardRepository{
		FindByEventFunc: func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
			return &model.Dashboard{EventID: eventID, Config: datatypes.JSON(data)}, nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	rendered, result, err := svc.Render(context.Background(), uuid.New(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
	if len(rendered.Sections) != 2 {
		t.Fatalf("expected 2 rendered sections, got %d", len(rendered.Sections))
	}
	if rendered.Sections[1].GridTemplate != "2fr 1fr" {
		t.Errorf("unexpected grid template %q", rendered.Sections[1].GridTemplate)
	}
	if len(rendered.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(rendered.Connections))
	}
}

func TestDashboardService_Render_StaleConfigYieldsDiagnostics(t *testing.T) {
	userID := uuid.New()

	// Registered when stored, unregistered now
	stale := fluid.Config{Sections: []fluid.Section{
		{Type: fluid.SectionRow, Components: []fluid.ComponentRef{
			{Type: "RetiredWidget", Props: map[string]interface{}{}},
		}},
	}}
	data, _ := json.Marshal(stale)

	dashboardRepo := &MockDashboardRepository{
		FindByEventFunc: func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
			return &model.Dashboard{EventID: eventID, Config: datatypes.JSON(data)}, nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	rendered, result, err := svc.Render(context.Background(), uuid.New(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected diagnostics for stale config")
	}
	if len(rendered.Sections) != 0 {
		t.Error("stale config must not partially render")
	}
}

func TestDashboardService_Render_CorruptedConfig(t *testing.T) {
	userID := uuid.New()
	dashboardRepo := &MockDashboardRepository{
		FindByEventFunc: func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
			return &model.Dashboard{EventID: eventID, Config: datatypes.JSON([]byte("{broken"))}, nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	_, _, err := svc.Render(context.Background(), uuid.New(), userID)

	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeInternal {
		t.Fatalf("expected internal error for corrupted config, got %v", err)
	}
}

func TestDashboardService_Connections(t *testing.T) {
	userID := uuid.New()
	data, _ := json.Marshal(validDashboardConfig())

	dashboardRepo := &MockDashboardRepository{
		FindByEventFunc: func(ctx context.Context, eventID uuid.UUID) (*model.Dashboard, error) {
			return &model.Dashboard{EventID: eventID, Config: datatypes.JSON(data)}, nil
		},
	}

	svc := NewDashboardService(dashboardRepo, collaboratorEventService(userID), fluid.DefaultRegistry(), zap.NewNop())

	connections, err := svc.Connections(context.Background(), uuid.New(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(connections))
	}
	if connections[0].MasterID != "VendorList-0" || connections[0].DetailID != "ExpenseList-0" {
		t.Errorf("unexpected connection %+v", connections[0])
	}
}
