package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"event-planner-api/internal/model"
)

func setupInvitationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create invitations table for SQLite compatibility
	db.Exec(`CREATE TABLE invitations (
		invitation_id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		email TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'PENDING',
		invited_by TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		responded_at DATETIME
	)`)

	return db
}

func newInvitation(status model.InvitationStatus, expiresAt time.Time) *model.Invitation {
	return &model.Invitation{
		InvitationID: uuid.New(),
		EventID:      uuid.New(),
		Email:        "guest@example.com",
		Token:        uuid.New().String(),
		Status:       status,
		InvitedBy:    uuid.New(),
		ExpiresAt:    expiresAt,
	}
}

func TestInvitationRepository_ExpirePending(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	now := time.Now()
	overdue := newInvitation(model.InvitationPending, now.Add(-time.Hour))
	current := newInvitation(model.InvitationPending, now.Add(time.Hour))
	accepted := newInvitation(model.InvitationAccepted, now.Add(-time.Hour))
	db.Create(overdue)
	db.Create(current)
	db.Create(accepted)

	expired, err := repo.ExpirePending(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 1 {
		t.Errorf("expected 1 expired invitation, got %d", expired)
	}

	got, err := repo.FindByID(ctx, overdue.InvitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.InvitationExpired {
		t.Errorf("overdue invitation status = %s, want EXPIRED", got.Status)
	}

	got, err = repo.FindByID(ctx, current.InvitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.InvitationPending {
		t.Errorf("current invitation status = %s, want PENDING", got.Status)
	}

	got, err = repo.FindByID(ctx, accepted.InvitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.InvitationAccepted {
		t.Errorf("accepted invitation status = %s, want ACCEPTED", got.Status)
	}
}

func TestInvitationRepository_FindPending(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	pending := newInvitation(model.InvitationPending, time.Now().Add(time.Hour))
	db.Create(pending)

	declined := newInvitation(model.InvitationDeclined, time.Now().Add(time.Hour))
	declined.EventID = pending.EventID
	db.Create(declined)

	got, err := repo.FindPending(ctx, pending.EventID, "guest@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.InvitationID != pending.InvitationID {
		t.Errorf("found wrong invitation: %s", got.InvitationID)
	}

	_, err = repo.FindPending(ctx, uuid.New(), "guest@example.com")
	if err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestInvitationRepository_FindByToken(t *testing.T) {
	db := setupInvitationTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	invitation := newInvitation(model.InvitationPending, time.Now().Add(time.Hour))
	db.Create(invitation)

	got, err := repo.FindByToken(ctx, invitation.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.InvitationID != invitation.InvitationID {
		t.Errorf("found wrong invitation: %s", got.InvitationID)
	}

	_, err = repo.FindByToken(ctx, "no-such-token")
	if err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
