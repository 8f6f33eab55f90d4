package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-planner-api/internal/model"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	FindByID(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error)
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	FindPending(ctx context.Context, eventID uuid.UUID, email string) (*model.Invitation, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Invitation, error)
	Update(ctx context.Context, invitation *model.Invitation) error
	ExpirePending(ctx context.Context, before time.Time) (int64, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepository) FindByID(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).First(&invitation, "invitation_id = ?", invitationID).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).First(&invitation, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindPending(ctx context.Context, eventID uuid.UUID, email string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).
		First(&invitation, "event_id = ? AND email = ? AND status = ?",
			eventID, email, model.InvitationPending).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *invitationRepository) Update(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

// ExpirePending marks pending invitations whose expiry passed before the
// given time as expired and returns how many rows changed.
func (r *invitationRepository) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("status = ? AND expires_at < ?", model.InvitationPending, before).
		Update("status", model.InvitationExpired)
	return result.RowsAffected, result.Error
}
