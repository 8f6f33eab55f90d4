package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"event-planner-api/internal/repository"
)

// InvitationExpiryJob marks overdue pending invitations as expired so a
// stale link cannot be accepted between request and lookup
type InvitationExpiryJob struct {
	invitationRepo repository.InvitationRepository
	logger         *zap.Logger
}

// NewInvitationExpiryJob creates a new InvitationExpiryJob instance
func NewInvitationExpiryJob(invitationRepo repository.InvitationRepository, logger *zap.Logger) *InvitationExpiryJob {
	return &InvitationExpiryJob{
		invitationRepo: invitationRepo,
		logger:         logger,
	}
}

// Run executes one expiry pass
func (j *InvitationExpiryJob) Run() {
	ctx := context.Background()

	expired, err := j.invitationRepo.ExpirePending(ctx, time.Now())
	if err != nil {
		j.logger.Error("Invitation expiry sweep failed", zap.Error(err))
		return
	}

	if expired > 0 {
		j.logger.Info("Invitation expiry sweep completed", zap.Int64("expired", expired))
	}
}
