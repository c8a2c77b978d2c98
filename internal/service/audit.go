package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/repository"
)

// writeAudit records an audit entry after the state change has committed.
// Audit failures are logged and swallowed; they never roll back the change.
func writeAudit(ctx context.Context, repo repository.AuditRepository, actorID int32,
	action domain.AuditAction, targetType string, targetID int32, description string) {
	if repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, entry); err != nil {
		logger.Error("Failed to write audit entry", "action", action, "target_id", targetID, "error", err)
	}
}
