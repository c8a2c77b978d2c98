package jobs

import (
	"context"

	"promoplace-backend/internal/logger"
)

// CheckUpdateFrequency sanctions promoters with stale active projects.
func (jr *JobRunner) CheckUpdateFrequency() {
	jr.runWithRecovery("CheckUpdateFrequency", func() {
		ctx := context.Background()
		result, err := jr.services.Sanctions.CheckUpdateFrequency(ctx)
		if err != nil {
			logger.Error("Failed to check update frequency", "error", err)
			return
		}
		logger.Info("Update frequency check finished", "sanctioned", result.Updated, "failed", result.Failed)
	})
}

// RemoveExpiredRestrictions strips restrictions whose expiry has passed.
func (jr *JobRunner) RemoveExpiredRestrictions() {
	jr.runWithRecovery("RemoveExpiredRestrictions", func() {
		ctx := context.Background()
		removed, err := jr.services.Sanctions.RemoveExpiredRestrictions(ctx)
		if err != nil {
			logger.Error("Failed to remove expired restrictions", "error", err)
			return
		}
		logger.Info("Expired restrictions removed", "removed", removed)
	})
}
