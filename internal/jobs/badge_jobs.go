package jobs

import (
	"context"

	"promoplace-backend/internal/logger"
)

// CheckExpiredBadges sweeps out badge entries whose expiry has passed.
func (jr *JobRunner) CheckExpiredBadges() {
	jr.runWithRecovery("CheckExpiredBadges", func() {
		ctx := context.Background()
		removed, err := jr.services.Badge.CheckExpiredBadges(ctx)
		if err != nil {
			logger.Error("Failed to check expired badges", "error", err)
			return
		}
		logger.Info("Expired badges removed", "removed", removed)
	})
}

// AutoAwardBadges re-evaluates badge eligibility for every promoter. The
// award path here is the silent one: already-held badges are skipped.
func (jr *JobRunner) AutoAwardBadges() {
	jr.runWithRecovery("AutoAwardBadges", func() {
		ctx := context.Background()
		result, err := jr.services.Badge.AutoAwardAll(ctx)
		if err != nil {
			logger.Error("Failed to auto-award badges", "error", err)
			return
		}
		logger.Info("Automatic badge awards finished", "awarded", result.Updated, "failed", result.Failed)
	})
}
