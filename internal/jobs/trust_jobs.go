package jobs

import (
	"context"

	"promoplace-backend/internal/logger"
)

// RecalculateTrustScores reapplies the trust score function to every
// promoter against the active score config.
func (jr *JobRunner) RecalculateTrustScores() {
	jr.runWithRecovery("RecalculateTrustScores", func() {
		ctx := context.Background()
		result, err := jr.services.TrustScore.RecalculateAllScores(ctx)
		if err != nil {
			logger.Error("Failed to recalculate trust scores", "error", err)
			return
		}
		logger.Info("Trust scores recalculated", "updated", result.Updated, "failed", result.Failed)
	})
}
