package jobs

import (
	"promoplace-backend/internal/config"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	TrustScore service.TrustScoreService
	Badge      service.BadgeService
	Sanctions  service.SanctionsService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs every daily job in sequence (for manual execution).
// Order matters: restrictions are swept before scores are recomputed, and
// badges are re-evaluated against the fresh scores.
func (jr *JobRunner) RunAllDailyJobs() {
	jr.RemoveExpiredRestrictions()
	jr.CheckExpiredBadges()
	jr.CheckUpdateFrequency()
	jr.RecalculateTrustScores()
	jr.AutoAwardBadges()
}
