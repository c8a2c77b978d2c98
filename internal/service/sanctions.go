package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/metrics"
	"promoplace-backend/internal/repository"
)

// SanctionsConfig are the behavioral thresholds for the sanctions engine,
// sourced from the scoring section of the application config.
type SanctionsConfig struct {
	// UpdateCadenceDays is the window within which a promoter with active
	// projects must publish at least one project update.
	UpdateCadenceDays int
	// RestrictionDays is how long an applied restriction stays in force.
	RestrictionDays int
}

type sanctionsService struct {
	promoterRepo repository.PromoterRepository
	projectRepo  repository.ProjectRepository
	auditRepo    repository.AuditRepository
	notifier     NotifierService
	cfg          SanctionsConfig
}

func NewSanctionsService(
	promoterRepo repository.PromoterRepository,
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditRepository,
	notifier NotifierService,
	cfg SanctionsConfig,
) SanctionsService {
	return &sanctionsService{
		promoterRepo: promoterRepo,
		projectRepo:  projectRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// CheckUpdateFrequency applies an update-frequency restriction to every
// promoter with at least one active project and no published update inside
// the cadence window. Re-runs are idempotent: an already-active restriction
// of the same type is never duplicated.
func (s *sanctionsService) CheckUpdateFrequency(ctx context.Context) (BatchResult, error) {
	promoters, err := s.promoterRepo.ListAll(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list promoters: %w", err)
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -s.cfg.UpdateCadenceDays)
	var result BatchResult
	for i := range promoters {
		p := &promoters[i]
		if p.ActiveProjects == 0 {
			continue
		}
		if p.HasActiveRestriction(domain.RestrictionUpdateFrequency, now) {
			continue
		}

		lastUpdate, err := s.projectRepo.LastUpdateAt(ctx, p.ID)
		if err != nil {
			logger.Error("Failed to read last project update", "promoter_id", p.ID, "error", err)
			result.Failed++
			continue
		}
		if lastUpdate != nil && lastUpdate.After(cutoff) {
			continue
		}

		if err := s.applyRestriction(ctx, p, now); err != nil {
			logger.Error("Failed to apply restriction", "promoter_id", p.ID, "error", err)
			result.Failed++
			continue
		}
		result.Updated++
	}
	logger.Info("Update frequency check completed", "sanctioned", result.Updated, "failed", result.Failed)
	return result, nil
}

func (s *sanctionsService) applyRestriction(ctx context.Context, p *domain.Promoter, now time.Time) error {
	expires := now.AddDate(0, 0, s.cfg.RestrictionDays)
	restriction := domain.Restriction{
		ID:        uuid.NewString(),
		Type:      domain.RestrictionUpdateFrequency,
		Reason:    fmt.Sprintf("no project update published in the last %d days", s.cfg.UpdateCadenceDays),
		AppliedAt: now,
		ExpiresAt: &expires,
	}
	p.Restrictions = append(p.Restrictions, restriction)
	if err := s.promoterRepo.UpdateRestrictions(ctx, p.ID, p.Restrictions); err != nil {
		return fmt.Errorf("failed to persist restrictions: %w", err)
	}
	metrics.SanctionsApplied.Inc()
	writeAudit(ctx, s.auditRepo, 0, domain.AuditSanctionApplied, "promoter", p.ID, restriction.Reason)
	s.notifier.NotifyPromoter(ctx, p, domain.NotificationSanctionApplied,
		"Restriction applied to your account",
		fmt.Sprintf("A restriction was applied: %s. It expires on %s.", restriction.Reason, expires.Format("2006-01-02")))
	return nil
}

// RemoveExpiredRestrictions strips expired restriction entries across all
// promoters. Removal is purely time-based; the underlying violation is not
// re-checked.
func (s *sanctionsService) RemoveExpiredRestrictions(ctx context.Context) (int, error) {
	promoters, err := s.promoterRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list promoters: %w", err)
	}

	now := time.Now()
	removed := 0
	for i := range promoters {
		p := &promoters[i]
		var kept []domain.Restriction
		expired := 0
		for _, r := range p.Restrictions {
			if r.Active(now) {
				kept = append(kept, r)
			} else {
				expired++
			}
		}
		if expired == 0 {
			continue
		}
		if err := s.promoterRepo.UpdateRestrictions(ctx, p.ID, kept); err != nil {
			logger.Error("Failed to remove expired restrictions", "promoter_id", p.ID, "error", err)
			continue
		}
		removed += expired
		for j := 0; j < expired; j++ {
			metrics.RestrictionsExpired.Inc()
		}
	}
	logger.Info("Expired restriction sweep completed", "removed", removed)
	return removed, nil
}
