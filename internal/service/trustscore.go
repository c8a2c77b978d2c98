package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/metrics"
	"promoplace-backend/internal/repository"
)

type trustScoreService struct {
	promoterRepo repository.PromoterRepository
	configRepo   repository.ScoreConfigRepository
	auditRepo    repository.AuditRepository
}

func NewTrustScoreService(
	promoterRepo repository.PromoterRepository,
	configRepo repository.ScoreConfigRepository,
	auditRepo repository.AuditRepository,
) TrustScoreService {
	return &trustScoreService{
		promoterRepo: promoterRepo,
		configRepo:   configRepo,
		auditRepo:    auditRepo,
	}
}

// CalculateScore recomputes and persists a single promoter's trust score.
// The only side effect is the trust_score write; badge and compliance
// consequences are left to the caller.
func (s *trustScoreService) CalculateScore(ctx context.Context, promoterID int32) (int32, error) {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return 0, fmt.Errorf("failed to get promoter: %w", err)
	}
	cfg, err := s.configRepo.GetActive(ctx)
	if err != nil {
		return 0, err
	}

	score, _, _ := computeScore(p, cfg, time.Now())
	if err := s.promoterRepo.SetTrustScore(ctx, p.ID, score); err != nil {
		return 0, fmt.Errorf("failed to persist trust score: %w", err)
	}
	metrics.ScoresRecalculated.Inc()
	return score, nil
}

func (s *trustScoreService) GetScoreBreakdown(ctx context.Context, promoterID int32) (*ScoreBreakdown, error) {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promoter: %w", err)
	}
	cfg, err := s.configRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	score, components, penalties := computeScore(p, cfg, time.Now())
	return &ScoreBreakdown{
		Score:       score,
		Components:  components,
		Penalties:   penalties,
		Suggestions: buildSuggestions(p, cfg, components),
	}, nil
}

// RecalculateAllScores reapplies the score function to every promoter. A
// single promoter's failure is counted and skipped; the batch never aborts.
func (s *trustScoreService) RecalculateAllScores(ctx context.Context) (BatchResult, error) {
	cfg, err := s.configRepo.GetActive(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	promoters, err := s.promoterRepo.ListAll(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list promoters: %w", err)
	}

	now := time.Now()
	var result BatchResult
	for i := range promoters {
		p := &promoters[i]
		score, _, _ := computeScore(p, cfg, now)
		if err := s.promoterRepo.SetTrustScore(ctx, p.ID, score); err != nil {
			logger.Error("Failed to persist trust score", "promoter_id", p.ID, "error", err)
			metrics.ScoreBatchFailures.Inc()
			result.Failed++
			continue
		}
		metrics.ScoresRecalculated.Inc()
		result.Updated++
	}
	logger.Info("Trust score recalculation completed", "updated", result.Updated, "failed", result.Failed)
	return result, nil
}

// ApplyGlobalCorrection stores an admin-set correction percentage on the
// active config and recalculates every promoter under it.
func (s *trustScoreService) ApplyGlobalCorrection(ctx context.Context, adminID int32, percent int32) (BatchResult, error) {
	if percent < 0 || percent > 100 {
		return BatchResult{}, domain.NewValidationError("correction percentage must be between 0 and 100, got %d", percent)
	}
	cfg, err := s.configRepo.GetActive(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	if err := s.configRepo.SetCorrectionPercent(ctx, cfg.ID, percent); err != nil {
		return BatchResult{}, fmt.Errorf("failed to set correction percent: %w", err)
	}

	result, err := s.RecalculateAllScores(ctx)
	if err != nil {
		return result, err
	}
	writeAudit(ctx, s.auditRepo, adminID, domain.AuditScoreCorrection, "score_config", cfg.ID,
		fmt.Sprintf("global score correction set to %d%%", percent))
	return result, nil
}

// computeScore is the deterministic scoring function: a weighted sum over
// the promoter's current attributes against the active config, minus active
// restriction and delay penalties, scaled by the global correction, clamped
// to [0,100].
func computeScore(p *domain.Promoter, cfg *domain.ScoreConfig, now time.Time) (int32, []ScoreComponent, int32) {
	w := cfg.Weights
	t := cfg.Thresholds

	kyc := scaleWeight(w.KYC, kycFactor(p.KYCStatus))
	docs := scaleWeight(w.Documents, ratio(p.DocumentCount, t.DocumentsComplete))
	fin := scaleWeight(w.Financial, financialFactor(p.FinancialProofLevel))
	track := scaleWeight(w.TrackRecord, trackRecordFactor(p))
	resp := scaleWeight(w.Responsiveness, responsivenessFactor(p, t))

	components := []ScoreComponent{
		{Name: "kyc", Points: kyc, Max: w.KYC},
		{Name: "documents", Points: docs, Max: w.Documents},
		{Name: "financial", Points: fin, Max: w.Financial},
		{Name: "track_record", Points: track, Max: w.TrackRecord},
		{Name: "responsiveness", Points: resp, Max: w.Responsiveness},
	}

	penalties := int32(len(p.ActiveRestrictions(now)))*t.RestrictionPenalty +
		p.DelayedProjects*t.DelayedProjectPenalty

	raw := float64(kyc+docs+fin+track+resp) - float64(penalties)
	if cfg.CorrectionPercent > 0 {
		raw = raw * float64(cfg.CorrectionPercent) / 100.0
	}

	score := int32(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, components, penalties
}

func scaleWeight(weight int32, factor float64) int32 {
	return int32(math.Round(float64(weight) * factor))
}

func kycFactor(s domain.KYCStatus) float64 {
	switch s {
	case domain.KYCStatusVerified:
		return 1.0
	case domain.KYCStatusSubmitted:
		return 0.5
	case domain.KYCStatusPending:
		return 0.2
	}
	return 0
}

func financialFactor(l domain.FinancialProofLevel) float64 {
	switch l {
	case domain.FinancialProofHigh:
		return 1.0
	case domain.FinancialProofMedium:
		return 2.0 / 3.0
	case domain.FinancialProofBasic:
		return 1.0 / 3.0
	}
	return 0
}

func trackRecordFactor(p *domain.Promoter) float64 {
	if p.TotalProjects == 0 {
		// No history yet: neutral half credit rather than zero.
		return 0.5
	}
	return float64(p.CompletedProjects) / float64(p.TotalProjects)
}

func responsivenessFactor(p *domain.Promoter, t domain.ScoreThresholds) float64 {
	if p.TotalLeadsReceived == 0 {
		return 0.5
	}
	avg := p.AvgResponseMinutes
	switch {
	case avg <= t.ResponseFastMinutes:
		return 1.0
	case avg >= t.ResponseSlowMinutes:
		return 0
	default:
		span := float64(t.ResponseSlowMinutes - t.ResponseFastMinutes)
		return 1.0 - float64(avg-t.ResponseFastMinutes)/span
	}
}

func ratio(have, want int32) float64 {
	if want <= 0 {
		return 1.0
	}
	if have >= want {
		return 1.0
	}
	return float64(have) / float64(want)
}

func buildSuggestions(p *domain.Promoter, cfg *domain.ScoreConfig, components []ScoreComponent) []string {
	var suggestions []string
	if p.KYCStatus != domain.KYCStatusVerified {
		suggestions = append(suggestions, "Complete identity verification (KYC) to unlock the full identity score")
	}
	if p.DocumentCount < cfg.Thresholds.DocumentsComplete {
		suggestions = append(suggestions, fmt.Sprintf("Upload %d more documents to reach the complete-documentation tier",
			cfg.Thresholds.DocumentsComplete-p.DocumentCount))
	}
	if p.FinancialProofLevel == domain.FinancialProofNone {
		suggestions = append(suggestions, "Provide financial proof to improve your financial standing score")
	}
	if p.TotalLeadsReceived > 0 && p.AvgResponseMinutes > cfg.Thresholds.ResponseFastMinutes {
		suggestions = append(suggestions, "Respond to leads faster to improve your responsiveness score")
	}
	if n := len(p.ActiveRestrictions(time.Now())); n > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d active restriction(s) are penalizing your score", n))
	}
	return suggestions
}
