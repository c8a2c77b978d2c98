package service

import (
	"context"
	"errors"
	"fmt"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/repository"
)

type scoreConfigService struct {
	configRepo repository.ScoreConfigRepository
	auditRepo  repository.AuditRepository
}

func NewScoreConfigService(configRepo repository.ScoreConfigRepository, auditRepo repository.AuditRepository) ScoreConfigService {
	return &scoreConfigService{configRepo: configRepo, auditRepo: auditRepo}
}

// SaveConfig creates a new config version, or mutates the active draft when
// cfg carries an ID. Historical (superseded) configs are not edited through
// this path.
func (s *scoreConfigService) SaveConfig(ctx context.Context, adminID int32, cfg *domain.ScoreConfig) error {
	if cfg.Name == "" {
		return domain.NewValidationError("config name is required")
	}
	if err := validateWeights(cfg.Weights); err != nil {
		return err
	}
	if cfg.ID != 0 {
		existing, err := s.configRepo.GetByID(ctx, cfg.ID)
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		if !existing.IsActive {
			return domain.NewValidationError("superseded configs are immutable; save a new version instead")
		}
		cfg.Version = existing.Version
		return s.configRepo.Update(ctx, cfg)
	}

	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list configs: %w", err)
	}
	cfg.Version = 1
	if len(configs) > 0 {
		cfg.Version = configs[0].Version + 1
	}
	cfg.IsActive = false
	return s.configRepo.Create(ctx, cfg)
}

func validateWeights(w domain.ScoreWeights) error {
	total := w.KYC + w.Documents + w.Financial + w.TrackRecord + w.Responsiveness
	if total != 100 {
		return domain.NewValidationError("criterion weights must sum to 100, got %d", total)
	}
	for _, v := range []int32{w.KYC, w.Documents, w.Financial, w.TrackRecord, w.Responsiveness} {
		if v < 0 {
			return domain.NewValidationError("criterion weights must not be negative")
		}
	}
	return nil
}

// GetActiveConfig returns the single active config, seeding the default one
// on a fresh platform where none was ever activated.
func (s *scoreConfigService) GetActiveConfig(ctx context.Context) (*domain.ScoreConfig, error) {
	cfg, err := s.configRepo.GetActive(ctx)
	if errors.Is(err, domain.ErrNoActiveConfig) {
		seed := domain.DefaultScoreConfig()
		if createErr := s.configRepo.Create(ctx, seed); createErr != nil {
			return nil, fmt.Errorf("failed to seed default config: %w", createErr)
		}
		logger.Info("Seeded default score config", "config_id", seed.ID)
		return seed, nil
	}
	return cfg, err
}

func (s *scoreConfigService) ListConfigs(ctx context.Context) ([]domain.ScoreConfig, error) {
	return s.configRepo.List(ctx)
}

// ActivateConfig switches the active config atomically.
func (s *scoreConfigService) ActivateConfig(ctx context.Context, adminID, configID int32) error {
	cfg, err := s.configRepo.GetByID(ctx, configID)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	if err := s.configRepo.Activate(ctx, configID); err != nil {
		return fmt.Errorf("failed to activate config: %w", err)
	}
	writeAudit(ctx, s.auditRepo, adminID, domain.AuditConfigActivated, "score_config", configID,
		fmt.Sprintf("score config %q v%d activated", cfg.Name, cfg.Version))
	return nil
}
