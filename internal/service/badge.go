package service

import (
	"context"
	"fmt"
	"time"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/metrics"
	"promoplace-backend/internal/repository"
)

type badgeService struct {
	badgeRepo    repository.BadgeRepository
	promoterRepo repository.PromoterRepository
	auditRepo    repository.AuditRepository
	notifier     NotifierService
}

func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	promoterRepo repository.PromoterRepository,
	auditRepo repository.AuditRepository,
	notifier NotifierService,
) BadgeService {
	return &badgeService{
		badgeRepo:    badgeRepo,
		promoterRepo: promoterRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
	}
}

func (s *badgeService) CreateBadge(ctx context.Context, b *domain.Badge) error {
	if b.Name == "" {
		return domain.NewValidationError("badge name is required")
	}
	if b.HasExpiration && b.ExpirationDays <= 0 {
		return domain.NewValidationError("expiration_days must be positive when has_expiration is set")
	}
	return s.badgeRepo.Create(ctx, b)
}

func (s *badgeService) ListBadges(ctx context.Context) ([]domain.Badge, error) {
	return s.badgeRepo.List(ctx)
}

// AwardBadge is the explicit admin path: a duplicate award fails loudly.
func (s *badgeService) AwardBadge(ctx context.Context, adminID, promoterID, badgeID int32) error {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return fmt.Errorf("failed to get promoter: %w", err)
	}
	badge, err := s.badgeRepo.GetByID(ctx, badgeID)
	if err != nil {
		return fmt.Errorf("failed to get badge: %w", err)
	}
	if p.HasBadge(badgeID) {
		return domain.ErrAlreadyHasBadge
	}
	if err := s.award(ctx, p, badge); err != nil {
		return err
	}
	writeAudit(ctx, s.auditRepo, adminID, domain.AuditBadgeAwarded, "promoter", promoterID,
		fmt.Sprintf("badge %q awarded", badge.Name))
	return nil
}

// AutoAwardIfEligible evaluates every active badge's rule against the
// promoter. Badges already held are silently skipped; the sweep path never
// fails on duplicates.
func (s *badgeService) AutoAwardIfEligible(ctx context.Context, promoterID int32) (int, error) {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return 0, fmt.Errorf("failed to get promoter: %w", err)
	}
	badges, err := s.badgeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list badges: %w", err)
	}

	awarded := 0
	for i := range badges {
		badge := &badges[i]
		if p.HasBadge(badge.ID) {
			continue
		}
		if !badge.Rule.Satisfied(p) {
			continue
		}
		if err := s.award(ctx, p, badge); err != nil {
			logger.Error("Failed to auto-award badge", "promoter_id", p.ID, "badge_id", badge.ID, "error", err)
			continue
		}
		awarded++
	}
	return awarded, nil
}

// AutoAwardAll runs the silent award path across every promoter,
// log-and-continue on per-promoter failures.
func (s *badgeService) AutoAwardAll(ctx context.Context) (BatchResult, error) {
	promoters, err := s.promoterRepo.ListAll(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to list promoters: %w", err)
	}

	var result BatchResult
	for i := range promoters {
		awarded, err := s.AutoAwardIfEligible(ctx, promoters[i].ID)
		if err != nil {
			logger.Error("Failed to auto-award badges", "promoter_id", promoters[i].ID, "error", err)
			result.Failed++
			continue
		}
		result.Updated += awarded
	}
	return result, nil
}

func (s *badgeService) award(ctx context.Context, p *domain.Promoter, badge *domain.Badge) error {
	now := time.Now()
	entry := domain.PromoterBadge{BadgeID: badge.ID, EarnedAt: now}
	if badge.HasExpiration {
		expires := now.AddDate(0, 0, int(badge.ExpirationDays))
		entry.ExpiresAt = &expires
	}
	p.Badges = append(p.Badges, entry)
	if err := s.promoterRepo.UpdateBadges(ctx, p.ID, p.Badges); err != nil {
		return fmt.Errorf("failed to update promoter badges: %w", err)
	}
	if err := s.badgeRepo.AdjustCounters(ctx, badge.ID, 1, 1); err != nil {
		return fmt.Errorf("failed to adjust badge counters: %w", err)
	}
	metrics.BadgesAwarded.Inc()
	s.notifier.NotifyPromoter(ctx, p, domain.NotificationBadgeAwarded,
		"New badge earned", fmt.Sprintf("You earned the %q badge.", badge.Name))
	return nil
}

// CheckExpiredBadges sweeps every promoter's badge list, removing entries
// whose expiry has passed. Counters are decremented only for entries
// actually removed in this pass, so interleaved award runs cannot cause a
// double decrement.
func (s *badgeService) CheckExpiredBadges(ctx context.Context) (int, error) {
	promoters, err := s.promoterRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list promoters: %w", err)
	}

	now := time.Now()
	removed := 0
	for i := range promoters {
		p := &promoters[i]
		var kept []domain.PromoterBadge
		var expired []domain.PromoterBadge
		for _, b := range p.Badges {
			if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
				expired = append(expired, b)
			} else {
				kept = append(kept, b)
			}
		}
		if len(expired) == 0 {
			continue
		}
		if err := s.promoterRepo.UpdateBadges(ctx, p.ID, kept); err != nil {
			logger.Error("Failed to remove expired badges", "promoter_id", p.ID, "error", err)
			continue
		}
		for _, b := range expired {
			if err := s.badgeRepo.AdjustCounters(ctx, b.BadgeID, -1, 0); err != nil {
				logger.Error("Failed to decrement badge counter", "badge_id", b.BadgeID, "error", err)
			}
			metrics.BadgesExpired.Inc()
			removed++
		}
	}
	logger.Info("Badge expiration sweep completed", "removed", removed)
	return removed, nil
}

// RevokeBadge is an explicit admin removal. The badge's active counter is
// floored at zero.
func (s *badgeService) RevokeBadge(ctx context.Context, adminID, promoterID, badgeID int32) error {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return fmt.Errorf("failed to get promoter: %w", err)
	}
	badge, err := s.badgeRepo.GetByID(ctx, badgeID)
	if err != nil {
		return fmt.Errorf("failed to get badge: %w", err)
	}

	var kept []domain.PromoterBadge
	found := false
	for _, b := range p.Badges {
		if b.BadgeID == badgeID && !found {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return domain.ErrBadgeNotHeld
	}

	if err := s.promoterRepo.UpdateBadges(ctx, p.ID, kept); err != nil {
		return fmt.Errorf("failed to update promoter badges: %w", err)
	}
	if err := s.badgeRepo.AdjustCounters(ctx, badgeID, -1, 0); err != nil {
		return fmt.Errorf("failed to adjust badge counters: %w", err)
	}
	writeAudit(ctx, s.auditRepo, adminID, domain.AuditBadgeRevoked, "promoter", promoterID,
		fmt.Sprintf("badge %q revoked", badge.Name))
	return nil
}
