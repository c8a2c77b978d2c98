package service

import (
	"context"

	"promoplace-backend/internal/domain"
)

// BatchResult reports a batch run: per-record failures are counted, never
// fatal to the run.
type BatchResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// ScoreComponent is one line of a score breakdown.
type ScoreComponent struct {
	Name   string `json:"name"`
	Points int32  `json:"points"`
	Max    int32  `json:"max"`
}

// ScoreBreakdown is the promoter-facing view of a trust score.
type ScoreBreakdown struct {
	Score       int32            `json:"score"`
	Components  []ScoreComponent `json:"components"`
	Penalties   int32            `json:"penalties"`
	Suggestions []string         `json:"suggestions"`
}

type TrustScoreService interface {
	CalculateScore(ctx context.Context, promoterID int32) (int32, error)
	GetScoreBreakdown(ctx context.Context, promoterID int32) (*ScoreBreakdown, error)
	RecalculateAllScores(ctx context.Context) (BatchResult, error)
	ApplyGlobalCorrection(ctx context.Context, adminID int32, percent int32) (BatchResult, error)
}

type BadgeService interface {
	CreateBadge(ctx context.Context, b *domain.Badge) error
	ListBadges(ctx context.Context) ([]domain.Badge, error)
	// AwardBadge is the explicit admin path: a duplicate award fails with
	// domain.ErrAlreadyHasBadge.
	AwardBadge(ctx context.Context, adminID, promoterID, badgeID int32) error
	// AutoAwardIfEligible is the sweep path: already-held badges are a
	// silent no-op. Returns the number of badges newly awarded.
	AutoAwardIfEligible(ctx context.Context, promoterID int32) (int, error)
	// AutoAwardAll runs the silent award path across every promoter.
	AutoAwardAll(ctx context.Context) (BatchResult, error)
	CheckExpiredBadges(ctx context.Context) (int, error)
	RevokeBadge(ctx context.Context, adminID, promoterID, badgeID int32) error
}

type SanctionsService interface {
	CheckUpdateFrequency(ctx context.Context) (BatchResult, error)
	RemoveExpiredRestrictions(ctx context.Context) (int, error)
}

type ComplianceService interface {
	RequestComplianceUpgrade(ctx context.Context, promoterID int32, target domain.ComplianceStatus, reason string) (*domain.ComplianceRequest, error)
	ReviewComplianceRequest(ctx context.Context, promoterID, reviewerID int32, approved bool, comment string) (*domain.Promoter, error)
}

type ScoreConfigService interface {
	SaveConfig(ctx context.Context, adminID int32, cfg *domain.ScoreConfig) error
	GetActiveConfig(ctx context.Context) (*domain.ScoreConfig, error)
	ListConfigs(ctx context.Context) ([]domain.ScoreConfig, error)
	ActivateConfig(ctx context.Context, adminID, configID int32) error
}

// NotifierService delivers persisted notifications plus email,
// fire-and-forget: delivery failures are logged, never propagated.
type NotifierService interface {
	NotifyPromoter(ctx context.Context, promoter *domain.Promoter, typ domain.NotificationType, title, message string)
	NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// EmailService sends transactional mail for the notifier.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}
