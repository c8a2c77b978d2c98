package repository

import (
	"context"
	"time"

	"promoplace-backend/internal/domain"
)

type PromoterRepository interface {
	Create(ctx context.Context, p *domain.Promoter) error
	GetByID(ctx context.Context, id int32) (*domain.Promoter, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Promoter, error)
	ListAll(ctx context.Context) ([]domain.Promoter, error)
	Update(ctx context.Context, p *domain.Promoter) error

	// Narrow mutations for the engines, so score/badge/restriction writes
	// stay isolated from the rest of the record.
	SetTrustScore(ctx context.Context, id int32, score int32) error
	UpdateBadges(ctx context.Context, id int32, badges []domain.PromoterBadge) error
	UpdateRestrictions(ctx context.Context, id int32, restrictions []domain.Restriction) error
	UpdateComplianceState(ctx context.Context, id int32, status domain.ComplianceStatus, req *domain.ComplianceRequest) error
}

type BadgeRepository interface {
	Create(ctx context.Context, b *domain.Badge) error
	GetByID(ctx context.Context, id int32) (*domain.Badge, error)
	List(ctx context.Context) ([]domain.Badge, error)
	ListActive(ctx context.Context) ([]domain.Badge, error)
	Update(ctx context.Context, b *domain.Badge) error
	// AdjustCounters shifts active/total counters. ActiveCount is floored
	// at zero in SQL, never driven negative.
	AdjustCounters(ctx context.Context, id int32, activeDelta, totalDelta int32) error
}

type ScoreConfigRepository interface {
	Create(ctx context.Context, c *domain.ScoreConfig) error
	GetByID(ctx context.Context, id int32) (*domain.ScoreConfig, error)
	GetActive(ctx context.Context) (*domain.ScoreConfig, error)
	List(ctx context.Context) ([]domain.ScoreConfig, error)
	Update(ctx context.Context, c *domain.ScoreConfig) error
	// Activate deactivates every config and activates the target in one
	// transaction, so there is never a window with zero or two active rows.
	Activate(ctx context.Context, id int32) error
	SetCorrectionPercent(ctx context.Context, id int32, percent int32) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	ListByPromoter(ctx context.Context, promoterID int32) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// LastUpdateAt returns the newest published update timestamp across the
	// promoter's active projects, or nil when none was ever published.
	LastUpdateAt(ctx context.Context, promoterID int32) (*time.Time, error)
	RecordUpdate(ctx context.Context, projectID int32, at time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type AuditRepository interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
	ListByTarget(ctx context.Context, targetType string, targetID int32, limit int32) ([]domain.AuditEntry, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}
