package postgres

import (
	"database/sql"

	"promoplace-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PromoterRepository
	repository.BadgeRepository
	repository.ScoreConfigRepository
	repository.ProjectRepository
	repository.NotificationRepository
	repository.AuditRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		PromoterRepository:     NewPromoterRepository(db),
		BadgeRepository:        NewBadgeRepository(db),
		ScoreConfigRepository:  NewScoreConfigRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AuditRepository:        NewAuditRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
