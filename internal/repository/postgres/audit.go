package postgres

import (
	"context"
	"database/sql"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	query := `INSERT INTO audit_log (id, actor_id, action, target_type, target_id, description, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.ActorID, e.Action, e.TargetType, e.TargetID, e.Description, e.CreatedAt)
	return err
}

func (r *auditRepository) ListByTarget(ctx context.Context, targetType string, targetID int32, limit int32) ([]domain.AuditEntry, error) {
	query := `SELECT id, actor_id, action, target_type, target_id, description, created_at
	          FROM audit_log WHERE target_type = $1 AND target_id = $2 ORDER BY created_at DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, targetType, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
