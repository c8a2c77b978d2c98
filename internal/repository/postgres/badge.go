package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/repository"
)

type badgeRepository struct {
	db *sql.DB
}

func NewBadgeRepository(db *sql.DB) repository.BadgeRepository {
	return &badgeRepository{db: db}
}

const badgeColumns = `id, name, description, category, priority, rule, has_expiration,
	expiration_days, active_count, total_earned, is_active, created_on`

func (r *badgeRepository) Create(ctx context.Context, b *domain.Badge) error {
	rule, err := json.Marshal(b.Rule)
	if err != nil {
		return fmt.Errorf("failed to marshal badge rule: %w", err)
	}
	b.CreatedOn = time.Now().Format("2006-01-02")
	query := `INSERT INTO badges (name, description, category, priority, rule, has_expiration,
	            expiration_days, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		b.Name, b.Description, b.Category, b.Priority, rule, b.HasExpiration,
		b.ExpirationDays, b.IsActive, b.CreatedOn,
	).Scan(&b.ID)
}

func (r *badgeRepository) GetByID(ctx context.Context, id int32) (*domain.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE id = $1`
	return r.scanBadge(r.db.QueryRowContext(ctx, query, id))
}

func (r *badgeRepository) scanBadge(row rowScanner) (*domain.Badge, error) {
	b := &domain.Badge{}
	var rule []byte
	var createdOn time.Time
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.Category, &b.Priority, &rule, &b.HasExpiration,
		&b.ExpirationDays, &b.ActiveCount, &b.TotalEarned, &b.IsActive, &createdOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(rule) > 0 {
		if err := json.Unmarshal(rule, &b.Rule); err != nil {
			return nil, fmt.Errorf("failed to unmarshal badge rule: %w", err)
		}
	}
	b.CreatedOn = createdOn.Format("2006-01-02")
	return b, nil
}

func (r *badgeRepository) List(ctx context.Context) ([]domain.Badge, error) {
	return r.list(ctx, `SELECT `+badgeColumns+` FROM badges ORDER BY priority, id`)
}

func (r *badgeRepository) ListActive(ctx context.Context) ([]domain.Badge, error) {
	return r.list(ctx, `SELECT `+badgeColumns+` FROM badges WHERE is_active = TRUE ORDER BY priority, id`)
}

func (r *badgeRepository) list(ctx context.Context, query string) ([]domain.Badge, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		b, err := r.scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *b)
	}
	return badges, rows.Err()
}

func (r *badgeRepository) Update(ctx context.Context, b *domain.Badge) error {
	rule, err := json.Marshal(b.Rule)
	if err != nil {
		return fmt.Errorf("failed to marshal badge rule: %w", err)
	}
	query := `UPDATE badges SET name=$1, description=$2, category=$3, priority=$4, rule=$5,
	            has_expiration=$6, expiration_days=$7, is_active=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		b.Name, b.Description, b.Category, b.Priority, rule,
		b.HasExpiration, b.ExpirationDays, b.IsActive, b.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *badgeRepository) AdjustCounters(ctx context.Context, id int32, activeDelta, totalDelta int32) error {
	// GREATEST keeps active_count from ever going negative.
	query := `UPDATE badges SET active_count = GREATEST(0, active_count + $1),
	            total_earned = total_earned + $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, activeDelta, totalDelta, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
