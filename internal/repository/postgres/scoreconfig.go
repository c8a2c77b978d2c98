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

type scoreConfigRepository struct {
	db *sql.DB
}

func NewScoreConfigRepository(db *sql.DB) repository.ScoreConfigRepository {
	return &scoreConfigRepository{db: db}
}

const scoreConfigColumns = `id, name, version, is_active, weights, thresholds, correction_percent, created_on, updated_on`

func (r *scoreConfigRepository) Create(ctx context.Context, c *domain.ScoreConfig) error {
	weights, thresholds, err := marshalConfig(c)
	if err != nil {
		return err
	}
	now := time.Now().Format("2006-01-02")
	c.CreatedOn = now
	c.UpdatedOn = now
	query := `INSERT INTO score_configs (name, version, is_active, weights, thresholds, correction_percent, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		c.Name, c.Version, c.IsActive, weights, thresholds, c.CorrectionPercent, c.CreatedOn, c.UpdatedOn,
	).Scan(&c.ID)
}

func (r *scoreConfigRepository) GetByID(ctx context.Context, id int32) (*domain.ScoreConfig, error) {
	query := `SELECT ` + scoreConfigColumns + ` FROM score_configs WHERE id = $1`
	return r.scanConfig(r.db.QueryRowContext(ctx, query, id))
}

func (r *scoreConfigRepository) GetActive(ctx context.Context) (*domain.ScoreConfig, error) {
	query := `SELECT ` + scoreConfigColumns + ` FROM score_configs WHERE is_active = TRUE LIMIT 1`
	c, err := r.scanConfig(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoActiveConfig
	}
	return c, err
}

func (r *scoreConfigRepository) scanConfig(row rowScanner) (*domain.ScoreConfig, error) {
	c := &domain.ScoreConfig{}
	var weights, thresholds []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Version, &c.IsActive, &weights, &thresholds, &c.CorrectionPercent, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(weights, &c.Weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	if err := json.Unmarshal(thresholds, &c.Thresholds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thresholds: %w", err)
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	c.UpdatedOn = updatedOn.Format("2006-01-02")
	return c, nil
}

func (r *scoreConfigRepository) List(ctx context.Context) ([]domain.ScoreConfig, error) {
	query := `SELECT ` + scoreConfigColumns + ` FROM score_configs ORDER BY version DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []domain.ScoreConfig
	for rows.Next() {
		c, err := r.scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *c)
	}
	return configs, rows.Err()
}

func (r *scoreConfigRepository) Update(ctx context.Context, c *domain.ScoreConfig) error {
	weights, thresholds, err := marshalConfig(c)
	if err != nil {
		return err
	}
	c.UpdatedOn = time.Now().Format("2006-01-02")
	query := `UPDATE score_configs SET name=$1, weights=$2, thresholds=$3, correction_percent=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.Name, weights, thresholds, c.CorrectionPercent, c.UpdatedOn, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Activate flips the single active config inside one transaction: deactivate
// everything, then activate the target. There is no window with zero or
// multiple active configs visible to readers.
func (r *scoreConfigRepository) Activate(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE score_configs SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("failed to deactivate configs: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE score_configs SET is_active = TRUE, updated_on = $1 WHERE id = $2`,
		time.Now().Format("2006-01-02"), id)
	if err != nil {
		return fmt.Errorf("failed to activate config: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *scoreConfigRepository) SetCorrectionPercent(ctx context.Context, id int32, percent int32) error {
	query := `UPDATE score_configs SET correction_percent=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, percent, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func marshalConfig(c *domain.ScoreConfig) ([]byte, []byte, error) {
	weights, err := json.Marshal(c.Weights)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal weights: %w", err)
	}
	thresholds, err := json.Marshal(c.Thresholds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal thresholds: %w", err)
	}
	return weights, thresholds, nil
}
