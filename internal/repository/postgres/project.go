package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, promoter_id, name, status, delayed, last_update_at, created_on`

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	p.CreatedOn = time.Now().Format("2006-01-02")
	if p.Status == "" {
		p.Status = domain.ProjectStatusDraft
	}
	query := `INSERT INTO projects (promoter_id, name, status, delayed, last_update_at, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.PromoterID, p.Name, p.Status, p.Delayed, p.LastUpdateAt, p.CreatedOn,
	).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *projectRepository) scanProject(row rowScanner) (*domain.Project, error) {
	p := &domain.Project{}
	var lastUpdate sql.NullTime
	var createdOn time.Time
	err := row.Scan(&p.ID, &p.PromoterID, &p.Name, &p.Status, &p.Delayed, &lastUpdate, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastUpdate.Valid {
		t := lastUpdate.Time
		p.LastUpdateAt = &t
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	return p, nil
}

func (r *projectRepository) ListByPromoter(ctx context.Context, promoterID int32) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE promoter_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, promoterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name=$1, status=$2, delayed=$3, last_update_at=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Status, p.Delayed, p.LastUpdateAt, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectRepository) LastUpdateAt(ctx context.Context, promoterID int32) (*time.Time, error) {
	query := `SELECT MAX(last_update_at) FROM projects WHERE promoter_id = $1 AND status = $2`
	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, promoterID, domain.ProjectStatusActive).Scan(&last); err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	t := last.Time
	return &t, nil
}

func (r *projectRepository) RecordUpdate(ctx context.Context, projectID int32, at time.Time) error {
	query := `UPDATE projects SET last_update_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, at, projectID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
