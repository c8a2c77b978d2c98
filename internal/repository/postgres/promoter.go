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

type promoterRepository struct {
	db *sql.DB
}

func NewPromoterRepository(db *sql.DB) repository.PromoterRepository {
	return &promoterRepository{db: db}
}

const promoterColumns = `id, user_id, organization_name, organization_type, onboarding_completed,
	kyc_status, compliance_status, compliance_request, financial_proof_level,
	document_count, total_projects, active_projects, completed_projects, delayed_projects,
	total_leads_received, avg_response_minutes, restrictions, trust_score, badges,
	created_on, updated_on`

func (r *promoterRepository) Create(ctx context.Context, p *domain.Promoter) error {
	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}
	restrictions, err := json.Marshal(p.Restrictions)
	if err != nil {
		return fmt.Errorf("failed to marshal restrictions: %w", err)
	}
	now := time.Now().Format("2006-01-02")
	p.CreatedOn = now
	p.UpdatedOn = now
	if p.KYCStatus == "" {
		p.KYCStatus = domain.KYCStatusPending
	}
	if p.ComplianceStatus == "" {
		p.ComplianceStatus = domain.ComplianceStatusPublie
	}
	if p.FinancialProofLevel == "" {
		p.FinancialProofLevel = domain.FinancialProofNone
	}
	query := `INSERT INTO promoters (user_id, organization_name, organization_type, onboarding_completed,
	            kyc_status, compliance_status, financial_proof_level, restrictions, trust_score, badges, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.OrganizationName, p.OrganizationType, p.OnboardingCompleted,
		p.KYCStatus, p.ComplianceStatus, p.FinancialProofLevel,
		restrictions, p.TrustScore, badges, p.CreatedOn, p.UpdatedOn,
	).Scan(&p.ID)
}

func (r *promoterRepository) GetByID(ctx context.Context, id int32) (*domain.Promoter, error) {
	query := `SELECT ` + promoterColumns + ` FROM promoters WHERE id = $1`
	return r.scanPromoter(r.db.QueryRowContext(ctx, query, id))
}

func (r *promoterRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Promoter, error) {
	query := `SELECT ` + promoterColumns + ` FROM promoters WHERE user_id = $1`
	return r.scanPromoter(r.db.QueryRowContext(ctx, query, userID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *promoterRepository) scanPromoter(row rowScanner) (*domain.Promoter, error) {
	p := &domain.Promoter{}
	var request, restrictions, badges []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&p.ID, &p.UserID, &p.OrganizationName, &p.OrganizationType, &p.OnboardingCompleted,
		&p.KYCStatus, &p.ComplianceStatus, &request, &p.FinancialProofLevel,
		&p.DocumentCount, &p.TotalProjects, &p.ActiveProjects, &p.CompletedProjects, &p.DelayedProjects,
		&p.TotalLeadsReceived, &p.AvgResponseMinutes, &restrictions, &p.TrustScore, &badges,
		&createdOn, &updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(request) > 0 {
		p.ComplianceRequest = &domain.ComplianceRequest{}
		if err := json.Unmarshal(request, p.ComplianceRequest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal compliance request: %w", err)
		}
	}
	if len(restrictions) > 0 {
		if err := json.Unmarshal(restrictions, &p.Restrictions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal restrictions: %w", err)
		}
	}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &p.Badges); err != nil {
			return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
		}
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	p.UpdatedOn = updatedOn.Format("2006-01-02")
	return p, nil
}

func (r *promoterRepository) ListAll(ctx context.Context) ([]domain.Promoter, error) {
	query := `SELECT ` + promoterColumns + ` FROM promoters ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promoters []domain.Promoter
	for rows.Next() {
		p, err := r.scanPromoter(rows)
		if err != nil {
			return nil, err
		}
		promoters = append(promoters, *p)
	}
	return promoters, rows.Err()
}

func (r *promoterRepository) Update(ctx context.Context, p *domain.Promoter) error {
	request, err := marshalNullable(p.ComplianceRequest)
	if err != nil {
		return err
	}
	p.UpdatedOn = time.Now().Format("2006-01-02")
	query := `UPDATE promoters SET organization_name=$1, organization_type=$2, onboarding_completed=$3,
	            kyc_status=$4, compliance_status=$5, compliance_request=$6, financial_proof_level=$7,
	            document_count=$8, total_projects=$9, active_projects=$10, completed_projects=$11,
	            delayed_projects=$12, total_leads_received=$13, avg_response_minutes=$14, updated_on=$15
	          WHERE id=$16`
	_, err = r.db.ExecContext(ctx, query,
		p.OrganizationName, p.OrganizationType, p.OnboardingCompleted,
		p.KYCStatus, p.ComplianceStatus, request, p.FinancialProofLevel,
		p.DocumentCount, p.TotalProjects, p.ActiveProjects, p.CompletedProjects,
		p.DelayedProjects, p.TotalLeadsReceived, p.AvgResponseMinutes, p.UpdatedOn, p.ID,
	)
	return err
}

func (r *promoterRepository) SetTrustScore(ctx context.Context, id int32, score int32) error {
	query := `UPDATE promoters SET trust_score=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, score, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *promoterRepository) UpdateBadges(ctx context.Context, id int32, badges []domain.PromoterBadge) error {
	data, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}
	query := `UPDATE promoters SET badges=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, data, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *promoterRepository) UpdateRestrictions(ctx context.Context, id int32, restrictions []domain.Restriction) error {
	data, err := json.Marshal(restrictions)
	if err != nil {
		return fmt.Errorf("failed to marshal restrictions: %w", err)
	}
	query := `UPDATE promoters SET restrictions=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, data, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *promoterRepository) UpdateComplianceState(ctx context.Context, id int32, status domain.ComplianceStatus, req *domain.ComplianceRequest) error {
	request, err := marshalNullable(req)
	if err != nil {
		return err
	}
	query := `UPDATE promoters SET compliance_status=$1, compliance_request=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, status, request, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func marshalNullable(v any) (any, error) {
	switch t := v.(type) {
	case *domain.ComplianceRequest:
		if t == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return data, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
