package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/metrics"
	"promoplace-backend/internal/repository"
)

type complianceService struct {
	promoterRepo repository.PromoterRepository
	auditRepo    repository.AuditRepository
	notifier     NotifierService
}

func NewComplianceService(
	promoterRepo repository.PromoterRepository,
	auditRepo repository.AuditRepository,
	notifier NotifierService,
) ComplianceService {
	return &complianceService{
		promoterRepo: promoterRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
	}
}

// RequestComplianceUpgrade opens a pending upgrade request for the next
// compliance tier. The ladder is strictly forward-only and skip-level
// requests are rejected; prerequisites depend on the target tier.
func (s *complianceService) RequestComplianceUpgrade(ctx context.Context, promoterID int32, target domain.ComplianceStatus, reason string) (*domain.ComplianceRequest, error) {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promoter: %w", err)
	}

	if target != domain.NextComplianceStatus(p.ComplianceStatus) {
		return nil, domain.ErrInvalidTransition
	}
	if p.ComplianceRequest != nil && p.ComplianceRequest.Status == domain.ComplianceRequestPending {
		return nil, domain.ErrRequestAlreadyPending
	}
	if err := checkUpgradePrerequisites(p, target); err != nil {
		return nil, err
	}

	req := &domain.ComplianceRequest{
		ID:           uuid.NewString(),
		TargetStatus: target,
		Reason:       reason,
		Status:       domain.ComplianceRequestPending,
		RequestedOn:  time.Now(),
	}
	if err := s.promoterRepo.UpdateComplianceState(ctx, p.ID, p.ComplianceStatus, req); err != nil {
		return nil, fmt.Errorf("failed to persist compliance request: %w", err)
	}

	s.notifier.NotifyAdmins(ctx, domain.NotificationComplianceRequest,
		"Compliance upgrade requested",
		fmt.Sprintf("Promoter %s requested an upgrade to %s.", p.OrganizationName, target))
	return req, nil
}

func checkUpgradePrerequisites(p *domain.Promoter, target domain.ComplianceStatus) error {
	switch target {
	case domain.ComplianceStatusConforme:
		if !p.OnboardingCompleted {
			return domain.NewValidationError("onboarding must be completed before requesting the conforme tier")
		}
		if p.KYCStatus == domain.KYCStatusPending {
			return domain.NewValidationError("KYC documents must be submitted before requesting the conforme tier")
		}
	case domain.ComplianceStatusVerifie:
		if p.KYCStatus != domain.KYCStatusVerified {
			return domain.NewValidationError("KYC must be verified before requesting the verifie tier")
		}
		if p.FinancialProofLevel == domain.FinancialProofNone {
			return domain.NewValidationError("financial proof is required before requesting the verifie tier")
		}
	default:
		return domain.ErrInvalidTransition
	}
	return nil
}

// ReviewComplianceRequest settles the pending request. Approval advances the
// compliance status to the requested tier; rejection leaves it unchanged.
// Either way the promoter is notified and the decision is audited.
func (s *complianceService) ReviewComplianceRequest(ctx context.Context, promoterID, reviewerID int32, approved bool, comment string) (*domain.Promoter, error) {
	p, err := s.promoterRepo.GetByID(ctx, promoterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promoter: %w", err)
	}
	if p.ComplianceRequest == nil || p.ComplianceRequest.Status != domain.ComplianceRequestPending {
		return nil, domain.ErrNoPendingRequest
	}

	req := p.ComplianceRequest
	now := time.Now()
	req.ReviewerID = &reviewerID
	req.ReviewedOn = &now
	req.ReviewComment = comment

	var action domain.AuditAction
	var outcome string
	if approved {
		req.Status = domain.ComplianceRequestApproved
		p.ComplianceStatus = req.TargetStatus
		action = domain.AuditComplianceApproved
		outcome = "approved"
	} else {
		req.Status = domain.ComplianceRequestRejected
		action = domain.AuditComplianceRejected
		outcome = "rejected"
	}

	if err := s.promoterRepo.UpdateComplianceState(ctx, p.ID, p.ComplianceStatus, req); err != nil {
		return nil, fmt.Errorf("failed to persist compliance decision: %w", err)
	}
	metrics.ComplianceDecisions.WithLabelValues(outcome).Inc()
	writeAudit(ctx, s.auditRepo, reviewerID, action, "promoter", p.ID,
		fmt.Sprintf("compliance request to %s %s", req.TargetStatus, outcome))

	message := fmt.Sprintf("Your compliance upgrade request to %s was %s.", req.TargetStatus, outcome)
	if !approved && comment != "" {
		message += " Reason: " + comment
	}
	s.notifier.NotifyPromoter(ctx, p, domain.NotificationComplianceDecision, "Compliance request reviewed", message)
	return p, nil
}
