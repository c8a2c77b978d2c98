package domain

import "time"

type AuditAction string

const (
	AuditComplianceApproved  AuditAction = "COMPLIANCE_APPROVED"
	AuditComplianceRejected  AuditAction = "COMPLIANCE_REJECTED"
	AuditScoreCorrection     AuditAction = "SCORE_CORRECTION"
	AuditBadgeAwarded        AuditAction = "BADGE_AWARDED"
	AuditBadgeRevoked        AuditAction = "BADGE_REVOKED"
	AuditSanctionApplied     AuditAction = "SANCTION_APPLIED"
	AuditConfigActivated     AuditAction = "CONFIG_ACTIVATED"
)

// AuditEntry records who did what to whom. Written after the state change
// commits; a failed audit write never rolls back the change.
type AuditEntry struct {
	ID          string      `json:"id"`
	ActorID     int32       `json:"actor_id"`
	Action      AuditAction `json:"action"`
	TargetType  string      `json:"target_type"`
	TargetID    int32       `json:"target_id"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}
