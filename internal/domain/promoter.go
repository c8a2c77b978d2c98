package domain

import "time"

type KYCStatus string

const (
	KYCStatusPending   KYCStatus = "PENDING"
	KYCStatusSubmitted KYCStatus = "SUBMITTED"
	KYCStatusVerified  KYCStatus = "VERIFIED"
	KYCStatusRejected  KYCStatus = "REJECTED"
)

type ComplianceStatus string

const (
	ComplianceStatusPublie   ComplianceStatus = "PUBLIE"
	ComplianceStatusConforme ComplianceStatus = "CONFORME"
	ComplianceStatusVerifie  ComplianceStatus = "VERIFIE"
)

// NextComplianceStatus returns the immediate successor tier, or "" when the
// promoter is already at the top of the ladder.
func NextComplianceStatus(s ComplianceStatus) ComplianceStatus {
	switch s {
	case ComplianceStatusPublie:
		return ComplianceStatusConforme
	case ComplianceStatusConforme:
		return ComplianceStatusVerifie
	}
	return ""
}

type FinancialProofLevel string

const (
	FinancialProofNone   FinancialProofLevel = "NONE"
	FinancialProofBasic  FinancialProofLevel = "BASIC"
	FinancialProofMedium FinancialProofLevel = "MEDIUM"
	FinancialProofHigh   FinancialProofLevel = "HIGH"
)

type ComplianceRequestStatus string

const (
	ComplianceRequestPending  ComplianceRequestStatus = "PENDING"
	ComplianceRequestApproved ComplianceRequestStatus = "APPROVED"
	ComplianceRequestRejected ComplianceRequestStatus = "REJECTED"
)

// ComplianceRequest is the single pending (or last settled) upgrade request
// attached to a promoter. At most one request may be PENDING at a time.
type ComplianceRequest struct {
	ID             string                  `json:"id"`
	TargetStatus   ComplianceStatus        `json:"target_status"`
	Reason         string                  `json:"reason"`
	Status         ComplianceRequestStatus `json:"status"`
	ReviewerID     *int32                  `json:"reviewer_id,omitempty"`
	RequestedOn    time.Time               `json:"requested_on"`
	ReviewedOn     *time.Time              `json:"reviewed_on,omitempty"`
	ReviewComment  string                  `json:"review_comment,omitempty"`
}

type RestrictionType string

const (
	RestrictionUpdateFrequency RestrictionType = "UPDATE_FREQUENCY_VIOLATION"
	RestrictionSLABreach       RestrictionType = "SLA_BREACH"
	RestrictionManual          RestrictionType = "MANUAL"
)

// Restriction is a time-bounded sanction attached to a promoter. Active
// restrictions penalize the trust score; expired entries are stripped by the
// nightly sweep rather than scored at zero.
type Restriction struct {
	ID        string          `json:"id"`
	Type      RestrictionType `json:"type"`
	Reason    string          `json:"reason"`
	AppliedAt time.Time       `json:"applied_at"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

// Active reports whether the restriction is still in force at t.
func (r Restriction) Active(t time.Time) bool {
	return r.ExpiresAt == nil || r.ExpiresAt.After(t)
}

// PromoterBadge is a badge held by a promoter, embedded in the promoter
// record rather than stored as its own row.
type PromoterBadge struct {
	BadgeID   int32      `json:"badge_id"`
	EarnedAt  time.Time  `json:"earned_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Promoter is the aggregate root for trust and compliance. Scoring inputs
// (document counts, project counts, response time) are denormalized counters
// maintained by the surrounding CRUD layer; the engines only read them.
type Promoter struct {
	ID                  int32               `json:"id"`
	UserID              int32               `json:"user_id"`
	OrganizationName    string              `json:"organization_name"`
	OrganizationType    string              `json:"organization_type"`
	OnboardingCompleted bool                `json:"onboarding_completed"`
	KYCStatus           KYCStatus           `json:"kyc_status"`
	ComplianceStatus    ComplianceStatus    `json:"compliance_status"`
	ComplianceRequest   *ComplianceRequest  `json:"compliance_request,omitempty"`
	FinancialProofLevel FinancialProofLevel `json:"financial_proof_level"`

	DocumentCount       int32 `json:"document_count"`
	TotalProjects       int32 `json:"total_projects"`
	ActiveProjects      int32 `json:"active_projects"`
	CompletedProjects   int32 `json:"completed_projects"`
	DelayedProjects     int32 `json:"delayed_projects"`
	TotalLeadsReceived  int32 `json:"total_leads_received"`
	AvgResponseMinutes  int32 `json:"avg_response_minutes"`

	Restrictions []Restriction   `json:"restrictions"`
	TrustScore   int32           `json:"trust_score"`
	Badges       []PromoterBadge `json:"badges"`

	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// ActiveRestrictions returns the restrictions still in force at t.
func (p *Promoter) ActiveRestrictions(t time.Time) []Restriction {
	var active []Restriction
	for _, r := range p.Restrictions {
		if r.Active(t) {
			active = append(active, r)
		}
	}
	return active
}

// HasActiveRestriction reports whether a restriction of the given type is in
// force at t. The sanctions job uses this as its check-before-insert guard.
func (p *Promoter) HasActiveRestriction(typ RestrictionType, t time.Time) bool {
	for _, r := range p.Restrictions {
		if r.Type == typ && r.Active(t) {
			return true
		}
	}
	return false
}

// HasBadge reports whether the promoter currently holds the badge.
func (p *Promoter) HasBadge(badgeID int32) bool {
	for _, b := range p.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}
