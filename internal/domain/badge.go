package domain

// BadgeRule is the eligibility rule evaluated by the automatic award sweep.
// Zero values mean "no requirement" for that criterion.
type BadgeRule struct {
	MinTrustScore         int32            `json:"min_trust_score"`
	RequiredCompliance    ComplianceStatus `json:"required_compliance,omitempty"`
	MinCompletedProjects  int32            `json:"min_completed_projects"`
	RequireVerifiedKYC    bool             `json:"require_verified_kyc"`
}

// Satisfied evaluates the rule against a promoter's current state.
func (r BadgeRule) Satisfied(p *Promoter) bool {
	if p.TrustScore < r.MinTrustScore {
		return false
	}
	if r.RequiredCompliance != "" && !complianceAtLeast(p.ComplianceStatus, r.RequiredCompliance) {
		return false
	}
	if p.CompletedProjects < r.MinCompletedProjects {
		return false
	}
	if r.RequireVerifiedKYC && p.KYCStatus != KYCStatusVerified {
		return false
	}
	return true
}

func complianceAtLeast(have, want ComplianceStatus) bool {
	return complianceRank(have) >= complianceRank(want)
}

func complianceRank(s ComplianceStatus) int {
	switch s {
	case ComplianceStatusPublie:
		return 0
	case ComplianceStatusConforme:
		return 1
	case ComplianceStatusVerifie:
		return 2
	}
	return -1
}

// Badge is the definition entity. Awarding and revoking mutate the
// promoter's badge list plus the ActiveCount/TotalEarned counters here,
// never the badge identity itself.
type Badge struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Priority       int32     `json:"priority"`
	Rule           BadgeRule `json:"rule"`
	HasExpiration  bool      `json:"has_expiration"`
	ExpirationDays int32     `json:"expiration_days"`
	ActiveCount    int32     `json:"active_count"`
	TotalEarned    int32     `json:"total_earned"`
	IsActive       bool      `json:"is_active"`
	CreatedOn      string    `json:"created_on"`
}
