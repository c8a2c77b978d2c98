package domain

// ScoreWeights are the per-criterion weights of the trust score. They are
// admin-editable data, not code; the defaults below are only used when
// seeding a fresh platform.
type ScoreWeights struct {
	KYC            int32 `json:"kyc" yaml:"kyc"`
	Documents      int32 `json:"documents" yaml:"documents"`
	Financial      int32 `json:"financial" yaml:"financial"`
	TrackRecord    int32 `json:"track_record" yaml:"track_record"`
	Responsiveness int32 `json:"responsiveness" yaml:"responsiveness"`
}

// ScoreThresholds parameterize the banding of raw promoter attributes.
type ScoreThresholds struct {
	// DocumentsComplete is the document count at which the documents
	// component reaches its full weight.
	DocumentsComplete int32 `json:"documents_complete" yaml:"documents_complete"`
	// ResponseFastMinutes / ResponseSlowMinutes bound the responsiveness
	// band: at or under fast scores full weight, at or over slow scores 0.
	ResponseFastMinutes int32 `json:"response_fast_minutes" yaml:"response_fast_minutes"`
	ResponseSlowMinutes int32 `json:"response_slow_minutes" yaml:"response_slow_minutes"`
	// RestrictionPenalty is subtracted per active restriction.
	RestrictionPenalty int32 `json:"restriction_penalty" yaml:"restriction_penalty"`
	// DelayedProjectPenalty is subtracted per delayed project.
	DelayedProjectPenalty int32 `json:"delayed_project_penalty" yaml:"delayed_project_penalty"`
}

// ScoreConfig is a named, versioned weighting configuration. Exactly one
// config is active at a time; activation deactivates all others in the same
// transaction.
type ScoreConfig struct {
	ID         int32           `json:"id"`
	Name       string          `json:"name"`
	Version    int32           `json:"version"`
	IsActive   bool            `json:"is_active"`
	Weights    ScoreWeights    `json:"weights"`
	Thresholds ScoreThresholds `json:"thresholds"`
	// CorrectionPercent is the admin-set global correction multiplier
	// (0-100, 100 = no correction) applied uniformly to all promoters.
	// 0 is treated as "unset" and scores unchanged.
	CorrectionPercent int32  `json:"correction_percent"`
	CreatedOn         string `json:"created_on"`
	UpdatedOn         string `json:"updated_on"`
}

// DefaultScoreConfig is the seed used when no config has ever been activated.
func DefaultScoreConfig() *ScoreConfig {
	return &ScoreConfig{
		Name:     "default",
		Version:  1,
		IsActive: true,
		Weights: ScoreWeights{
			KYC:            25,
			Documents:      15,
			Financial:      20,
			TrackRecord:    25,
			Responsiveness: 15,
		},
		Thresholds: ScoreThresholds{
			DocumentsComplete:     5,
			ResponseFastMinutes:   60,
			ResponseSlowMinutes:   2880,
			RestrictionPenalty:    10,
			DelayedProjectPenalty: 5,
		},
	}
}
