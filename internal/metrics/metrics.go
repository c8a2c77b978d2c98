package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level collectors registered once against the default registry, so
// services and jobs can increment them without plumbing a struct through.
var (
	ScoresRecalculated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_trust_scores_recalculated_total",
		Help: "Total number of trust score recalculations performed",
	})
	ScoreBatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_trust_score_batch_failures_total",
		Help: "Total number of per-promoter failures during batch recalculation",
	})
	BadgesAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_badges_awarded_total",
		Help: "Total number of badges awarded (admin and automatic paths)",
	})
	BadgesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_badges_expired_total",
		Help: "Total number of badge entries removed by the expiration sweep",
	})
	SanctionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_sanctions_applied_total",
		Help: "Total number of restrictions applied by the sanctions engine",
	})
	RestrictionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promoplace_restrictions_expired_total",
		Help: "Total number of restriction entries removed by the expiry sweep",
	})
	ComplianceDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promoplace_compliance_decisions_total",
		Help: "Total number of compliance request reviews by outcome",
	}, []string{"outcome"})
)
