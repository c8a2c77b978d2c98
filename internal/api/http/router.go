package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/security"
	"promoplace-backend/internal/service"
)

// Services bundles everything the HTTP layer fronts.
type Services struct {
	Auth        service.AuthService
	TrustScore  service.TrustScoreService
	Badge       service.BadgeService
	Compliance  service.ComplianceService
	ScoreConfig service.ScoreConfigService
}

type handler struct {
	svc      Services
	validate *validator.Validate
}

// NewRouter wires every route of the admin and promoter API surfaces.
func NewRouter(svc Services, tokens security.TokenManager) *mux.Router {
	h := &handler{
		svc:      svc,
		validate: validator.New(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))

	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(requireRole(domain.UserRoleAdmin))
	admin.HandleFunc("/score-configs", h.listScoreConfigs).Methods(http.MethodGet)
	admin.HandleFunc("/score-configs", h.saveScoreConfig).Methods(http.MethodPost)
	admin.HandleFunc("/score-configs/{id:[0-9]+}/activate", h.activateScoreConfig).Methods(http.MethodPost)
	admin.HandleFunc("/promoters/{id:[0-9]+}/score/calculate", h.calculateScore).Methods(http.MethodPost)
	admin.HandleFunc("/scores/recalculate", h.recalculateAllScores).Methods(http.MethodPost)
	admin.HandleFunc("/scores/correction", h.applyCorrection).Methods(http.MethodPost)
	admin.HandleFunc("/badges", h.listBadges).Methods(http.MethodGet)
	admin.HandleFunc("/badges", h.createBadge).Methods(http.MethodPost)
	admin.HandleFunc("/promoters/{id:[0-9]+}/badges/{badgeID:[0-9]+}/award", h.awardBadge).Methods(http.MethodPost)
	admin.HandleFunc("/promoters/{id:[0-9]+}/badges/{badgeID:[0-9]+}/revoke", h.revokeBadge).Methods(http.MethodPost)
	admin.HandleFunc("/promoters/{id:[0-9]+}/compliance/review", h.reviewCompliance).Methods(http.MethodPost)

	promoter := authed.PathPrefix("/promoters").Subrouter()
	promoter.Use(requireRole(domain.UserRolePromoter, domain.UserRoleAdmin))
	promoter.HandleFunc("/{id:[0-9]+}/compliance/request", h.requestComplianceUpgrade).Methods(http.MethodPost)
	promoter.HandleFunc("/{id:[0-9]+}/score", h.getScoreBreakdown).Methods(http.MethodGet)

	return r
}
