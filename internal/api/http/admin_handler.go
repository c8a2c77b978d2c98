package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"promoplace-backend/internal/domain"
)

func pathID(r *http.Request, name string) int32 {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return int32(id)
}

func (h *handler) listScoreConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.svc.ScoreConfig.ListConfigs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

type saveScoreConfigRequest struct {
	ID         int32                  `json:"id"`
	Name       string                 `json:"name" validate:"required"`
	Weights    domain.ScoreWeights    `json:"weights"`
	Thresholds domain.ScoreThresholds `json:"thresholds"`
}

func (h *handler) saveScoreConfig(w http.ResponseWriter, r *http.Request) {
	var req saveScoreConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cfg := &domain.ScoreConfig{
		ID:         req.ID,
		Name:       req.Name,
		Weights:    req.Weights,
		Thresholds: req.Thresholds,
	}
	if err := h.svc.ScoreConfig.SaveConfig(r.Context(), claimsFrom(r.Context()).UserID, cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *handler) activateScoreConfig(w http.ResponseWriter, r *http.Request) {
	err := h.svc.ScoreConfig.ActivateConfig(r.Context(), claimsFrom(r.Context()).UserID, pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func (h *handler) calculateScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.svc.TrustScore.CalculateScore(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"trust_score": score})
}

func (h *handler) recalculateAllScores(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TrustScore.RecalculateAllScores(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type correctionRequest struct {
	Percent *int32 `json:"percent" validate:"required"`
}

func (h *handler) applyCorrection(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.TrustScore.ApplyGlobalCorrection(r.Context(), claimsFrom(r.Context()).UserID, *req.Percent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) listBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.svc.Badge.ListBadges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

type createBadgeRequest struct {
	Name           string           `json:"name" validate:"required"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Priority       int32            `json:"priority"`
	Rule           domain.BadgeRule `json:"rule"`
	HasExpiration  bool             `json:"has_expiration"`
	ExpirationDays int32            `json:"expiration_days"`
}

func (h *handler) createBadge(w http.ResponseWriter, r *http.Request) {
	var req createBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	badge := &domain.Badge{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Priority:       req.Priority,
		Rule:           req.Rule,
		HasExpiration:  req.HasExpiration,
		ExpirationDays: req.ExpirationDays,
		IsActive:       true,
	}
	if err := h.svc.Badge.CreateBadge(r.Context(), badge); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, badge)
}

func (h *handler) awardBadge(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Badge.AwardBadge(r.Context(), claimsFrom(r.Context()).UserID, pathID(r, "id"), pathID(r, "badgeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "awarded"})
}

func (h *handler) revokeBadge(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Badge.RevokeBadge(r.Context(), claimsFrom(r.Context()).UserID, pathID(r, "id"), pathID(r, "badgeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

type reviewComplianceRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Comment  string `json:"comment"`
}

func (h *handler) reviewCompliance(w http.ResponseWriter, r *http.Request) {
	var req reviewComplianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	promoter, err := h.svc.Compliance.ReviewComplianceRequest(
		r.Context(), pathID(r, "id"), claimsFrom(r.Context()).UserID, *req.Approved, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promoter)
}
