package http

import (
	"encoding/json"
	"net/http"

	"promoplace-backend/internal/domain"
)

type complianceUpgradeRequest struct {
	TargetStatus string `json:"target_status" validate:"required,oneof=CONFORME VERIFIE"`
	Reason       string `json:"reason"`
}

func (h *handler) requestComplianceUpgrade(w http.ResponseWriter, r *http.Request) {
	var req complianceUpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := h.svc.Compliance.RequestComplianceUpgrade(
		r.Context(), pathID(r, "id"), domain.ComplianceStatus(req.TargetStatus), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) getScoreBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.svc.TrustScore.GetScoreBreakdown(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
