package handler

import (
	"net/http"

	"icebreak/internal/model"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest/middleware"

	"github.com/pkg/errors"
)

// ConfidenceHandler handles opener scoring
type ConfidenceHandler struct {
	confidenceSvc *service.ConfidenceService
}

// NewConfidenceHandler creates a new confidence handler
func NewConfidenceHandler(confidenceSvc *service.ConfidenceService) *ConfidenceHandler {
	return &ConfidenceHandler{confidenceSvc: confidenceSvc}
}

// Score handles POST /v1/confidence-score
//
//	@Summary	Score an opener
//	@Tags		confidence
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.ConfidenceScoreRequest	true	"Message and optional target context"
//	@Success	200		{object}	model.ConfidenceScoreResult
//	@Failure	400		{object}	errorResponse
//	@Failure	500		{object}	errorResponse
//	@Router		/v1/confidence-score [post]
func (h *ConfidenceHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req model.ConfidenceScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.confidenceSvc.Score(r.Context(), middleware.GetClientID(r.Context()), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to calculate confidence score", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
