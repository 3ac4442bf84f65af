package handler

import (
	"net/http"

	"icebreak/internal/model"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// HistoryHandler handles the per-client history endpoints
type HistoryHandler struct {
	historySvc *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historySvc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// ListTopics handles GET /v1/history/topics
func (h *HistoryHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	items, err := h.historySvc.ListTopics(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ClearTopics handles DELETE /v1/history/topics
func (h *HistoryHandler) ClearTopics(w http.ResponseWriter, r *http.Request) {
	if err := h.historySvc.ClearTopics(r.Context(), middleware.GetClientID(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTopics handles DELETE /v1/history/topics/{id}
func (h *HistoryHandler) DeleteTopics(w http.ResponseWriter, r *http.Request) {
	err := h.historySvc.DeleteTopics(r.Context(), middleware.GetClientID(r.Context()), mux.Vars(r)["id"])
	writeEmptyResult(w, err)
}

// SelectTopic handles PUT /v1/history/topics/{id}/selected
func (h *HistoryHandler) SelectTopic(w http.ResponseWriter, r *http.Request) {
	var topic model.IcebreakerTopic
	if err := decodeJSON(w, r, &topic); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.historySvc.SelectTopic(r.Context(), middleware.GetClientID(r.Context()), mux.Vars(r)["id"], &topic)
	writeEmptyResult(w, err)
}

// ListConfidence handles GET /v1/history/confidence
func (h *HistoryHandler) ListConfidence(w http.ResponseWriter, r *http.Request) {
	items, err := h.historySvc.ListConfidence(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ClearConfidence handles DELETE /v1/history/confidence
func (h *HistoryHandler) ClearConfidence(w http.ResponseWriter, r *http.Request) {
	if err := h.historySvc.ClearConfidence(r.Context(), middleware.GetClientID(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteConfidence handles DELETE /v1/history/confidence/{id}
func (h *HistoryHandler) DeleteConfidence(w http.ResponseWriter, r *http.Request) {
	err := h.historySvc.DeleteConfidence(r.Context(), middleware.GetClientID(r.Context()), mux.Vars(r)["id"])
	writeEmptyResult(w, err)
}

// Stats handles GET /v1/history/stats
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.historySvc.Stats(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeEmptyResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
