package handler

import (
	"net/http"

	"icebreak/internal/model"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// LibraryHandler handles saved openers
type LibraryHandler struct {
	librarySvc *service.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(librarySvc *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{librarySvc: librarySvc}
}

// Add handles POST /v1/library
func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddLibraryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.librarySvc.Add(r.Context(), middleware.GetClientID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// List handles GET /v1/library
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.librarySvc.List(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Update handles PATCH /v1/library/{id}
func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateLibraryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.librarySvc.Update(r.Context(), middleware.GetClientID(r.Context()), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /v1/library/{id}
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.librarySvc.Delete(r.Context(), middleware.GetClientID(r.Context()), mux.Vars(r)["id"])
	writeEmptyResult(w, err)
}

// Stats handles GET /v1/library/stats
func (h *LibraryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.librarySvc.Stats(r.Context(), middleware.GetClientID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
