package handler

import (
	"net/http"

	"icebreak/internal/model"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest/middleware"

	"github.com/pkg/errors"
)

// IcebreakerHandler handles topic generation and interest extraction
type IcebreakerHandler struct {
	icebreakerSvc *service.IcebreakerService
	interestSvc   *service.InterestService
}

// NewIcebreakerHandler creates a new icebreaker handler
func NewIcebreakerHandler(icebreakerSvc *service.IcebreakerService, interestSvc *service.InterestService) *IcebreakerHandler {
	return &IcebreakerHandler{
		icebreakerSvc: icebreakerSvc,
		interestSvc:   interestSvc,
	}
}

// Generate handles POST /v1/generate-icebreaker
//
//	@Summary	Generate three openers
//	@Tags		icebreaker
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.GenerateRequest	true	"Interests, optional profile and style"
//	@Success	200		{object}	model.GenerateResponse
//	@Failure	400		{object}	model.GenerateResponse
//	@Failure	500		{object}	model.GenerateResponse
//	@Router		/v1/generate-icebreaker [post]
func (h *IcebreakerHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.GenerateResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.icebreakerSvc.Generate(r.Context(), middleware.GetClientID(r.Context()), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, model.GenerateResponse{Error: verr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, model.GenerateResponse{Error: service.FriendlyGenerationMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ExtractInterests handles POST /v1/extract-interests
//
//	@Summary	Extract interest tags from profile text
//	@Tags		icebreaker
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.ExtractInterestsRequest	true	"Profile text"
//	@Success	200		{object}	model.ExtractInterestsResponse
//	@Failure	400		{object}	model.ExtractInterestsResponse
//	@Failure	500		{object}	model.ExtractInterestsResponse
//	@Router		/v1/extract-interests [post]
func (h *IcebreakerHandler) ExtractInterests(w http.ResponseWriter, r *http.Request) {
	var req model.ExtractInterestsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ExtractInterestsResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.interestSvc.Extract(r.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, model.ExtractInterestsResponse{Error: verr.Message})
		case errors.Is(err, service.ErrNoInterests):
			writeJSON(w, http.StatusBadRequest, model.ExtractInterestsResponse{Error: service.MsgNoInterests})
		default:
			writeJSON(w, http.StatusInternalServerError, model.ExtractInterestsResponse{Error: service.FriendlyGenerationMessage(err)})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
