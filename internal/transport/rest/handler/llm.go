package handler

import (
	"net/http"

	"icebreak/internal/llm"
)

// LLMHandler exposes provider diagnostics
type LLMHandler struct {
	completer llm.ChatCompleter
}

// NewLLMHandler creates a new LLM handler
func NewLLMHandler(completer llm.ChatCompleter) *LLMHandler {
	return &LLMHandler{completer: completer}
}

type pingResponse struct {
	Success bool       `json:"success"`
	Text    string     `json:"text,omitempty"`
	Usage   *llm.Usage `json:"usage,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Ping handles GET /v1/llm/ping
func (h *LLMHandler) Ping(w http.ResponseWriter, r *http.Request) {
	resp, err := llm.Ping(r.Context(), h.completer)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, pingResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, pingResponse{
		Success: true,
		Text:    resp.Text,
		Usage:   &resp.Usage,
	})
}
