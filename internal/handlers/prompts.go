package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

// PromptHandler exposes prompt create/update/list over HTTP. There is no
// delete route: prompts are retired by setting is_active=false.
type PromptHandler struct {
	Prompts  *services.PromptService
	Sessions SessionValidator
}

func NewPromptHandler(prompts *services.PromptService, sessions SessionValidator) *PromptHandler {
	return &PromptHandler{Prompts: prompts, Sessions: sessions}
}

type PromptResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Prompt  *models.Prompt `json:"prompt,omitempty"`
}

type PromptListResponse struct {
	Success bool            `json:"success"`
	Prompts []models.Prompt `json:"prompts"`
	Total   int             `json:"total"`
}

type PromptActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Create handles POST /api/prompts.
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePromptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	prompt, err := h.Prompts.Create(ctx, input)
	if err != nil {
		writeServiceError(w, err, "Failed to create prompt")
		return
	}
	writeJSON(w, http.StatusCreated, PromptResponse{
		Success: true,
		Message: "Prompt created successfully",
		Prompt:  prompt,
	})
}

// Update handles PUT /api/prompts/{id}.
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := services.DecodePatch(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	id, err := h.Prompts.Update(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err, "Failed to update prompt")
		return
	}
	writeJSON(w, http.StatusOK, PromptActionResponse{
		Success: true,
		Message: "Prompt updated successfully",
		ID:      id,
	})
}

// List handles GET /api/prompts?include_inactive=.
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	result, err := h.Prompts.List(ctx, includeInactive)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch prompts")
		return
	}
	writeJSON(w, http.StatusOK, PromptListResponse{
		Success: true,
		Prompts: result.Items,
		Total:   result.Total,
	})
}
