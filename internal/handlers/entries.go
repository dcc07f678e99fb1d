package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

// EntryHandler exposes journal entry CRUD over HTTP. The handler only shapes
// requests and responses; authorization and validation live in the service.
type EntryHandler struct {
	Entries  *services.EntryService
	Sessions SessionValidator
}

func NewEntryHandler(entries *services.EntryService, sessions SessionValidator) *EntryHandler {
	return &EntryHandler{Entries: entries, Sessions: sessions}
}

type EntryResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type EntryListResponse struct {
	Success  bool                  `json:"success"`
	Entries  []models.JournalEntry `json:"entries"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type EntryActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Create handles POST /api/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	entry, err := h.Entries.Create(ctx, input)
	if err != nil {
		writeServiceError(w, err, "Failed to create journal entry")
		return
	}
	writeJSON(w, http.StatusCreated, EntryResponse{
		Success: true,
		Message: "Journal entry created successfully",
		Entry:   entry,
	})
}

// Get handles GET /api/entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	entry, err := h.Entries.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch journal entry")
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Entry: entry})
}

// Update handles PUT /api/entries/{id} with sparse-patch semantics: only
// fields present in the body are touched.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := services.DecodePatch(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	id, err := h.Entries.Update(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err, "Failed to update journal entry")
		return
	}
	writeJSON(w, http.StatusOK, EntryActionResponse{
		Success: true,
		Message: "Journal entry updated successfully",
		ID:      id,
	})
}

// Delete handles DELETE /api/entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	if err := h.Entries.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to delete journal entry")
		return
	}
	writeJSON(w, http.StatusOK, EntryActionResponse{
		Success: true,
		Message: "Journal entry deleted successfully",
	})
}

// List handles GET /api/entries?page=&page_size=.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page")
	pageSize := queryInt(r, "page_size")

	ctx, cancel := context.WithTimeout(identityContext(r, h.Sessions), requestTimeout)
	defer cancel()

	result, err := h.Entries.List(ctx, page, pageSize)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch journal entries")
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{
		Success:  true,
		Entries:  result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// queryInt parses an integer query parameter, 0 when absent or malformed so
// the service applies its default.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
