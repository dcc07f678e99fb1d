package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/moodlog-backend/internal/handlers"
	"github.com/AnshRaj112/moodlog-backend/internal/services"
	"github.com/AnshRaj112/moodlog-backend/internal/store"
)

// staticSessions is a fixed token→user mapping standing in for Redis.
type staticSessions map[string]string

func (s staticSessions) Validate(ctx context.Context, token string) (string, bool, error) {
	userID, ok := s[token]
	return userID, ok, nil
}

var testSessions = staticSessions{
	"alice-token": "alice",
	"bob-token":   "bob",
}

func newTestRouter() *chi.Mux {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	entryService := services.NewEntryService(store.NewMemEntries())
	entryService.Now = func() time.Time { return now }
	promptService := services.NewPromptService(store.NewMemPrompts())
	promptService.Now = func() time.Time { return now }

	entries := handlers.NewEntryHandler(entryService, testSessions)
	prompts := handlers.NewPromptHandler(promptService, testSessions)

	r := chi.NewRouter()
	r.Post("/api/entries", entries.Create)
	r.Get("/api/entries", entries.List)
	r.Get("/api/entries/{id}", entries.Get)
	r.Put("/api/entries/{id}", entries.Update)
	r.Delete("/api/entries/{id}", entries.Delete)
	r.Post("/api/prompts", prompts.Create)
	r.Get("/api/prompts", prompts.List)
	r.Put("/api/prompts/{id}", prompts.Update)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestEntryEndpoints(t *testing.T) {
	r := newTestRouter()

	// Unauthenticated create is rejected before any data access.
	rec := doRequest(t, r, http.MethodPost, "/api/entries", "", `{"title":"Nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// An unknown token behaves the same as no token.
	rec = doRequest(t, r, http.MethodPost, "/api/entries", "stale-token", `{"title":"Nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, r, http.MethodPost, "/api/entries", "alice-token",
		`{"title":"First entry","mood_score":6,"entry_date":"2025-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created handlers.EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotNil(t, created.Entry)
	entryID := created.Entry.ID
	require.NotEmpty(t, entryID)
	assert.Equal(t, "alice", created.Entry.UserID)

	// Owner gets the record back.
	rec = doRequest(t, r, http.MethodGet, "/api/entries/"+entryID, "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Another user gets a 404, not a 403: existence is not leaked.
	rec = doRequest(t, r, http.MethodGet, "/api/entries/"+entryID, "bob-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Sparse update: clear the mood score, leave the title alone.
	rec = doRequest(t, r, http.MethodPut, "/api/entries/"+entryID, "alice-token", `{"mood_score":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/entries/"+entryID, "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched handlers.EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Nil(t, fetched.Entry.MoodScore)
	require.NotNil(t, fetched.Entry.Title)
	assert.Equal(t, "First entry", *fetched.Entry.Title)

	// Validation failures are 400s.
	rec = doRequest(t, r, http.MethodPut, "/api/entries/"+entryID, "alice-token", `{"mood_score":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Delete, then the record is gone.
	rec = doRequest(t, r, http.MethodDelete, "/api/entries/"+entryID, "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, r, http.MethodGet, "/api/entries/"+entryID, "alice-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryListEndpoint(t *testing.T) {
	r := newTestRouter()

	for _, body := range []string{
		`{"entry_date":"2025-06-01"}`,
		`{"entry_date":"2025-06-02"}`,
		`{"entry_date":"2025-06-03"}`,
	} {
		rec := doRequest(t, r, http.MethodPost, "/api/entries", "alice-token", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, r, http.MethodGet, "/api/entries?page=1&page_size=2", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list handlers.EntryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.True(t, list.Success)
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.PageSize)
	require.Len(t, list.Entries, 2)
	assert.True(t, list.Entries[0].EntryDate.After(list.Entries[1].EntryDate))

	// Bob owns nothing.
	rec = doRequest(t, r, http.MethodGet, "/api/entries", "bob-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, int64(0), list.Total)
	assert.Empty(t, list.Entries)
}

func TestPromptEndpoints(t *testing.T) {
	r := newTestRouter()

	rec := doRequest(t, r, http.MethodPost, "/api/prompts", "alice-token",
		`{"title":"Daily check-in","prompt_text":"How are you, really?","is_system":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created handlers.PromptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Prompt)
	promptID := created.Prompt.ID
	// is_system in the payload is ignored: user prompts are never system.
	assert.False(t, created.Prompt.IsSystem)
	assert.True(t, created.Prompt.IsActive)

	// Deactivate and confirm default listing hides it.
	rec = doRequest(t, r, http.MethodPut, "/api/prompts/"+promptID, "alice-token", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/prompts", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list handlers.PromptListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Total)

	rec = doRequest(t, r, http.MethodGet, "/api/prompts?include_inactive=true", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	// Bob cannot edit alice's prompt.
	rec = doRequest(t, r, http.MethodPut, "/api/prompts/"+promptID, "bob-token", `{"title":"Mine now"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Prompts have no delete route.
	rec = doRequest(t, r, http.MethodDelete, "/api/prompts/"+promptID, "alice-token", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
