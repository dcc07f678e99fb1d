package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/moodlog-backend/internal/services"
	"github.com/AnshRaj112/moodlog-backend/internal/store"
)

var testClock = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestEntryService() *services.EntryService {
	svc := services.NewEntryService(store.NewMemEntries())
	svc.Now = func() time.Time { return testClock }
	return svc
}

func userCtx(userID string) context.Context {
	return services.WithUserID(context.Background(), userID)
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func raw(v string) json.RawMessage { return json.RawMessage(v) }

func TestCreateEntryRoundTrip(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	created, err := svc.Create(ctx, services.CreateEntryInput{
		EntryDate: "2025-06-10",
		MoodScore: intPtr(7),
		MoodLabel: strPtr("content"),
		Tags:      strPtr("work,walk"),
		Title:     strPtr("A decent Tuesday"),
		Body:      strPtr("Long walk after standup helped."),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), created.EntryDate)
	assert.Equal(t, testClock, created.CreatedAt)
	assert.Equal(t, testClock, created.UpdatedAt)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreateEntryDefaultsEntryDate(t *testing.T) {
	svc := newTestEntryService()

	created, err := svc.Create(userCtx("alice"), services.CreateEntryInput{})
	require.NoError(t, err)
	assert.Equal(t, testClock, created.EntryDate)
	assert.Nil(t, created.MoodScore)
	assert.Nil(t, created.Title)
}

func TestCreateEntryValidation(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	tests := []struct {
		name  string
		input services.CreateEntryInput
	}{
		{"mood score too low", services.CreateEntryInput{MoodScore: intPtr(0)}},
		{"mood score too high", services.CreateEntryInput{MoodScore: intPtr(11)}},
		{"bad entry date", services.CreateEntryInput{EntryDate: "June 10th"}},
		{"blank title", services.CreateEntryInput{Title: strPtr("   ")}},
		{"title too long", services.CreateEntryInput{Title: strPtr(strings.Repeat("a", 121))}},
		{"blank body", services.CreateEntryInput{Body: strPtr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, services.CodeValidationFailed, services.CodeOf(err))
		})
	}
}

func TestEntryOperationsRequireAuth(t *testing.T) {
	svc := newTestEntryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, services.CreateEntryInput{})
	assert.Equal(t, services.CodeUnauthenticated, services.CodeOf(err))

	_, err = svc.Get(ctx, "some-id")
	assert.Equal(t, services.CodeUnauthenticated, services.CodeOf(err))

	_, err = svc.Update(ctx, "some-id", services.Patch{})
	assert.Equal(t, services.CodeUnauthenticated, services.CodeOf(err))

	err = svc.Delete(ctx, "some-id")
	assert.Equal(t, services.CodeUnauthenticated, services.CodeOf(err))

	_, err = svc.List(ctx, 1, 20)
	assert.Equal(t, services.CodeUnauthenticated, services.CodeOf(err))
}

func TestGetEntryCrossUser(t *testing.T) {
	svc := newTestEntryService()

	created, err := svc.Create(userCtx("alice"), services.CreateEntryInput{Body: strPtr("private")})
	require.NoError(t, err)

	_, err = svc.Get(userCtx("bob"), created.ID)
	require.Error(t, err)
	assert.Equal(t, services.CodeNotFound, services.CodeOf(err))
}

func TestUpdateEntrySparsePatch(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	created, err := svc.Create(ctx, services.CreateEntryInput{
		MoodScore: intPtr(4),
		MoodLabel: strPtr("flat"),
		Title:     strPtr("Monday"),
		Body:      strPtr("Meh."),
	})
	require.NoError(t, err)

	later := testClock.Add(time.Hour)
	svc.Now = func() time.Time { return later }

	// Patch one field, clear another; everything omitted stays put.
	id, err := svc.Update(ctx, created.ID, services.Patch{
		"mood_score": raw("8"),
		"mood_label": raw("null"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.MoodScore)
	assert.Equal(t, 8, *updated.MoodScore)
	assert.Nil(t, updated.MoodLabel)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Monday", *updated.Title)
	require.NotNil(t, updated.Body)
	assert.Equal(t, "Meh.", *updated.Body)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, testClock, updated.CreatedAt)
}

func TestUpdateEntryEmptyPatchTouchesOnlyUpdatedAt(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	created, err := svc.Create(ctx, services.CreateEntryInput{Title: strPtr("Before")})
	require.NoError(t, err)

	later := testClock.Add(time.Hour)
	svc.Now = func() time.Time { return later }

	_, err = svc.Update(ctx, created.ID, services.Patch{})
	require.NoError(t, err)

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, later, updated.UpdatedAt)

	// Everything except updated_at is unchanged.
	expected := *created
	expected.UpdatedAt = later
	assert.Equal(t, &expected, updated)
}

func TestUpdateEntryIdempotent(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	created, err := svc.Create(ctx, services.CreateEntryInput{Title: strPtr("Before")})
	require.NoError(t, err)

	patch := services.Patch{"title": raw(`"After"`), "mood_score": raw("6")}

	_, err = svc.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	first, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	second, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpdateEntryCrossUserNoMutation(t *testing.T) {
	svc := newTestEntryService()

	created, err := svc.Create(userCtx("alice"), services.CreateEntryInput{Title: strPtr("Mine")})
	require.NoError(t, err)

	_, err = svc.Update(userCtx("bob"), created.ID, services.Patch{"title": raw(`"Stolen"`)})
	require.Error(t, err)
	assert.Equal(t, services.CodeNotFound, services.CodeOf(err))

	unchanged, err := svc.Get(userCtx("alice"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", *unchanged.Title)
	assert.Equal(t, testClock, unchanged.UpdatedAt)
}

func TestDeleteEntry(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	created, err := svc.Create(ctx, services.CreateEntryInput{})
	require.NoError(t, err)

	// A different user cannot delete it.
	err = svc.Delete(userCtx("bob"), created.ID)
	assert.Equal(t, services.CodeNotFound, services.CodeOf(err))
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	// The owner can.
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, services.CodeNotFound, services.CodeOf(err))
}

func TestListEntriesPagination(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	for day := 1; day <= 25; day++ {
		_, err := svc.Create(ctx, services.CreateEntryInput{
			EntryDate: fmt.Sprintf("2025-05-%02d", day),
		})
		require.NoError(t, err)
	}
	// Another user's entries must not leak into the count.
	_, err := svc.Create(userCtx("bob"), services.CreateEntryInput{})
	require.NoError(t, err)

	page, err := svc.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 10)
	// entry_date descending: page 2 holds days 15 down to 6.
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), page.Items[0].EntryDate)
	assert.Equal(t, time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC), page.Items[9].EntryDate)
}

func TestListEntriesDefaultsAndValidation(t *testing.T) {
	svc := newTestEntryService()
	ctx := userCtx("alice")

	page, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Items)

	_, err = svc.List(ctx, -1, 10)
	assert.Equal(t, services.CodeValidationFailed, services.CodeOf(err))

	_, err = svc.List(ctx, 1, 101)
	assert.Equal(t, services.CodeValidationFailed, services.CodeOf(err))
}
