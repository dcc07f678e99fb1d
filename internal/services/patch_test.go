package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/moodlog-backend/internal/services"
)

func TestDecodePatchPresence(t *testing.T) {
	patch, err := services.DecodePatch(strings.NewReader(`{"title":"Hello","mood_score":null}`))
	require.NoError(t, err)

	// Present vs omitted vs explicitly null are three different things.
	assert.True(t, patch.Has("title"))
	assert.False(t, patch.IsNull("title"))
	assert.True(t, patch.Has("mood_score"))
	assert.True(t, patch.IsNull("mood_score"))
	assert.False(t, patch.Has("body"))

	title, err := patch.String("title")
	require.NoError(t, err)
	require.NotNil(t, title)
	assert.Equal(t, "Hello", *title)

	score, err := patch.Int("mood_score")
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestDecodePatchEmptyObject(t *testing.T) {
	patch, err := services.DecodePatch(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestDecodePatchRejectsNonObject(t *testing.T) {
	_, err := services.DecodePatch(strings.NewReader(`[1,2,3]`))
	assert.Error(t, err)
}

func TestPatchTypeMismatch(t *testing.T) {
	patch, err := services.DecodePatch(strings.NewReader(`{"mood_score":"seven","is_active":1}`))
	require.NoError(t, err)

	_, err = patch.Int("mood_score")
	assert.Error(t, err)

	_, err = patch.Bool("is_active")
	assert.Error(t, err)
}
