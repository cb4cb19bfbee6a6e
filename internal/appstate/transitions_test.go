package appstate

import (
	"testing"
	"time"

	"github.com/armonia-app/armonia-core/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transitions are pure: the same command against the same state yields the
// same result, and the input state is left untouched.
func TestApplyIsDeterministicAndNonMutating(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	base := defaultState()
	base.User = &auth.Session{ID: "user-1"}

	cmd := addMoodEntryCmd{id: "fixed-id", mood: "happy", date: "2026-09-01", now: now}

	first := Apply(base, cmd)
	second := Apply(base, cmd)

	require.Len(t, first.MoodEntries, 1)
	assert.Equal(t, first.MoodEntries, second.MoodEntries)
	assert.Equal(t, "fixed-id", first.MoodEntries[0].ID)
	assert.True(t, first.MoodEntries[0].Timestamp.Equal(now))

	assert.Empty(t, base.MoodEntries, "input state must stay untouched")
	assert.Empty(t, base.CurrentMood)
}

func TestUpdateMoodEntryDoesNotAliasPreviousState(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	state := defaultState()
	state.User = &auth.Session{ID: "user-1"}
	state = Apply(state, addMoodEntryCmd{id: "m1", mood: "sad", date: "2026-09-01", now: now})

	mood := "hopeful"
	next := Apply(state, updateMoodEntryCmd{id: "m1", patch: MoodEntryPatch{Mood: &mood}})

	assert.Equal(t, "sad", state.MoodEntries[0].Mood, "prior state must not change")
	assert.Equal(t, "hopeful", next.MoodEntries[0].Mood)
}
