package appstate

import (
	"time"

	"github.com/armonia-app/armonia-core/internal/auth"
)

// Command is one state transition. Implementations are pure: they read the
// incoming state and return the next one, with identifiers and timestamps
// injected at construction so replays are deterministic.
type Command interface {
	apply(State) State
}

// Apply runs a single command against a state value.
func Apply(state State, cmd Command) State {
	return cmd.apply(state)
}

type setUserCmd struct {
	user *auth.Session
}

func (c setUserCmd) apply(state State) State {
	state.User = c.user
	if c.user == nil {
		// Logging out wipes everything scoped to the previous user.
		state.MoodEntries = nil
		state.CompletedActivities = nil
		state.UnlockedAchievements = nil
		state.UserStats = nil
		state.CurrentMood = ""
	}
	return state
}

type setUserStatsCmd struct {
	stats UserStats
}

func (c setUserStatsCmd) apply(state State) State {
	stats := c.stats
	state.UserStats = &stats
	return state
}

type updateSettingsCmd struct {
	patch SettingsPatch
}

func (c updateSettingsCmd) apply(state State) State {
	if c.patch.Theme != nil {
		state.Settings.Theme = *c.patch.Theme
	}
	if c.patch.Notifications != nil {
		state.Settings.Notifications = *c.patch.Notifications
	}
	if c.patch.Privacy != nil {
		state.Settings.Privacy = *c.patch.Privacy
	}
	if c.patch.Preferences != nil {
		state.Settings.Preferences = *c.patch.Preferences
	}
	return state
}

type addMoodEntryCmd struct {
	id      string
	mood    string
	journal string
	date    string
	now     time.Time
}

func (c addMoodEntryCmd) apply(state State) State {
	if state.User == nil {
		return state
	}

	entry := MoodEntry{
		ID:        c.id,
		Mood:      c.mood,
		Journal:   c.journal,
		Date:      c.date,
		Timestamp: c.now,
		UserID:    state.User.ID,
	}

	// Most-recent-first ordering.
	entries := make([]MoodEntry, 0, len(state.MoodEntries)+1)
	entries = append(entries, entry)
	entries = append(entries, state.MoodEntries...)
	state.MoodEntries = entries
	state.CurrentMood = c.mood

	if state.UserStats != nil {
		stats := *state.UserStats
		stats.TotalMoodEntries++
		stats.TotalPoints += 10
		state.UserStats = &stats
	}
	return state
}

type updateMoodEntryCmd struct {
	id    string
	patch MoodEntryPatch
}

func (c updateMoodEntryCmd) apply(state State) State {
	idx := -1
	for i, entry := range state.MoodEntries {
		if entry.ID == c.id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return state
	}

	entries := append([]MoodEntry(nil), state.MoodEntries...)
	if c.patch.Mood != nil {
		entries[idx].Mood = *c.patch.Mood
	}
	if c.patch.Journal != nil {
		entries[idx].Journal = *c.patch.Journal
	}
	if c.patch.Date != nil {
		entries[idx].Date = *c.patch.Date
	}
	state.MoodEntries = entries
	return state
}

type deleteMoodEntryCmd struct {
	id string
}

func (c deleteMoodEntryCmd) apply(state State) State {
	entries := make([]MoodEntry, 0, len(state.MoodEntries))
	for _, entry := range state.MoodEntries {
		if entry.ID != c.id {
			entries = append(entries, entry)
		}
	}
	state.MoodEntries = entries
	return state
}

type setCurrentMoodCmd struct {
	mood string
}

func (c setCurrentMoodCmd) apply(state State) State {
	state.CurrentMood = c.mood
	return state
}

type completeActivityCmd struct {
	activityID string
	now        time.Time
}

func (c completeActivityCmd) apply(state State) State {
	if state.User == nil {
		return state
	}
	var template *Activity
	for i := range state.Activities {
		if state.Activities[i].ID == c.activityID {
			template = &state.Activities[i]
			break
		}
	}
	if template == nil {
		return state
	}

	completed := *template
	now := c.now
	completed.CompletedAt = &now
	completed.UserID = state.User.ID

	state.CompletedActivities = append(append([]Activity(nil), state.CompletedActivities...), completed)

	if state.UserStats != nil {
		stats := *state.UserStats
		stats.ActivitiesCompleted++
		stats.TotalPoints += template.Difficulty.Points()
		state.UserStats = &stats
	}
	return state
}

type addCustomActivityCmd struct {
	id       string
	activity Activity
}

func (c addCustomActivityCmd) apply(state State) State {
	if state.User == nil {
		return state
	}
	activity := c.activity
	activity.ID = c.id
	activity.UserID = state.User.ID
	activity.CompletedAt = nil
	state.Activities = append(append([]Activity(nil), state.Activities...), activity)
	return state
}

type unlockAchievementCmd struct {
	achievementID string
	now           time.Time
}

func (c unlockAchievementCmd) apply(state State) State {
	var template *Achievement
	for i := range state.Achievements {
		if state.Achievements[i].ID == c.achievementID {
			template = &state.Achievements[i]
			break
		}
	}
	if template == nil {
		return state
	}

	unlocked := *template
	now := c.now
	unlocked.UnlockedAt = &now

	// No dedup: unlocking twice appends twice. Kept as-is until product
	// decides whether unlocks should be idempotent.
	state.UnlockedAchievements = append(append([]Achievement(nil), state.UnlockedAchievements...), unlocked)

	if state.UserStats != nil {
		stats := *state.UserStats
		stats.AchievementsUnlocked++
		stats.TotalPoints += 50
		state.UserStats = &stats
	}
	return state
}

type updateAchievementProgressCmd struct {
	achievementID string
	progress      int
	now           time.Time
}

func (c updateAchievementProgressCmd) apply(state State) State {
	idx := -1
	for i := range state.Achievements {
		if state.Achievements[i].ID == c.achievementID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return state
	}

	progress := c.progress
	if progress < 0 {
		progress = 0
	}
	if max := state.Achievements[idx].MaxProgress; progress > max {
		progress = max
	}

	list := append([]Achievement(nil), state.Achievements...)
	list[idx].Progress = progress
	state.Achievements = list

	if progress >= state.Achievements[idx].MaxProgress {
		return unlockAchievementCmd{achievementID: c.achievementID, now: c.now}.apply(state)
	}
	return state
}

type setLoadingCmd struct {
	loading bool
}

func (c setLoadingCmd) apply(state State) State {
	state.IsLoading = c.loading
	return state
}

type setErrorCmd struct {
	message string
}

func (c setErrorCmd) apply(state State) State {
	state.Error = c.message
	return state
}

type toggleSidebarCmd struct{}

func (c toggleSidebarCmd) apply(state State) State {
	state.SidebarCollapsed = !state.SidebarCollapsed
	return state
}

type setSidebarCollapsedCmd struct {
	collapsed bool
}

func (c setSidebarCollapsedCmd) apply(state State) State {
	state.SidebarCollapsed = c.collapsed
	return state
}

type clearUserDataCmd struct{}

func (c clearUserDataCmd) apply(state State) State {
	state.User = nil
	state.UserStats = nil
	state.MoodEntries = nil
	state.CompletedActivities = nil
	state.UnlockedAchievements = nil
	state.CurrentMood = ""
	state.Error = ""
	return state
}

type resetStoreCmd struct{}

func (c resetStoreCmd) apply(State) State {
	return defaultState()
}
