package appstate

import "time"

// MoodEntry is a single logged emotional-state data point. Date carries day
// granularity (YYYY-MM-DD); Timestamp is the creation instant.
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Journal   string    `json:"journal,omitempty"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
}

// ActivityCategory classifies wellness exercise templates.
type ActivityCategory string

const (
	ActivityBreathing  ActivityCategory = "breathing"
	ActivityMeditation ActivityCategory = "meditation"
	ActivityExercise   ActivityCategory = "exercise"
	ActivityJournaling ActivityCategory = "journaling"
)

// Difficulty scales the points awarded for completing an activity.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points returns the reward for completing an activity of this difficulty.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 15
	default:
		return 10
	}
}

// Activity is a wellness exercise template. Completing one never mutates the
// template; a copy with CompletedAt set lands in the completed list.
type Activity struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    ActivityCategory `json:"category"`
	Duration    int              `json:"duration"` // minutes
	Difficulty  Difficulty       `json:"difficulty"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	UserID      string           `json:"userId,omitempty"`
}

// AchievementCategory groups gamification milestones.
type AchievementCategory string

const (
	AchievementMood     AchievementCategory = "mood"
	AchievementActivity AchievementCategory = "activity"
	AchievementStreak   AchievementCategory = "streak"
	AchievementSocial   AchievementCategory = "social"
)

// Achievement is a milestone with progress tracking. Unlocking copies it
// into the unlocked list with UnlockedAt set.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	UnlockedAt  *time.Time          `json:"unlockedAt,omitempty"`
	Progress    int                 `json:"progress"`
	MaxProgress int                 `json:"maxProgress"`
	Category    AchievementCategory `json:"category"`
}

// UserStats aggregates the gamification counters. They are maintained
// incrementally by the transitions that touch the underlying lists.
type UserStats struct {
	TotalMoodEntries     int       `json:"totalMoodEntries"`
	CurrentStreak        int       `json:"currentStreak"`
	LongestStreak        int       `json:"longestStreak"`
	ActivitiesCompleted  int       `json:"activitiesCompleted"`
	AchievementsUnlocked int       `json:"achievementsUnlocked"`
	TotalPoints          int       `json:"totalPoints"`
	Level                int       `json:"level"`
	JoinedAt             time.Time `json:"joinedAt"`
}

// NotificationSettings toggles the reminder surfaces.
type NotificationSettings struct {
	DailyReminder     bool `json:"dailyReminder"`
	AchievementAlerts bool `json:"achievementAlerts"`
	WeeklyReport      bool `json:"weeklyReport"`
}

// PrivacySettings controls what leaves the device.
type PrivacySettings struct {
	ShareStats    bool `json:"shareStats"`
	AnonymousData bool `json:"anonymousData"`
}

// PreferenceSettings holds display preferences.
type PreferenceSettings struct {
	DefaultMoodScale string `json:"defaultMoodScale"`
	ReminderTime     string `json:"reminderTime"`
	Language         string `json:"language"`
}

// AppSettings is the only state that survives a restart; it is independent
// of account identity.
type AppSettings struct {
	Theme         string               `json:"theme"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Preferences   PreferenceSettings   `json:"preferences"`
}

// SettingsPatch updates settings section by section; a nil section is left
// as is, mirroring a shallow merge.
type SettingsPatch struct {
	Theme         *string
	Notifications *NotificationSettings
	Privacy       *PrivacySettings
	Preferences   *PreferenceSettings
}

// MoodEntryPatch updates fields of an existing mood entry; nil fields are
// left as is.
type MoodEntryPatch struct {
	Mood    *string
	Journal *string
	Date    *string
}
