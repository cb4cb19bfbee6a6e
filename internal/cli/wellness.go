package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/armonia-app/armonia-core/internal/appstate"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
)

// MoodAdd prompts for a mood, an optional journal note and a date, then
// records the entry. The store ignores the write when nobody is signed in,
// so gate here for a clearer message.
func (a *App) MoodAdd(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}
	mood, err := promptLineFn(a.reader, "How are you feeling? (e.g. happy, calm, anxious)", a.out)
	if err != nil {
		return err
	}
	journal := promptOptional(a.reader, "Journal note (optional)", "", a.out)
	date := promptOptional(a.reader, "Date YYYY-MM-DD (empty for today)", time.Now().Format("2006-01-02"), a.out)

	form := moodEntryForm{Mood: strings.TrimSpace(mood), Journal: journal, Date: date}
	if err := validateForm(form); err != nil {
		fmt.Fprintln(a.out, pkgerrors.As(err).Message())
		return nil
	}

	a.store.AddMoodEntry(ctx, form.Mood, form.Journal, form.Date)
	fmt.Fprintln(a.out, "Mood recorded.")
	return nil
}

func (a *App) MoodList(ctx context.Context) error {
	entries := a.store.State().MoodEntries
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No mood entries yet.")
		return nil
	}
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %s  %s", entry.Date, entry.Mood, entry.ID)
		if entry.Journal != "" {
			line += "  " + entry.Journal
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *App) MoodDelete(ctx context.Context, id string) error {
	a.store.DeleteMoodEntry(ctx, id)
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Activities lists the available templates followed by the completion log.
func (a *App) Activities(ctx context.Context) error {
	state := a.store.State()
	fmt.Fprintln(a.out, "Activities:")
	for _, act := range state.Activities {
		fmt.Fprintf(a.out, "  %-16s %s (%s, %d min, %s)\n", act.ID, act.Title, act.Category, act.Duration, act.Difficulty)
	}
	if len(state.CompletedActivities) > 0 {
		fmt.Fprintln(a.out, "Completed:")
		for _, act := range state.CompletedActivities {
			when := ""
			if act.CompletedAt != nil {
				when = act.CompletedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(a.out, "  %-16s %s %s\n", act.ID, act.Title, when)
		}
	}
	return nil
}

func (a *App) Complete(ctx context.Context, id string) error {
	before := len(a.store.State().CompletedActivities)
	a.store.CompleteActivity(ctx, id)
	if len(a.store.State().CompletedActivities) == before {
		fmt.Fprintf(a.out, "No activity with id %q.\n", id)
		return nil
	}
	fmt.Fprintln(a.out, "Completed, well done!")
	return nil
}

// AddActivity prompts for a custom activity template and registers it.
func (a *App) AddActivity(ctx context.Context) error {
	title, err := promptLineFn(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description := promptOptional(a.reader, "Description (optional)", "", a.out)
	category := promptOptional(a.reader, "Category [breathing|meditation|exercise|journaling]", string(appstate.ActivityMeditation), a.out)
	durationRaw := promptOptional(a.reader, "Duration in minutes", "10", a.out)
	duration, err := strconv.Atoi(durationRaw)
	if err != nil {
		fmt.Fprintln(a.out, "Duration must be a number.")
		return nil
	}
	difficulty := promptOptional(a.reader, "Difficulty [easy|medium|hard]", string(appstate.DifficultyMedium), a.out)

	form := activityForm{
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    category,
		Duration:    duration,
		Difficulty:  difficulty,
	}
	if err := validateForm(form); err != nil {
		fmt.Fprintln(a.out, pkgerrors.As(err).Message())
		return nil
	}

	a.store.AddCustomActivity(ctx, appstate.Activity{
		Title:       form.Title,
		Description: form.Description,
		Category:    appstate.ActivityCategory(form.Category),
		Duration:    form.Duration,
		Difficulty:  appstate.Difficulty(form.Difficulty),
	})
	fmt.Fprintln(a.out, "Activity added.")
	return nil
}

func (a *App) Achievements(ctx context.Context) error {
	state := a.store.State()
	for _, ach := range state.Achievements {
		fmt.Fprintf(a.out, "%s %-14s %s (%d/%d)\n", ach.Icon, ach.ID, ach.Title, ach.Progress, ach.MaxProgress)
	}
	if len(state.UnlockedAchievements) > 0 {
		fmt.Fprintln(a.out, "Unlocked:")
		for _, ach := range state.UnlockedAchievements {
			when := ""
			if ach.UnlockedAt != nil {
				when = ach.UnlockedAt.Format("2006-01-02")
			}
			fmt.Fprintf(a.out, "  %s %s %s\n", ach.Icon, ach.Title, when)
		}
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	stats := a.store.State().UserStats
	if stats == nil {
		fmt.Fprintln(a.out, "No stats yet.")
		return nil
	}
	fmt.Fprintf(a.out, "Mood entries: %d\n", stats.TotalMoodEntries)
	fmt.Fprintf(a.out, "Activities completed: %d\n", stats.ActivitiesCompleted)
	fmt.Fprintf(a.out, "Achievements unlocked: %d\n", stats.AchievementsUnlocked)
	fmt.Fprintf(a.out, "Total points: %d\n", stats.TotalPoints)
	fmt.Fprintf(a.out, "Streak: %d (best %d)\n", stats.CurrentStreak, stats.LongestStreak)
	return nil
}

// Settings shows the current settings and lets the user change the theme,
// language or reminder time. Empty answers keep the stored value.
func (a *App) Settings(ctx context.Context) error {
	current := a.store.State().Settings
	fmt.Fprintf(a.out, "Theme: %s  Language: %s  Reminder: %s\n",
		current.Theme, current.Preferences.Language, current.Preferences.ReminderTime)

	theme := promptOptional(a.reader, "Theme [light|dark|system] (empty to keep)", current.Theme, a.out)
	language := promptOptional(a.reader, "Language (empty to keep)", current.Preferences.Language, a.out)
	reminder := promptOptional(a.reader, "Reminder time HH:MM (empty to keep)", current.Preferences.ReminderTime, a.out)

	patch := appstate.SettingsPatch{}
	if theme != current.Theme {
		patch.Theme = &theme
	}
	if language != current.Preferences.Language || reminder != current.Preferences.ReminderTime {
		prefs := current.Preferences
		prefs.Language = language
		prefs.ReminderTime = reminder
		patch.Preferences = &prefs
	}
	if patch.Theme == nil && patch.Preferences == nil {
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}
	a.store.UpdateSettings(ctx, patch)
	fmt.Fprintln(a.out, "Settings saved.")
	return nil
}

// Reset restores the whole store to its defaults, settings included.
func (a *App) Reset(ctx context.Context) error {
	answer := promptOptional(a.reader, "This wipes all local data. Type 'yes' to confirm", "", a.out)
	if answer != "yes" {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}
	a.store.ResetStore(ctx)
	fmt.Fprintln(a.out, "Store reset.")
	return nil
}
