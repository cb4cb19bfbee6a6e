package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/armonia-app/armonia-core/internal/auth"
	"github.com/armonia-app/armonia-core/pkg/logger"
	"github.com/armonia-app/armonia-core/pkg/storage"
	"github.com/google/uuid"
)

// persistedState is the only slice of the container that survives a
// restart. Everything else is rehydrated from the auth service or
// re-derived by the caller on startup.
type persistedState struct {
	Settings         AppSettings `json:"settings"`
	SidebarCollapsed bool        `json:"sidebarCollapsed"`
}

// Subscriber receives a state snapshot after every applied command.
type Subscriber func(State)

// Store is the application state container. Mutations go through the
// command transitions under one mutex, so a list change and its stats
// counters always land together.
type Store struct {
	mu          sync.Mutex
	state       State
	backend     storage.Backend
	logg        *logger.Logger
	subscribers map[int]Subscriber
	nextSubID   int
}

// StoreParams bundles the dependencies required to build the state store.
type StoreParams struct {
	Backend storage.Backend
	Logger  *logger.Logger
}

// NewStore builds the container, loading the persisted settings subset if
// one exists. A corrupt persisted document degrades to defaults.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Backend == nil {
		return nil, errors.New("storage backend required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}

	s := &Store{
		state:       defaultState(),
		backend:     params.Backend,
		logg:        params.Logger,
		subscribers: make(map[int]Subscriber),
	}
	s.loadPersisted(ctx)
	return s, nil
}

func (s *Store) loadPersisted(ctx context.Context) {
	raw, err := s.backend.Get(ctx, storage.KeyAppState)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(s.logg.WithStorageKey(ctx, storage.KeyAppState), "could not read persisted app state, using defaults")
		}
		return
	}
	var persisted persistedState
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeyAppState), "corrupt persisted app state, using defaults", err)
		return
	}
	s.state.Settings = persisted.Settings
	s.state.SidebarCollapsed = persisted.SidebarCollapsed
}

// State returns a snapshot of the current state. Slices in the snapshot are
// owned by the caller.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Subscribe registers an observer and returns its unsubscribe function.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// dispatch applies a command, persists the durable subset when it changed,
// and notifies subscribers outside the lock.
func (s *Store) dispatch(ctx context.Context, cmd Command) {
	s.mu.Lock()
	before := s.state
	s.state = Apply(s.state, cmd)
	settingsChanged := before.Settings != s.state.Settings || before.SidebarCollapsed != s.state.SidebarCollapsed
	snapshot := cloneState(s.state)
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if settingsChanged {
		s.persist(ctx, snapshot)
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) persist(ctx context.Context, snapshot State) {
	raw, err := json.Marshal(persistedState{
		Settings:         snapshot.Settings,
		SidebarCollapsed: snapshot.SidebarCollapsed,
	})
	if err != nil {
		s.logg.Error(ctx, "encode persisted app state", err)
		return
	}
	if err := s.backend.Set(ctx, storage.KeyAppState, string(raw)); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeyAppState), "persisting app state failed", err)
	}
}

// SetUser sets the active user. A nil user cascades a wipe of every
// user-scoped collection; the auth integration layer must call this on
// every logout.
func (s *Store) SetUser(ctx context.Context, user *auth.Session) {
	s.dispatch(ctx, setUserCmd{user: user})
}

// SetUserStats replaces the aggregate counters wholesale.
func (s *Store) SetUserStats(ctx context.Context, stats UserStats) {
	s.dispatch(ctx, setUserStatsCmd{stats: stats})
}

// UpdateSettings applies a section-level settings patch.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) {
	s.dispatch(ctx, updateSettingsCmd{patch: patch})
}

// AddMoodEntry prepends a new mood entry for the active user. Without an
// active user it is a no-op.
func (s *Store) AddMoodEntry(ctx context.Context, mood, journal, date string) {
	s.dispatch(ctx, addMoodEntryCmd{
		id:      uuid.NewString(),
		mood:    mood,
		journal: journal,
		date:    date,
		now:     time.Now().UTC(),
	})
}

// UpdateMoodEntry patches an existing entry; unknown ids are ignored.
func (s *Store) UpdateMoodEntry(ctx context.Context, id string, patch MoodEntryPatch) {
	s.dispatch(ctx, updateMoodEntryCmd{id: id, patch: patch})
}

// DeleteMoodEntry removes an entry; unknown ids are ignored.
func (s *Store) DeleteMoodEntry(ctx context.Context, id string) {
	s.dispatch(ctx, deleteMoodEntryCmd{id: id})
}

// SetCurrentMood sets the mood shown on the dashboard.
func (s *Store) SetCurrentMood(ctx context.Context, mood string) {
	s.dispatch(ctx, setCurrentMoodCmd{mood: mood})
}

// CompleteActivity records a completion of the given template for the
// active user and awards difficulty-scaled points.
func (s *Store) CompleteActivity(ctx context.Context, activityID string) {
	s.dispatch(ctx, completeActivityCmd{activityID: activityID, now: time.Now().UTC()})
}

// AddCustomActivity appends a user-defined activity template.
func (s *Store) AddCustomActivity(ctx context.Context, activity Activity) {
	s.dispatch(ctx, addCustomActivityCmd{id: uuid.NewString(), activity: activity})
}

// UnlockAchievement appends an unlock record and awards bonus points.
func (s *Store) UnlockAchievement(ctx context.Context, achievementID string) {
	s.dispatch(ctx, unlockAchievementCmd{achievementID: achievementID, now: time.Now().UTC()})
}

// UpdateAchievementProgress clamps progress into [0, max] and auto-unlocks
// when the threshold is reached.
func (s *Store) UpdateAchievementProgress(ctx context.Context, achievementID string, progress int) {
	s.dispatch(ctx, updateAchievementProgressCmd{achievementID: achievementID, progress: progress, now: time.Now().UTC()})
}

// SetLoading flips the busy flag.
func (s *Store) SetLoading(ctx context.Context, loading bool) {
	s.dispatch(ctx, setLoadingCmd{loading: loading})
}

// SetError publishes a user-facing error message; empty clears it.
func (s *Store) SetError(ctx context.Context, message string) {
	s.dispatch(ctx, setErrorCmd{message: message})
}

// ToggleSidebar flips the sidebar state.
func (s *Store) ToggleSidebar(ctx context.Context) {
	s.dispatch(ctx, toggleSidebarCmd{})
}

// SetSidebarCollapsed sets the sidebar state explicitly.
func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	s.dispatch(ctx, setSidebarCollapsedCmd{collapsed: collapsed})
}

// ClearUserData wipes the user and everything scoped to them, keeping
// settings and the built-in templates.
func (s *Store) ClearUserData(ctx context.Context) {
	s.dispatch(ctx, clearUserDataCmd{})
}

// ResetStore restores factory defaults, settings included.
func (s *Store) ResetStore(ctx context.Context) {
	s.dispatch(ctx, resetStoreCmd{})
}

func cloneState(state State) State {
	out := state
	out.MoodEntries = append([]MoodEntry(nil), state.MoodEntries...)
	out.Activities = append([]Activity(nil), state.Activities...)
	out.CompletedActivities = append([]Activity(nil), state.CompletedActivities...)
	out.Achievements = append([]Achievement(nil), state.Achievements...)
	out.UnlockedAchievements = append([]Achievement(nil), state.UnlockedAchievements...)
	if state.UserStats != nil {
		stats := *state.UserStats
		out.UserStats = &stats
	}
	if state.User != nil {
		user := *state.User
		out.User = &user
	}
	return out
}
