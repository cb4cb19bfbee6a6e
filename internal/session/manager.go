// Package session bridges the auth service into interactive surfaces
// through an explicit manager object passed to whatever needs the current
// user, with observers notified on every change.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/armonia-app/armonia-core/internal/appstate"
	"github.com/armonia-app/armonia-core/internal/auth"
	"github.com/armonia-app/armonia-core/pkg/config"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/logger"
)

// Snapshot is the reactive view consumers render from.
type Snapshot struct {
	User    *auth.Session
	Loading bool
	Err     string
}

// Observer receives a snapshot after every state change.
type Observer func(Snapshot)

type authService interface {
	Signup(ctx context.Context, req auth.SignupRequest) (*auth.Session, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.Session, error)
	Logout(ctx context.Context)
	CurrentSession(ctx context.Context) *auth.Session
	CompleteOnboarding(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, updates auth.ProfileUpdate) (*auth.Session, error)
}

// Manager owns the reactive user/loading/error state around the auth
// service and keeps the app state container in sync with the session
// lifecycle. Logout flows through here so the user-scoped wipe always
// happens.
type Manager struct {
	mu        sync.Mutex
	auth      authService
	app       *appstate.Store
	cfg       config.AuthConfig
	logg      *logger.Logger
	user      *auth.Session
	loading   bool
	err       string
	observers map[int]Observer
	nextObsID int
	clearTmr  *time.Timer
}

// ManagerParams bundles the dependencies required to build a manager.
type ManagerParams struct {
	Auth   authService
	App    *appstate.Store
	Config config.AuthConfig
	Logger *logger.Logger
}

// NewManager builds the manager and rehydrates the persisted session, if
// any, into both the manager and the app state container.
func NewManager(ctx context.Context, params ManagerParams) (*Manager, error) {
	if params.Auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth service required")
	}
	if params.App == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "app state store required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}

	m := &Manager{
		auth:      params.Auth,
		app:       params.App,
		cfg:       params.Config,
		logg:      params.Logger,
		observers: make(map[int]Observer),
	}

	if current := params.Auth.CurrentSession(ctx); current != nil {
		m.user = current
		params.App.SetUser(ctx, current)
	}
	return m, nil
}

// Snapshot returns the current reactive view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers an observer and returns its unsubscribe function.
func (m *Manager) Subscribe(fn Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextObsID
	m.nextObsID++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// Login authenticates and publishes the resulting session. It reports
// success; failures land in the error field and auto-clear later.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.setLoading(ctx, true)
	defer m.setLoading(ctx, false)

	// Artificial latency to keep login feedback visible. Applied
	// unconditionally, success or failure, with no cancellation.
	sleep(m.cfg.LoginDelay)

	session, err := m.auth.Login(ctx, auth.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.publishError(ctx, err, "could not log in")
		return false
	}
	m.publishUser(ctx, session)
	return true
}

// Signup registers a new account and publishes its session.
func (m *Manager) Signup(ctx context.Context, email, password, name string) bool {
	m.setLoading(ctx, true)
	defer m.setLoading(ctx, false)

	sleep(m.cfg.SignupDelay)

	session, err := m.auth.Signup(ctx, auth.SignupRequest{Email: email, Password: password, Name: name})
	if err != nil {
		m.publishError(ctx, err, "could not create the account")
		return false
	}
	m.publishUser(ctx, session)
	return true
}

// Logout closes the session and always clears local user state, even when
// the underlying delete misbehaves.
func (m *Manager) Logout(ctx context.Context) {
	m.auth.Logout(ctx)

	m.mu.Lock()
	m.user = nil
	m.err = ""
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.app.SetUser(ctx, nil)
	m.notify(snapshot)
}

// CompleteOnboarding marks onboarding done for the active user.
func (m *Manager) CompleteOnboarding(ctx context.Context) error {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()
	if user == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no authenticated user")
	}

	if err := m.auth.CompleteOnboarding(ctx, user.ID); err != nil {
		m.publishError(ctx, err, "could not complete onboarding")
		return err
	}

	updated := *user
	updated.OnboardingCompleted = true
	m.publishUser(ctx, &updated)
	return nil
}

// UpdateProfile applies profile changes for the active user.
func (m *Manager) UpdateProfile(ctx context.Context, updates auth.ProfileUpdate) error {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()
	if user == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no authenticated user")
	}

	session, err := m.auth.UpdateProfile(ctx, user.ID, updates)
	if err != nil {
		m.publishError(ctx, err, "could not update the profile")
		return err
	}
	m.publishUser(ctx, session)
	return nil
}

func (m *Manager) publishUser(ctx context.Context, user *auth.Session) {
	m.mu.Lock()
	m.user = user
	m.err = ""
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.app.SetUser(ctx, user)
	m.notify(snapshot)
}

func (m *Manager) publishError(ctx context.Context, err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "auth action failed")

	m.mu.Lock()
	m.err = message
	if m.clearTmr != nil {
		m.clearTmr.Stop()
	}
	if m.cfg.ErrorClearAfter > 0 {
		m.clearTmr = time.AfterFunc(m.cfg.ErrorClearAfter, m.clearError)
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

func (m *Manager) clearError() {
	m.mu.Lock()
	m.err = ""
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snapshot)
}

func (m *Manager) setLoading(ctx context.Context, loading bool) {
	m.mu.Lock()
	m.loading = loading
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.app.SetLoading(ctx, loading)
	m.notify(snapshot)
}

func (m *Manager) snapshotLocked() Snapshot {
	snapshot := Snapshot{Loading: m.loading, Err: m.err}
	if m.user != nil {
		user := *m.user
		snapshot.User = &user
	}
	return snapshot
}

func (m *Manager) notify(snapshot Snapshot) {
	m.mu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
