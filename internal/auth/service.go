package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/armonia-app/armonia-core/internal/accounts"
	"github.com/armonia-app/armonia-core/pkg/config"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/logger"
	"github.com/armonia-app/armonia-core/pkg/security"
	"github.com/armonia-app/armonia-core/pkg/storage"
	"github.com/google/uuid"
)

// Service owns account records and the current-session record. All
// read-check-write sequences on the account list run under one mutex, so
// two racing signups can never both pass the uniqueness check.
type Service struct {
	mu          sync.Mutex
	store       accountStore
	backend     storage.Backend
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

type accountStore interface {
	List(ctx context.Context) []accounts.Account
	Save(ctx context.Context, list []accounts.Account) error
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	Store          accountStore
	SessionBackend storage.Backend
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "account store required")
	}
	if params.SessionBackend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session backend required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		store:       params.Store,
		backend:     params.SessionBackend,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// Signup registers a new account and opens a session for it. The returned
// session always carries the lowercased form of the submitted email.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req, "invalid signup details"); err != nil {
		return nil, err
	}
	email := strings.ToLower(req.Email)

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.List(ctx)
	for _, account := range list {
		if strings.EqualFold(account.Email, email) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
	}

	account := accounts.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		CreatedAt:    time.Now().UTC(),
	}
	list = append(list, account)
	if err := s.store.Save(ctx, list); err != nil {
		return nil, err
	}

	session := sessionFromAccount(account)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Login authenticates an existing account, refreshes its last-login stamp
// and opens a session for it.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.List(ctx)
	idx := -1
	for i, account := range list {
		if strings.EqualFold(account.Email, email) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if !security.VerifyPassword(req.Password, list[idx].PasswordHash) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect password")
	}

	now := time.Now().UTC()
	list[idx].LastLogin = &now
	if err := s.store.Save(ctx, list); err != nil {
		return nil, err
	}

	session := sessionFromAccount(list[idx])
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout deletes the session record. It never fails the caller: a broken
// storage delete is logged and otherwise ignored.
func (s *Service) Logout(ctx context.Context) {
	if err := s.backend.Remove(ctx, storage.KeySession); err != nil {
		s.logg.Error(ctx, "error during logout", err)
	}
}

// CurrentSession returns the persisted session, or nil when none exists or
// the stored record cannot be parsed.
func (s *Service) CurrentSession(ctx context.Context) *Session {
	raw, err := s.backend.Get(ctx, storage.KeySession)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(s.logg.WithStorageKey(ctx, storage.KeySession), "could not read session record")
		}
		return nil
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeySession), "corrupt session record", err)
		return nil
	}
	return &session
}

// CompleteOnboarding marks the account's onboarding as done and refreshes
// the session when it belongs to that account.
func (s *Service) CompleteOnboarding(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.List(ctx)
	idx := indexByID(list, userID)
	if idx == -1 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	list[idx].OnboardingCompleted = true
	if err := s.store.Save(ctx, list); err != nil {
		return err
	}

	return s.refreshSessionFor(ctx, list[idx])
}

// UpdateProfile applies profile changes to the account and returns the
// refreshed session projection. The persisted session record is only
// touched when it belongs to the updated account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, updates ProfileUpdate) (*Session, error) {
	if updates.Name != nil {
		trimmed := strings.TrimSpace(*updates.Name)
		updates.Name = &trimmed
	}
	if err := validateStruct(updates, "invalid profile details"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.List(ctx)
	idx := indexByID(list, userID)
	if idx == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if updates.Name != nil && *updates.Name != "" {
		list[idx].Name = *updates.Name
	}
	if err := s.store.Save(ctx, list); err != nil {
		return nil, err
	}

	if err := s.refreshSessionFor(ctx, list[idx]); err != nil {
		return nil, err
	}
	return sessionFromAccount(list[idx]), nil
}

// refreshSessionFor rewrites the session record when the active session
// references the given account. A missing or foreign session is left alone.
func (s *Service) refreshSessionFor(ctx context.Context, account accounts.Account) error {
	current := s.CurrentSession(ctx)
	if current == nil || current.ID != account.ID {
		return nil
	}
	return s.saveSession(ctx, sessionFromAccount(account))
}

func (s *Service) saveSession(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session record")
	}
	if err := s.backend.Set(ctx, storage.KeySession, string(raw)); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeySession), "saving session failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "could not save the session")
	}
	return nil
}

func sessionFromAccount(account accounts.Account) *Session {
	return &Session{
		ID:                  account.ID,
		Email:               account.Email,
		Name:                account.Name,
		OnboardingCompleted: account.OnboardingCompleted,
	}
}

func indexByID(list []accounts.Account, id string) int {
	for i, account := range list {
		if account.ID == id {
			return i
		}
	}
	return -1
}
