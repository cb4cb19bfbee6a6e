package accounts

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/logger"
	"github.com/armonia-app/armonia-core/pkg/storage"
)

// Store persists the full account list as one JSON document under
// storage.KeyAccounts. There is no per-record access; every mutation is a
// whole-list overwrite by the owning service.
type Store struct {
	backend storage.Backend
	logg    *logger.Logger
}

// NewStore constructs an account store over the provided backend.
func NewStore(backend storage.Backend, logg *logger.Logger) *Store {
	return &Store{backend: backend, logg: logg}
}

// List returns every stored account. Absent or corrupt storage degrades to
// an empty list: a broken document is logged and treated as no accounts, it
// never surfaces as an error to callers.
func (s *Store) List(ctx context.Context) []Account {
	raw, err := s.backend.Get(ctx, storage.KeyAccounts)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.Warn(s.logg.WithStorageKey(ctx, storage.KeyAccounts), "could not read account list, treating as empty")
		}
		return nil
	}

	var list []Account
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeyAccounts), "corrupt account list, treating as empty", err)
		return nil
	}
	return list
}

// Save overwrites the stored account list. Write failures surface loudly as
// a storage error with a user-facing message.
func (s *Store) Save(ctx context.Context, list []Account) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode account list")
	}
	if err := s.backend.Set(ctx, storage.KeyAccounts, string(raw)); err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, storage.KeyAccounts), "saving account list failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "could not save user data")
	}
	return nil
}
