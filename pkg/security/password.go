package security

import (
	"github.com/armonia-app/armonia-core/pkg/config"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// SaltRounds is the fixed bcrypt work factor used when no cost is configured.
const SaltRounds = 12

// HashPassword returns a bcrypt digest for the provided password. Failures
// surface as a generic crypto error that never leaks bcrypt internals.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "password cannot be empty")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), costFromConfig(cfg))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeCrypto, err, "could not process the password")
	}
	return string(digest), nil
}

// VerifyPassword reports whether the password matches the stored digest.
// Any internal failure (malformed digest included) reads as a mismatch, so
// callers cannot distinguish a corrupt record from a wrong password.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

func costFromConfig(cfg config.PasswordConfig) int {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		return SaltRounds
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}
