package security_test

import (
	"strings"
	"testing"

	"github.com/armonia-app/armonia-core/pkg/config"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Low cost keeps the test fast; production defaults to SaltRounds.
	cfg := config.PasswordConfig{BcryptCost: 4}

	hash, err := security.HashPassword("very-secure-password", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}
	if strings.Contains(hash, "very-secure-password") {
		t.Fatal("digest leaks the plaintext password")
	}

	if !security.VerifyPassword("very-secure-password", hash) {
		t.Fatal("VerifyPassword failed for the correct password")
	}
	if security.VerifyPassword("bogus-password", hash) {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if security.VerifyPassword("irrelevant", "not-a-hash") {
		t.Fatal("malformed digest must read as a mismatch")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := security.HashPassword("", config.PasswordConfig{BcryptCost: 4})
	if err == nil {
		t.Fatal("expected error for empty password")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
