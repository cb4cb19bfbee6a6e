package auth

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/armonia-app/armonia-core/internal/accounts"
	"github.com/armonia-app/armonia-core/pkg/config"
	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/armonia-app/armonia-core/pkg/logger"
	"github.com/armonia-app/armonia-core/pkg/storage"
)

func buildTestService(t *testing.T) (*Service, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Store:          accounts.NewStore(mem, logg),
		SessionBackend: mem,
		PasswordConfig: config.PasswordConfig{BcryptCost: 4},
		Logger:         logg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, mem
}

func mustSignup(t *testing.T, svc *Service, email, password, name string) *Session {
	t.Helper()
	session, err := svc.Signup(context.Background(), SignupRequest{Email: email, Password: password, Name: name})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	return session
}

func TestSignupNormalizesEmailAndHidesPassword(t *testing.T) {
	svc, mem := buildTestService(t)
	ctx := context.Background()

	session := mustSignup(t, svc, "Ana.Lopez@Example.COM", "Secret1", "Ana")
	if session.Email != "ana.lopez@example.com" {
		t.Fatalf("expected lowercased email, got %q", session.Email)
	}
	if session.ID == "" {
		t.Fatalf("expected generated account id")
	}
	if session.OnboardingCompleted {
		t.Fatalf("new accounts start with onboarding pending")
	}

	raw, err := mem.Get(ctx, storage.KeyAccounts)
	if err != nil {
		t.Fatalf("read stored accounts: %v", err)
	}
	if strings.Contains(raw, "Secret1") {
		t.Fatalf("stored account list leaks the plaintext password")
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	cases := []SignupRequest{
		{Email: "", Password: "Secret1", Name: "Ana"},
		{Email: "ana@example.com", Password: "", Name: "Ana"},
		{Email: "ana@example.com", Password: "Secret1", Name: ""},
		{Email: "ana@example.com", Password: "short", Name: "Ana"},
		{Email: "not-an-email", Password: "Secret1", Name: "Ana"},
	}
	for _, req := range cases {
		_, err := svc.Signup(ctx, req)
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("request %+v: expected validation error, got %v", req, err)
		}
	}
}

func TestSignupDuplicateEmailDiffersOnlyInCase(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	mustSignup(t, svc, "x@y.com", "Secret1", "Xena")
	_, err := svc.Signup(ctx, SignupRequest{Email: "X@Y.COM", Password: "Other99", Name: "Xavi"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	list := listAccounts(t, svc)
	if len(list) != 1 {
		t.Fatalf("expected exactly one stored account, got %d", len(list))
	}
	if list[0].Email != "x@y.com" {
		t.Fatalf("unexpected stored email %q", list[0].Email)
	}
}

func TestLoginFailuresLeaveStateUntouched(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	mustSignup(t, svc, "a@b.com", "Secret1", "Ana")
	svc.Logout(ctx)
	before := listAccounts(t, svc)

	_, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "wrong-pass"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected incorrect password error, got %v", err)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@b.com", Password: "Secret1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected user not found error, got %v", err)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "", Password: ""})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	after := listAccounts(t, svc)
	if len(after) != len(before) || after[0].LastLogin != nil {
		t.Fatalf("failed logins must not mutate the account list")
	}
	if svc.CurrentSession(ctx) != nil {
		t.Fatalf("failed logins must not open a session")
	}
}

func TestSignupLogoutLoginRoundTrip(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	mustSignup(t, svc, "a@b.com", "Secret1", "Ana")
	svc.Logout(ctx)
	if svc.CurrentSession(ctx) != nil {
		t.Fatalf("session must be gone after logout")
	}

	session, err := svc.Login(ctx, LoginRequest{Email: "A@B.COM", Password: "Secret1"})
	if err != nil {
		t.Fatalf("login with different email case: %v", err)
	}
	if session.Email != "a@b.com" {
		t.Fatalf("expected stored lowercase email, got %q", session.Email)
	}

	list := listAccounts(t, svc)
	if list[0].LastLogin == nil {
		t.Fatalf("login must record last-login timestamp")
	}

	persisted := svc.CurrentSession(ctx)
	if persisted == nil || persisted.ID != session.ID {
		t.Fatalf("expected persisted session for %q", session.ID)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	session := mustSignup(t, svc, "a@b.com", "Secret1", "Ana")

	if err := svc.CompleteOnboarding(ctx, session.ID); err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}

	list := listAccounts(t, svc)
	if !list[0].OnboardingCompleted {
		t.Fatalf("stored account must have onboarding flag set")
	}
	current := svc.CurrentSession(ctx)
	if current == nil || !current.OnboardingCompleted {
		t.Fatalf("active session must reflect onboarding flag")
	}

	err := svc.CompleteOnboarding(ctx, "missing-id")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected user not found error, got %v", err)
	}
	if len(listAccounts(t, svc)) != 1 {
		t.Fatalf("failed onboarding must not mutate accounts")
	}
}

func TestUpdateProfileTrimsNameAndRefreshesSession(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	session := mustSignup(t, svc, "a@b.com", "Secret1", "Ana")

	name := "  Ana María  "
	updated, err := svc.UpdateProfile(ctx, session.ID, ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Ana María" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}

	current := svc.CurrentSession(ctx)
	if current == nil || current.Name != "Ana María" {
		t.Fatalf("active session must carry the new name")
	}

	_, err = svc.UpdateProfile(ctx, "missing-id", ProfileUpdate{Name: &name})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected user not found error, got %v", err)
	}
}

func TestUpdateProfileLeavesForeignSessionAlone(t *testing.T) {
	svc, _ := buildTestService(t)
	ctx := context.Background()

	first := mustSignup(t, svc, "a@b.com", "Secret1", "Ana")
	second := mustSignup(t, svc, "b@b.com", "Secret1", "Bea")

	// Active session belongs to the second account now.
	name := "Anita"
	updated, err := svc.UpdateProfile(ctx, first.ID, ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Anita" {
		t.Fatalf("expected projection of the updated account, got %q", updated.Name)
	}

	current := svc.CurrentSession(ctx)
	if current == nil || current.ID != second.ID || current.Name != "Bea" {
		t.Fatalf("foreign session must remain untouched, got %+v", current)
	}
}

func TestCurrentSessionSwallowsCorruptRecord(t *testing.T) {
	svc, mem := buildTestService(t)
	ctx := context.Background()

	if err := mem.Set(ctx, storage.KeySession, "{broken"); err != nil {
		t.Fatalf("seed corrupt session: %v", err)
	}
	if svc.CurrentSession(ctx) != nil {
		t.Fatalf("corrupt session must read as logged out")
	}
}

func TestSignupSurfacesStorageFailure(t *testing.T) {
	svc, mem := buildTestService(t)
	mem.FailSet = errors.New("quota exceeded")

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "a@b.com", Password: "Secret1", Name: "Ana"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func listAccounts(t *testing.T, svc *Service) []accounts.Account {
	t.Helper()
	return svc.store.List(context.Background())
}
