package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/armonia-app/armonia-core/internal/auth"
)

// promptLineFn and promptPasswordFn are indirections used to facilitate
// testing. They point to the interactive input helpers and can be swapped
// in tests.
var promptLineFn = promptLine
var promptPasswordFn = promptPassword

// Register prompts for email, password and display name and attempts to
// create a new account. Failures are published on the session snapshot and
// echoed back to the user.
func (a *App) Register(ctx context.Context) error {
	email, err := promptLineFn(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := promptPasswordFn(a.out)
	if err != nil {
		return err
	}
	name, err := promptLineFn(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	if ok := a.sessions.Signup(ctx, email, password, name); !ok {
		fmt.Fprintf(a.out, "Signup failed: %s\n", a.sessions.Snapshot().Err)
		return nil
	}
	fmt.Fprintln(a.out, "Welcome to Armonia!")
	return nil
}

// Login prompts for credentials and authenticates against the stored
// accounts. A failed attempt leaves the current session untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := promptLineFn(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := promptPasswordFn(a.out)
	if err != nil {
		return err
	}

	if ok := a.sessions.Login(ctx, email, password); !ok {
		fmt.Fprintf(a.out, "Login failed: %s\n", a.sessions.Snapshot().Err)
		return nil
	}
	user := a.sessions.Snapshot().User
	fmt.Fprintf(a.out, "Hola, %s!\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Whoami prints the active session, including onboarding progress.
func (a *App) Whoami(ctx context.Context) error {
	user := a.sessions.Snapshot().User
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	printUser(a.out, user)
	return nil
}

// Onboard marks the onboarding flow as completed for the active account.
func (a *App) Onboard(ctx context.Context) error {
	if err := a.sessions.CompleteOnboarding(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not complete onboarding: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Onboarding completed.")
	return nil
}

// Profile prompts for a new display name and applies it to the account.
func (a *App) Profile(ctx context.Context) error {
	name, err := promptLineFn(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	update := auth.ProfileUpdate{}
	if name != "" {
		update.Name = &name
	}
	if err := a.sessions.UpdateProfile(ctx, update); err != nil {
		fmt.Fprintf(a.out, "Could not update profile: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, a.sessions.Snapshot().User)
	return nil
}

func printUser(w io.Writer, user *auth.Session) {
	onboarding := "pending"
	if user.OnboardingCompleted {
		onboarding = "completed"
	}
	fmt.Fprintf(w, "%s <%s>  id=%s  onboarding=%s\n", user.Name, user.Email, user.ID, onboarding)
}
