package auth

// Session is the password-free projection of an account representing who is
// currently logged in. It is the only account view ever handed to callers,
// and the shape persisted under the session storage key.
type Session struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// SignupRequest carries the registration payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
}

// LoginRequest carries the credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate holds the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
}
