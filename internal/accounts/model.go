package accounts

import "time"

// Account is the persisted credential record for one registered user. The
// JSON field names match the storage documents written by earlier clients,
// so existing `armonia_users` data keeps loading.
type Account struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"hashedPassword"`
	Name                string     `json:"name"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	CreatedAt           time.Time  `json:"createdAt"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
}
