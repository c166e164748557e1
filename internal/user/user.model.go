package user

import "time"

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	PasswordHash     string    `json:"-"`
	EmailVerified    bool      `json:"emailVerified"`
	RemindersEnabled bool      `json:"remindersEnabled"`
	DeviceToken      string    `json:"-"`
	DevicePlatform   string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PendingOTP is one outstanding email verification code. A user has at
// most one; resending replaces it.
type PendingOTP struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

func (p *PendingOTP) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
