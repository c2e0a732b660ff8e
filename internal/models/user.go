package models

import (
	"time"
)

// User roles
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RolePremium = "premium"
)

// ValidRoles defines the recognized user roles
var ValidRoles = map[string]bool{
	RoleUser:    true,
	RoleAdmin:   true,
	RolePremium: true,
}

// User represents a registered user. PremiumUntil is set if and only if
// the role is premium; the stored role is never trusted on its own.
type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Image        string     `json:"image,omitempty" db:"image"`
	Role         string     `json:"role" db:"role"`
	PremiumUntil *time.Time `json:"premium_until,omitempty" db:"premium_until"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// PremiumActive reports whether the user's premium window is still open
// at the given instant. Expiry is lazy: nothing reverts the stored role
// when the window closes, so every premium gate must call this.
func (u *User) PremiumActive(now time.Time) bool {
	return u.Role == RolePremium && u.PremiumUntil != nil && now.Before(*u.PremiumUntil)
}

// ProfilePatch carries the display fields a user may change about themselves
type ProfilePatch struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PremiumPlans maps a subscription plan code to its duration
var PremiumPlans = map[string]time.Duration{
	"1":  time.Minute,
	"5":  5 * 24 * time.Hour,
	"10": 10 * 24 * time.Hour,
}
