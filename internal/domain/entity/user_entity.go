package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNoAuthMethod  = errors.New("user needs a password or a linked google account")
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
)

// AuthMethod names one way a user can sign in.
type AuthMethod string

const (
	AuthPassword AuthMethod = "password"
	AuthGoogle   AuthMethod = "google"
)

// User is the aggregate root for the auth domain.
//
// A user is created through exactly one variant (NewLocalUser or
// NewGoogleUser). Linking a Google account later can give a local user both
// methods, but never none.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // empty for Google-only accounts
	Name          string
	GoogleID      string // empty until a Google account is linked
	RefreshTokens []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicUser is the projection that is safe to return to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeEmail lowercases and trims an address. Every lookup and insert
// goes through it so addresses differing only by case collide.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewLocalUser builds a password-authenticated user.
func NewLocalUser(id, email, name, passwordHash string) (*User, error) {
	u := &User{ID: id, Email: NormalizeEmail(email), Name: strings.TrimSpace(name), PasswordHash: passwordHash}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NewGoogleUser builds a user that can only sign in through Google.
func NewGoogleUser(id, email, name, googleID string) (*User, error) {
	u := &User{ID: id, Email: NormalizeEmail(email), Name: strings.TrimSpace(name), GoogleID: strings.TrimSpace(googleID)}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.PasswordHash == "" && u.GoogleID == "" {
		return ErrNoAuthMethod
	}
	return nil
}

func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// AuthMethods lists the sign-in methods available to the user.
func (u *User) AuthMethods() []AuthMethod {
	out := make([]AuthMethod, 0, 2)
	if u.PasswordHash != "" {
		out = append(out, AuthPassword)
	}
	if u.GoogleID != "" {
		out = append(out, AuthGoogle)
	}
	return out
}

// HasRefreshToken reports whether token is in the stored list.
func (u *User) HasRefreshToken(token string) bool {
	for _, t := range u.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}
