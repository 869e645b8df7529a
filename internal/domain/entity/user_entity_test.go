package entity

import (
	"errors"
	"testing"
)

func TestNewLocalUserNormalizes(t *testing.T) {
	u, err := NewLocalUser("id-1", "  Alice@X.com ", " Alice ", "hash")
	if err != nil {
		t.Fatalf("new local user: %v", err)
	}
	if u.Email != "alice@x.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Name != "Alice" {
		t.Fatalf("expected trimmed name, got %q", u.Name)
	}
	if got := u.AuthMethods(); len(got) != 1 || got[0] != AuthPassword {
		t.Fatalf("unexpected auth methods %v", got)
	}
}

func TestUserVariantsRequireAuthMethod(t *testing.T) {
	if _, err := NewLocalUser("id", "a@x.com", "A", ""); !errors.Is(err, ErrNoAuthMethod) {
		t.Fatalf("expected %v, got %v", ErrNoAuthMethod, err)
	}
	if _, err := NewGoogleUser("id", "a@x.com", "A", "  "); !errors.Is(err, ErrNoAuthMethod) {
		t.Fatalf("expected %v, got %v", ErrNoAuthMethod, err)
	}
	if _, err := NewGoogleUser("id", "", "A", "sub"); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected %v, got %v", ErrEmailRequired, err)
	}
	if _, err := NewLocalUser("id", "a@x.com", " ", "hash"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected %v, got %v", ErrNameRequired, err)
	}

	g, err := NewGoogleUser("id", "a@x.com", "A", "sub-1")
	if err != nil {
		t.Fatalf("new google user: %v", err)
	}
	if g.HasPassword() {
		t.Fatal("google user must not have a password")
	}
}

func TestPublicProjection(t *testing.T) {
	u := &User{ID: "1", Email: "a@x.com", Name: "A", PasswordHash: "secret", RefreshTokens: []string{"t"}}
	p := u.Public()
	if p.ID != "1" || p.Email != "a@x.com" || p.Name != "A" {
		t.Fatalf("unexpected projection %+v", p)
	}
	if !u.HasRefreshToken("t") || u.HasRefreshToken("x") {
		t.Fatal("unexpected refresh token membership")
	}
}
