package helpers

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/api/idtoken"

	"github.com/oksasatya/plantify/pkg/apperror"
)

func TestIdentityFromPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload *idtoken.Payload
		want    ExternalIdentity
		wantErr bool
	}{
		{
			name: "valid",
			payload: &idtoken.Payload{
				Issuer:  "https://accounts.google.com",
				Subject: "1234567890",
				Claims:  map[string]interface{}{"email": " alice@x.com ", "name": "Alice", "email_verified": true},
			},
			want: ExternalIdentity{Email: "alice@x.com", Name: "Alice", Subject: "1234567890"},
		},
		{
			name: "bare issuer and no name",
			payload: &idtoken.Payload{
				Issuer:  "accounts.google.com",
				Subject: "42",
				Claims:  map[string]interface{}{"email": "bob@x.com"},
			},
			want: ExternalIdentity{Email: "bob@x.com", Subject: "42"},
		},
		{
			name: "wrong issuer",
			payload: &idtoken.Payload{
				Issuer:  "https://evil.example.com",
				Subject: "1",
				Claims:  map[string]interface{}{"email": "alice@x.com"},
			},
			wantErr: true,
		},
		{
			name: "missing email",
			payload: &idtoken.Payload{
				Issuer:  "accounts.google.com",
				Subject: "1",
				Claims:  map[string]interface{}{"name": "Alice"},
			},
			wantErr: true,
		},
		{
			name: "unverified email",
			payload: &idtoken.Payload{
				Issuer:  "accounts.google.com",
				Subject: "1",
				Claims:  map[string]interface{}{"email": "alice@x.com", "email_verified": false},
			},
			wantErr: true,
		},
		{name: "nil payload", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := identityFromPayload(tt.payload)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrInvalidAssertion) {
					t.Fatalf("expected %v, got %v", apperror.ErrInvalidAssertion, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestGoogleVerifierRequiresClientID(t *testing.T) {
	g := &GoogleVerifier{}
	if _, err := g.Verify(context.Background(), "token"); !errors.Is(err, apperror.ErrInvalidAssertion) {
		t.Fatalf("expected %v, got %v", apperror.ErrInvalidAssertion, err)
	}
}

func TestGoogleVerifierWithoutValidator(t *testing.T) {
	g := &GoogleVerifier{ClientID: "client"}
	if _, err := g.Verify(context.Background(), "token"); !errors.Is(err, apperror.ErrInvalidAssertion) {
		t.Fatalf("expected %v, got %v", apperror.ErrInvalidAssertion, err)
	}
}
