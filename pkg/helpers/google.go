package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/oksasatya/plantify/pkg/apperror"
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// ExternalIdentity is the verified subset of a Google ID token.
type ExternalIdentity struct {
	Email   string
	Name    string
	Subject string
}

// GoogleVerifier validates Google-issued ID tokens against Google's public
// keys and the configured OAuth client id.
type GoogleVerifier struct {
	ClientID string
	Timeout  time.Duration

	validator *idtoken.Validator
}

func NewGoogleVerifier(ctx context.Context, clientID string, timeout time.Duration) (*GoogleVerifier, error) {
	v, err := idtoken.NewValidator(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, err
	}
	return &GoogleVerifier{ClientID: clientID, Timeout: timeout, validator: v}, nil
}

// Verify checks the token once; there is no retry. Any failure, including a
// timeout while fetching Google's keys, is reported as INVALID_ASSERTION.
func (g *GoogleVerifier) Verify(ctx context.Context, token string) (ExternalIdentity, error) {
	if g.ClientID == "" {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message,
			fmt.Errorf("google client id not configured"))
	}
	if g.validator == nil {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message,
			fmt.Errorf("google token validator not initialised"))
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	payload, err := g.validator.Validate(ctx, token, g.ClientID)
	if err != nil {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message, err)
	}
	return identityFromPayload(payload)
}

func identityFromPayload(p *idtoken.Payload) (ExternalIdentity, error) {
	if p == nil {
		return ExternalIdentity{}, apperror.ErrInvalidAssertion
	}
	if !googleIssuers[p.Issuer] {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message,
			fmt.Errorf("unexpected issuer %q", p.Issuer))
	}
	email, _ := p.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message,
			fmt.Errorf("email claim missing"))
	}
	if verified, ok := p.Claims["email_verified"].(bool); ok && !verified {
		return ExternalIdentity{}, apperror.Wrap(apperror.CodeInvalidAssertion, apperror.ErrInvalidAssertion.Message,
			fmt.Errorf("email not verified"))
	}
	name, _ := p.Claims["name"].(string)
	return ExternalIdentity{Email: email, Name: strings.TrimSpace(name), Subject: p.Subject}, nil
}
