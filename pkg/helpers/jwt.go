package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oksasatya/plantify/pkg/apperror"
)

// TokenTypeRefresh marks refresh tokens. Access tokens carry no type.
const TokenTypeRefresh = "refresh"

// TokenConfig is the immutable signing configuration of a JWTManager.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Leeway tolerates clock skew when checking exp; zero means none.
	Leeway time.Duration
}

// JWTManager issues and verifies HS256 tokens with a single process-wide
// secret. Access and refresh tokens are told apart by the type claim.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration

	// Now is the clock used for issuance and expiry checks.
	Now func() time.Time
}

func NewJWTManager(cfg TokenConfig) *JWTManager {
	return &JWTManager{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		leeway:     cfg.Leeway,
		Now:        time.Now,
	}
}

// TokenPayload is the identity embedded into every token.
type TokenPayload struct {
	UserID string
	Email  string
}

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IsRefresh reports whether the claims carry the refresh marker.
func (c *Claims) IsRefresh() bool { return c.Type == TokenTypeRefresh }

// Payload strips the claims back to the identity they were issued for.
func (c *Claims) Payload() TokenPayload {
	return TokenPayload{UserID: c.UserID, Email: c.Email}
}

func (m *JWTManager) IssueAccessToken(p TokenPayload) (string, time.Time, error) {
	return m.issue(p, "", m.accessTTL)
}

func (m *JWTManager) IssueRefreshToken(p TokenPayload) (string, time.Time, error) {
	return m.issue(p, TokenTypeRefresh, m.refreshTTL)
}

func (m *JWTManager) issue(p TokenPayload, typ string, ttl time.Duration) (string, time.Time, error) {
	now := m.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Verify checks signature and expiry. On failure it returns an
// *apperror.Error with one of TOKEN_EXPIRED, MALFORMED_TOKEN, INVALID_TOKEN
// or VERIFICATION_FAILED and never any claims.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.Now),
		jwt.WithExpirationRequired(),
	)
	tkn, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !tkn.Valid {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess is Verify restricted to access tokens; a refresh token is
// reported as INVALID_TOKEN.
func (m *JWTManager) VerifyAccess(tokenStr string) (*Claims, error) {
	claims, err := m.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.IsRefresh() {
		return nil, apperror.New(apperror.CodeInvalidToken, "Invalid token type. Access token required.")
	}
	return claims, nil
}

// Decode parses the token without checking signature or expiry. The result
// must never be used for authorization. Returns nil on garbage input.
func (m *JWTManager) Decode(tokenStr string) *Claims {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil
	}
	return claims
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperror.Wrap(apperror.CodeTokenExpired, apperror.ErrTokenExpired.Message, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return apperror.Wrap(apperror.CodeMalformedToken, apperror.ErrMalformedToken.Message, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return apperror.Wrap(apperror.CodeInvalidToken, apperror.ErrInvalidToken.Message, err)
	default:
		return apperror.Wrap(apperror.CodeVerificationFailed, apperror.ErrVerificationFailed.Message, err)
	}
}
