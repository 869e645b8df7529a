package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/domain/entity"
	repo "github.com/oksasatya/plantify/internal/domain/repository"
	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
	"github.com/oksasatya/plantify/pkg/mailer"
	"github.com/oksasatya/plantify/pkg/mailer/templates"
)

// IdentityVerifier validates a third-party identity assertion.
// *helpers.GoogleVerifier implements it.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (helpers.ExternalIdentity, error)
}

// JobPublisher puts a JSON job on a queue. *helpers.RabbitPublisher implements it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthUser is the identity returned with a fresh token pair.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResult struct {
	User         AuthUser `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// AuthService orchestrates registration, login, Google login, refresh and
// logout on top of the credential store, the password hasher, the token
// codec and the identity verifier. It never retries.
type AuthService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Verifier IdentityVerifier
	// Mail is optional; nil disables account emails.
	Mail   JobPublisher
	Logger *logrus.Logger
	// MaxRefreshTokens caps the stored list per user; <= 0 keeps all.
	MaxRefreshTokens int

	NewID func() string
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, verifier IdentityVerifier, mail JobPublisher, logger *logrus.Logger, maxRefreshTokens int) *AuthService {
	return &AuthService{
		Repo:             r,
		JWT:              jwt,
		Verifier:         verifier,
		Mail:             mail,
		Logger:           logger,
		MaxRefreshTokens: maxRefreshTokens,
		NewID:            uuid.NewString,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = entity.NormalizeEmail(email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.ErrDuplicateEntry
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, s.internal("lookup user by email", err, logrus.Fields{"email": email})
	}

	hash, err := helpers.HashPassword(password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, apperror.Wrap(apperror.CodeValidation, "Password must be at most 72 bytes", err)
	}
	if err != nil {
		return nil, s.internal("hash password", err, nil)
	}
	u, err := entity.NewLocalUser(s.NewID(), email, name, hash)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	access, refresh, err := s.issuePair(u)
	if err != nil {
		return nil, err
	}
	u.RefreshTokens = []string{refresh}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.ErrDuplicateEntry
		}
		return nil, s.internal("create user", err, logrus.Fields{"email": email})
	}

	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	s.sendAccountEmail(ctx, u, templates.Welcome, entity.AuthPassword)
	return result(u, access, refresh), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, s.internal("lookup user by email", err, nil)
	}
	// Google-only accounts get the same error as a wrong password.
	if !u.HasPassword() || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.startSession(ctx, u)
}

// GoogleLogin signs in with a Google ID token. An existing account is found
// by Google id first, then by email; a password account found by email gets
// the Google id linked onto it. Otherwise a Google-only account is created.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	if s.Verifier == nil {
		return nil, apperror.ErrExternalAuthFailed
	}
	ident, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		helpers.LogWarn(s.Logger, "google token rejected", err, nil)
		return nil, apperror.Wrap(apperror.CodeExternalAuthFailed, apperror.ErrExternalAuthFailed.Message, err)
	}
	email := entity.NormalizeEmail(ident.Email)
	if email == "" || ident.Subject == "" {
		return nil, apperror.ErrExternalAuthFailed
	}

	u, err := s.Repo.GetByGoogleID(ctx, ident.Subject)
	switch {
	case err == nil:
		return s.startSession(ctx, u)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, s.internal("lookup user by google id", err, nil)
	}

	u, err = s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.GoogleID != "" {
			// Same email already bound to another Google account.
			helpers.LogWarn(s.Logger, "google id mismatch for existing account", nil, logrus.Fields{"user_id": u.ID})
			return nil, apperror.ErrExternalAuthFailed
		}
		if err := s.Repo.LinkGoogleID(ctx, u.ID, ident.Subject); err != nil {
			if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrDuplicate) {
				return nil, apperror.ErrExternalAuthFailed
			}
			return nil, s.internal("link google id", err, logrus.Fields{"user_id": u.ID})
		}
		u.GoogleID = ident.Subject
		helpers.LogInfo(s.Logger, "google account linked", logrus.Fields{"user_id": u.ID})
		s.sendAccountEmail(ctx, u, templates.GoogleLinked, entity.AuthGoogle)
		return s.startSession(ctx, u)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, s.internal("lookup user by email", err, nil)
	}

	name := ident.Name
	if strings.TrimSpace(name) == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	u, err = entity.NewGoogleUser(s.NewID(), email, name, ident.Subject)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeExternalAuthFailed, apperror.ErrExternalAuthFailed.Message, err)
	}
	access, refresh, err := s.issuePair(u)
	if err != nil {
		return nil, err
	}
	u.RefreshTokens = []string{refresh}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// Lost a race with a concurrent first login for the same account.
			return nil, apperror.Wrap(apperror.CodeExternalAuthFailed, apperror.ErrExternalAuthFailed.Message, err)
		}
		return nil, s.internal("create google user", err, nil)
	}
	helpers.LogInfo(s.Logger, "user registered with google", logrus.Fields{"user_id": u.ID})
	s.sendAccountEmail(ctx, u, templates.Welcome, entity.AuthGoogle)
	return result(u, access, refresh), nil
}

// RefreshAccessToken returns a new access token for a stored refresh token.
// The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.JWT.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if !claims.IsRefresh() {
		return "", apperror.ErrInvalidTokenType
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", apperror.ErrInvalidRefreshToken
		}
		return "", s.internal("lookup user by id", err, logrus.Fields{"user_id": claims.UserID})
	}
	if !u.HasRefreshToken(refreshToken) {
		return "", apperror.ErrInvalidRefreshToken
	}
	access, _, err := s.JWT.IssueAccessToken(helpers.TokenPayload{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", s.internal("issue access token", err, logrus.Fields{"user_id": u.ID})
	}
	return access, nil
}

// Logout removes refreshToken from the user's list. Unknown users, tokens
// that are already gone and an empty token are not errors.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.Repo.RemoveRefreshToken(ctx, userID, refreshToken); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return s.internal("remove refresh token", err, logrus.Fields{"user_id": userID})
	}
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "User not found")
		}
		return nil, s.internal("lookup user by id", err, logrus.Fields{"user_id": userID})
	}
	return u.Public(), nil
}

// startSession issues a pair for an existing user and appends the refresh
// token to the stored list.
func (s *AuthService) startSession(ctx context.Context, u *entity.User) (*AuthResult, error) {
	access, refresh, err := s.issuePair(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AppendRefreshToken(ctx, u.ID, refresh, s.MaxRefreshTokens); err != nil {
		return nil, s.internal("append refresh token", err, logrus.Fields{"user_id": u.ID})
	}
	return result(u, access, refresh), nil
}

func (s *AuthService) issuePair(u *entity.User) (string, string, error) {
	p := helpers.TokenPayload{UserID: u.ID, Email: u.Email}
	access, _, err := s.JWT.IssueAccessToken(p)
	if err != nil {
		return "", "", s.internal("issue access token", err, logrus.Fields{"user_id": u.ID})
	}
	refresh, _, err := s.JWT.IssueRefreshToken(p)
	if err != nil {
		return "", "", s.internal("issue refresh token", err, logrus.Fields{"user_id": u.ID})
	}
	return access, refresh, nil
}

// sendAccountEmail enqueues an account email. Failures are logged only.
func (s *AuthService) sendAccountEmail(ctx context.Context, u *entity.User, tpl string, method entity.AuthMethod) {
	if s.Mail == nil {
		return
	}
	data := templates.NewAccountEmailData(tpl, u.Name, u.Email, string(method), templates.WithTime(time.Now()))
	job := mailer.EmailJob{To: u.Email, Template: tpl, Data: templates.ToMap(data)}

	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		helpers.LogWarn(s.Logger, "enqueue account email failed", err, logrus.Fields{"user_id": u.ID, "template": tpl})
	}
}

func (s *AuthService) internal(op string, err error, fields logrus.Fields) error {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["op"] = op
	helpers.LogError(s.Logger, "auth service failure", err, fields)
	return apperror.Wrap(apperror.CodeInternal, apperror.ErrInternal.Message, err)
}

func result(u *entity.User, access, refresh string) *AuthResult {
	return &AuthResult{
		User:         AuthUser{ID: u.ID, Email: u.Email, Name: u.Name},
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
