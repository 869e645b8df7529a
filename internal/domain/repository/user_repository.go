package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/plantify/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// UserRepository is the credential store. Refresh-token list changes are
// single atomic statements so concurrent logins never drop each other's token.
type UserRepository interface {
	// Create inserts u together with its initial RefreshTokens.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	// LinkGoogleID stamps googleID on a user that has none yet.
	LinkGoogleID(ctx context.Context, userID, googleID string) error
	// AppendRefreshToken appends token, keeping at most max entries (oldest
	// dropped first). max <= 0 keeps all.
	AppendRefreshToken(ctx context.Context, userID, token string, max int) error
	// RemoveRefreshToken is a no-op when the token or the user is absent.
	RemoveRefreshToken(ctx context.Context, userID, token string) error
}
