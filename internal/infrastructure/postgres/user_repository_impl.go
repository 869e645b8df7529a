package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/domain/repository"
)

const userColumns = `id, email, password_hash, name, google_id, refresh_tokens, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tokens := u.RefreshTokens
	if tokens == nil {
		tokens = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, name, google_id, refresh_tokens)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, u.ID, entity.NormalizeEmail(u.Email), nullable(u.PasswordHash), u.Name, nullable(u.GoogleID), tokens)

	return mapError(row.Scan(&u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, entity.NormalizeEmail(email))
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u        entity.User
		pwd      *string
		googleID *string
	)
	if err := row.Scan(&u.ID, &u.Email, &pwd, &u.Name, &googleID, &u.RefreshTokens,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = deref(pwd)
	u.GoogleID = deref(googleID)
	return &u, nil
}

func (r *UserRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET google_id = $2, updated_at = now()
		WHERE id = $1 AND google_id IS NULL
	`, userID, googleID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendRefreshToken trims and appends in one statement so two concurrent
// logins both survive.
func (r *UserRepository) AppendRefreshToken(ctx context.Context, userID, token string, max int) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_tokens = CASE
				WHEN $3::int > 0 AND cardinality(refresh_tokens) >= $3::int
					THEN refresh_tokens[cardinality(refresh_tokens) - $3::int + 2 : cardinality(refresh_tokens)] || $2::text
				ELSE array_append(refresh_tokens, $2::text)
			END,
			updated_at = now()
		WHERE id = $1
	`, userID, token, max)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RemoveRefreshToken(ctx context.Context, userID, token string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_tokens = array_remove(refresh_tokens, $2::text), updated_at = now()
		WHERE id = $1 AND $2::text = ANY(refresh_tokens)
	`, userID, token)
	if err = mapError(err); errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
