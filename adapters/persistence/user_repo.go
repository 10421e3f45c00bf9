package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/internal/domain/user"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
)

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

const selectUser = `SELECT id, email, name, password_hash, created_at FROM users`

func (r *postgresUserRepo) scanOne(ctx context.Context, identifier, query string, args ...any) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("user", identifier)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.scanOne(ctx, email, selectUser+` WHERE lower(email) = $1`, email)
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.scanOne(ctx, id.String(), selectUser+` WHERE id = $1`, id)
}

// Upsert keys on email, so u.ID and u.CreatedAt are overwritten with the
// stored values when the email already exists.
func (r *postgresUserRepo) Upsert(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, users.name),
			password_hash = EXCLUDED.password_hash
		RETURNING id, created_at
	`
	u.Email = user.NormalizeEmail(u.Email)
	err := r.db.QueryRow(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}
	return nil
}
