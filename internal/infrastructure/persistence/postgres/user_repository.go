package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
	domerrors "github.com/fandangolas/heimdall/internal/domain/errors"
)

const (
	selectUserSQL = `
		SELECT id, email, password_hash, is_active, is_verified, permissions,
		       created_at, updated_at, last_login_at
		FROM users`

	upsertUserSQL = `
		INSERT INTO users (id, email, password_hash, is_active, is_verified, permissions,
		                   created_at, updated_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email         = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			is_active     = EXCLUDED.is_active,
			is_verified   = EXCLUDED.is_verified,
			permissions   = EXCLUDED.permissions,
			updated_at    = EXCLUDED.updated_at,
			last_login_at = EXCLUDED.last_login_at`
)

// UserRepository implements ports.WriteUserRepository on Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save inserts or updates by ID. The users_email_key unique constraint is
// the authority on email uniqueness; losing that race surfaces
// ErrEmailTaken.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, upsertUserSQL,
		user.ID.UUID,
		user.Email.Value(),
		user.PasswordHash.Value(),
		user.Active,
		user.Verified,
		user.Permissions,
		user.CreatedAt,
		user.UpdatedAt,
		user.LastLoginAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUserSQL+` WHERE email = $1`, email.Value())
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id.UUID)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email.Value(),
	).Scan(&exists)
	return exists, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		idStr       string
		emailStr    string
		hashStr     string
		active      bool
		verified    bool
		permissions []string
		createdAt   time.Time
		updatedAt   time.Time
		lastLoginAt *time.Time
	)
	err := row.Scan(&idStr, &emailStr, &hashStr, &active, &verified, &permissions, &createdAt, &updatedAt, &lastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	id, err := domain.ParseUserID(idStr)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	hash, err := domain.NewPasswordHash(hashStr)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Active:       active,
		Verified:     verified,
		Permissions:  permissions,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		LastLoginAt:  lastLoginAt,
	}, nil
}

var _ ports.WriteUserRepository = (*UserRepository)(nil)
