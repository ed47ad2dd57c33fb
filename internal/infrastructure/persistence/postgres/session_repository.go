package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
)

const (
	selectSessionSQL = `
		SELECT id, user_id, email, permissions, created_at, expires_at, status
		FROM sessions`

	upsertSessionSQL = `
		INSERT INTO sessions (id, user_id, email, permissions, created_at, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			expires_at = EXCLUDED.expires_at`
)

// SessionRepository implements ports.WriteSessionRepository on Postgres.
// The session row carries the email and permission snapshot taken at
// login, so no join against users is needed on lookup.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	status := "active"
	if !session.Active {
		status = "invalidated"
	}
	_, err := r.pool.Exec(ctx, upsertSessionSQL,
		session.ID.UUID,
		session.UserID.UUID,
		session.Email.Value(),
		session.Permissions,
		session.CreatedAt,
		session.ExpiresAt,
		status,
	)
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	row := r.pool.QueryRow(ctx, selectSessionSQL+` WHERE id = $1`, id.UUID)
	return scanSession(row)
}

// ReadSessionRepository implements the hot-path lookup. Inactive and
// expired rows are filtered in SQL so the query stays a single indexed
// fetch.
type ReadSessionRepository struct {
	pool *pgxpool.Pool
}

func NewReadSessionRepository(pool *pgxpool.Pool) *ReadSessionRepository {
	return &ReadSessionRepository{pool: pool}
}

func (r *ReadSessionRepository) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	row := r.pool.QueryRow(ctx,
		selectSessionSQL+` WHERE id = $1 AND status = 'active' AND expires_at > NOW()`,
		id.UUID,
	)
	return scanSession(row)
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		idStr       string
		userIDStr   string
		emailStr    string
		permissions []string
		createdAt   time.Time
		expiresAt   time.Time
		status      string
	)
	err := row.Scan(&idStr, &userIDStr, &emailStr, &permissions, &createdAt, &expiresAt, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	id, err := domain.ParseSessionID(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(userIDStr)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:          id,
		UserID:      userID,
		Email:       email,
		Permissions: permissions,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		Active:      status == "active",
	}, nil
}

var (
	_ ports.WriteSessionRepository = (*SessionRepository)(nil)
	_ ports.ReadSessionRepository  = (*ReadSessionRepository)(nil)
)
