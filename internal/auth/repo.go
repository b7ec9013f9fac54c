package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcadia-store/arcadia/internal/platform/db"
	"github.com/arcadia-store/arcadia/internal/shared"
)

// NewUser carries the fields needed to create an account together
// with its consent record.
type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	Role         shared.Role
	Language     string
	Currency     string
	Avatar       string
	Consent      Consent
}

// Session is an audit record of an issued refresh token.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	IP        string
	UA        string
}

// Repository defines persistence operations for the identity core.
type Repository interface {
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	UpdateFederatedProfile(ctx context.Context, id int64, name, avatar string) (*User, error)
	CreateSession(ctx context.Context, sess Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `u.id, u.email, u.password_hash, u.name, u.role, u.language, u.currency, u.avatar, u.last_login, u.created_at,
	c.marketing, c.analytics, c.third_party`

const userQuery = `SELECT ` + userColumns + ` FROM users u JOIN consents c ON c.user_id = u.id `

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var consent Consent
	if err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.Language, &user.Currency, &user.Avatar, &user.LastLogin, &user.CreatedAt,
		&consent.Marketing, &consent.Analytics, &consent.ThirdParty,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	user.Consent = &consent
	return &user, nil
}

// CreateUser inserts the user and its consent row in one transaction;
// either both persist or neither does. A duplicate email surfaces as
// shared.ErrDuplicate.
func (r *PGRepository) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	user := &User{
		Email:    in.Email,
		Name:     in.Name,
		Role:     in.Role,
		Language: in.Language,
		Currency: in.Currency,
		Avatar:   in.Avatar,
		Consent:  &Consent{Marketing: in.Consent.Marketing, Analytics: in.Consent.Analytics, ThirdParty: in.Consent.ThirdParty},
	}
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO users (email, password_hash, name, role, language, currency, avatar)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			in.Email, in.PasswordHash, in.Name, in.Role, in.Language, in.Currency, in.Avatar,
		)
		if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO consents (user_id, marketing, analytics, third_party) VALUES ($1, $2, $3, $4)`,
			user.ID, in.Consent.Marketing, in.Consent.Analytics, in.Consent.ThirdParty,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	user.PasswordHash = in.PasswordHash
	return user, nil
}

// FindByEmail fetches a user with its consent, matching the email
// case-insensitively.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, userQuery+`WHERE LOWER(u.email) = LOWER($1)`, email)
	return scanUser(row)
}

// FindByID fetches a user with its consent.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, userQuery+`WHERE u.id = $1`, id)
	return scanUser(row)
}

// TouchLastLogin records a successful login.
func (r *PGRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, id)
	return err
}

// UpdateFederatedProfile refreshes name/avatar/lastLogin after a
// federated sign-in and returns the updated record.
func (r *PGRepository) UpdateFederatedProfile(ctx context.Context, id int64, name, avatar string) (*User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, avatar = $3, last_login = now(), updated_at = now() WHERE id = $1`,
		id, name, avatar)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// CreateSession persists an audit row for an issued refresh token.
func (r *PGRepository) CreateSession(ctx context.Context, sess Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_sessions (id, user_id, expires_at, ip, ua) VALUES ($1, $2, $3, $4, $5)`,
		sess.ID, sess.UserID, sess.ExpiresAt.UTC(), sess.IP, sess.UA)
	return err
}

// DeleteSession removes a session audit row.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_sessions WHERE id = $1`, id)
	return err
}

// DeleteExpiredSessions purges audit rows past their expiry.
func (r *PGRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_sessions WHERE expires_at < $1`, before.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
