package database

import (
	"context"
	"errors"
	"fmt"

	"notig/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUsernameTaken = errors.New("username in use")
	ErrEmailTaken    = errors.New("email in use")
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// uniqueViolation translates a users unique-constraint failure into the
// matching sentinel. Other errors pass through.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrEmailTaken
		case "users_username_key":
			return ErrUsernameTaken
		}
	}
	return err
}

func (q *Queries) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := q.db.QueryRow(ctx, query, username, email, passwordHash).Scan(&id); err != nil {
		return 0, uniqueViolation(err)
	}
	return id, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.db.QueryRow(ctx, query, email))
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(q.db.QueryRow(ctx, query, username))
}

// UpdateUser overwrites username, email and password hash. Callers re-supply
// current values for fields that do not change.
func (q *Queries) UpdateUser(ctx context.Context, id int64, username, email, passwordHash string) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, updated_at = now()
		WHERE id = $4
	`
	if _, err := q.db.Exec(ctx, query, username, email, passwordHash, id); err != nil {
		return fmt.Errorf("update user %d: %w", id, uniqueViolation(err))
	}
	return nil
}

func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}
