package database

import (
	"context"
	"errors"
	"time"

	"notig/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateSessionParams struct {
	ID        uuid.UUID
	UserID    int64
	Token     string
	UserAgent string
	ClientIP  string
	ExpiresAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	query := `
		INSERT INTO sessions (id, user_id, token, user_agent, client_ip, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.db.Exec(ctx, query, arg.ID, arg.UserID, arg.Token, arg.UserAgent, arg.ClientIP, arg.ExpiresAt)
	return err
}

// GetSessionUserID resolves a live session token to the id of an existing
// user. ok is false for unknown or expired sessions.
func (q *Queries) GetSessionUserID(ctx context.Context, token string) (userID int64, ok bool, err error) {
	query := `
		SELECT u.id
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > now()
	`
	err = q.db.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return userID, true, nil
}

func (q *Queries) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, token, user_agent, client_ip, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`
	var s models.Session
	err := q.db.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.UserID, &s.Token, &s.UserAgent, &s.ClientIP, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (q *Queries) DeleteSessionByToken(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := q.db.Exec(ctx, query, token)
	return err
}

// DeleteExpiredSessions drops the user's stale sessions and reports how many
// were removed.
func (q *Queries) DeleteExpiredSessions(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM sessions WHERE user_id = $1 AND expires_at <= now()`
	res, err := q.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (q *Queries) ListSessionsForUser(ctx context.Context, userID int64) ([]models.Session, error) {
	query := `
		SELECT id, user_id, token, user_agent, client_ip, expires_at, created_at
		FROM sessions
		WHERE user_id = $1 AND expires_at > now()
		ORDER BY created_at DESC
	`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Token, &s.UserAgent, &s.ClientIP, &s.ExpiresAt, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if sessions == nil {
		return []models.Session{}, nil
	}

	return sessions, nil
}

func (q *Queries) DeleteAllSessionsForUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	_, err := q.db.Exec(ctx, query, userID)
	return err
}
