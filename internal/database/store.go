package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
	*Queries
}

// Open creates and pings a connection pool. The caller owns the pool and
// must release it with Store.Close.
func Open(ctx context.Context, source string, maxConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(source)
	if err != nil {
		return nil, fmt.Errorf("parse db source: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		Queries: New(pool),
	}
}

func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// DeleteAccount removes the user's notes and then the user in one
// transaction. The notes FK cascades as well.
func (s *Store) DeleteAccount(ctx context.Context, userID int64) error {
	return s.ExecTx(ctx, func(q *Queries) error {
		if err := q.DeleteUserNotes(ctx, userID); err != nil {
			return err
		}
		return q.DeleteUser(ctx, userID)
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

// Close waits for acquired connections to be released and closes the pool.
func (s *Store) Close() {
	s.pool.Close()
}
