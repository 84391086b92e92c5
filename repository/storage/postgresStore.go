package storage

import (
	"context"
	"errors"
	"time"

	"travelease/util/database"

	"github.com/jackc/pgx/v5"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS client_storage (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BYTEA NOT NULL,
	expires_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (session_id, key)
);
CREATE INDEX IF NOT EXISTS idx_client_storage_expires ON client_storage(expires_at);`

type pgStore struct {
	db  *database.DB
	ttl time.Duration
}

func NewPostgres(ctx context.Context, dsn string, ttl time.Duration) (Store, error) {
	db, err := database.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Pool.Exec(ctx, pgSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &pgStore{db: db, ttl: ttl}, nil
}

func (p *pgStore) expiry(sid string) *time.Time {
	if p.ttl <= 0 || sid == SharedSession {
		return nil
	}
	t := time.Now().UTC().Add(p.ttl)
	return &t
}

func (p *pgStore) Get(ctx context.Context, sid, key string) ([]byte, error) {
	const q = `
SELECT value
FROM client_storage
WHERE session_id=$1 AND key=$2
  AND (expires_at IS NULL OR expires_at > NOW())`
	var b []byte
	err := p.db.Pool.QueryRow(ctx, q, sid, key).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (p *pgStore) Set(ctx context.Context, sid, key string, value []byte) error {
	const q = `
INSERT INTO client_storage (session_id, key, value, expires_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (session_id, key)
DO UPDATE SET value=EXCLUDED.value, expires_at=EXCLUDED.expires_at, updated_at=NOW()`
	_, err := p.db.Pool.Exec(ctx, q, sid, key, value, p.expiry(sid))
	return err
}

func (p *pgStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := p.db.Pool.Exec(ctx, `DELETE FROM client_storage WHERE session_id=$1 AND key = ANY($2)`, sid, keys)
	return err
}

func (p *pgStore) Clear(ctx context.Context, sid string) error {
	_, err := p.db.Pool.Exec(ctx, `DELETE FROM client_storage WHERE session_id=$1`, sid)
	return err
}

func (p *pgStore) Sweep(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.db.Pool.Exec(ctx, `DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *pgStore) Close() error {
	p.db.Close()
	return nil
}
