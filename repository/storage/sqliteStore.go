package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS client_storage (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	expires_at INTEGER,
	PRIMARY KEY (session_id, key)
);
CREATE INDEX IF NOT EXISTS idx_client_storage_expires ON client_storage(expires_at);`

type sqliteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLite opens (and creates) a file-backed store. path ":memory:" keeps
// everything in one in-process database.
func NewSQLite(ctx context.Context, path string, ttl time.Duration) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *sqliteStore) expiry(sid string) any {
	if s.ttl <= 0 || sid == SharedSession {
		return nil
	}
	return s.now().Add(s.ttl).Unix()
}

func (s *sqliteStore) Get(ctx context.Context, sid, key string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `
	SELECT value FROM client_storage
	WHERE session_id = ? AND key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		sid, key, s.now().Unix()).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *sqliteStore) Set(ctx context.Context, sid, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO client_storage (session_id, key, value, expires_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		sid, key, value, s.expiry(sid))
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, 0, len(keys)+1)
	args = append(args, sid)
	for _, k := range keys {
		args = append(args, k)
	}
	q := `DELETE FROM client_storage WHERE session_id = ? AND key IN (?` + strings.Repeat(",?", len(keys)-1) + `)`
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *sqliteStore) Clear(ctx context.Context, sid string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_storage WHERE session_id = ?`, sid)
	return err
}

func (s *sqliteStore) Sweep(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at < ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *sqliteStore) Close() error { return s.db.Close() }
