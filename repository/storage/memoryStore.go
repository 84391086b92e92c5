package storage

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	val []byte
	exp time.Time
}

type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]map[string]memEntry
}

// NewMemory returns a process-local store. ttl <= 0 disables expiry.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, data: make(map[string]map[string]memEntry)}
}

func (m *Memory) Get(_ context.Context, sid, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[sid][key]
	if !ok || m.expired(e) {
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, nil
}

func (m *Memory) Set(_ context.Context, sid, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.data[sid]
	if !ok {
		sess = make(map[string]memEntry)
		m.data[sid] = sess
	}
	e := memEntry{val: append([]byte(nil), value...)}
	if m.ttl > 0 && sid != SharedSession {
		e.exp = m.now().Add(m.ttl)
	}
	sess[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[sid], k)
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sid)
	return nil
}

func (m *Memory) Sweep(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for sid, sess := range m.data {
		for k, e := range sess {
			if !e.exp.IsZero() && now.After(e.exp) {
				delete(sess, k)
				n++
			}
		}
		if len(sess) == 0 {
			delete(m.data, sid)
		}
	}
	return n, nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) expired(e memEntry) bool {
	return !e.exp.IsZero() && m.now().After(e.exp)
}
