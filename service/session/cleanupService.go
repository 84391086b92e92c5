package session

import (
	"context"
	"log/slog"
	"time"

	"travelease/repository/storage"
)

type Cleaner interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

type cleaner struct {
	s   storage.Sweeper
	now func() time.Time
}

// NewCleaner returns a cleaner for stores that need explicit expiry. Stores
// that expire keys on their own (redis) get a no-op.
func NewCleaner(st storage.Store) Cleaner {
	sw, _ := st.(storage.Sweeper)
	return &cleaner{s: sw, now: time.Now}
}

func (c *cleaner) ReleaseExpired(ctx context.Context) (int64, error) {
	if c.s == nil {
		return 0, nil
	}
	return c.s.Sweep(ctx, c.now().UTC())
}

// RunCleaner sweeps every interval until ctx is done.
func RunCleaner(ctx context.Context, c Cleaner, every time.Duration, log *slog.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := c.ReleaseExpired(ctx)
			if err != nil {
				log.Error("session sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("expired sessions released", "count", n)
			}
		}
	}
}
