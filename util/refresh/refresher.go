// Package refresh runs a fetch on a fixed interval until cancelled.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelease_refresh_runs_total",
		Help: "Scheduled refreshes by name and outcome",
	}, []string{"name", "outcome"})
)

// Refresher calls Fetch once on start, on every tick, and whenever Trigger
// is called. A failed fetch is logged and the next tick tries again.
type Refresher struct {
	Name     string
	Interval time.Duration
	Fetch    func(ctx context.Context) error
	Log      *slog.Logger

	kick chan struct{}
}

func New(name string, interval time.Duration, fetch func(ctx context.Context) error, log *slog.Logger) *Refresher {
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{
		Name:     name,
		Interval: interval,
		Fetch:    fetch,
		Log:      log,
		kick:     make(chan struct{}, 1),
	}
}

// Trigger asks for an immediate refresh. Extra triggers coalesce.
func (r *Refresher) Trigger() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.once(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.once(ctx)
		case <-r.kick:
			r.once(ctx)
		}
	}
}

func (r *Refresher) once(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.Fetch(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		refreshRuns.WithLabelValues(r.Name, "error").Inc()
		r.Log.Warn("refresh failed", "name", r.Name, "err", err)
		return
	}
	refreshRuns.WithLabelValues(r.Name, "ok").Inc()
}
