// Package janitor periodically evicts expired cache entries. Reads already
// drop expired entries lazily; the janitor reclaims memory for keys that are
// never read again.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store exposes eviction of expired entries.
type Store interface {
	Prune() int
}

// Janitor sweeps the store on a fixed interval.
type Janitor struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger
}

// Option configures the Janitor.
type Option func(*Janitor)

// WithInterval overrides the sweep interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(j *Janitor) {
		if interval > 0 {
			j.interval = interval
		}
	}
}

// WithLogger overrides the logger used for sweep reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Janitor) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// New constructs a Janitor for the given store with options applied.
func New(store Store, opts ...Option) (*Janitor, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	j := &Janitor{
		store:    store,
		interval: 5 * time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(j)
		}
	}
	return j, nil
}

// Start sweeps periodically until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := j.RunOnce(); removed > 0 {
				j.logger.DebugContext(ctx, "pruned expired cache entries", "removed", removed)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep and reports how many entries were evicted.
func (j *Janitor) RunOnce() int {
	return j.store.Prune()
}
