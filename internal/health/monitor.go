// Package health watches store connectivity for the life of the process.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// ErrStoreUnreachable is returned by Run once the store has failed
// MaxFailures consecutive checks.
var ErrStoreUnreachable = errors.New("store unreachable")

// Monitor pings a store on a fixed interval.
type Monitor struct {
	pinger      storage.Pinger
	interval    time.Duration
	timeout     time.Duration
	maxFailures int
	log         logging.Logger
}

// NewMonitor creates a monitor. Non-positive settings fall back to one
// minute, ten seconds and five failures.
func NewMonitor(pinger storage.Pinger, interval, timeout time.Duration, maxFailures int) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &Monitor{
		pinger:      pinger,
		interval:    interval,
		timeout:     timeout,
		maxFailures: maxFailures,
		log:         logging.GetLogger("health.monitor"),
	}
}

// Check runs one bounded ping.
func (m *Monitor) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.pinger.Ping(ctx)
}

// Run blocks until ctx is done, returning nil, or until the store has failed
// too many checks in a row, returning ErrStoreUnreachable.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		err := m.Check(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			if failures > 0 {
				m.log.InfoContext(ctx, "store reachable again", "after_failures", failures)
			}
			failures = 0
			continue
		}

		failures++
		m.log.WarnContext(ctx, "store health check failed", "failures", failures, "max", m.maxFailures, "error", err)
		if failures >= m.maxFailures {
			return fmt.Errorf("%w: %d consecutive failures: %w", ErrStoreUnreachable, failures, err)
		}
	}
}
