package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPinger struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (p *scriptedPinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.results) == 0 {
		return nil
	}
	err := p.results[0]
	p.results = p.results[1:]
	return err
}

func TestRunFailsAfterConsecutiveFailures(t *testing.T) {
	down := errors.New("connection refused")
	pinger := &scriptedPinger{results: []error{down, down, down}}
	m := NewMonitor(pinger, time.Millisecond, time.Second, 3)

	err := m.Run(context.Background())
	require.ErrorIs(t, err, ErrStoreUnreachable)
	assert.ErrorIs(t, err, down)
	assert.Equal(t, 3, pinger.calls)
}

func TestRunResetsOnSuccess(t *testing.T) {
	down := errors.New("timeout")
	pinger := &scriptedPinger{results: []error{down, down, nil, down, down, down}}
	m := NewMonitor(pinger, time.Millisecond, time.Second, 3)

	err := m.Run(context.Background())
	require.ErrorIs(t, err, ErrStoreUnreachable)
	assert.Equal(t, 6, pinger.calls)
}

func TestRunStopsWithContext(t *testing.T) {
	m := NewMonitor(&scriptedPinger{}, time.Millisecond, time.Second, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.NoError(t, m.Run(ctx))
}

type slowPinger struct{}

func (slowPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestCheckIsBounded(t *testing.T) {
	m := NewMonitor(slowPinger{}, time.Minute, 5*time.Millisecond, 1)
	assert.ErrorIs(t, m.Check(context.Background()), context.DeadlineExceeded)
}
