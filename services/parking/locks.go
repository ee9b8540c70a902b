package parking

import (
	"context"
	"sync"
	"time"
)

// plateLocks serializes entry and checkout per plate. Locks for distinct
// plates never contend. A lock acquisition waits at most the configured
// budget and then reports busy instead of blocking the request.
type plateLocks struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newPlateLocks() *plateLocks {
	return &plateLocks{held: make(map[string]chan struct{})}
}

func (l *plateLocks) acquire(ctx context.Context, plate string, wait time.Duration) error {
	l.mu.Lock()
	sem, ok := l.held[plate]
	if !ok {
		sem = make(chan struct{}, 1)
		l.held[plate] = sem
	}
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return nil
	case <-timer.C:
		return newError(CodeBusy, "another operation for plate %s is in progress, retry shortly", plate)
	case <-ctx.Done():
		return newError(CodeBusy, "request cancelled while waiting for plate %s", plate)
	}
}

func (l *plateLocks) release(plate string) {
	l.mu.Lock()
	sem := l.held[plate]
	l.mu.Unlock()
	if sem == nil {
		return
	}
	select {
	case <-sem:
	default:
	}
}
