// Package netgate bounds the number of outbound network calls rules may
// have in flight at once, process-wide. The underlying network layer is a
// shared resource; the gate keeps an arbitrarily wide rule fan-out from
// translating into an arbitrarily wide connection fan-out.
package netgate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultPermits is the observed safe bound on simultaneous outbound calls.
const DefaultPermits = 8

// Gate is a cooperative semaphore over outbound network operations. Waiters
// are admitted in FIFO order as permits free up. There is no priority and
// no teardown; the only mutable state is the in-flight permit count.
type Gate struct {
	sem *semaphore.Weighted
}

func New(permits int64) *Gate {
	if permits <= 0 {
		permits = DefaultPermits
	}
	return &Gate{sem: semaphore.NewWeighted(permits)}
}

// Do runs fn while holding one permit. The permit is held for exactly the
// duration of fn and released on every exit path, including panic.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)
	return fn()
}
