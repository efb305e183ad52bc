package provision

import (
	"context"
	"time"
)

// DefaultPoll is the switch/link sampling period used by the gate.
const DefaultPoll = 10 * time.Millisecond

// WaitFor blocks until cond holds, sampling every poll. There is no timeout:
// it returns nil once cond is true, or ctx.Err() if ctx ends first. The
// firmware passes a context that never ends, so an unmet condition blocks
// forever.
func WaitFor(ctx context.Context, poll time.Duration, cond func() bool) error {
	if poll <= 0 {
		poll = DefaultPoll
	}
	if cond() {
		return nil
	}
	t := time.NewTicker(poll)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cond() {
				return nil
			}
		}
	}
}

// sleep pauses for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
