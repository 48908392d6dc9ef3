package broadcast

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Observer consumes change signals and turns them into snapshot
// refreshes. One observer owns one subscription, one fallback poll
// timer, and one throttle rule; there are no ad hoc timers anywhere
// else.
//
// A refresh runs at most once per minInterval, measured from the last
// completed refresh. Signals arriving inside the window are deferred to
// the window's end and coalesced. If the push channel goes quiet or
// breaks, the fallback poll keeps the observer eventually consistent;
// refresh errors are logged and retried on the next poll tick, never
// surfaced further.
type Observer struct {
	refresh      func(ctx context.Context) error
	minInterval  time.Duration
	pollInterval time.Duration
}

func NewObserver(refresh func(ctx context.Context) error, minInterval, pollInterval time.Duration) *Observer {
	return &Observer{
		refresh:      refresh,
		minInterval:  minInterval,
		pollInterval: pollInterval,
	}
}

// Run blocks consuming signals until ctx is cancelled. An initial
// refresh runs immediately so the observer never starts stale.
func (o *Observer) Run(ctx context.Context, signals <-chan struct{}) {
	poll := time.NewTicker(o.pollInterval)
	defer poll.Stop()

	var lastCompleted time.Time
	var deferred *time.Timer
	var deferredC <-chan time.Time

	doRefresh := func() {
		if err := o.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Debugf("observer refresh failed, will retry on next poll: %s", err)
			return
		}
		lastCompleted = time.Now()
	}

	tryRefresh := func() {
		if deferredC != nil {
			// a refresh is already scheduled, coalesce
			return
		}
		if wait := o.minInterval - time.Since(lastCompleted); wait > 0 {
			deferred = time.NewTimer(wait)
			deferredC = deferred.C
			return
		}
		doRefresh()
	}

	doRefresh()

	for {
		select {
		case <-ctx.Done():
			if deferred != nil {
				deferred.Stop()
			}
			return
		case <-signals:
			tryRefresh()
		case <-poll.C:
			tryRefresh()
		case <-deferredC:
			deferredC = nil
			doRefresh()
		}
	}
}
