package broadcast

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/telemetry/metrics"
	"github.com/fittrack/fittrack/internal/view"
)

// Subscription is one observer's handle on the change feed. Its channel
// holds at most one pending signal: consecutive changes coalesce, since
// every refresh re-pulls a full snapshot anyway.
type Subscription struct {
	scope   view.Scope
	signals chan struct{}
}

// Signals delivers content-free "changed" events, at least once per
// covered mutation while subscribed.
func (s *Subscription) Signals() <-chan struct{} {
	return s.signals
}

func (s *Subscription) Scope() view.Scope {
	return s.scope
}

// Broadcaster fans ledger change signals out to subscribed observers.
// Delivery is fire-and-forget per subscriber: a slow or dead observer
// never blocks a mutation.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	metrics *metrics.Manager
}

func NewBroadcaster(metricsManager *metrics.Manager) *Broadcaster {
	return &Broadcaster{
		subs:    make(map[*Subscription]struct{}),
		metrics: metricsManager,
	}
}

func (b *Broadcaster) Subscribe(scope view.Scope) *Subscription {
	sub := &Subscription{
		scope:   scope,
		signals: make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	subCount := len(b.subs)
	b.mu.Unlock()

	b.metrics.GaugeSubscribers.Set(float64(subCount))
	log.Tracef("broadcast: new %s subscription, %d total", scope.Kind(), subCount)
	return sub
}

func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	subCount := len(b.subs)
	b.mu.Unlock()

	b.metrics.GaugeSubscribers.Set(float64(subCount))
}

// NotifyChanged signals every subscription whose scope covers the given
// owner: the owner's own tabs, admin views of that owner, and all
// public observers.
func (b *Broadcaster) NotifyChanged(ownerID int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		if !sub.scope.Covers(ownerID) {
			continue
		}
		select {
		case sub.signals <- struct{}{}:
			b.metrics.CounterChangeSignals.Inc()
		default:
			// a signal is already pending, nothing to add
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
