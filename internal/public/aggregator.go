package public

import (
	"context"
	"sync"
	"time"

	"github.com/fittrack/fittrack/internal/ledger"
	"github.com/fittrack/fittrack/internal/stats"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=aggregator_mocks_test.go -package=public_test

type snapshotSource interface {
	SnapshotAll(ctx context.Context) (*ledger.Snapshot, error)
}

// publicOwnerID is the cache slot for the cross-user snapshot. Real
// owner ids start at 1.
const publicOwnerID = 0

// Aggregator maintains the anonymized, population-wide figures behind
// the public dashboard. The current week is kept warm by the change
// observer; older weeks are computed on demand and cached until the
// next ledger change.
type Aggregator struct {
	source       snapshotSource
	cache        *stats.WeeklyCache
	caloriesGoal int

	mu            sync.RWMutex
	totalWorkouts int
	goalPct       int
}

func NewAggregator(source snapshotSource, cache *stats.WeeklyCache, caloriesGoal int) *Aggregator {
	return &Aggregator{
		source:       source,
		cache:        cache,
		caloriesGoal: caloriesGoal,
	}
}

// Refresh recomputes the population totals and re-warms the current
// week. It is driven by the change observer, so a refresh failure is
// retried on the observer's poll cadence.
func (a *Aggregator) Refresh(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "public.aggregator.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot, err := a.source.SnapshotAll(ctx)
	if err != nil {
		return err
	}

	weekly := stats.WeeklyTotals(snapshot, 0, time.Now())
	a.cache.Set(publicOwnerID, 0, &weekly)

	weekCalories := 0
	for _, calories := range weekly.PerDayCalories {
		weekCalories += calories
	}
	_, displayPct := stats.GoalPercentage(weekCalories, a.caloriesGoal)

	a.mu.Lock()
	a.totalWorkouts = len(snapshot.Combined())
	a.goalPct = displayPct
	a.mu.Unlock()

	return nil
}

// Weekly returns one week of population totals, serving from cache when
// the ledger has not changed since the last computation.
func (a *Aggregator) Weekly(ctx context.Context, weekOffset int) (_ *stats.WeeklySnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "public.aggregator.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached := a.cache.Get(publicOwnerID, weekOffset); cached != nil {
		return cached, nil
	}

	snapshot, err := a.source.SnapshotAll(ctx)
	if err != nil {
		return nil, err
	}

	weekly := stats.WeeklyTotals(snapshot, weekOffset, time.Now())
	// cache under the clamped offset, out of range requests all map to
	// the oldest tracked week
	a.cache.Set(publicOwnerID, weekly.WeekOffset, &weekly)
	return &weekly, nil
}

// Totals returns the last refreshed population-wide figures.
func (a *Aggregator) Totals() (totalWorkouts, goalPct int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.totalWorkouts, a.goalPct
}
