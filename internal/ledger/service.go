package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fittrack/fittrack/internal/telemetry/metrics"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/view"
)

//go:generate mockgen -source=service.go -destination=service_mocks_test.go -package=ledger_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	Delete(ctx context.Context, ownerID, id int) (bool, error)
	Archive(ctx context.Context, ownerID, id int) (*Workout, error)
	Restore(ctx context.Context, ownerID, id int) (*Workout, error)
	Snapshot(ctx context.Context, ownerID int) (*Snapshot, error)
	SnapshotAll(ctx context.Context) (*Snapshot, error)
	RestoreAll(ctx context.Context, ownerID int) (int, error)
	ClearArchive(ctx context.Context, ownerID int) (int, error)
	DeleteAll(ctx context.Context, ownerID int) error
	ExternalIDs(ctx context.Context, ownerID int) (map[string]struct{}, error)
}

type changeNotifier interface {
	NotifyChanged(ownerID int)
}

// Service is the only writer of the workout ledger. Mutations within one
// owner's ledger are serialized; different owners proceed in parallel.
// Every applied mutation notifies the broadcaster, only after the change
// is durably stored.
type Service struct {
	repo     workoutsRepo
	notifier changeNotifier
	metrics  *metrics.Manager

	mu         sync.Mutex
	ownerLocks map[int]*sync.Mutex
}

func NewService(repo workoutsRepo, notifier changeNotifier, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		metrics:    metricsManager,
		ownerLocks: make(map[int]*sync.Mutex),
	}
}

func (s *Service) ownerLock(ownerID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.ownerLocks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.ownerLocks[ownerID] = lock
	}
	return lock
}

func (s *Service) Create(ctx context.Context, scope view.Scope, ownerID int, draft Draft) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	if err := scope.CheckMutate(ownerID); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	added, err := s.repo.Add(ctx, Workout{
		OwnerID:         ownerID,
		ExternalID:      draft.ExternalID,
		Activity:        draft.Activity,
		DurationMinutes: draft.DurationMinutes,
		Calories:        draft.Calories,
		Day:             draft.Day,
		Partition:       PartitionActive,
		CreatedAt:       time.Now(),
	})
	lock.Unlock()
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}

	s.metrics.CounterWorkoutMutations.WithLabelValues("create").Inc()
	s.notifier.NotifyChanged(ownerID)
	return added, nil
}

// Delete is idempotent: deleting an absent id succeeds and changes
// nothing, and no change notification goes out for it.
func (s *Service) Delete(ctx context.Context, scope view.Scope, ownerID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID), attribute.Int("id", id))

	if err := scope.CheckMutate(ownerID); err != nil {
		return err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	lock.Unlock()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	if deleted {
		s.metrics.CounterWorkoutMutations.WithLabelValues("delete").Inc()
		s.notifier.NotifyChanged(ownerID)
	}
	return nil
}

func (s *Service) Archive(ctx context.Context, scope view.Scope, ownerID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.archive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID), attribute.Int("id", id))

	if err := scope.CheckMutate(ownerID); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	workout, err := s.repo.Archive(ctx, ownerID, id)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.metrics.CounterWorkoutMutations.WithLabelValues("archive").Inc()
	s.notifier.NotifyChanged(ownerID)
	return workout, nil
}

func (s *Service) Restore(ctx context.Context, scope view.Scope, ownerID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.restore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID), attribute.Int("id", id))

	if err := scope.CheckMutate(ownerID); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	workout, err := s.repo.Restore(ctx, ownerID, id)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.metrics.CounterWorkoutMutations.WithLabelValues("restore").Inc()
	s.notifier.NotifyChanged(ownerID)
	return workout, nil
}

func (s *Service) RestoreAll(ctx context.Context, scope view.Scope, ownerID int) (restored int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.restoreAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	if err := scope.CheckMutate(ownerID); err != nil {
		return 0, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	restored, err = s.repo.RestoreAll(ctx, ownerID)
	lock.Unlock()
	if err != nil {
		return 0, fmt.Errorf("restore all: %w", err)
	}

	if restored > 0 {
		s.metrics.CounterWorkoutMutations.WithLabelValues("restore").Add(float64(restored))
		s.notifier.NotifyChanged(ownerID)
	}
	return restored, nil
}

func (s *Service) ClearArchive(ctx context.Context, scope view.Scope, ownerID int) (cleared int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.clearArchive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	if err := scope.CheckMutate(ownerID); err != nil {
		return 0, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	cleared, err = s.repo.ClearArchive(ctx, ownerID)
	lock.Unlock()
	if err != nil {
		return 0, fmt.Errorf("clear archive: %w", err)
	}

	if cleared > 0 {
		s.metrics.CounterWorkoutMutations.WithLabelValues("delete").Add(float64(cleared))
		s.notifier.NotifyChanged(ownerID)
	}
	return cleared, nil
}

// Snapshot reads the full record set of the ledger the scope covers.
// Reads are not serialized against mutations; the repo guarantees the
// read is a consistent point-in-time view.
func (s *Service) Snapshot(ctx context.Context, scope view.Scope, ownerID int) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	if !scope.CanRead(ownerID) {
		return nil, view.ErrScopeMismatch
	}

	return s.repo.Snapshot(ctx, ownerID)
}

// ExportAll is a pure read over both partitions, used by the CSV/JSON
// serializers.
func (s *Service) ExportAll(ctx context.Context, scope view.Scope, ownerID int) ([]Workout, error) {
	snapshot, err := s.Snapshot(ctx, scope, ownerID)
	if err != nil {
		return nil, err
	}
	return snapshot.Combined(), nil
}

// DeleteLedger wipes a user's whole ledger. Called by the admin user
// deletion flow, which carries its own capability check; this is not
// reachable through any read-only scope.
func (s *Service) DeleteLedger(ctx context.Context, ownerID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.deleteLedger")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	lock := s.ownerLock(ownerID)
	lock.Lock()
	err = s.repo.DeleteAll(ctx, ownerID)
	lock.Unlock()
	if err != nil {
		return fmt.Errorf("delete ledger: %w", err)
	}

	s.metrics.CounterWorkoutMutations.WithLabelValues("purge").Inc()
	s.notifier.NotifyChanged(ownerID)
	return nil
}
