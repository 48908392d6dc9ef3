package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fittrack/fittrack/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout
				(owner_id, external_id, activity, duration_minutes, calories, day, partition, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		workout.OwnerID, workout.ExternalID, workout.Activity,
		workout.DurationMinutes, workout.Calories, workout.Day.Time,
		string(PartitionActive), workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	workout.Partition = PartitionActive
	return &workout, nil
}

// Delete removes the record from whichever partition it occupies.
// Deleting an absent id is a no-op, reported through the returned flag.
func (r *Repo) Delete(ctx context.Context, ownerID, id int) (deleted bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1 AND owner_id = $2;`,
		id, ownerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Archive moves a record from the active to the archived partition. The
// conditional update makes the move atomic: a record absent from the
// source partition (already archived, deleted, or foreign) yields
// ErrWorkoutNotFound and no change.
func (r *Repo) Archive(ctx context.Context, ownerID, id int) (*Workout, error) {
	return r.movePartition(ctx, "repo.ledger.archive", ownerID, id, PartitionActive, PartitionArchived)
}

// Restore moves a record from the archived partition back to active.
func (r *Repo) Restore(ctx context.Context, ownerID, id int) (*Workout, error) {
	return r.movePartition(ctx, "repo.ledger.restore", ownerID, id, PartitionArchived, PartitionActive)
}

func (r *Repo) movePartition(
	ctx context.Context,
	spanName string,
	ownerID, id int,
	from, to Partition,
) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, spanName)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`UPDATE workout SET partition = $1
			WHERE id = $2 AND owner_id = $3 AND partition = $4
			RETURNING id, owner_id, external_id, activity, duration_minutes, calories, day, partition, created_at;`,
		string(to), id, ownerID, string(from),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &workouts[0], nil
}

// Snapshot reads one user's full record set, both partitions, as a
// single query so the result is a consistent point-in-time view.
func (r *Repo) Snapshot(ctx context.Context, ownerID int) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, external_id, activity, duration_minutes, calories, day, partition, created_at
			FROM workout
			WHERE owner_id = $1
			ORDER BY day DESC, id DESC;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	return splitSnapshot(workouts), nil
}

// SnapshotAll reads every user's records in one consistent query. Used
// only for the anonymized public aggregates.
func (r *Repo) SnapshotAll(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.snapshotAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, external_id, activity, duration_minutes, calories, day, partition, created_at
			FROM workout
			ORDER BY day DESC, id DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}

	return splitSnapshot(workouts), nil
}

func (r *Repo) RestoreAll(ctx context.Context, ownerID int) (restored int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.restoreAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET partition = $1 WHERE owner_id = $2 AND partition = $3;`,
		string(PartitionActive), ownerID, string(PartitionArchived),
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *Repo) ClearArchive(ctx context.Context, ownerID int) (cleared int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.clearArchive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE owner_id = $1 AND partition = $2;`,
		ownerID, string(PartitionArchived),
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// DeleteAll wipes a user's whole ledger. Used when an admin deletes the
// user account.
func (r *Repo) DeleteAll(ctx context.Context, ownerID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.deleteAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	_, err = r.db.Exec(ctx, `DELETE FROM workout WHERE owner_id = $1;`, ownerID)
	return err
}

// ExternalIDs returns the set of external ids already imported for the
// owner, used by the import de-duplication.
func (r *Repo) ExternalIDs(ctx context.Context, ownerID int) (_ map[string]struct{}, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ledger.externalIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT external_id FROM workout WHERE owner_id = $1 AND external_id <> '';`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		var day time.Time
		var partition string
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.ExternalID, &w.Activity,
			&w.DurationMinutes, &w.Calories, &day, &partition, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		w.Day = DayOf(day)
		w.Partition = Partition(partition)
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func splitSnapshot(workouts []Workout) *Snapshot {
	snapshot := &Snapshot{
		Active:   []Workout{},
		Archived: []Workout{},
	}
	for _, w := range workouts {
		if w.Partition == PartitionArchived {
			snapshot.Archived = append(snapshot.Archived, w)
		} else {
			snapshot.Active = append(snapshot.Active, w)
		}
	}
	return snapshot
}
