package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/view"
)

// RawRecord is one row of an import payload, before normalization.
// Exports produce the same shape, so an export can be re-imported as is.
type RawRecord struct {
	ExternalID string `json:"id"`
	Activity   string `json:"activity"`
	Duration   int    `json:"duration"`
	Calories   int    `json:"calories"`
	Date       string `json:"date"`
}

// ImportRow is a normalized batch row; Row is the 1-based position in
// the uploaded payload, matching what a user sees in their file.
type ImportRow struct {
	Row   int
	Draft Draft
}

type RejectedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	AcceptedCount int           `json:"accepted"`
	Rejected      []RejectedRow `json:"rejected"`
}

// Normalize validates a raw batch into drafts. Rows whose external id
// repeats an earlier row in the same batch are rejected as duplicates.
func Normalize(rows []RawRecord) (accepted []ImportRow, rejected []RejectedRow) {
	seen := make(map[string]struct{})
	for i, row := range rows {
		rowNum := i + 1

		day, err := ParseDay(row.Date)
		if err != nil {
			rejected = append(rejected, RejectedRow{
				Row:    rowNum,
				Reason: fmt.Sprintf("invalid date %q", row.Date),
			})
			continue
		}

		draft := Draft{
			ExternalID:      strings.TrimSpace(row.ExternalID),
			Activity:        strings.TrimSpace(row.Activity),
			DurationMinutes: row.Duration,
			Calories:        row.Calories,
			Day:             day,
		}
		if err := draft.Validate(); err != nil {
			rejected = append(rejected, RejectedRow{Row: rowNum, Reason: err.Error()})
			continue
		}

		if draft.ExternalID != "" {
			if _, dup := seen[draft.ExternalID]; dup {
				rejected = append(rejected, RejectedRow{
					Row:    rowNum,
					Reason: fmt.Sprintf("duplicate id %q in batch", draft.ExternalID),
				})
				continue
			}
			seen[draft.ExternalID] = struct{}{}
		}

		accepted = append(accepted, ImportRow{Row: rowNum, Draft: draft})
	}
	return accepted, rejected
}

// ImportBatch normalizes and stores an uploaded batch. Rows that fail
// validation or repeat an already stored external id are skipped with a
// per-row reason; the remaining rows are stored. A batch with failures
// is a partial success, not a rollback: a store failure partway through
// stops the batch, but the rows already stored stay counted as accepted
// and the rest come back rejected.
func (s *Service) ImportBatch(ctx context.Context, scope view.Scope, ownerID int, rows []RawRecord) (_ *ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ledger.importBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID), attribute.Int("rows", len(rows)))

	if err := scope.CheckMutate(ownerID); err != nil {
		return nil, err
	}

	accepted, rejected := Normalize(rows)

	existing, err := s.repo.ExternalIDs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get external ids: %w", err)
	}

	result := &ImportResult{Rejected: rejected}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	for i, row := range accepted {
		draft := row.Draft
		if draft.ExternalID != "" {
			if _, dup := existing[draft.ExternalID]; dup {
				result.Rejected = append(result.Rejected, RejectedRow{
					Row:    row.Row,
					Reason: fmt.Sprintf("id %q already imported", draft.ExternalID),
				})
				continue
			}
		}
		if _, addErr := s.repo.Add(ctx, Workout{
			OwnerID:         ownerID,
			ExternalID:      draft.ExternalID,
			Activity:        draft.Activity,
			DurationMinutes: draft.DurationMinutes,
			Calories:        draft.Calories,
			Day:             draft.Day,
			Partition:       PartitionActive,
			CreatedAt:       time.Now(),
		}); addErr != nil {
			// the rows stored so far stay in; report the rest instead
			// of failing the whole request
			log.Errorf("import for user %d: store row %d: %s", ownerID, row.Row, addErr)
			result.Rejected = append(result.Rejected, RejectedRow{Row: row.Row, Reason: "store failed"})
			for _, rest := range accepted[i+1:] {
				result.Rejected = append(result.Rejected, RejectedRow{Row: rest.Row, Reason: "not attempted"})
			}
			break
		}
		result.AcceptedCount++
	}

	s.metrics.CounterImportedRows.WithLabelValues("accepted").Add(float64(result.AcceptedCount))
	s.metrics.CounterImportedRows.WithLabelValues("rejected").Add(float64(len(result.Rejected)))

	if result.AcceptedCount > 0 {
		s.metrics.CounterWorkoutMutations.WithLabelValues("import").Add(float64(result.AcceptedCount))
		s.notifier.NotifyChanged(ownerID)
	}
	return result, nil
}
