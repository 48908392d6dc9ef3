package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/view"
	"github.com/fittrack/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=ledger_test

type workoutsService interface {
	Create(ctx context.Context, scope view.Scope, ownerID int, draft Draft) (*Workout, error)
	Delete(ctx context.Context, scope view.Scope, ownerID, id int) error
	Archive(ctx context.Context, scope view.Scope, ownerID, id int) (*Workout, error)
	Restore(ctx context.Context, scope view.Scope, ownerID, id int) (*Workout, error)
	RestoreAll(ctx context.Context, scope view.Scope, ownerID int) (int, error)
	ClearArchive(ctx context.Context, scope view.Scope, ownerID int) (int, error)
	Snapshot(ctx context.Context, scope view.Scope, ownerID int) (*Snapshot, error)
	ExportAll(ctx context.Context, scope view.Scope, ownerID int) ([]Workout, error)
	ImportBatch(ctx context.Context, scope view.Scope, ownerID int, rows []RawRecord) (*ImportResult, error)
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type MovedWorkoutResponse struct {
	MovedID   int    `json:"movedId"`
	Partition string `json:"partition"`
}

type BulkMoveResponse struct {
	Moved int `json:"moved"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{service: service}
}

// ownerScope resolves the caller into an owner scope. Every route under
// /workouts operates on the caller's own ledger only.
func ownerScope(r *http.Request) (view.Scope, int, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return view.Scope{}, 0, false
	}
	return view.Owner(identity.UserID), identity.UserID, true
}

func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, "workout not found", http.StatusNotFound)
	case errors.Is(err, view.ErrReadOnlyScope) || errors.Is(err, view.ErrScopeMismatch):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	added, err := handler.service.Create(ctx, scope, ownerID, draft)
	if err != nil {
		log.Errorf("failed to add workout for user %d: %s", ownerID, err)
		writeDomainError(w, err, "error, failed to add workout")
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	snapshot, err := handler.service.Snapshot(ctx, scope, ownerID)
	if err != nil {
		log.Errorf("failed to get workouts for user %d: %s", ownerID, err)
		writeDomainError(w, err, "failed to get workouts")
		return
	}

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, snapshotJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	id, err := workoutID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, scope, ownerID, id); err != nil {
		log.Errorf("failed to delete workout %d for user %d: %s", id, ownerID, err)
		writeDomainError(w, err, "workout not deleted")
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	handler.handleMove(w, r, "handler.workouts.archive", handler.service.Archive)
}

func (handler *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	handler.handleMove(w, r, "handler.workouts.restore", handler.service.Restore)
}

func (handler *Handler) handleMove(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	move func(ctx context.Context, scope view.Scope, ownerID, id int) (*Workout, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	id, err := workoutID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	moved, err := move(ctx, scope, ownerID, id)
	if err != nil {
		log.Errorf("failed to move workout %d for user %d: %s", id, ownerID, err)
		writeDomainError(w, err, "workout not moved")
		return
	}

	movedRespJson, err := json.Marshal(MovedWorkoutResponse{
		MovedID:   moved.ID,
		Partition: string(moved.Partition),
	})
	if err != nil {
		log.Errorf("failed to marshal move response: %s", err)
		http.Error(w, "failed to marshal move response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(movedRespJson))
}

func (handler *Handler) HandleRestoreAll(w http.ResponseWriter, r *http.Request) {
	handler.handleBulkMove(w, r, "handler.workouts.restoreAll", handler.service.RestoreAll)
}

func (handler *Handler) HandleClearArchive(w http.ResponseWriter, r *http.Request) {
	handler.handleBulkMove(w, r, "handler.workouts.clearArchive", handler.service.ClearArchive)
}

func (handler *Handler) handleBulkMove(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	move func(ctx context.Context, scope view.Scope, ownerID int) (int, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	moved, err := move(ctx, scope, ownerID)
	if err != nil {
		log.Errorf("bulk move for user %d: %s", ownerID, err)
		writeDomainError(w, err, "bulk move failed")
		return
	}

	respJson, err := json.Marshal(BulkMoveResponse{Moved: moved})
	if err != nil {
		log.Errorf("failed to marshal bulk move response: %s", err)
		http.Error(w, "failed to marshal bulk move response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.import")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var rows []RawRecord
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		log.Tracef("import workouts, unmarshal json params: %s", err)
		http.Error(w, "import failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.ImportBatch(ctx, scope, ownerID, rows)
	if err != nil {
		log.Errorf("failed to import workouts for user %d: %s", ownerID, err)
		writeDomainError(w, err, "import failed")
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal import result: %s", err)
		http.Error(w, "failed to marshal import result", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d imported %d workouts, %d rejected", ownerID, result.AcceptedCount, len(result.Rejected))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.export")
	defer span.End()

	scope, ownerID, ok := ownerScope(r)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	workouts, err := handler.service.ExportAll(ctx, scope, ownerID)
	if err != nil {
		log.Errorf("failed to export workouts for user %d: %s", ownerID, err)
		writeDomainError(w, err, "export failed")
		return
	}

	rows := make([]RawRecord, 0, len(workouts))
	for _, workout := range workouts {
		rows = append(rows, RawRecord{
			ExternalID: workout.ExportID(),
			Activity:   workout.Activity,
			Duration:   workout.DurationMinutes,
			Calories:   workout.Calories,
			Date:       workout.Day.String(),
		})
	}

	rowsJson, err := json.Marshal(rows)
	if err != nil {
		log.Errorf("failed to marshal export: %s", err)
		http.Error(w, "failed to marshal export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="workouts.json"`)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, rowsJson, http.StatusOK)
}

func workoutID(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}
