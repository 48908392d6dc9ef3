package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/ledger"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/users"
	"github.com/fittrack/fittrack/internal/view"
	"github.com/fittrack/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=admin_test

type ledgerService interface {
	Snapshot(ctx context.Context, scope view.Scope, ownerID int) (*ledger.Snapshot, error)
	DeleteLedger(ctx context.Context, ownerID int) error
}

type usersDirectory interface {
	All(ctx context.Context) ([]users.User, error)
	SetStatus(ctx context.Context, id int, status users.Status) error
	Delete(ctx context.Context, id int) error
	WorkoutCounts(ctx context.Context) (map[int]int, error)
}

// UserData is one row of the admin data overview: the account plus how
// many ledger records it holds across both partitions.
type UserData struct {
	users.User
	WorkoutCount int `json:"workoutCount"`
}

type Handler struct {
	ledger ledgerService
	users  usersDirectory
}

func NewHandler(ledgerSvc ledgerService, usersRepo usersDirectory) *Handler {
	return &Handler{
		ledger: ledgerSvc,
		users:  usersRepo,
	}
}

// requireAdmin resolves the caller and rejects anyone without the admin
// capability. The capability lives on the session identity, never
// inferred from ambient state.
func requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	if !identity.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Identity{}, false
	}
	return identity, true
}

// HandleUserWorkouts is the admin's read-only window into one user's
// ledger. It reads through an admin scope, so any mutation attempt
// against the same service is rejected below the transport layer.
func (handler *Handler) HandleUserWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.userWorkouts")
	defer span.End()

	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	targetID, err := targetUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := handler.ledger.Snapshot(ctx, view.AdminReadOnly(targetID), targetID)
	if err != nil {
		log.Errorf("admin: failed to get workouts of user %d: %s", targetID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("admin: marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, snapshotJson, http.StatusOK)
}

func (handler *Handler) HandleData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.data")
	defer span.End()

	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	allUsers, err := handler.users.All(ctx)
	if err != nil {
		log.Errorf("admin: failed to list users: %s", err)
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	counts, err := handler.users.WorkoutCounts(ctx)
	if err != nil {
		log.Errorf("admin: failed to get workout counts: %s", err)
		http.Error(w, "failed to get workout counts", http.StatusInternalServerError)
		return
	}

	data := make([]UserData, 0, len(allUsers))
	for _, user := range allUsers {
		data = append(data, UserData{
			User:         user,
			WorkoutCount: counts[user.ID],
		})
	}

	dataJson, err := json.Marshal(data)
	if err != nil {
		log.Errorf("admin: marshal data error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dataJson, http.StatusOK)
}

func (handler *Handler) HandleArchiveUser(w http.ResponseWriter, r *http.Request) {
	handler.handleSetUserStatus(w, r, "handler.admin.archiveUser", users.StatusArchived)
}

func (handler *Handler) HandleRestoreUser(w http.ResponseWriter, r *http.Request) {
	handler.handleSetUserStatus(w, r, "handler.admin.restoreUser", users.StatusActive)
}

func (handler *Handler) handleSetUserStatus(w http.ResponseWriter, r *http.Request, spanName string, status users.Status) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	targetID, err := targetUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.users.SetStatus(ctx, targetID, status); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("admin: failed to set status of user %d: %s", targetID, err)
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	log.Debugf("admin: user %d moved to %s", targetID, status)
	pkg.WriteTextResponseOK(w, "updated")
}

// HandleDeleteUser removes the account and its whole ledger. Unlike a
// record delete this is not idempotent: deleting an unknown user is a
// 404.
func (handler *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.deleteUser")
	defer span.End()

	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	targetID, err := targetUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.ledger.DeleteLedger(ctx, targetID); err != nil {
		log.Errorf("admin: failed to delete ledger of user %d: %s", targetID, err)
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	if err := handler.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("admin: failed to delete user %d: %s", targetID, err)
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	log.Debugf("admin: user %d deleted", targetID)
	pkg.WriteTextResponseOK(w, "deleted")
}

func targetUserID(r *http.Request) (int, error) {
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
