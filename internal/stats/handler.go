package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/view"
	"github.com/fittrack/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type analyzer interface {
	UserOverview(ctx context.Context, scope view.Scope, ownerID int) (*Overview, error)
	UserWeekly(ctx context.Context, scope view.Scope, ownerID, weekOffset int) (*WeeklySnapshot, error)
}

type Handler struct {
	analyzer analyzer
	cache    *WeeklyCache
}

func NewHandler(analyzer analyzer, cache *WeeklyCache) *Handler {
	return &Handler{
		analyzer: analyzer,
		cache:    cache,
	}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.overview")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	overview, err := handler.analyzer.UserOverview(ctx, view.Owner(identity.UserID), identity.UserID)
	if err != nil {
		log.Errorf("failed to get stats overview for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		return
	}

	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("failed to marshal stats overview: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, overviewJson, http.StatusOK)
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weekly")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	weekOffset := 0
	if offsetStr := r.URL.Query().Get("week_offset"); offsetStr != "" {
		var err error
		weekOffset, err = strconv.Atoi(offsetStr)
		if err != nil {
			http.Error(w, "error, week_offset NaN", http.StatusBadRequest)
			return
		}
	}

	if cached := handler.cache.Get(identity.UserID, weekOffset); cached != nil {
		writeWeekly(w, cached)
		return
	}

	weekly, err := handler.analyzer.UserWeekly(ctx, view.Owner(identity.UserID), identity.UserID, weekOffset)
	if err != nil {
		log.Errorf("failed to get weekly stats for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get weekly stats", http.StatusInternalServerError)
		return
	}

	// cache under the clamped offset, the one the result is actually for
	handler.cache.Set(identity.UserID, weekly.WeekOffset, weekly)

	writeWeekly(w, weekly)
}

func writeWeekly(w http.ResponseWriter, weekly *WeeklySnapshot) {
	weeklyJson, err := json.Marshal(weekly)
	if err != nil {
		log.Errorf("failed to marshal weekly stats: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, weeklyJson, http.StatusOK)
}
