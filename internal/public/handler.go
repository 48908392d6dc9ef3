package public

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/stats"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=public_test

type aggregator interface {
	Weekly(ctx context.Context, weekOffset int) (*stats.WeeklySnapshot, error)
	Totals() (totalWorkouts, goalPct int)
}

// StatsResponse is the anonymized community dashboard payload. It never
// carries usernames or per-user figures.
type StatsResponse struct {
	stats.WeeklySnapshot
	PerDayLabels  [7]string `json:"perDayLabels"`
	TotalWorkouts int       `json:"totalWorkouts"`
	GoalPct       int       `json:"goalPct"`
}

type Handler struct {
	aggregator aggregator
}

func NewHandler(aggregator aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.public.stats")
	defer span.End()

	weekOffset := 0
	if offsetParam := r.URL.Query().Get("week_offset"); offsetParam != "" {
		var err error
		weekOffset, err = strconv.Atoi(offsetParam)
		if err != nil {
			http.Error(w, "error, week_offset NaN", http.StatusBadRequest)
			return
		}
	}

	weekly, err := handler.aggregator.Weekly(ctx, weekOffset)
	if err != nil {
		log.Errorf("public stats: failed to get weekly totals: %s", err)
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{WeeklySnapshot: *weekly}
	for i := range resp.PerDayLabels {
		resp.PerDayLabels[i] = weekly.WeekStart.AddDays(i).Format("Mon")
	}
	resp.TotalWorkouts, resp.GoalPct = handler.aggregator.Totals()

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("public stats: marshal error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
