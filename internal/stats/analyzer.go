package stats

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fittrack/fittrack/internal/ledger"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/view"
)

//go:generate mockgen -source=analyzer.go -destination=analyzer_mocks_test.go -package=stats_test

type Field string

const (
	FieldCalories Field = "calories"
	FieldDuration Field = "duration"
)

type snapshotSource interface {
	Snapshot(ctx context.Context, scope view.Scope, ownerID int) (*ledger.Snapshot, error)
}

// Analyzer reduces ledger snapshots into display-ready figures. All
// reductions are pure functions of the snapshot they were given; the
// analyzer itself holds no state besides its snapshot source.
type Analyzer struct {
	source snapshotSource

	caloriesGoal     int
	workoutCountGoal int
}

func NewAnalyzer(source snapshotSource, caloriesGoal, workoutCountGoal int) *Analyzer {
	return &Analyzer{
		source:           source,
		caloriesGoal:     caloriesGoal,
		workoutCountGoal: workoutCountGoal,
	}
}

// WindowTotals buckets active records into the trailing days calendar
// days ending at ref, oldest day first. Days without records contribute
// a zero, so the result always has exactly days entries.
func WindowTotals(snapshot *ledger.Snapshot, days int, field Field, ref ledger.Day) []int {
	totals := make([]int, days)
	if days == 0 {
		return totals
	}

	windowStart := ref.AddDays(-(days - 1))
	for _, workout := range snapshot.Active {
		offset := int(workout.Day.Sub(windowStart.Time).Hours() / 24)
		if offset < 0 || offset >= days {
			continue
		}
		switch field {
		case FieldDuration:
			totals[offset] += workout.DurationMinutes
		default:
			totals[offset] += workout.Calories
		}
	}
	return totals
}

// FrequencyMode returns the most frequent activity label. Ties go to
// the lexicographically smallest label, so the result is independent of
// insertion order. An empty population returns ok=false.
func FrequencyMode(workouts []ledger.Workout) (activity string, ok bool) {
	counts := make(map[string]int)
	for _, workout := range workouts {
		counts[workout.Activity]++
	}

	best, bestCount := "", 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best, bestCount > 0
}

// Longest returns the workout with the greatest duration across both
// partitions. Ties go to the most recent date. ok=false on an empty
// population.
func Longest(workouts []ledger.Workout) (ledger.Workout, bool) {
	return extremal(workouts, func(w ledger.Workout) int { return w.DurationMinutes })
}

// MostCalories is Longest's counterpart for the calories field.
func MostCalories(workouts []ledger.Workout) (ledger.Workout, bool) {
	return extremal(workouts, func(w ledger.Workout) int { return w.Calories })
}

func extremal(workouts []ledger.Workout, value func(ledger.Workout) int) (ledger.Workout, bool) {
	if len(workouts) == 0 {
		return ledger.Workout{}, false
	}

	best := workouts[0]
	for _, workout := range workouts[1:] {
		v, bestV := value(workout), value(best)
		if v > bestV || (v == bestV && workout.Day.After(best.Day.Time)) {
			best = workout
		}
	}
	return best, true
}

// GoalPercentage returns the raw percentage of total against target and
// a display value clamped to [0, 100]. Callers showing an "over goal"
// badge use the raw value.
func GoalPercentage(total, target int) (raw, display int) {
	if target <= 0 {
		return 0, 0
	}
	raw = total * 100 / target
	display = raw
	if display > 100 {
		display = 100
	}
	if display < 0 {
		display = 0
	}
	return raw, display
}

// WeekStart is the Monday of the week t falls in, at midnight UTC.
func WeekStart(t time.Time) ledger.Day {
	day := ledger.DayOf(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return day.AddDays(-(weekday - 1))
}

// MaxWeekOffset is the number of whole weeks between the week of the
// earliest record in the population and the current week. An empty
// population pins the observer to the current week.
func MaxWeekOffset(workouts []ledger.Workout, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}

	earliest := workouts[0].Day
	for _, workout := range workouts[1:] {
		if workout.Day.Before(earliest.Time) {
			earliest = workout.Day
		}
	}

	offset := int(WeekStart(now).Sub(WeekStart(earliest.Time).Time).Hours() / (24 * 7))
	if offset < 0 {
		return 0
	}
	return offset
}

// WeeklySnapshot is one Monday-Sunday window of per-day totals, derived
// from records and never hand-edited.
type WeeklySnapshot struct {
	WeekStart      ledger.Day `json:"weekStart"`
	WeekEnd        ledger.Day `json:"weekEnd"`
	PerDayCalories [7]int     `json:"perDayCalories"`
	PerDayDuration [7]int     `json:"perDayDuration"`
	WeekOffset     int        `json:"weekOffset"`
	MaxWeekOffset  int        `json:"maxWeekOffset"`
}

// WeeklyTotals computes the window weekOffset weeks before the current
// week over the active records; 0 is the current week. The offset is
// clamped to [0, MaxWeekOffset], never rejected.
func WeeklyTotals(snapshot *ledger.Snapshot, weekOffset int, now time.Time) WeeklySnapshot {
	maxOffset := MaxWeekOffset(snapshot.Active, now)
	if weekOffset > maxOffset {
		weekOffset = maxOffset
	}
	if weekOffset < 0 {
		weekOffset = 0
	}

	weekStart := WeekStart(now).AddDays(-7 * weekOffset)
	weekly := WeeklySnapshot{
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDays(6),
		WeekOffset:    weekOffset,
		MaxWeekOffset: maxOffset,
	}

	for _, workout := range snapshot.Active {
		offset := int(workout.Day.Sub(weekStart.Time).Hours() / 24)
		if offset < 0 || offset > 6 {
			continue
		}
		weekly.PerDayCalories[offset] += workout.Calories
		weekly.PerDayDuration[offset] += workout.DurationMinutes
	}
	return weekly
}

type ExtremalRecord struct {
	Activity        string     `json:"activity"`
	DurationMinutes int        `json:"duration"`
	Calories        int        `json:"calories"`
	Day             ledger.Day `json:"date"`
}

type Overview struct {
	WindowCalories  []int  `json:"windowCalories"`
	WindowDuration  []int  `json:"windowDuration"`
	FrequencyMode   string `json:"frequencyMode"`
	TotalWorkouts   int    `json:"totalWorkouts"`
	WeekCaloriesRaw int    `json:"weekCaloriesGoalRawPct"`
	WeekCaloriesPct int    `json:"weekCaloriesGoalPct"`
	WorkoutsRawPct  int    `json:"workoutsGoalRawPct"`
	WorkoutsPct     int    `json:"workoutsGoalPct"`

	Longest      *ExtremalRecord `json:"longest,omitempty"`
	MostCalories *ExtremalRecord `json:"mostCalories,omitempty"`
}

const overviewWindowDays = 7

// UserOverview pulls a fresh snapshot and reduces it into the owner
// dashboard figures.
func (a *Analyzer) UserOverview(ctx context.Context, scope view.Scope, ownerID int) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.userOverview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID))

	snapshot, err := a.source.Snapshot(ctx, scope, ownerID)
	if err != nil {
		return nil, err
	}
	return a.overview(snapshot, time.Now()), nil
}

func (a *Analyzer) overview(snapshot *ledger.Snapshot, now time.Time) *Overview {
	today := ledger.DayOf(now)
	combined := snapshot.Combined()

	overview := &Overview{
		WindowCalories: WindowTotals(snapshot, overviewWindowDays, FieldCalories, today),
		WindowDuration: WindowTotals(snapshot, overviewWindowDays, FieldDuration, today),
		TotalWorkouts:  len(snapshot.Active),
	}
	overview.FrequencyMode, _ = FrequencyMode(snapshot.Active)

	weekly := WeeklyTotals(snapshot, 0, now)
	var weekCalories int
	for _, calories := range weekly.PerDayCalories {
		weekCalories += calories
	}
	overview.WeekCaloriesRaw, overview.WeekCaloriesPct = GoalPercentage(weekCalories, a.caloriesGoal)
	overview.WorkoutsRawPct, overview.WorkoutsPct = GoalPercentage(len(snapshot.Active), a.workoutCountGoal)

	// records cover both partitions: an archived workout still counts
	if longest, ok := Longest(combined); ok {
		overview.Longest = extremalRecord(longest)
	}
	if most, ok := MostCalories(combined); ok {
		overview.MostCalories = extremalRecord(most)
	}
	return overview
}

// UserWeekly computes one Monday-Sunday window of the user's ledger.
func (a *Analyzer) UserWeekly(ctx context.Context, scope view.Scope, ownerID, weekOffset int) (_ *WeeklySnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.userWeekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner", ownerID), attribute.Int("week_offset", weekOffset))

	snapshot, err := a.source.Snapshot(ctx, scope, ownerID)
	if err != nil {
		return nil, err
	}

	weekly := WeeklyTotals(snapshot, weekOffset, time.Now())
	return &weekly, nil
}

func extremalRecord(w ledger.Workout) *ExtremalRecord {
	return &ExtremalRecord{
		Activity:        w.Activity,
		DurationMinutes: w.DurationMinutes,
		Calories:        w.Calories,
		Day:             w.Day,
	}
}
