package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Partition is the active/archived classification of a workout record.
// A record is in exactly one partition at all times; the only legal way
// to move between them is an archive/restore operation.
type Partition string

const (
	PartitionActive   Partition = "active"
	PartitionArchived Partition = "archived"
)

const dayFormat = "2006-01-02"

// Day is a calendar date with no time component. All windowed
// aggregation buckets records by this field, not by insertion time.
type Day struct {
	time.Time
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, err
	}
	return Day{Time: t}, nil
}

// DayOf truncates t to its calendar date, normalized to UTC midnight.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time.AddDate(0, 0, n))
}

func (d Day) String() string {
	return d.Time.Format(dayFormat)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDay(s)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", s, err)
	}
	*d = parsed
	return nil
}

type Workout struct {
	ID              int       `json:"id"`
	OwnerID         int       `json:"-"`
	ExternalID      string    `json:"externalId,omitempty"`
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration"`
	Calories        int       `json:"calories"`
	Day             Day       `json:"date"`
	Partition       Partition `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ExportID is the stable id a record carries in an export. A record
// that came from an import keeps its original external id, so exporting
// and re-importing the same file stores nothing twice.
func (w Workout) ExportID() string {
	if w.ExternalID != "" {
		return w.ExternalID
	}
	return strconv.Itoa(w.ID)
}

// Draft is a workout candidate, not yet accepted by the ledger.
type Draft struct {
	ExternalID      string `json:"id,omitempty"`
	Activity        string `json:"activity"`
	DurationMinutes int    `json:"duration"`
	Calories        int    `json:"calories"`
	Day             Day    `json:"date"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate enforces the field constraints a record must satisfy before
// it is accepted. Violations are rejected, never clamped.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Activity) == "" {
		return &ValidationError{Field: "activity", Reason: "must not be empty"}
	}
	if d.DurationMinutes <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be greater than zero"}
	}
	if d.Calories <= 0 {
		return &ValidationError{Field: "calories", Reason: "must be greater than zero"}
	}
	if d.Day.IsZero() {
		return &ValidationError{Field: "date", Reason: "missing or unparseable"}
	}
	return nil
}

// Snapshot is a point-in-time read of one user's full record set.
type Snapshot struct {
	Active   []Workout `json:"active"`
	Archived []Workout `json:"archived"`
}

// Combined returns both partitions as a single population, used by the
// extremal stats queries.
func (s *Snapshot) Combined() []Workout {
	combined := make([]Workout, 0, len(s.Active)+len(s.Archived))
	combined = append(combined, s.Active...)
	combined = append(combined, s.Archived...)
	return combined
}
