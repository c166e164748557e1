package progress

import (
	"time"

	"zenflowAPI/internal/streak"
)

// Completion is one record of a user finishing a routine. CompletedAt is
// kept as the raw timestamp string so history mirrored back from the
// document store round-trips unchanged; the streak calculator parses and
// filters it.
type Completion struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	RoutineID   string `json:"routineId"`
	CompletedAt string `json:"completedAt"`
}

type CompleteRequest struct {
	RoutineID string `json:"routineId" validate:"required"`
}

type ProgressResponse struct {
	Completions []*Completion `json:"completions"`
	Streaks     streak.Result `json:"streaks"`
}

type CalendarDay struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	IsToday   bool      `json:"is_today"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []*CalendarDay `json:"days"`
}

// DailyCount is one bucket of the daily-progress aggregation.
type DailyCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}
