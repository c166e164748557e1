package streak

import (
	"sort"
	"time"
)

// Result holds the derived streak values for one user's completion history.
type Result struct {
	CurrentStreak  int  `json:"current_streak"`
	LongestStreak  int  `json:"longest_streak"`
	IsFirstOfMonth bool `json:"is_first_of_month"`
}

// Timestamp layouts accepted from the store and from mirrored documents.
// Anything that matches none of these is dropped before computation.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Compute derives the current streak, the longest streak and the
// first-of-month flag from a list of raw completion timestamps.
//
// The input may be unordered and may contain several entries per calendar
// day; both are handled here. The current streak is anchored to the most
// recent recorded day, NOT to now: a user who went quiet still sees the
// streak their last active day ended with. Malformed timestamps are
// skipped instead of failing the whole computation.
func Compute(timestamps []string, now time.Time) Result {
	days := distinctDays(timestamps)
	if len(days) == 0 {
		return Result{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Current streak: walk backward from the last day while each step
	// is exactly one calendar day. A same-day pair cannot appear after
	// dedup, but skipping it keeps the walk safe anyway.
	current := 1
	for i := len(days) - 1; i > 0; i-- {
		gap := dayDiff(days[i-1], days[i])
		if gap == 0 {
			continue
		}
		if gap != 1 {
			break
		}
		current++
	}

	// Longest streak: forward scan with a running counter, closing the
	// final run after the loop.
	longest := 0
	run := 1
	for i := 1; i < len(days); i++ {
		if dayDiff(days[i-1], days[i]) == 1 {
			run++
			continue
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if run > longest {
		longest = run
	}

	return Result{
		CurrentStreak:  current,
		LongestStreak:  longest,
		IsFirstOfMonth: firstOfMonth(days, now),
	}
}

// distinctDays parses the raw timestamps and collapses them to unique
// calendar days, silently dropping anything unparseable.
func distinctDays(timestamps []string) []time.Time {
	seen := make(map[string]time.Time, len(timestamps))
	for _, ts := range timestamps {
		t, ok := parseTimestamp(ts)
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	return days
}

func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayDiff returns the number of whole calendar days from a to b.
func dayDiff(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// firstOfMonth reports whether the earliest activity day inside now's
// calendar month fell on now's own calendar day.
func firstOfMonth(days []time.Time, now time.Time) bool {
	var earliest *time.Time
	for i := range days {
		d := days[i]
		if d.Year() != now.Year() || d.Month() != now.Month() {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = &days[i]
		}
	}
	if earliest == nil {
		return false
	}
	return earliest.Day() == now.Day()
}
