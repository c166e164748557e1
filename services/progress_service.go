package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"zenflowAPI/internal/mongodb"
	"zenflowAPI/internal/progress"
	"zenflowAPI/internal/store"
	"zenflowAPI/internal/streak"
)

const dailyWindowDays = 30

type ProgressService struct {
	store         *store.Store
	mongo         *mongodb.Client // nil when mirroring is disabled
	notifications *NotificationService

	// now is injected so streak-sensitive paths stay testable.
	now func() time.Time
}

func NewProgressService(st *store.Store, mongo *mongodb.Client, notifications *NotificationService) *ProgressService {
	return &ProgressService{
		store:         st,
		mongo:         mongo,
		notifications: notifications,
		now:           time.Now,
	}
}

// RecordCompletion logs that the user finished a routine right now,
// mirrors the event and recomputes streaks. The first practice day of a
// calendar month triggers a celebration email.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID, routineID string) (*progress.Completion, streak.Result, error) {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, streak.Result{}, fmt.Errorf("user not found")
	}
	if _, err := s.store.GetRoutine(routineID); err != nil {
		return nil, streak.Result{}, fmt.Errorf("routine not found")
	}

	now := s.now()
	completion, err := s.store.CreateCompletion(&progress.Completion{
		UserID:      userID,
		RoutineID:   routineID,
		CompletedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, streak.Result{}, fmt.Errorf("failed to record completion: %w", err)
	}

	if s.mongo != nil {
		go func(c progress.Completion) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.mongo.MirrorCompletion(ctx, &c); err != nil {
				log.Printf("Completion mirror failed for %s: %v", c.ID, err)
			}
		}(*completion)
	}

	result := streak.Compute(s.store.CompletionTimestamps(userID), now)
	if result.IsFirstOfMonth {
		s.notifications.SendFreshMonthEmail(u)
	}

	return completion, result, nil
}

func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*progress.ProgressResponse, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, fmt.Errorf("user not found")
	}

	completions := s.store.ListCompletions(userID)
	result := streak.Compute(s.store.CompletionTimestamps(userID), s.now())

	return &progress.ProgressResponse{
		Completions: completions,
		Streaks:     result,
	}, nil
}

// GetCalendar maps one month to per-day completed flags.
func (s *ProgressService) GetCalendar(ctx context.Context, userID string, year, month int) (*progress.CalendarResponse, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	completedDays := make(map[string]bool)
	for _, ts := range s.store.CompletionTimestamps(userID) {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			completedDays[t.Format("2006-01-02")] = true
		}
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)
	today := s.now().Format("2006-01-02")

	var days []*progress.CalendarDay
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		days = append(days, &progress.CalendarDay{
			Date:      d,
			Completed: completedDays[dateStr],
			IsToday:   dateStr == today,
		})
	}

	return &progress.CalendarResponse{Year: year, Month: month, Days: days}, nil
}

// GetDailyProgress returns per-day completion counts for the recent
// window. Served by the mirror's aggregation pipeline when available,
// computed from the in-memory history otherwise.
func (s *ProgressService) GetDailyProgress(ctx context.Context, userID string) ([]*progress.DailyCount, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if s.mongo != nil {
		counts, err := s.mongo.DailyCounts(ctx, userID, dailyWindowDays)
		if err == nil {
			return counts, nil
		}
		log.Printf("Daily aggregation fell back to in-memory history: %v", err)
	}

	return s.dailyCountsFromStore(userID), nil
}

func (s *ProgressService) dailyCountsFromStore(userID string) []*progress.DailyCount {
	buckets := make(map[string]int)
	for _, ts := range s.store.CompletionTimestamps(userID) {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			buckets[t.Format("2006-01-02")]++
		}
	}

	counts := make([]*progress.DailyCount, 0, len(buckets))
	for day, n := range buckets {
		counts = append(counts, &progress.DailyCount{Date: day, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date > counts[j].Date })
	if len(counts) > dailyWindowDays {
		counts = counts[:dailyWindowDays]
	}
	return counts
}
