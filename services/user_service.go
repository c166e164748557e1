package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"zenflowAPI/internal/mongodb"
	"zenflowAPI/internal/notification"
	"zenflowAPI/internal/stats"
	"zenflowAPI/internal/store"
	"zenflowAPI/internal/streak"
	"zenflowAPI/internal/user"
	"zenflowAPI/utils"
)

type UserService struct {
	store *store.Store
	mongo *mongodb.Client // nil when mirroring is disabled
}

func NewUserService(st *store.Store, mongo *mongodb.Client) *UserService {
	return &UserService{store: st, mongo: mongo}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *user.UpdateProfileRequest) (*user.User, error) {
	updated, err := s.store.UpdateUser(userID, func(u *user.User) {
		if req.Username != "" {
			u.Username = req.Username
		}
		if req.FirstName != "" {
			u.FirstName = req.FirstName
		}
		if req.LastName != "" {
			u.LastName = req.LastName
		}
		if req.ImageURL != "" {
			u.ImageURL = req.ImageURL
		}
		if req.RemindersEnabled != nil {
			u.RemindersEnabled = *req.RemindersEnabled
		}
	})
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	s.mirrorUser(updated)
	return updated, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(userID); err != nil {
		return fmt.Errorf("user not found")
	}

	if s.mongo != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.mongo.RemoveUserData(ctx, userID); err != nil {
				log.Printf("Mirror cleanup failed for %s: %v", userID, err)
			}
		}()
	}
	return nil
}

func (s *UserService) RegisterDevice(ctx context.Context, userID string, req *notification.RegisterDeviceRequest) error {
	_, err := s.store.UpdateUser(userID, func(u *user.User) {
		u.DeviceToken = req.Token
		u.DevicePlatform = req.Platform
	})
	if err != nil {
		return fmt.Errorf("user not found")
	}
	return nil
}

// GetUserStats aggregates the profile numbers shown on the stats screen:
// streaks from the calculator plus day counts over the completion
// history.
func (s *UserService) GetUserStats(ctx context.Context, userID string) (*stats.UserStats, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, fmt.Errorf("user not found")
	}

	now := time.Now()
	timestamps := s.store.CompletionTimestamps(userID)
	result := streak.Compute(timestamps, now)

	days := make(map[string]time.Time)
	for _, ts := range timestamps {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			days[t.Format("2006-01-02")] = t
		}
	}

	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	st := &stats.UserStats{
		TotalDaysActive:  len(days),
		TotalCompletions: len(timestamps),
		CurrentStreak:    result.CurrentStreak,
		LongestStreak:    result.LongestStreak,
	}
	today := now.Format("2006-01-02")
	for key, t := range days {
		if key == today {
			st.TodayStatus = true
		}
		if !t.Before(weekStart) {
			st.DaysThisWeek++
		}
		if !t.Before(monthStart) {
			st.DaysThisMonth++
		}
	}

	st.ConsistencyScore = utils.CalculateConsistencyScore(st.CurrentStreak, st.TotalDaysActive, st.TotalCompletions)
	return st, nil
}

func (s *UserService) mirrorUser(u *user.User) {
	if s.mongo == nil {
		return
	}
	go func(u user.User) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mongo.MirrorUser(ctx, &u); err != nil {
			log.Printf("User mirror failed for %s: %v", u.ID, err)
		}
	}(*u)
}

// startOfWeek returns Monday 00:00 of now's week.
func startOfWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
