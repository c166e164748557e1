package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"zenflowAPI/internal/store"
)

// ReminderScheduler fires the daily practice reminder once a day at the
// configured local hour (REMINDER_HOUR, default 8).
type ReminderScheduler struct {
	store         *store.Store
	notifications *NotificationService
	hour          int
	stopChan      chan struct{}
}

func NewReminderScheduler(st *store.Store, notifications *NotificationService) *ReminderScheduler {
	hour := 8
	if v := os.Getenv("REMINDER_HOUR"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 23 {
			hour = parsed
		} else {
			log.Printf("Ignoring invalid REMINDER_HOUR %q, using %d", v, hour)
		}
	}

	return &ReminderScheduler{
		store:         st,
		notifications: notifications,
		hour:          hour,
		stopChan:      make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	go s.run()
	log.Printf("Reminder scheduler started, firing daily at %02d:00", s.hour)
}

func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

func (s *ReminderScheduler) run() {
	for {
		timer := time.NewTimer(s.untilNextFire(time.Now()))
		select {
		case <-timer.C:
			s.sendReminders()
		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

// untilNextFire returns the wait until the next occurrence of the
// configured hour, always in the future.
func (s *ReminderScheduler) untilNextFire(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// sendReminders queues a reminder for every verified user that kept
// reminders on. Sending is best-effort through the dispatcher.
func (s *ReminderScheduler) sendReminders() {
	count := 0
	for _, u := range s.store.ListUsers() {
		if !u.EmailVerified || !u.RemindersEnabled {
			continue
		}
		s.notifications.SendReminder(u)
		count++
	}
	if count > 0 {
		log.Printf("Queued %d daily reminders", count)
	}
}
