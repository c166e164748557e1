package services

import (
	"fmt"

	"zenflowAPI/internal/mailer"
	"zenflowAPI/internal/notification"
	"zenflowAPI/internal/user"
)

// NotificationService renders the email templates and hands finished
// messages to the dispatcher. Everything here is best-effort by design.
type NotificationService struct {
	dispatcher *NotificationDispatcher
}

func NewNotificationService(m mailer.Mailer) *NotificationService {
	return &NotificationService{
		dispatcher: NewNotificationDispatcher(m),
	}
}

func (s *NotificationService) SetPushProvider(provider PushProvider) {
	s.dispatcher.SetPushProvider(provider)
}

func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

func (s *NotificationService) SendVerificationEmail(email, username, code string) {
	body := fmt.Sprintf(`
	<h2>Welcome to ZenFlow, %s!</h2>
	<p>Your verification code is:</p>
	<h1 style="letter-spacing: 6px;">%s</h1>
	<p>The code expires in 10 minutes. If you didn't sign up, ignore this email.</p>
	`, username, code)

	s.dispatcher.DispatchEmail(&notification.Email{
		Type:    notification.EmailVerifyOTP,
		To:      email,
		Subject: "Your ZenFlow verification code",
		Body:    body,
	})
}

func (s *NotificationService) SendWelcomeEmail(u *user.User) {
	body := fmt.Sprintf(`
	<h2>You're all set, %s!</h2>
	<p>Your email is verified. Roll out the mat and start your first routine;
	every completed day builds your streak.</p>
	`, u.Username)

	s.dispatcher.DispatchEmail(&notification.Email{
		Type:    notification.EmailWelcome,
		To:      u.Email,
		Subject: "Welcome to ZenFlow",
		Body:    body,
		UserID:  u.ID,
	})
}

// SendFreshMonthEmail celebrates the first practice day of a calendar
// month.
func (s *NotificationService) SendFreshMonthEmail(u *user.User) {
	body := fmt.Sprintf(`
	<h2>Fresh month, fresh mat, %s!</h2>
	<p>That was your first practice this month. Keep showing up and watch
	the streak grow.</p>
	`, u.Username)

	s.dispatcher.DispatchEmail(&notification.Email{
		Type:    notification.EmailFreshMonth,
		To:      u.Email,
		Subject: "First practice of the month 🎉",
		Body:    body,
		UserID:  u.ID,
	})
}

// SendReminder queues the daily practice reminder; email always, push
// when the user registered a device.
func (s *NotificationService) SendReminder(u *user.User) {
	body := fmt.Sprintf(`
	<h2>Time to practice, %s</h2>
	<p>A few minutes on the mat today keeps your streak alive.</p>
	`, u.Username)

	job := &DispatchJob{
		Email: &notification.Email{
			Type:    notification.EmailReminder,
			To:      u.Email,
			Subject: "Your daily ZenFlow reminder",
			Body:    body,
			UserID:  u.ID,
		},
	}
	if u.DeviceToken != "" {
		job.Push = &PushMessage{
			Token:    u.DeviceToken,
			Platform: u.DevicePlatform,
			Title:    "Time to practice",
			Body:     "A few minutes on the mat today keeps your streak alive.",
			Data:     map[string]string{"type": "daily_reminder"},
		}
	}

	s.dispatcher.Dispatch(job)
}

func (s *NotificationService) SendTestEmail(u *user.User) {
	s.dispatcher.DispatchEmail(&notification.Email{
		Type:    notification.EmailTest,
		To:      u.Email,
		Subject: "ZenFlow test notification",
		Body:    "<p>If you can read this, notifications are working.</p>",
		UserID:  u.ID,
	})
}
