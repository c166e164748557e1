package notification

import "time"

type EmailType string

const (
	EmailVerifyOTP  EmailType = "verify_otp"
	EmailWelcome    EmailType = "welcome"
	EmailFreshMonth EmailType = "fresh_month"
	EmailReminder   EmailType = "daily_reminder"
	EmailTest       EmailType = "test"
)

// Email is one queued outbound message. Delivery is best-effort; the
// dispatcher logs and counts failures instead of surfacing them to the
// request path.
type Email struct {
	Type     EmailType
	To       string
	Subject  string
	Body     string
	UserID   string
	QueuedAt time.Time
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}
