package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflowAPI/internal/mailer"
	"zenflowAPI/internal/notification"
	"zenflowAPI/internal/store"
	"zenflowAPI/internal/user"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.Store, *mailer.MockMailer) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	st := store.New()
	mock := &mailer.MockMailer{}
	notifications := NewNotificationService(mock)
	t.Cleanup(notifications.Stop)

	return NewAuthService(st, nil, notifications), st, mock
}

func waitForEmail(t *testing.T, mock *mailer.MockMailer, emailType notification.EmailType, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		count := 0
		for _, msg := range mock.Messages() {
			if msg.Subject != "" && subjectFor(emailType) == msg.Subject {
				count++
			}
		}
		return count >= want
	}, 2*time.Second, 10*time.Millisecond, "expected %d %s emails", want, emailType)
}

func subjectFor(emailType notification.EmailType) string {
	switch emailType {
	case notification.EmailVerifyOTP:
		return "Your ZenFlow verification code"
	case notification.EmailWelcome:
		return "Welcome to ZenFlow"
	case notification.EmailFreshMonth:
		return "First practice of the month 🎉"
	case notification.EmailReminder:
		return "Your daily ZenFlow reminder"
	default:
		return "ZenFlow test notification"
	}
}

func TestRegister_CreatesUnverifiedUserAndQueuesOTP(t *testing.T) {
	svc, st, mock := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, &user.RegisterRequest{
		Email: "Yogi@Example.com", Username: "yogi", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.False(t, created.EmailVerified)
	assert.NotEqual(t, "supersecret", created.PasswordHash, "password must be stored hashed")

	pending, err := st.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)
	assert.Len(t, pending.Code, 6)
	assert.False(t, pending.Expired(time.Now()))

	waitForEmail(t, mock, notification.EmailVerifyOTP, 1)

	_, err = svc.Register(ctx, &user.RegisterRequest{
		Email: "yogi@example.com", Username: "again", Password: "supersecret",
	})
	assert.EqualError(t, err, "user already exists")
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterRequest{Email: "bad", Username: "yogi", Password: "supersecret"})
	assert.EqualError(t, err, "a valid email is required")

	_, err = svc.Register(ctx, &user.RegisterRequest{Email: "a@b.c", Username: "yogi", Password: "short"})
	assert.EqualError(t, err, "password must be at least 8 characters")

	_, err = svc.Register(ctx, &user.RegisterRequest{Email: "a@b.c", Username: "yo", Password: "supersecret"})
	assert.EqualError(t, err, "username must be at least 3 characters")
}

func TestVerifyOTP_FullFlow(t *testing.T) {
	svc, st, mock := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterRequest{
		Email: "yogi@example.com", Username: "yogi", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, &user.VerifyOTPRequest{Email: "yogi@example.com", Code: "000000"})
	assert.EqualError(t, err, "invalid verification code")

	pending, err := st.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)

	resp, err := svc.VerifyOTP(ctx, &user.VerifyOTPRequest{Email: "yogi@example.com", Code: pending.Code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.EmailVerified)

	// The pending entry is single-use.
	_, err = st.GetPendingOTP("yogi@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	waitForEmail(t, mock, notification.EmailWelcome, 1)

	_, err = svc.VerifyOTP(ctx, &user.VerifyOTPRequest{Email: "yogi@example.com", Code: pending.Code})
	assert.EqualError(t, err, "email already verified")
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterRequest{
		Email: "yogi@example.com", Username: "yogi", Password: "supersecret",
	})
	require.NoError(t, err)

	st.SetPendingOTP(&user.PendingOTP{
		Email:     "yogi@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err = svc.VerifyOTP(ctx, &user.VerifyOTPRequest{Email: "yogi@example.com", Code: "123456"})
	assert.EqualError(t, err, "verification code expired")

	// Expired entries are cleared so resend starts clean.
	_, err = st.GetPendingOTP("yogi@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResendOTP_ReplacesCode(t *testing.T) {
	svc, st, mock := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterRequest{
		Email: "yogi@example.com", Username: "yogi", Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResendOTP(ctx, "yogi@example.com"))

	pending, err := st.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)
	assert.Len(t, pending.Code, 6)

	waitForEmail(t, mock, notification.EmailVerifyOTP, 2)

	assert.EqualError(t, svc.ResendOTP(ctx, "nobody@example.com"), "user not found")
}

func TestLogin(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterRequest{
		Email: "yogi@example.com", Username: "yogi", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "yogi@example.com", Password: "supersecret"})
	assert.EqualError(t, err, "email not verified")

	pending, err := st.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)
	_, err = svc.VerifyOTP(ctx, &user.VerifyOTPRequest{Email: "yogi@example.com", Code: pending.Code})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &user.LoginRequest{Email: "yogi@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "yogi@example.com", Password: "wrong-password"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.EqualError(t, err, "invalid credentials")
}
