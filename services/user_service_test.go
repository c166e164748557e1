package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflowAPI/internal/notification"
	"zenflowAPI/internal/progress"
	"zenflowAPI/internal/store"
	"zenflowAPI/internal/user"
)

func newUserFixture(t *testing.T) (*UserService, *store.Store, *user.User) {
	st := store.New()
	u, err := st.CreateUser(&user.User{
		Email: "yogi@example.com", Username: "yogi", EmailVerified: true,
	})
	require.NoError(t, err)
	return NewUserService(st, nil), st, u
}

func TestUpdateProfile(t *testing.T) {
	svc, _, u := newUserFixture(t)
	ctx := context.Background()

	off := false
	updated, err := svc.UpdateProfile(ctx, u.ID, &user.UpdateProfileRequest{
		Username:         "calm-yogi",
		FirstName:        "Maya",
		RemindersEnabled: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "calm-yogi", updated.Username)
	assert.Equal(t, "Maya", updated.FirstName)
	assert.False(t, updated.RemindersEnabled)

	// Empty fields are left untouched.
	updated, err = svc.UpdateProfile(ctx, u.ID, &user.UpdateProfileRequest{LastName: "Rivera"})
	require.NoError(t, err)
	assert.Equal(t, "calm-yogi", updated.Username)
	assert.Equal(t, "Rivera", updated.LastName)

	_, err = svc.UpdateProfile(ctx, "missing", &user.UpdateProfileRequest{})
	assert.EqualError(t, err, "user not found")
}

func TestRegisterDevice(t *testing.T) {
	svc, st, u := newUserFixture(t)

	err := svc.RegisterDevice(context.Background(), u.ID, &notification.RegisterDeviceRequest{
		Token: "device-token-123", Platform: "android",
	})
	require.NoError(t, err)

	fresh, err := st.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token-123", fresh.DeviceToken)
	assert.Equal(t, "android", fresh.DevicePlatform)
}

func TestDeleteAccount(t *testing.T) {
	svc, st, u := newUserFixture(t)

	require.NoError(t, svc.DeleteAccount(context.Background(), u.ID))
	_, err := st.GetUser(u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.EqualError(t, svc.DeleteAccount(context.Background(), u.ID), "user not found")
}

func TestGetUserStats(t *testing.T) {
	svc, st, u := newUserFixture(t)

	r := st.ListRoutines("", "")[0]
	history := []string{
		// Two runs: 3 days and 2 days, plus a doubled day.
		"2024-03-01T08:00:00Z", "2024-03-02T08:00:00Z", "2024-03-03T08:00:00Z",
		"2024-03-08T08:00:00Z", "2024-03-08T19:00:00Z", "2024-03-09T08:00:00Z",
	}
	for _, ts := range history {
		_, err := st.CreateCompletion(&progress.Completion{UserID: u.ID, RoutineID: r.ID, CompletedAt: ts})
		require.NoError(t, err)
	}

	stats, err := svc.GetUserStats(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalDaysActive)
	assert.Equal(t, 6, stats.TotalCompletions)
	assert.Equal(t, 2, stats.CurrentStreak, "anchored to the trailing run")
	assert.Equal(t, 3, stats.LongestStreak)
	assert.False(t, stats.TodayStatus)
	assert.Greater(t, stats.ConsistencyScore, 0.0)

	_, err = svc.GetUserStats(context.Background(), "missing")
	assert.EqualError(t, err, "user not found")
}
