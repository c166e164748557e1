package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflowAPI/internal/progress"
	"zenflowAPI/internal/routine"
	"zenflowAPI/internal/user"
)

func TestStore_SeededCatalog(t *testing.T) {
	s := New()

	all := s.ListRoutines("", "")
	require.NotEmpty(t, all, "store should come up with a seeded catalog")

	beginner := s.ListRoutines("", routine.DifficultyBeginner)
	for _, r := range beginner {
		assert.Equal(t, routine.DifficultyBeginner, r.Difficulty)
	}

	morning := s.ListRoutines("morning", "")
	require.NotEmpty(t, morning)
	for _, r := range morning {
		assert.Equal(t, "morning", r.Category)
	}

	got, err := s.GetRoutine(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, got.Name)

	_, err = s.GetRoutine("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UserLifecycle(t *testing.T) {
	s := New()

	created, err := s.CreateUser(&user.User{Email: "Yogi@Example.com", Username: "yogi"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Duplicate emails are rejected case-insensitively.
	_, err = s.CreateUser(&user.User{Email: "yogi@example.com", Username: "other"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	byEmail, err := s.GetUserByEmail("yogi@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	updated, err := s.UpdateUser(created.ID, func(u *user.User) {
		u.EmailVerified = true
		u.Username = "calm-yogi"
	})
	require.NoError(t, err)
	assert.True(t, updated.EmailVerified)
	assert.Equal(t, "calm-yogi", updated.Username)

	require.NoError(t, s.DeleteUser(created.ID))
	_, err = s.GetUser(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetUserByEmail("yogi@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()

	created, err := s.CreateUser(&user.User{Email: "a@b.c", Username: "a"})
	require.NoError(t, err)

	created.Username = "mutated"
	fresh, err := s.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", fresh.Username, "mutating a returned user must not touch the store")
}

func TestStore_Completions(t *testing.T) {
	s := New()

	u, err := s.CreateUser(&user.User{Email: "a@b.c", Username: "a"})
	require.NoError(t, err)
	r := s.ListRoutines("", "")[0]

	_, err = s.CreateCompletion(&progress.Completion{
		UserID: "nobody", RoutineID: r.ID, CompletedAt: time.Now().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrNotFound, "completions require an existing user")

	for _, ts := range []string{"2024-03-03T08:00:00Z", "2024-03-04T08:00:00Z"} {
		_, err = s.CreateCompletion(&progress.Completion{UserID: u.ID, RoutineID: r.ID, CompletedAt: ts})
		require.NoError(t, err)
	}

	assert.Len(t, s.ListCompletions(u.ID), 2)
	assert.Equal(t, []string{"2024-03-03T08:00:00Z", "2024-03-04T08:00:00Z"}, s.CompletionTimestamps(u.ID))

	require.NoError(t, s.DeleteUser(u.ID))
	assert.Empty(t, s.ListCompletions(u.ID), "deleting a user drops their history")
}

func TestStore_PendingOTP(t *testing.T) {
	s := New()

	s.SetPendingOTP(&user.PendingOTP{
		Email:     "Yogi@Example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})

	p, err := s.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", p.Code)
	assert.False(t, p.Expired(time.Now()))
	assert.True(t, p.Expired(time.Now().Add(11*time.Minute)))

	s.DeletePendingOTP("YOGI@example.com")
	_, err = s.GetPendingOTP("yogi@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
