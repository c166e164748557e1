package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenflowAPI/internal/mailer"
	"zenflowAPI/internal/store"
	"zenflowAPI/middleware"
	"zenflowAPI/services"
)

type testAPI struct {
	router *mux.Router
	store  *store.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	st := store.New()
	notifications := services.NewNotificationService(&mailer.MockMailer{})
	t.Cleanup(notifications.Stop)

	authService := services.NewAuthService(st, nil, notifications)
	userService := services.NewUserService(st, nil)
	routineService := services.NewRoutineService(st)
	progressService := services.NewProgressService(st, nil, notifications)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	routineHandler := NewRoutineHandler(routineService)
	progressHandler := NewProgressHandler(progressService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/verify-otp", authHandler.VerifyOTP).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/routines", routineHandler.GetCatalog).Methods("GET")
	protected.HandleFunc("/progress/complete", progressHandler.RecordCompletion).Methods("POST")
	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")

	return &testAPI{router: r, store: st}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func TestAuthEndpoints_FullFlow(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "yogi@example.com", "username": "yogi", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Duplicate registration conflicts.
	rr = api.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "yogi@example.com", "username": "yogi", "password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Login before verification is forbidden.
	rr = api.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "yogi@example.com", "password": "supersecret",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	pending, err := api.store.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)

	rr = api.do(t, "POST", "/api/v1/auth/verify-otp", "", map[string]string{
		"email": "yogi@example.com", "code": "999999",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, "POST", "/api/v1/auth/verify-otp", "", map[string]string{
		"email": "yogi@example.com", "code": pending.Code,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var verifyResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verifyResp))
	require.NotEmpty(t, verifyResp.Token)

	rr = api.do(t, "GET", "/api/v1/user", verifyResp.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "yogi@example.com")
}

func TestProtectedEndpoints_RequireToken(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, "GET", "/api/v1/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(t, "GET", "/api/v1/user", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProgressEndpoints(t *testing.T) {
	api := newTestAPI(t)

	// Register and verify through the API.
	rr := api.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "yogi@example.com", "username": "yogi", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	pending, err := api.store.GetPendingOTP("yogi@example.com")
	require.NoError(t, err)
	rr = api.do(t, "POST", "/api/v1/auth/verify-otp", "", map[string]string{
		"email": "yogi@example.com", "code": pending.Code,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var verifyResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verifyResp))
	token := verifyResp.Token

	// Pick a routine from the catalog.
	rr = api.do(t, "GET", "/api/v1/routines", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var routines []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &routines))
	require.NotEmpty(t, routines)

	// Complete it and read back progress.
	rr = api.do(t, "POST", "/api/v1/progress/complete", token, map[string]string{
		"routineId": routines[0].ID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"current_streak":1`)

	rr = api.do(t, "GET", "/api/v1/progress", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var progressResp struct {
		Completions []json.RawMessage `json:"completions"`
		Streaks     struct {
			CurrentStreak int `json:"current_streak"`
		} `json:"streaks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &progressResp))
	assert.Len(t, progressResp.Completions, 1)
	assert.Equal(t, 1, progressResp.Streaks.CurrentStreak)

	// Unknown routine is a 404.
	rr = api.do(t, "POST", "/api/v1/progress/complete", token, map[string]string{
		"routineId": fmt.Sprintf("%s-missing", routines[0].ID),
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
