package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zenflowAPI/internal/mongodb"
	"zenflowAPI/internal/store"
	"zenflowAPI/internal/user"
	"zenflowAPI/middleware"
	"zenflowAPI/utils"
)

const otpTTL = 10 * time.Minute

type AuthService struct {
	store         *store.Store
	mongo         *mongodb.Client // nil when mirroring is disabled
	notifications *NotificationService
}

func NewAuthService(st *store.Store, mongo *mongodb.Client, notifications *NotificationService) *AuthService {
	return &AuthService{
		store:         st,
		mongo:         mongo,
		notifications: notifications,
	}
}

// Register creates an unverified user, stores a pending OTP and queues
// the verification email.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if len(req.Username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.CreateUser(&user.User{
		Email:            email,
		Username:         req.Username,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PasswordHash:     string(hash),
		RemindersEnabled: true,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, fmt.Errorf("user already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.issueOTP(created)
	s.mirrorUser(created)

	return created, nil
}

// VerifyOTP checks the pending code and, on success, marks the user
// verified and returns a session token so the app can log straight in.
func (s *AuthService) VerifyOTP(ctx context.Context, req *user.VerifyOTPRequest) (*user.AuthResponse, error) {
	u, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if u.EmailVerified {
		return nil, fmt.Errorf("email already verified")
	}

	pending, err := s.store.GetPendingOTP(req.Email)
	if err != nil {
		return nil, fmt.Errorf("no pending verification code")
	}
	if pending.Expired(time.Now()) {
		s.store.DeletePendingOTP(req.Email)
		return nil, fmt.Errorf("verification code expired")
	}
	if pending.Code != req.Code {
		return nil, fmt.Errorf("invalid verification code")
	}

	verified, err := s.store.UpdateUser(u.ID, func(u *user.User) {
		u.EmailVerified = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	s.store.DeletePendingOTP(req.Email)

	token, err := middleware.IssueToken(verified.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.notifications.SendWelcomeEmail(verified)
	s.mirrorUser(verified)

	return &user.AuthResponse{Token: token, User: verified}, nil
}

// ResendOTP replaces the pending code and queues a fresh email.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.store.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("user not found")
	}
	if u.EmailVerified {
		return fmt.Errorf("email already verified")
	}

	s.issueOTP(u)
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !u.EmailVerified {
		return nil, fmt.Errorf("email not verified")
	}

	token, err := middleware.IssueToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &user.AuthResponse{Token: token, User: u}, nil
}

func (s *AuthService) issueOTP(u *user.User) {
	code := utils.GenerateOTPCode()
	s.store.SetPendingOTP(&user.PendingOTP{
		Email:     u.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	})
	s.notifications.SendVerificationEmail(u.Email, u.Username, code)
}

// mirrorUser pushes the user document to the mirror fire-and-forget.
// Failures are logged, never surfaced to the caller.
func (s *AuthService) mirrorUser(u *user.User) {
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
