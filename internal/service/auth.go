package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracker.app/api-server/common/id"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/store"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserInactive   = errors.New("user is inactive")
	ErrSessionExpired = errors.New("session expired")
)

type AuthService interface {
	// Login resolves a trusted upstream identity to a tracker user and
	// opens a session. Identity verification itself happens upstream.
	Login(ctx context.Context, email, ipAddress, userAgent string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	activity     ActivityLogger
	sessionTTL   time.Duration
}

func NewAuthService(userStore store.UserStore, sessionStore store.SessionStore, activity ActivityLogger, sessionTTL time.Duration) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		activity:     activity,
		sessionTTL:   sessionTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, ipAddress, userAgent string) (*model.User, *model.Session, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID.Hex(),
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session", "error", err, "user_id", user.ID.Hex())
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:     user,
		Action:    model.ActionLogin,
		Resource:  model.ResourceAuth,
		Details:   "user logged in",
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID.Hex(), "email", user.Email)
	return user, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	userID, err := parseObjectID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("parsing session user id: %w", err)
	}
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
