package service

import (
	"context"
	"errors"
	"fmt"

	"tracker.app/api-server/internal/access"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/store"
)

var ErrEmailTaken = errors.New("email already in use")

type UserParams struct {
	Email                string
	Name                 string
	Role                 model.Role
	IsActive             bool
	AssignedApplications []model.Application
}

type UserService interface {
	List(ctx context.Context, actor *model.User) ([]model.User, error)
	Create(ctx context.Context, actor *model.User, params UserParams) (*model.User, error)
	Update(ctx context.Context, actor *model.User, id string, params UserParams) (*model.User, error)
	// Deactivate flips isActive off instead of removing the record, so the
	// audit log keeps a resolvable actor.
	Deactivate(ctx context.Context, actor *model.User, id string) (*model.User, error)
}

type userService struct {
	store    store.UserStore
	activity ActivityLogger
}

func NewUserService(userStore store.UserStore, activity ActivityLogger) UserService {
	return &userService{store: userStore, activity: activity}
}

func (s *userService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if !access.PermissionsFor(actor.Role).CanManageUsers {
		return nil, ErrForbidden
	}
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, actor *model.User, params UserParams) (*model.User, error) {
	if !access.PermissionsFor(actor.Role).CanManageUsers {
		return nil, ErrForbidden
	}
	if err := validateUserParams(params); err != nil {
		return nil, err
	}

	if _, err := s.store.GetByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email availability: %w", err)
	}

	user := &model.User{
		Email:                params.Email,
		Name:                 params.Name,
		Role:                 params.Role,
		IsActive:             params.IsActive,
		AssignedApplications: emptyIfNil(params.AssignedApplications),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:      actor,
		Action:     model.ActionUserCreated,
		Resource:   model.ResourceUser,
		ResourceID: user.ID.Hex(),
		Details:    fmt.Sprintf("created user %s with role %s", user.Email, user.Role),
	})
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *model.User, id string, params UserParams) (*model.User, error) {
	if !access.PermissionsFor(actor.Role).CanManageUsers {
		return nil, ErrForbidden
	}
	if err := validateUserParams(params); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	// Only a super admin may touch another super admin's record.
	if user.Role == model.RoleSuperAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	roleChanged := user.Role != params.Role
	user.Email = params.Email
	user.Name = params.Name
	user.Role = params.Role
	user.IsActive = params.IsActive
	user.AssignedApplications = emptyIfNil(params.AssignedApplications)

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	details := fmt.Sprintf("updated user %s", user.Email)
	if roleChanged {
		details = fmt.Sprintf("updated user %s, role changed to %s", user.Email, user.Role)
	}
	s.activity.Log(ctx, ActivityEntry{
		Actor:      actor,
		Action:     model.ActionUserUpdated,
		Resource:   model.ResourceUser,
		ResourceID: user.ID.Hex(),
		Details:    details,
	})
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	if !access.PermissionsFor(actor.Role).CanManageUsers {
		return nil, ErrForbidden
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == model.RoleSuperAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	user.IsActive = false
	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("deactivating user: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:      actor,
		Action:     model.ActionUserDeactivated,
		Resource:   model.ResourceUser,
		ResourceID: user.ID.Hex(),
		Details:    fmt.Sprintf("deactivated user %s", user.Email),
	})
	return user, nil
}

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrInvalidInput, id)
	}
	user, err := s.store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func validateUserParams(params UserParams) error {
	if params.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if params.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !model.IsValidRole(params.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, params.Role)
	}
	for _, app := range params.AssignedApplications {
		if !model.IsValidApplication(app) {
			return fmt.Errorf("%w: unknown application %q", ErrInvalidInput, app)
		}
	}
	return nil
}
