package service_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/service"
	"tracker.app/api-server/internal/store"
)

type mockReleaseStore struct {
	getByIDFn func(ctx context.Context, id primitive.ObjectID) (*model.Release, error)
	createFn  func(ctx context.Context, release *model.Release) error
	updateFn  func(ctx context.Context, release *model.Release) error
	deleteFn  func(ctx context.Context, id primitive.ObjectID) error
	listFn    func(ctx context.Context, filter search.ReleaseFilter, vis store.ReleaseVisibility) ([]model.Release, int64, error)
	searchFn  func(ctx context.Context, query string, vis store.ReleaseVisibility, limit int) ([]model.Release, error)

	searchCalls int
	updateCalls int
}

func (m *mockReleaseStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Release, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockReleaseStore) Create(ctx context.Context, release *model.Release) error {
	if m.createFn != nil {
		return m.createFn(ctx, release)
	}
	release.ID = primitive.NewObjectID()
	return nil
}

func (m *mockReleaseStore) Update(ctx context.Context, release *model.Release) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, release)
	}
	return nil
}

func (m *mockReleaseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockReleaseStore) List(ctx context.Context, filter search.ReleaseFilter, vis store.ReleaseVisibility) ([]model.Release, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, vis)
	}
	return nil, 0, nil
}

func (m *mockReleaseStore) Search(ctx context.Context, query string, vis store.ReleaseVisibility, limit int) ([]model.Release, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, query, vis, limit)
	}
	return nil, nil
}

type mockActivityStore struct {
	insertFn func(ctx context.Context, activity *model.Activity) error
	listFn   func(ctx context.Context, filter search.ActivityFilter) ([]model.Activity, int64, error)
	statsFn  func(ctx context.Context, filter search.ActivityFilter) (*model.ActivityStats, error)

	inserted []model.Activity
}

func (m *mockActivityStore) Insert(ctx context.Context, activity *model.Activity) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, activity)
	}
	m.inserted = append(m.inserted, *activity)
	return nil
}

func (m *mockActivityStore) List(ctx context.Context, filter search.ActivityFilter) ([]model.Activity, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockActivityStore) Stats(ctx context.Context, filter search.ActivityFilter) (*model.ActivityStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, filter)
	}
	return &model.ActivityStats{}, nil
}

type mockUserStore struct {
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
	listFn       func(ctx context.Context) ([]model.User, error)
	createFn     func(ctx context.Context, user *model.User) error
	updateFn     func(ctx context.Context, user *model.User) error
	deleteFn     func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockSessionStore struct {
	getValidFn func(ctx context.Context, id int64) (*model.Session, error)
	createFn   func(ctx context.Context, session *model.Session) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) error { return nil }

// noopLogger satisfies ActivityLogger for services under test that are not
// exercising the audit trail.
type noopLogger struct{}

func (noopLogger) Log(ctx context.Context, entry service.ActivityEntry) {}

func superAdmin() *model.User {
	return &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "root@tracker.local",
		Name:     "Root",
		Role:     model.RoleSuperAdmin,
		IsActive: true,
	}
}

func adminFor(apps ...model.Application) *model.User {
	return &model.User{
		ID:                   primitive.NewObjectID(),
		Email:                "admin@tracker.local",
		Name:                 "Admin",
		Role:                 model.RoleAdmin,
		IsActive:             true,
		AssignedApplications: apps,
	}
}

func basicFor(apps ...model.Application) *model.User {
	return &model.User{
		ID:                   primitive.NewObjectID(),
		Email:                "basic@tracker.local",
		Name:                 "Basic",
		Role:                 model.RoleBasic,
		IsActive:             true,
		AssignedApplications: apps,
	}
}
