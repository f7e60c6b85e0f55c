package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
)

var ErrNotFound = errors.New("not found")

// ReleaseVisibility scopes release reads: published releases in Apps are
// visible, unpublished ones only in EditableApps.
type ReleaseVisibility struct {
	Apps         []model.Application
	EditableApps []model.Application
}

type ReleaseStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Release, error)
	Create(ctx context.Context, release *model.Release) error
	Update(ctx context.Context, release *model.Release) error
	// Delete removes the release document and, with it, every embedded
	// work item.
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter search.ReleaseFilter, vis ReleaseVisibility) ([]model.Release, int64, error)
	// Search returns releases whose metadata or embedded work items match
	// the query, capped at limit so callers can detect truncation by
	// requesting one extra.
	Search(ctx context.Context, query string, vis ReleaseVisibility, limit int) ([]model.Release, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ActivityStore interface {
	// Insert appends one audit record; records are never updated.
	Insert(ctx context.Context, activity *model.Activity) error
	List(ctx context.Context, filter search.ActivityFilter) ([]model.Activity, int64, error)
	Stats(ctx context.Context, filter search.ActivityFilter) (*model.ActivityStats, error)
}

type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}
