package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracker.app/api-server/internal/access"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/store"
	"tracker.app/api-server/internal/workitem"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrReleaseNotFound = errors.New("release not found")
)

type CreateReleaseParams struct {
	Title           string
	ApplicationName model.Application
	Version         string
	ReleaseDate     time.Time
	Description     string
	Type            model.ReleaseType
	IsPublished     bool
}

type UpdateReleaseParams struct {
	Title           string
	Version         string
	ReleaseDate     time.Time
	Description     string
	Type            model.ReleaseType
	Features        []model.Feature
	BugFixes        []string
	BreakingChanges []string
}

type ReleaseService interface {
	Create(ctx context.Context, actor *model.User, params CreateReleaseParams) (*model.Release, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.Release, error)
	List(ctx context.Context, actor *model.User, filter search.ReleaseFilter) ([]model.Release, int64, error)
	Update(ctx context.Context, actor *model.User, id string, params UpdateReleaseParams) (*model.Release, error)
	SetPublished(ctx context.Context, actor *model.User, id string, published bool) (*model.Release, error)
	// Delete removes the release and cascades to its embedded work items.
	Delete(ctx context.Context, actor *model.User, id string) error

	AddWorkItem(ctx context.Context, actor *model.User, releaseID string, draft workitem.Draft) (*model.Release, workitem.FieldErrors, error)
	UpdateWorkItem(ctx context.Context, actor *model.User, releaseID, itemID string, draft workitem.Draft) (*model.Release, workitem.FieldErrors, error)
	DeleteWorkItem(ctx context.Context, actor *model.User, releaseID, itemID string) (*model.Release, error)
}

type releaseService struct {
	store    store.ReleaseStore
	activity ActivityLogger
}

func NewReleaseService(releaseStore store.ReleaseStore, activity ActivityLogger) ReleaseService {
	return &releaseService{store: releaseStore, activity: activity}
}

func (s *releaseService) Create(ctx context.Context, actor *model.User, params CreateReleaseParams) (*model.Release, error) {
	perms := access.PermissionsFor(actor.Role)
	if !perms.CanCreateRelease || !access.UserHasApplicationAccess(actor, params.ApplicationName) {
		return nil, ErrForbidden
	}
	if params.IsPublished && !perms.CanPublish {
		return nil, ErrForbidden
	}
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !model.IsValidApplication(params.ApplicationName) {
		return nil, fmt.Errorf("%w: unknown application %q", ErrInvalidInput, params.ApplicationName)
	}
	if !model.IsValidReleaseType(params.Type) {
		return nil, fmt.Errorf("%w: unknown release type %q", ErrInvalidInput, params.Type)
	}

	release := &model.Release{
		Title:           params.Title,
		Version:         params.Version,
		ApplicationName: params.ApplicationName,
		Description:     params.Description,
		ReleaseDate:     params.ReleaseDate,
		Type:            params.Type,
		Features:        []model.Feature{},
		BugFixes:        []string{},
		BreakingChanges: []string{},
		WorkItems:       []model.WorkItem{},
		IsPublished:     params.IsPublished,
		Author:          actor.Name,
	}
	if err := s.store.Create(ctx, release); err != nil {
		slog.ErrorContext(ctx, "failed to create release", "error", err, "application", params.ApplicationName)
		return nil, fmt.Errorf("creating release: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:       actor,
		Action:      model.ActionReleaseCreated,
		Resource:    model.ResourceRelease,
		ResourceID:  release.ID.Hex(),
		Application: &release.ApplicationName,
		Details:     fmt.Sprintf("created release %q", release.Title),
	})
	return release, nil
}

func (s *releaseService) Get(ctx context.Context, actor *model.User, id string) (*model.Release, error) {
	release, err := s.getRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, release) {
		return nil, ErrForbidden
	}
	return release, nil
}

func (s *releaseService) List(ctx context.Context, actor *model.User, filter search.ReleaseFilter) ([]model.Release, int64, error) {
	releases, totalPages, err := s.store.List(ctx, filter, visibilityFor(actor))
	if err != nil {
		return nil, 0, fmt.Errorf("listing releases: %w", err)
	}
	return releases, totalPages, nil
}

func (s *releaseService) Update(ctx context.Context, actor *model.User, id string, params UpdateReleaseParams) (*model.Release, error) {
	release, err := s.getRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.UserCanEditApplication(actor, release.ApplicationName) {
		return nil, ErrForbidden
	}
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !model.IsValidReleaseType(params.Type) {
		return nil, fmt.Errorf("%w: unknown release type %q", ErrInvalidInput, params.Type)
	}
	for _, f := range params.Features {
		if !model.IsValidFeatureCategory(f.Category) {
			return nil, fmt.Errorf("%w: unknown feature category %q", ErrInvalidInput, f.Category)
		}
	}

	release.Title = params.Title
	release.Version = params.Version
	release.ReleaseDate = params.ReleaseDate
	release.Description = params.Description
	release.Type = params.Type
	release.Features = emptyIfNil(params.Features)
	release.BugFixes = emptyIfNil(params.BugFixes)
	release.BreakingChanges = emptyIfNil(params.BreakingChanges)

	if err := s.saveRelease(ctx, actor, release, "updated release"); err != nil {
		return nil, err
	}
	return release, nil
}

func (s *releaseService) SetPublished(ctx context.Context, actor *model.User, id string, published bool) (*model.Release, error) {
	release, err := s.getRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.PermissionsFor(actor.Role).CanPublish || !access.UserHasApplicationAccess(actor, release.ApplicationName) {
		return nil, ErrForbidden
	}

	release.IsPublished = published
	if err := s.store.Update(ctx, release); err != nil {
		return nil, fmt.Errorf("updating release: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:       actor,
		Action:      model.ActionReleasePublish,
		Resource:    model.ResourceRelease,
		ResourceID:  release.ID.Hex(),
		Application: &release.ApplicationName,
		Details:     fmt.Sprintf("set release %q published=%t", release.Title, published),
	})
	return release, nil
}

func (s *releaseService) Delete(ctx context.Context, actor *model.User, id string) error {
	release, err := s.getRelease(ctx, id)
	if err != nil {
		return err
	}
	if !access.PermissionsFor(actor.Role).CanDeleteRelease || !access.UserHasApplicationAccess(actor, release.ApplicationName) {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, release.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReleaseNotFound
		}
		return fmt.Errorf("deleting release: %w", err)
	}

	s.activity.Log(ctx, ActivityEntry{
		Actor:       actor,
		Action:      model.ActionReleaseDeleted,
		Resource:    model.ResourceRelease,
		ResourceID:  release.ID.Hex(),
		Application: &release.ApplicationName,
		Details:     fmt.Sprintf("deleted release %q and its %d work items", release.Title, len(release.WorkItems)),
	})
	return nil
}

func (s *releaseService) AddWorkItem(ctx context.Context, actor *model.User, releaseID string, draft workitem.Draft) (*model.Release, workitem.FieldErrors, error) {
	release, err := s.getRelease(ctx, releaseID)
	if err != nil {
		return nil, nil, err
	}
	if !access.UserCanEditApplication(actor, release.ApplicationName) {
		return nil, nil, ErrForbidden
	}

	if draft.Mode == workitem.ModeCreateChild && draft.ParentItem == nil && draft.ParentID != nil {
		draft.ParentItem = findWorkItem(release.WorkItems, *draft.ParentID)
	}

	item, fieldErrs, err := workitem.Validate(draft, release.WorkItems)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	release.WorkItems = append(release.WorkItems, *item)
	if err := s.saveRelease(ctx, actor, release, fmt.Sprintf("added work item %s", item.ItemID)); err != nil {
		return nil, nil, err
	}
	return release, nil, nil
}

func (s *releaseService) UpdateWorkItem(ctx context.Context, actor *model.User, releaseID, itemID string, draft workitem.Draft) (*model.Release, workitem.FieldErrors, error) {
	release, err := s.getRelease(ctx, releaseID)
	if err != nil {
		return nil, nil, err
	}
	if !access.UserCanEditApplication(actor, release.ApplicationName) {
		return nil, nil, ErrForbidden
	}

	existing := findWorkItem(release.WorkItems, itemID)
	if existing == nil {
		return nil, nil, fmt.Errorf("%w: work item %q", ErrReleaseNotFound, itemID)
	}

	draft.Mode = workitem.ModeEdit
	draft.Existing = existing
	// The item being edited is excluded from the sibling set so the ID
	// uniqueness check does not trip over itself.
	siblings := make([]model.WorkItem, 0, len(release.WorkItems)-1)
	for _, wi := range release.WorkItems {
		if wi.ItemID != itemID {
			siblings = append(siblings, wi)
		}
	}
	item, fieldErrs, err := workitem.Validate(draft, siblings)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	oldID := existing.ItemID
	*existing = *item
	if oldID != item.ItemID {
		// Children referencing the renamed item follow the new ID.
		for i := range release.WorkItems {
			if release.WorkItems[i].ParentID != nil && *release.WorkItems[i].ParentID == oldID {
				release.WorkItems[i].ParentID = &existing.ItemID
			}
		}
	}

	if err := s.saveRelease(ctx, actor, release, fmt.Sprintf("updated work item %s", item.ItemID)); err != nil {
		return nil, nil, err
	}
	return release, nil, nil
}

func (s *releaseService) DeleteWorkItem(ctx context.Context, actor *model.User, releaseID, itemID string) (*model.Release, error) {
	release, err := s.getRelease(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if !access.UserCanEditApplication(actor, release.ApplicationName) {
		return nil, ErrForbidden
	}

	kept := make([]model.WorkItem, 0, len(release.WorkItems))
	found := false
	for _, wi := range release.WorkItems {
		if wi.ItemID == itemID {
			found = true
			continue
		}
		if wi.ParentID != nil && *wi.ParentID == itemID {
			// Orphaned children detach rather than dangle.
			wi.ParentID = nil
		}
		kept = append(kept, wi)
	}
	if !found {
		return nil, fmt.Errorf("%w: work item %q", ErrReleaseNotFound, itemID)
	}

	release.WorkItems = kept
	if err := s.saveRelease(ctx, actor, release, fmt.Sprintf("deleted work item %s", itemID)); err != nil {
		return nil, err
	}
	return release, nil
}

func (s *releaseService) getRelease(ctx context.Context, id string) (*model.Release, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid release id %q", ErrInvalidInput, id)
	}
	release, err := s.store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, fmt.Errorf("getting release: %w", err)
	}
	return release, nil
}

func (s *releaseService) saveRelease(ctx context.Context, actor *model.User, release *model.Release, details string) error {
	if err := s.store.Update(ctx, release); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReleaseNotFound
		}
		return fmt.Errorf("updating release: %w", err)
	}
	s.activity.Log(ctx, ActivityEntry{
		Actor:       actor,
		Action:      model.ActionReleaseUpdated,
		Resource:    model.ResourceRelease,
		ResourceID:  release.ID.Hex(),
		Application: &release.ApplicationName,
		Details:     details,
	})
	return nil
}

func (s *releaseService) canView(actor *model.User, release *model.Release) bool {
	if !access.UserHasApplicationAccess(actor, release.ApplicationName) {
		return false
	}
	if release.IsPublished {
		return true
	}
	return access.UserCanEditApplication(actor, release.ApplicationName)
}

// visibilityFor translates a user's role and assignments into the store-level
// read scope.
func visibilityFor(actor *model.User) store.ReleaseVisibility {
	vis := store.ReleaseVisibility{
		Apps: access.UserAccessibleApplications(actor),
	}
	if access.PermissionsFor(actor.Role).CanEditRelease {
		vis.EditableApps = vis.Apps
	}
	return vis
}

func findWorkItem(items []model.WorkItem, itemID string) *model.WorkItem {
	for i := range items {
		if items[i].ItemID == itemID {
			return &items[i]
		}
	}
	return nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
