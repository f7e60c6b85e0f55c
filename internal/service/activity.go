package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tracker.app/api-server/internal/access"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/store"
)

// ErrForbidden signals a role or application permission failure; handlers
// translate it to a full Access Denied response.
var ErrForbidden = errors.New("access denied")

// ActivityEntry is one tracked user action to append to the audit log.
type ActivityEntry struct {
	Actor       *model.User
	Action      model.ActivityAction
	Resource    model.ActivityResource
	ResourceID  string
	Application *model.Application
	Details     string
	IPAddress   string
	UserAgent   string
	Metadata    map[string]any
}

// ActivityLogger is the write half of the audit log, consumed by every other
// service.
type ActivityLogger interface {
	// Log appends an audit record. Failures are logged and swallowed so
	// auditing never fails the action that triggered it.
	Log(ctx context.Context, entry ActivityEntry)
}

// ActivityListParams are the UI-level filter selections for the audit views.
type ActivityListParams struct {
	Range       string // 1d, 7d, 30d, 90d, all
	Application string
	Action      string
	Resource    string
	UserID      string
	Search      string
	Page        int
	Limit       int
}

type ActivityService interface {
	ActivityLogger
	List(ctx context.Context, actor *model.User, params ActivityListParams) ([]model.Activity, int64, bool, error)
	Stats(ctx context.Context, actor *model.User, params ActivityListParams) (*model.ActivityStats, error)
}

type activityService struct {
	store store.ActivityStore
	now   func() time.Time
}

func NewActivityService(activityStore store.ActivityStore) ActivityService {
	return &activityService{store: activityStore, now: time.Now}
}

func (s *activityService) Log(ctx context.Context, entry ActivityEntry) {
	details := entry.Details
	if len(details) > model.MaxActivityDetails {
		cut := model.MaxActivityDetails
		// Back up to a rune boundary so the stored record stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(details[cut]) {
			cut--
		}
		details = details[:cut]
	}

	activity := &model.Activity{
		Action:      entry.Action,
		Resource:    entry.Resource,
		ResourceID:  entry.ResourceID,
		Application: entry.Application,
		Details:     details,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Timestamp:   s.now().UTC(),
		Metadata:    entry.Metadata,
	}
	if entry.Actor != nil {
		activity.UserID = entry.Actor.ID.Hex()
		activity.UserName = entry.Actor.Name
		activity.UserEmail = entry.Actor.Email
		activity.UserRole = entry.Actor.Role
	}

	if err := s.store.Insert(ctx, activity); err != nil {
		slog.ErrorContext(ctx, "failed to record activity",
			"error", err,
			"action", entry.Action,
			"resource", entry.Resource,
		)
	}
}

func (s *activityService) List(ctx context.Context, actor *model.User, params ActivityListParams) ([]model.Activity, int64, bool, error) {
	if !access.PermissionsFor(actor.Role).CanViewActivity {
		return nil, 0, false, ErrForbidden
	}

	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, 0, false, err
	}

	activities, total, err := s.store.List(ctx, *filter)
	if err != nil {
		return nil, 0, false, fmt.Errorf("listing activities: %w", err)
	}
	hasMore := int64(filter.Page)*int64(filter.Limit) < total
	return activities, total, hasMore, nil
}

func (s *activityService) Stats(ctx context.Context, actor *model.User, params ActivityListParams) (*model.ActivityStats, error) {
	if actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, err
	}

	stats, err := s.store.Stats(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("aggregating activity stats: %w", err)
	}
	return stats, nil
}

func (s *activityService) buildFilter(params ActivityListParams) (*search.ActivityFilter, error) {
	start, end, err := search.DateRange(params.Range, s.now().UTC())
	if err != nil {
		return nil, err
	}

	filter := &search.ActivityFilter{
		StartDate: start,
		EndDate:   end,
		Action:    model.ActivityAction(params.Action),
		Resource:  model.ActivityResource(params.Resource),
		UserID:    params.UserID,
		Search:    params.Search,
		Page:      params.Page,
		Limit:     params.Limit,
	}
	if params.Application != "" {
		app := model.Application(params.Application)
		filter.Application = &app
	}
	filter.Normalize()
	return filter, nil
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}
