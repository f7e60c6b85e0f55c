// Package search builds the filter and query shapes shared by the global
// search and activity audit endpoints, and classifies and highlights matches.
package search

import (
	"fmt"
	"time"

	"tracker.app/api-server/internal/model"
)

// MinQueryLength is the shortest query the search endpoints accept. Shorter
// queries short-circuit locally without touching the store.
const MinQueryLength = 2

// MinQueryMessage is surfaced instead of an empty-results state.
const MinQueryMessage = "enter at least 2 characters"

const (
	// DefaultLimit caps results on the full search page.
	DefaultLimit = 50
	// QuickSearchLimit caps results in the quick-search widget.
	QuickSearchLimit = 10
)

// SystemLabel stands in for an absent application when grouping activity
// records. The mapping happens here, at the query-shaping boundary, so the
// grouping logic stays portable across stores.
const SystemLabel = "System"

// ApplicationLabel returns the grouping label for an activity's application.
func ApplicationLabel(app *model.Application) string {
	if app == nil || *app == "" {
		return SystemLabel
	}
	return string(*app)
}

// DateRange resolves a symbolic range against now. "all" leaves both bounds
// nil (no implicit cap); the N-day symbols yield [now-N days, now].
func DateRange(symbol string, now time.Time) (start, end *time.Time, err error) {
	var days int
	switch symbol {
	case "", "all":
		return nil, nil, nil
	case "1d":
		days = 1
	case "7d":
		days = 7
	case "30d":
		days = 30
	case "90d":
		days = 90
	default:
		return nil, nil, fmt.Errorf("unknown date range %q", symbol)
	}
	s := now.AddDate(0, 0, -days)
	return &s, &now, nil
}

// ActivityFilter is the query shape for the audit log.
type ActivityFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Application *model.Application
	Action      model.ActivityAction
	Resource    model.ActivityResource
	UserID      string
	Search      string
	Page        int
	Limit       int
}

// ReleaseFilter is the query shape for release list views.
type ReleaseFilter struct {
	Type            model.ReleaseType
	ApplicationName model.Application
	Search          string
	ReleaseDate     *time.Time
	Page            int
	Limit           int
}

// Normalize clamps paging parameters to sane values.
func (f *ActivityFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
}

func (f *ReleaseFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}
