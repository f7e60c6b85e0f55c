package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReleaseType string

const (
	ReleaseMajor  ReleaseType = "MAJOR"
	ReleaseMinor  ReleaseType = "MINOR"
	ReleasePatch  ReleaseType = "PATCH"
	ReleaseHotfix ReleaseType = "HOTFIX"
)

func IsValidReleaseType(t ReleaseType) bool {
	switch t {
	case ReleaseMajor, ReleaseMinor, ReleasePatch, ReleaseHotfix:
		return true
	default:
		return false
	}
}

type FeatureCategory string

const (
	FeatureNew         FeatureCategory = "NEW"
	FeatureImproved    FeatureCategory = "IMPROVED"
	FeaturePerformance FeatureCategory = "PERFORMANCE"
	FeatureSecurity    FeatureCategory = "SECURITY"
)

func IsValidFeatureCategory(c FeatureCategory) bool {
	switch c {
	case FeatureNew, FeatureImproved, FeaturePerformance, FeatureSecurity:
		return true
	default:
		return false
	}
}

// Feature is a lightweight release note entry, distinct from a FEATURE work
// item.
type Feature struct {
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Category    FeatureCategory `bson:"category" json:"category"`
}

// Release is the aggregate root: a versioned publishable unit grouping work
// items and change notes for one application. Work items are embedded, so
// deleting the release document removes them atomically.
type Release struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Version         string             `bson:"version,omitempty" json:"version,omitempty"`
	ApplicationName Application        `bson:"application_name" json:"applicationName"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ReleaseDate     time.Time          `bson:"release_date" json:"releaseDate"`
	Type            ReleaseType        `bson:"type" json:"type"`
	Features        []Feature          `bson:"features" json:"features"`
	BugFixes        []string           `bson:"bug_fixes" json:"bugFixes"`
	BreakingChanges []string           `bson:"breaking_changes" json:"breakingChanges"`
	WorkItems       []WorkItem         `bson:"work_items" json:"workItems"`
	IsPublished     bool               `bson:"is_published" json:"isPublished"`
	Author          string             `bson:"author" json:"author"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// WorkItemByID returns the embedded work item with the given external ID.
func (r *Release) WorkItemByID(itemID string) (*WorkItem, bool) {
	for i := range r.WorkItems {
		if r.WorkItems[i].ItemID == itemID {
			return &r.WorkItems[i], true
		}
	}
	return nil, false
}
