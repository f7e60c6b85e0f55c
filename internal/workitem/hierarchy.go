package workitem

import (
	"fmt"

	"tracker.app/api-server/internal/model"
)

// RequiredParentType returns the parent type the constraint table demands for
// t. ok is false for EPIC and INCIDENT, which are parent-less.
func RequiredParentType(t model.WorkItemType) (model.WorkItemType, bool) {
	switch t {
	case model.WorkItemFeature:
		return model.WorkItemEpic, true
	case model.WorkItemUserStory:
		return model.WorkItemFeature, true
	case model.WorkItemBug:
		return model.WorkItemUserStory, true
	default:
		return "", false
	}
}

// ChildTypeOf returns the type a child created under a parent of type t must
// have. BUG and INCIDENT cannot have children; that is an error, never a
// silent default.
func ChildTypeOf(t model.WorkItemType) (model.WorkItemType, error) {
	switch t {
	case model.WorkItemEpic:
		return model.WorkItemFeature, nil
	case model.WorkItemFeature:
		return model.WorkItemUserStory, nil
	case model.WorkItemUserStory:
		return model.WorkItemBug, nil
	default:
		return "", fmt.Errorf("%w: %q items cannot have children", ErrInvalidParent, t)
	}
}

// ParentCandidates filters items to the valid parents for a work item of the
// target type. EPIC and INCIDENT targets always get an empty set.
func ParentCandidates(target model.WorkItemType, items []model.WorkItem) []model.WorkItem {
	required, ok := RequiredParentType(target)
	if !ok {
		return []model.WorkItem{}
	}
	candidates := []model.WorkItem{}
	for _, item := range items {
		if item.Type == required {
			candidates = append(candidates, item)
		}
	}
	return candidates
}
