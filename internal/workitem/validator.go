// Package workitem enforces the fixed work-item hierarchy
// (Epic → Feature → User Story → Bug, Incident standalone) and the
// required-field rules applied before any item is persisted.
package workitem

import (
	"errors"
	"fmt"
	"regexp"

	"tracker.app/api-server/internal/model"
)

var (
	ErrInvalidMode   = errors.New("invalid form mode")
	ErrInvalidParent = errors.New("invalid parent")
)

var hyperlinkRe = regexp.MustCompile(`^https?://`)

// Mode scopes the creation form: it decides how the item's type is
// determined and which fields are fixed.
type Mode string

const (
	ModeCreate         Mode = "create"
	ModeEdit           Mode = "edit"
	ModeCreateChild    Mode = "createChild"
	ModeCreateEpic     Mode = "createEpic"
	ModeCreateIncident Mode = "createIncident"
)

// Draft is a candidate work item as submitted, before validation.
type Draft struct {
	Mode      Mode
	Type      model.WorkItemType
	ItemID    string
	Title     string
	FlagName  string
	Remarks   string
	Hyperlink string
	ParentID  *string
	// ParentItem is the item a createChild submission hangs under, and the
	// existing item being edited in edit mode.
	ParentItem *model.WorkItem
	Existing   *model.WorkItem
}

// FieldErrors maps a field name to the message shown next to it. A non-empty
// map blocks submission entirely; nothing is persisted until it is empty.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%d field error(s)", len(e))
}

// ResolveType determines the item's type from the form mode.
//
// edit keeps the existing type (the field is disabled), createChild derives
// it from the parent via the fixed mapping, createEpic and createIncident pin
// it, and create takes the user's selection.
func ResolveType(d Draft) (model.WorkItemType, error) {
	switch d.Mode {
	case ModeEdit:
		if d.Existing == nil {
			return "", fmt.Errorf("%w: edit mode requires an existing item", ErrInvalidMode)
		}
		return d.Existing.Type, nil
	case ModeCreateChild:
		if d.ParentItem == nil {
			return "", fmt.Errorf("%w: createChild mode requires a parent item", ErrInvalidMode)
		}
		return ChildTypeOf(d.ParentItem.Type)
	case ModeCreateEpic:
		return model.WorkItemEpic, nil
	case ModeCreateIncident:
		return model.WorkItemIncident, nil
	case ModeCreate:
		if !model.IsValidWorkItemType(d.Type) {
			return "", fmt.Errorf("%w: unknown work item type %q", ErrInvalidMode, d.Type)
		}
		return d.Type, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, d.Mode)
	}
}

// Validate checks a draft against the hierarchy and required-field rules in
// the context of the owning release's existing items. It returns either the
// validated item ready for persistence or the field→message map for
// re-display. Validation has no side effects; persisting is a separate step.
func Validate(d Draft, releaseItems []model.WorkItem) (*model.WorkItem, FieldErrors, error) {
	itemType, err := ResolveType(d)
	if err != nil {
		return nil, nil, err
	}

	fieldErrs := FieldErrors{}
	if d.ItemID == "" {
		fieldErrs["id"] = "ID is required"
	}
	if d.Title == "" {
		fieldErrs["title"] = "Title is required"
	}
	switch {
	case d.Hyperlink == "":
		fieldErrs["hyperlink"] = "Hyperlink is required"
	case !hyperlinkRe.MatchString(d.Hyperlink):
		fieldErrs["hyperlink"] = "must be a valid URL starting with http:// or https://"
	}

	if d.ItemID != "" {
		// Callers editing an existing item pass the sibling set without it,
		// so an unchanged ID does not collide with itself.
		for _, item := range releaseItems {
			if item.ItemID == d.ItemID {
				fieldErrs["id"] = fmt.Sprintf("ID %q already exists in this release", d.ItemID)
				break
			}
		}
	}

	parentID := d.ParentID
	if d.Mode == ModeCreateChild && d.ParentItem != nil {
		parentID = &d.ParentItem.ItemID
	}

	requiredParent, needsParent := RequiredParentType(itemType)
	hasParent := parentID != nil && *parentID != ""
	switch {
	case !needsParent && hasParent:
		fieldErrs["parentId"] = fmt.Sprintf("%s items cannot have a parent", itemType)
	case needsParent && hasParent:
		parent := findItem(releaseItems, *parentID)
		if parent == nil && d.ParentItem != nil && d.ParentItem.ItemID == *parentID {
			parent = d.ParentItem
		}
		if parent == nil {
			fieldErrs["parentId"] = fmt.Sprintf("parent %q not found in this release", *parentID)
		} else if parent.Type != requiredParent {
			fieldErrs["parentId"] = fmt.Sprintf("%s items require a %s parent", itemType, requiredParent)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	item := &model.WorkItem{
		ItemID:    d.ItemID,
		Type:      itemType,
		Title:     d.Title,
		FlagName:  d.FlagName,
		Remarks:   d.Remarks,
		Hyperlink: d.Hyperlink,
	}
	if hasParent {
		pid := *parentID
		item.ParentID = &pid
	}
	return item, nil, nil
}

func findItem(items []model.WorkItem, itemID string) *model.WorkItem {
	for i := range items {
		if items[i].ItemID == itemID {
			return &items[i]
		}
	}
	return nil
}
