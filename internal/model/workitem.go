package model

// WorkItemType classifies a work item within the fixed four-level hierarchy
// (Epic → Feature → User Story → Bug) plus the standalone Incident kind.
type WorkItemType string

const (
	WorkItemEpic      WorkItemType = "EPIC"
	WorkItemFeature   WorkItemType = "FEATURE"
	WorkItemUserStory WorkItemType = "USER_STORY"
	WorkItemBug       WorkItemType = "BUG"
	WorkItemIncident  WorkItemType = "INCIDENT"
)

var workItemTypes = []WorkItemType{
	WorkItemEpic,
	WorkItemFeature,
	WorkItemUserStory,
	WorkItemBug,
	WorkItemIncident,
}

func WorkItemTypes() []WorkItemType {
	out := make([]WorkItemType, len(workItemTypes))
	copy(out, workItemTypes)
	return out
}

func IsValidWorkItemType(t WorkItemType) bool {
	for _, wt := range workItemTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// WorkItem is a trackable unit of work embedded in exactly one release.
// ItemID is the external identifier (ticket number) and is unique within the
// owning release; ParentID references another item's ItemID in the same
// release.
type WorkItem struct {
	ItemID    string       `bson:"item_id" json:"id"`
	Type      WorkItemType `bson:"type" json:"type"`
	Title     string       `bson:"title" json:"title"`
	FlagName  string       `bson:"flag_name,omitempty" json:"flagName,omitempty"`
	Remarks   string       `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Hyperlink string       `bson:"hyperlink" json:"hyperlink"`
	ParentID  *string      `bson:"parent_id,omitempty" json:"parentId,omitempty"`
}
