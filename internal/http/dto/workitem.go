package dto

import (
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/workitem"
)

// WorkItemRequest carries a work-item form submission. Mode decides how the
// type field is interpreted (see workitem.ResolveType).
type WorkItemRequest struct {
	Mode      string  `json:"mode" binding:"required"`
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	FlagName  string  `json:"flagName"`
	Remarks   string  `json:"remarks"`
	Hyperlink string  `json:"hyperlink"`
	ParentID  *string `json:"parentId"`
}

func (r WorkItemRequest) ToDraft() workitem.Draft {
	return workitem.Draft{
		Mode:      workitem.Mode(r.Mode),
		Type:      model.WorkItemType(r.Type),
		ItemID:    r.ID,
		Title:     r.Title,
		FlagName:  r.FlagName,
		Remarks:   r.Remarks,
		Hyperlink: r.Hyperlink,
		ParentID:  r.ParentID,
	}
}

type FieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

type ParentCandidatesResponse struct {
	Candidates []model.WorkItem `json:"candidates"`
}
