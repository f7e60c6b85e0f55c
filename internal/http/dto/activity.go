package dto

import "tracker.app/api-server/internal/model"

type ListActivitiesResponse struct {
	Activities []model.Activity `json:"activities"`
	TotalCount int64            `json:"totalCount"`
	HasMore    bool             `json:"hasMore"`
}
