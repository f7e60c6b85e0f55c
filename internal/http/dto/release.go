package dto

import (
	"time"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
)

type CreateReleaseRequest struct {
	Title           string    `json:"title" binding:"required"`
	ApplicationName string    `json:"applicationName" binding:"required"`
	Version         string    `json:"version"`
	ReleaseDate     time.Time `json:"releaseDate" binding:"required"`
	Description     string    `json:"description"`
	Type            string    `json:"type" binding:"required"`
	IsPublished     bool      `json:"isPublished"`
}

func (r CreateReleaseRequest) ToParams() service.CreateReleaseParams {
	return service.CreateReleaseParams{
		Title:           r.Title,
		ApplicationName: model.Application(r.ApplicationName),
		Version:         r.Version,
		ReleaseDate:     r.ReleaseDate,
		Description:     r.Description,
		Type:            model.ReleaseType(r.Type),
		IsPublished:     r.IsPublished,
	}
}

type FeatureRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

type UpdateReleaseRequest struct {
	Title           string           `json:"title" binding:"required"`
	Version         string           `json:"version"`
	ReleaseDate     time.Time        `json:"releaseDate" binding:"required"`
	Description     string           `json:"description"`
	Type            string           `json:"type" binding:"required"`
	Features        []FeatureRequest `json:"features"`
	BugFixes        []string         `json:"bugFixes"`
	BreakingChanges []string         `json:"breakingChanges"`
}

func (r UpdateReleaseRequest) ToParams() service.UpdateReleaseParams {
	features := make([]model.Feature, len(r.Features))
	for i, f := range r.Features {
		features[i] = model.Feature{
			Title:       f.Title,
			Description: f.Description,
			Category:    model.FeatureCategory(f.Category),
		}
	}
	return service.UpdateReleaseParams{
		Title:           r.Title,
		Version:         r.Version,
		ReleaseDate:     r.ReleaseDate,
		Description:     r.Description,
		Type:            model.ReleaseType(r.Type),
		Features:        features,
		BugFixes:        r.BugFixes,
		BreakingChanges: r.BreakingChanges,
	}
}

type PublishReleaseRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

type ListReleasesResponse struct {
	Releases   []model.Release `json:"releases"`
	TotalPages int64           `json:"totalPages"`
}
