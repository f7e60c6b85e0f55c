package service

import (
	"context"
	"fmt"
	"strings"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
	"tracker.app/api-server/internal/store"
)

const (
	ResultKindRelease  = "release"
	ResultKindWorkItem = "workItem"
)

// SearchHit is one global-search result. Highlighted wraps matched spans in
// display markers; it never changes which results are returned.
type SearchHit struct {
	Kind            string            `json:"kind"`
	ReleaseID       string            `json:"releaseId"`
	ReleaseTitle    string            `json:"releaseTitle"`
	ApplicationName model.Application `json:"applicationName"`
	ItemID          string            `json:"itemId,omitempty"`
	Title           string            `json:"title"`
	MatchType       search.MatchType  `json:"matchType"`
	Highlighted     string            `json:"highlighted"`
	Hyperlink       string            `json:"hyperlink,omitempty"`
}

// SearchResult is the endpoint payload. Query and Seq are echoed back
// verbatim so a client can discard responses that arrive out of order.
type SearchResult struct {
	Results    []SearchHit `json:"results"`
	TotalCount int         `json:"totalCount"`
	Query      string      `json:"query"`
	Seq        string      `json:"seq,omitempty"`
	HasMore    bool        `json:"hasMore"`
	Message    string      `json:"message,omitempty"`
}

type SearchService interface {
	Search(ctx context.Context, actor *model.User, query string, limit int, seq string) (*SearchResult, error)
}

type searchService struct {
	releases store.ReleaseStore
}

func NewSearchService(releases store.ReleaseStore) SearchService {
	return &searchService{releases: releases}
}

func (s *searchService) Search(ctx context.Context, actor *model.User, query string, limit int, seq string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &SearchResult{Results: []SearchHit{}, Query: query, Seq: seq}

	// Short queries short-circuit before any store call.
	if len(query) < search.MinQueryLength {
		result.Message = search.MinQueryMessage
		return result, nil
	}

	if limit <= 0 {
		limit = search.DefaultLimit
	}

	releases, err := s.releases.Search(ctx, query, visibilityFor(actor), limit+1)
	if err != nil {
		return nil, fmt.Errorf("searching releases: %w", err)
	}

	hits := []SearchHit{}
	for i := range releases {
		hits = append(hits, releaseHits(&releases[i], query)...)
	}

	if len(hits) > limit {
		hits = hits[:limit]
		result.HasMore = true
	}
	result.Results = hits
	result.TotalCount = len(hits)
	return result, nil
}

// releaseHits expands one matching release document into result rows: at
// most one for the release itself plus one per matching embedded work item.
func releaseHits(release *model.Release, query string) []SearchHit {
	hits := []SearchHit{}
	q := strings.ToLower(query)

	releaseText := strings.ToLower(release.Title + "\x00" + release.Version + "\x00" + release.Description)
	if strings.Contains(releaseText, q) {
		hits = append(hits, SearchHit{
			Kind:            ResultKindRelease,
			ReleaseID:       release.ID.Hex(),
			ReleaseTitle:    release.Title,
			ApplicationName: release.ApplicationName,
			Title:           release.Title,
			MatchType:       search.MatchTitle,
			Highlighted:     search.Highlight(release.Title, query),
		})
	}

	for _, item := range release.WorkItems {
		matchType, ok := search.Classify(item.ItemID, item.Title, query)
		if !ok {
			continue
		}
		highlighted := search.Highlight(item.Title, query)
		if matchType == search.MatchID {
			highlighted = search.Highlight(item.ItemID, query)
		}
		hits = append(hits, SearchHit{
			Kind:            ResultKindWorkItem,
			ReleaseID:       release.ID.Hex(),
			ReleaseTitle:    release.Title,
			ApplicationName: release.ApplicationName,
			ItemID:          item.ItemID,
			Title:           item.Title,
			MatchType:       matchType,
			Highlighted:     highlighted,
			Hyperlink:       item.Hyperlink,
		})
	}
	return hits
}
