package store

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
)

type activityStore struct {
	coll *mongo.Collection
}

func newActivityStore(coll *mongo.Collection) ActivityStore {
	return &activityStore{coll: coll}
}

func (s *activityStore) Insert(ctx context.Context, activity *model.Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, activity)
	return err
}

func (s *activityStore) List(ctx context.Context, filter search.ActivityFilter) ([]model.Activity, int64, error) {
	filter.Normalize()
	query := activityQuery(filter)

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	activities := []model.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (s *activityStore) Stats(ctx context.Context, filter search.ActivityFilter) (*model.ActivityStats, error) {
	query := activityQuery(filter)

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.coll.Distinct(ctx, "user_id", query)
	if err != nil {
		return nil, err
	}

	byAction, err := s.groupCount(ctx, query, "$action")
	if err != nil {
		return nil, err
	}
	byResource, err := s.groupCount(ctx, query, "$resource")
	if err != nil {
		return nil, err
	}

	// Application grouping happens against the raw field; the absent-value →
	// "System" sentinel is applied here in Go rather than with a
	// store-specific null-coalescing operator.
	rawApps, err := s.groupCount(ctx, query, "$application")
	if err != nil {
		return nil, err
	}
	byApplication := relabelApplications(rawApps)

	return &model.ActivityStats{
		TotalCount:    total,
		UniqueUsers:   int64(len(userIDs)),
		ByAction:      byAction,
		ByApplication: byApplication,
		ByResource:    byResource,
	}, nil
}

type groupRow struct {
	ID    *string `bson:"_id"`
	Count int64   `bson:"count"`
}

func (s *activityStore) groupCount(ctx context.Context, query bson.D, field string) ([]model.CountBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []groupRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	buckets := make([]model.CountBucket, 0, len(rows))
	for _, row := range rows {
		label := ""
		if row.ID != nil {
			label = *row.ID
		}
		buckets = append(buckets, model.CountBucket{Label: label, Count: row.Count})
	}
	return buckets, nil
}

// relabelApplications maps absent application values to the "System" sentinel
// and merges buckets that collapse onto the same label.
func relabelApplications(buckets []model.CountBucket) []model.CountBucket {
	merged := map[string]int64{}
	for _, b := range buckets {
		app := model.Application(b.Label)
		var appPtr *model.Application
		if b.Label != "" {
			appPtr = &app
		}
		merged[search.ApplicationLabel(appPtr)] += b.Count
	}
	out := make([]model.CountBucket, 0, len(merged))
	for label, count := range merged {
		out = append(out, model.CountBucket{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func activityQuery(filter search.ActivityFilter) bson.D {
	query := bson.D{}
	if filter.StartDate != nil || filter.EndDate != nil {
		bounds := bson.M{}
		if filter.StartDate != nil {
			bounds["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			bounds["$lte"] = *filter.EndDate
		}
		query = append(query, bson.E{Key: "timestamp", Value: bounds})
	}
	if filter.Application != nil {
		query = append(query, bson.E{Key: "application", Value: *filter.Application})
	}
	if filter.Action != "" {
		query = append(query, bson.E{Key: "action", Value: filter.Action})
	}
	if filter.Resource != "" {
		query = append(query, bson.E{Key: "resource", Value: filter.Resource})
	}
	if filter.UserID != "" {
		query = append(query, bson.E{Key: "user_id", Value: filter.UserID})
	}
	if filter.Search != "" {
		re := caseInsensitive(filter.Search)
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.M{"details": re},
			bson.M{"user_name": re},
			bson.M{"user_email": re},
		}})
	}
	return query
}
