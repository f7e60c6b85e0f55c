package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
)

type releaseStore struct {
	coll *mongo.Collection
}

func newReleaseStore(coll *mongo.Collection) ReleaseStore {
	return &releaseStore{coll: coll}
}

func (s *releaseStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Release, error) {
	var release model.Release
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&release)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &release, nil
}

func (s *releaseStore) Create(ctx context.Context, release *model.Release) error {
	now := time.Now().UTC()
	release.CreatedAt = now
	release.UpdatedAt = now
	if release.ID.IsZero() {
		release.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, release)
	return err
}

func (s *releaseStore) Update(ctx context.Context, release *model.Release) error {
	release.UpdatedAt = time.Now().UTC()
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": release.ID}, release)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the release document. Work items are embedded, so the
// cascade is a single-document operation and atomic without a transaction.
func (s *releaseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *releaseStore) List(ctx context.Context, filter search.ReleaseFilter, vis ReleaseVisibility) ([]model.Release, int64, error) {
	filter.Normalize()
	query := visibilityFilter(vis)

	if filter.Type != "" {
		query = append(query, bson.E{Key: "type", Value: filter.Type})
	}
	if filter.ApplicationName != "" {
		query = append(query, bson.E{Key: "application_name", Value: filter.ApplicationName})
	}
	if filter.Search != "" {
		re := caseInsensitive(filter.Search)
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.M{"title": re},
			bson.M{"version": re},
			bson.M{"description": re},
		}})
	}
	if filter.ReleaseDate != nil {
		dayStart := filter.ReleaseDate.Truncate(24 * time.Hour)
		query = append(query, bson.E{Key: "release_date", Value: bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}})
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "release_date", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	releases := []model.Release{}
	if err := cursor.All(ctx, &releases); err != nil {
		return nil, 0, err
	}

	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	return releases, totalPages, nil
}

func (s *releaseStore) Search(ctx context.Context, query string, vis ReleaseVisibility, limit int) ([]model.Release, error) {
	re := caseInsensitive(query)
	filter := visibilityFilter(vis)
	filter = append(filter, bson.E{Key: "$or", Value: bson.A{
		bson.M{"title": re},
		bson.M{"version": re},
		bson.M{"description": re},
		bson.M{"work_items.item_id": re},
		bson.M{"work_items.title": re},
	}})

	opts := options.Find().
		SetSort(bson.D{{Key: "release_date", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	releases := []model.Release{}
	if err := cursor.All(ctx, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// visibilityFilter restricts reads to published releases in vis.Apps plus
// unpublished ones in vis.EditableApps.
func visibilityFilter(vis ReleaseVisibility) bson.D {
	published := bson.M{
		"application_name": bson.M{"$in": applicationStrings(vis.Apps)},
		"is_published":     true,
	}
	if len(vis.EditableApps) == 0 {
		return bson.D{
			{Key: "application_name", Value: bson.M{"$in": applicationStrings(vis.Apps)}},
			{Key: "is_published", Value: true},
		}
	}
	unpublished := bson.M{
		"application_name": bson.M{"$in": applicationStrings(vis.EditableApps)},
		"is_published":     false,
	}
	return bson.D{{Key: "$or", Value: bson.A{published, unpublished}}}
}

func applicationStrings(apps []model.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = string(a)
	}
	return out
}

func caseInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
