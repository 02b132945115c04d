package mongoStore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

type QueryStore struct {
	coll *mongo.Collection
}

func (s *QueryStore) InsertQuery(ctx context.Context, rec *commonModels.QueryRecord) (string, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.Attempts == 0 {
		rec.Attempts = 1
	}
	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	rec.ID = id
	return id.Hex(), nil
}

func (s *QueryStore) LogOrIncrement(ctx context.Context, rec *commonModels.QueryRecord) error {
	if rec.Answered {
		_, err := s.InsertQuery(ctx, rec)
		return err
	}

	// Repeated unanswered question from the same user bumps attempts
	// instead of stacking duplicates.
	filter := bson.M{
		"question": rec.Question,
		"user_id":  rec.UserID,
		"answered": false,
	}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"timestamp": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	_, err = s.InsertQuery(ctx, rec)
	return err
}

func (s *QueryStore) GetQuery(ctx context.Context, id string) (*commonModels.QueryRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, commonModels.ErrNotFound
	}
	rec := &commonModels.QueryRecord{}
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, commonModels.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListQueries returns newest first; limit <= 0 means no limit (CSV export).
func (s *QueryStore) ListQueries(ctx context.Context, limit, skip int64) ([]commonModels.QueryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []commonModels.QueryRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *QueryStore) MarkUsed(ctx context.Context, id, markedBy string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"used_for_training": true,
		"marked_by":         markedBy,
		"marked_at":         time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QueryStore) MarkReplied(ctx context.Context, id, repliedBy, faqID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"used_for_training": true,
		"replied_by":        repliedBy,
		"replied_at":        time.Now().UTC(),
		"faq_id":            faqID,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QueryStore) MarkConverted(ctx context.Context, question, faqID string) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"question": question, "answered": false},
		bson.M{"$set": bson.M{"faq_id": faqID, "used_for_training": true}})
	return err
}

func (s *QueryStore) DeleteQuery(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QueryStore) DismissFailed(ctx context.Context, question, dismissedBy string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"question": question, "answered": false},
		bson.M{"$set": bson.M{"dismissed": true, "dismissed_by": dismissedBy}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *QueryStore) Stats(ctx context.Context) (commonModels.QueryStats, error) {
	var stats commonModels.QueryStats
	var err error

	if stats.Total, err = s.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, err
	}
	if stats.Answered, err = s.coll.CountDocuments(ctx, bson.M{"answered": true}); err != nil {
		return stats, err
	}
	if stats.UsedForTraining, err = s.coll.CountDocuments(ctx, bson.M{"used_for_training": true}); err != nil {
		return stats, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if stats.Recent, err = s.coll.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": weekAgo}}); err != nil {
		return stats, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"response_time": bson.M{"$gt": 0}}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$response_time"},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer cur.Close(ctx)

	var agg []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &agg); err != nil {
		return stats, err
	}
	if len(agg) > 0 {
		stats.AvgResponseTime = agg[0].Avg
	}
	return stats, nil
}

func (s *QueryStore) TopUsers(ctx context.Context, limit int64) ([]commonModels.ActiveUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": bson.M{"$ne": ""}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$user_id",
			"user_name": bson.M{"$first": "$user_name"},
			"queries":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"queries": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []commonModels.ActiveUser{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
