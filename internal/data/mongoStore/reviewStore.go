package mongoStore

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

type ReviewStore struct {
	coll *mongo.Collection
}

func (s *ReviewStore) InsertReview(ctx context.Context, review *commonModels.Review) (string, error) {
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, review)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	review.ID = id
	return id.Hex(), nil
}

func (s *ReviewStore) GetReviewByUser(ctx context.Context, userID string) (*commonModels.Review, error) {
	review := &commonModels.Review{}
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewStore) UpdateReviewByUser(ctx context.Context, userID string, rating int, feedback string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"rating":     rating,
		"feedback":   feedback,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *ReviewStore) GetReview(ctx context.Context, id string) (*commonModels.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, commonModels.ErrNotFound
	}
	review := &commonModels.Review{}
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, commonModels.ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewStore) DeleteReview(ctx context.Context, id string) error {
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

func (s *ReviewStore) ListReviews(ctx context.Context, limit, skip int64, sortBy string, descending bool) ([]commonModels.Review, error) {
	switch sortBy {
	case "created_at", "rating", "user_name":
	default:
		sortBy = "created_at"
	}
	direction := 1
	if descending {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: direction}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reviews := []commonModels.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewStore) Stats(ctx context.Context) (commonModels.ReviewStats, error) {
	stats := commonModels.ReviewStats{
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	stats.TotalReviews = total
	if total == 0 {
		return stats, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"average_rating": bson.M{"$avg": "$rating"},
			"ratings":        bson.M{"$push": "$rating"},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer cur.Close(ctx)

	var agg []struct {
		AverageRating float64 `bson:"average_rating"`
		Ratings       []int   `bson:"ratings"`
	}
	if err := cur.All(ctx, &agg); err != nil {
		return stats, err
	}
	if len(agg) > 0 {
		stats.AverageRating = math.Round(agg[0].AverageRating*100) / 100
		for _, r := range agg[0].Ratings {
			switch r {
			case 1:
				stats.RatingDistribution["1"]++
			case 2:
				stats.RatingDistribution["2"]++
			case 3:
				stats.RatingDistribution["3"]++
			case 4:
				stats.RatingDistribution["4"]++
			case 5:
				stats.RatingDistribution["5"]++
			}
		}
	}
	return stats, nil
}
