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

type QuestionnaireStore struct {
	coll *mongo.Collection
}

func (s *QuestionnaireStore) Insert(ctx context.Context, q *commonModels.Questionnaire) (string, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.Status == "" {
		q.Status = commonModels.QuestionnairePending
	}

	res, err := s.coll.InsertOne(ctx, q)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	q.ID = id
	return id.Hex(), nil
}

func (s *QuestionnaireStore) Get(ctx context.Context, id string) (*commonModels.Questionnaire, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, commonModels.ErrNotFound
	}
	q := &commonModels.Questionnaire{}
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, commonModels.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionnaireStore) ListByUser(ctx context.Context, userID string) ([]commonModels.Questionnaire, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *QuestionnaireStore) ListByStatus(ctx context.Context, status string) ([]commonModels.Questionnaire, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

func (s *QuestionnaireStore) list(ctx context.Context, filter bson.M) ([]commonModels.Questionnaire, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []commonModels.Questionnaire{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *QuestionnaireStore) Answer(ctx context.Context, id, answer, answeredBy string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":          commonModels.QuestionnaireAnswered,
		"admin_answer":    answer,
		"answered_by":     answeredBy,
		"answered_at":     time.Now().UTC(),
		"is_read_by_user": false,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QuestionnaireStore) MarkRead(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"is_read_by_user": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QuestionnaireStore) Delete(ctx context.Context, id, userID string, admin bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return commonModels.ErrNotFound
	}
	filter := bson.M{"_id": oid}
	if !admin {
		filter["user_id"] = userID
	}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return commonModels.ErrNotFound
	}
	return nil
}

func (s *QuestionnaireStore) Counts(ctx context.Context, userID string, admin bool) (commonModels.QuestionnaireCounts, error) {
	counts := commonModels.QuestionnaireCounts{}

	base := bson.M{}
	if !admin {
		base["user_id"] = userID
	}

	total, err := s.coll.CountDocuments(ctx, base)
	if err != nil {
		return counts, err
	}
	counts.Total = total

	pending := bson.M{"status": commonModels.QuestionnairePending}
	answered := bson.M{"status": commonModels.QuestionnaireAnswered}
	if !admin {
		pending["user_id"] = userID
		answered["user_id"] = userID
	}

	if counts.Pending, err = s.coll.CountDocuments(ctx, pending); err != nil {
		return counts, err
	}
	if counts.Answered, err = s.coll.CountDocuments(ctx, answered); err != nil {
		return counts, err
	}
	return counts, nil
}

func (s *QuestionnaireStore) CountPending(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"status": commonModels.QuestionnairePending})
}

func (s *QuestionnaireStore) CountUnreadAnswers(ctx context.Context, userID string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{
		"user_id":         userID,
		"status":          commonModels.QuestionnaireAnswered,
		"is_read_by_user": false,
	})
}
