package mongoStore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

type FAQStore struct {
	coll *mongo.Collection
}

func (s *FAQStore) ListFAQs(ctx context.Context, limit int64) ([]commonModels.FAQ, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	faqs := []commonModels.FAQ{}
	if err := cur.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (s *FAQStore) InsertFAQ(ctx context.Context, faq *commonModels.FAQ) (string, error) {
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, faq)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	faq.ID = id
	return id.Hex(), nil
}

func (s *FAQStore) DeleteFAQ(ctx context.Context, id string) error {
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

func (s *FAQStore) CountFAQs(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *FAQStore) FindFAQByQuestion(ctx context.Context, question string) (*commonModels.FAQ, error) {
	faq := &commonModels.FAQ{}
	filter := bson.M{"question": bson.M{
		"$regex":   regexp.QuoteMeta(question),
		"$options": "i",
	}}
	err := s.coll.FindOne(ctx, filter).Decode(faq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return faq, nil
}
