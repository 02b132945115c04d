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

type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) CreateUser(ctx context.Context, user *commonModels.User) (string, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id.Hex(), nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*commonModels.User, error) {
	user := &commonModels.User{}
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	return err
}

func (s *UserStore) ListUsers(ctx context.Context) ([]commonModels.User, error) {
	// password hash stays server-side
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []commonModels.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) CountUsers(ctx context.Context) (commonModels.UserCounts, error) {
	var counts commonModels.UserCounts
	var err error

	if counts.Total, err = s.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return counts, err
	}
	if counts.Active, err = s.coll.CountDocuments(ctx, bson.M{"is_active": true}); err != nil {
		return counts, err
	}
	if counts.Admins, err = s.coll.CountDocuments(ctx, bson.M{"role": commonModels.RoleAdmin}); err != nil {
		return counts, err
	}
	if counts.Students, err = s.coll.CountDocuments(ctx, bson.M{"role": commonModels.RoleStudent}); err != nil {
		return counts, err
	}
	return counts, nil
}

func (s *UserStore) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}
