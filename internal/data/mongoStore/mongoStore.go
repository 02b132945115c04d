package mongoStore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

// Mongo owns the client and hands out per-collection stores.
type Mongo struct {
	client   *mongo.Client
	db       *mongo.Database
	settings *config.Settings
	logger   *logger_i.Logger
}

func Connect(ctx context.Context, settings *config.Settings) (*Mongo, error) {
	log := logger_i.NewLogger("Mongo")

	connectCtx, cancel := context.WithTimeout(ctx, config.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(settings.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Info("Mongo connected", "db", settings.DBName)
	return &Mongo{
		client:   client,
		db:       client.Database(settings.DBName),
		settings: settings,
		logger:   log,
	}, nil
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Users() *UserStore {
	return &UserStore{coll: m.db.Collection(m.settings.UsersCollection)}
}

func (m *Mongo) FAQs() *FAQStore {
	return &FAQStore{coll: m.db.Collection(m.settings.FAQsCollection)}
}

func (m *Mongo) Queries() *QueryStore {
	return &QueryStore{coll: m.db.Collection(m.settings.QueriesCollection)}
}

func (m *Mongo) Reviews() *ReviewStore {
	return &ReviewStore{coll: m.db.Collection(m.settings.ReviewsCollection)}
}

func (m *Mongo) Questionnaires() *QuestionnaireStore {
	return &QuestionnaireStore{coll: m.db.Collection(m.settings.QuestionnairesCollection)}
}
