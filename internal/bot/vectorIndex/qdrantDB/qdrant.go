package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingDimension)
var faqCollectionName = config.FAQCollectionName

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context, host string, port int) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(host, port)
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient(host string, port int) *qdrant.Client {
	if host == "" {
		host = config.QdrantDefaultHost
		port = config.QdrantDefaultGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}

	err = createCollection(context.Background(), client, faqCollectionName)
	if err != nil {
		logger.Error("could not create collection", "collectionName", faqCollectionName, "error", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
		return
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) Search(ctx context.Context, vectorFloat []float32) (vectorIndex.Match, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: faqCollectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant", "error", err)
		return vectorIndex.Match{}, false, err
	}
	if len(result) == 0 {
		return vectorIndex.Match{}, false, nil
	}

	hit := result[0]
	match := vectorIndex.Match{
		FAQID:    hit.Payload["faq_id"].GetStringValue(),
		Question: hit.Payload["question"].GetStringValue(),
		Answer:   hit.Payload["answer"].GetStringValue(),
		Score:    hit.Score,
	}
	loggr.Debug("Best match", "question", match.Question, "score", match.Score)
	return match, true, nil
}

func (db *ClientHolder) RebuildFAQs(ctx context.Context, faqs []commonModels.FAQ, vectors [][]float32) error {
	if len(faqs) != len(vectors) {
		return fmt.Errorf("mismatch: got %d faqs but %d vectors", len(faqs), len(vectors))
	}

	if err := createCollection(ctx, db.QObj, faqCollectionName); err != nil {
		return fmt.Errorf("qdrant create collection failed: %w", err)
	}

	// Upsert in place and only then prune points whose FAQ no longer
	// exists, so searches running during a rebuild never see an empty
	// collection.
	qdrantPoints, keptIDs := buildFAQPoints(faqs, vectors)

	if len(qdrantPoints) > 0 {
		_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: faqCollectionName,
			Points:         qdrantPoints,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("qdrant upsert failed: %w", err)
		}
	}

	// With no kept ids the has-id condition matches nothing, so the
	// MustNot clears the collection, which is what an empty FAQ set needs.
	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: faqCollectionName,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			MustNot: []*qdrant.Condition{qdrant.NewHasID(keptIDs...)},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant prune stale points failed: %w", err)
	}
	return nil
}

func buildFAQPoints(faqs []commonModels.FAQ, vectors [][]float32) ([]*qdrant.PointStruct, []*qdrant.PointId) {
	qdrantPoints := make([]*qdrant.PointStruct, len(faqs))
	keptIDs := make([]*qdrant.PointId, len(faqs))
	for i, faq := range faqs {
		faqID := faq.ID.Hex()
		// Deterministic id so re-upserting the same FAQ overwrites its point
		pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(faqID)).String()
		keptIDs[i] = qdrant.NewID(pointID)
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"faq_id":   faqID,
				"question": faq.Question,
				"answer":   faq.Answer,
				"category": faq.Category,
			}),
		}
	}
	return qdrantPoints, keptIDs
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
