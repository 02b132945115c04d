package bot

import (
	"context"
	"time"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/bot/embedding"
	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/metrics"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

// Result is what the chat endpoint returns. Answered stays false when
// retrieval found nothing above the score cutoff and the fallback
// apology was used instead.
type Result struct {
	Answer          string
	Answered        bool
	Cached          bool
	Score           float32
	MatchedFAQID    string
	MatchedQuestion string
}

// Service is the only surface the handlers and the worker see - they
// don't need to know the embedder or the vector index behind it.
type Service interface {
	Answer(ctx context.Context, question string) Result
	RebuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	index    vectorIndex.Index
	embedder embedding.Embedder
	faqStore commonModels.FAQStore
	logger   *logger_i.Logger
}

// NewService constructor
func NewService(index vectorIndex.Index, em embedding.Embedder, faqs commonModels.FAQStore) Service {
	return &service{
		index:    index,
		embedder: em,
		faqStore: faqs,
		logger:   logger_i.NewLogger("Bot Service :"),
	}
}

// Answer never fails: any error on the retrieval path degrades to the
// fallback apology so the chat endpoint always has something to say.
func (s *service) Answer(ctx context.Context, question string) Result {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, question)
	if err != nil {
		inMethodLogger.Error("Embedding failed, falling back", "error", err)
		return fallbackResult()
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(processContext, queryVector)
	if found {
		metrics.CountChatOutcome("cached")
		return Result{Answer: cachedAnswer, Answered: true, Cached: true}
	}

	// Vector Index Search
	match, found, err := s.executeSearchStep(processContext, queryVector)
	if err != nil {
		inMethodLogger.Error("Vector search failed, falling back", "error", err)
		return fallbackResult()
	}
	if !found || match.Score < config.MinAnswerScore {
		inMethodLogger.Info("No match above cutoff", "found", found, "score", match.Score)
		return fallbackResult()
	}

	// Background Cache Save
	go func() {
		saveCtx := context.WithoutCancel(ctx)
		if err := s.index.SaveToCache(saveCtx, utils.GetNewUUID(), queryVector, match.Answer); err != nil {
			s.logger.Error("Failed to save to cache", "error", err)
		}
	}()

	metrics.CountChatOutcome("answered")
	return Result{
		Answer:          match.Answer,
		Answered:        true,
		Score:           match.Score,
		MatchedFAQID:    match.FAQID,
		MatchedQuestion: match.Question,
	}
}

// RebuildIndex re-embeds every stored FAQ and swaps the vector index to
// the fresh set. Runs on the worker pool, never on a request goroutine.
func (s *service) RebuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", job.TraceId, "JobId", job.Id)

	// Fetch
	faqs, err := s.executeFetchStep(ctx, inMethodLogger, &job)
	if err != nil {
		return s.jobError(job, err, "FAQ_FETCH_FAILURE", true)
	}
	job.Payload.FAQCount = len(faqs)

	// Embedding
	vectors, err := s.executeBatchEmbeddingStep(ctx, inMethodLogger, &job, faqs)
	if err != nil {
		return s.jobError(job, err, "EMBEDDING_FAILURE", true)
	}

	// Upsert
	if err := s.executeUpsertStep(ctx, inMethodLogger, &job, faqs, vectors); err != nil {
		return s.jobError(job, err, "VECTOR_DB_FAILURE", true)
	}

	inMethodLogger.Info("Index rebuilt", "faqCount", len(faqs))
	job.CurrentStep = jobModel.Complete
	return job
}
