package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/metrics"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

func fallbackResult() Result {
	metrics.CountChatOutcome("fallback")
	return Result{Answer: config.FallbackAnswer, Answered: false}
}

func logStep(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("RebuildIndex", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, emb []float32) (string, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.index.GetCachedAnswer(ctx, emb)
	return ans, found
}

func (s *service) executeSearchStep(ctx context.Context, emb []float32) (vectorIndex.Match, bool, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Search(ctx, emb)
}

func (s *service) executeFetchStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]commonModels.FAQ, error) {
	*job = logStep(*job, jobModel.RebuildFetch, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("faq_fetch", time.Since(start)) }()

	return s.faqStore.ListFAQs(ctx, 0)
}

func (s *service) executeBatchEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, faqs []commonModels.FAQ) ([][]float32, error) {
	*job = logStep(*job, jobModel.RebuildEmbedding, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	questions := make([]string, len(faqs))
	for i, f := range faqs {
		questions[i] = f.Question
	}
	return s.embedder.BatchEmbedding(ctx, questions)
}

func (s *service) executeUpsertStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, faqs []commonModels.FAQ, vectors [][]float32) error {
	*job = logStep(*job, jobModel.RebuildUpsert, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("index_upsert", time.Since(start)) }()

	return s.index.RebuildFAQs(ctx, faqs, vectors)
}
