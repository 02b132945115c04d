package handlers

import (
	"context"
	"sync/atomic"

	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/job"
	"github.com/campusbot/UniBotAPI/internal/metrics"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

// Pinger is the slice of the Mongo client the detailed health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	users          commonModels.UserStore
	faqs           commonModels.FAQStore
	queries        commonModels.QueryStore
	reviews        commonModels.ReviewStore
	questionnaires commonModels.QuestionnaireStore
	bot            bot.Service
	jobs           *job.Service
	tokens         *auth.TokenManager
	db             Pinger
	settings       *config.Settings
	logger         *logger_i.Logger
}

type Config struct {
	Users          commonModels.UserStore
	FAQs           commonModels.FAQStore
	Queries        commonModels.QueryStore
	Reviews        commonModels.ReviewStore
	Questionnaires commonModels.QuestionnaireStore
	Bot            bot.Service
	Jobs           *job.Service
	Tokens         *auth.TokenManager
	DB             Pinger
	Settings       *config.Settings
}

func New(cfg Config) *Handler {
	return &Handler{
		users:          cfg.Users,
		faqs:           cfg.FAQs,
		queries:        cfg.Queries,
		reviews:        cfg.Reviews,
		questionnaires: cfg.Questionnaires,
		bot:            cfg.Bot,
		jobs:           cfg.Jobs,
		tokens:         cfg.Tokens,
		db:             cfg.DB,
		settings:       cfg.Settings,
		logger:         logger_i.NewLogger("Handlers"),
	}
}

// pushJob is a blocking send to keep the system from being overwhelmed.
// Every N requests the dispatcher is signalled to grow the pool; rebuild
// jobs always get the signal since they hold a worker for a while.
func (h *Handler) pushJob(newJob jobModel.Job) {
	metrics.IncrementJobsInQueue()
	h.jobs.JobChannel <- newJob

	accurateCount := atomic.AddInt64(&h.jobs.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || newJob.JobType == jobModel.JobTypeRebuild {
		metrics.StartDispatcherSignalCount() //metrics
		h.jobs.DispatcherChannel <- true
	}
}
