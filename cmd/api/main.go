// @title           University Bot API
// @version         1.0
// @description     Backend for the university chatbot: FAQ retrieval, auth, analytics and retraining.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/bot/embedding"
	"github.com/campusbot/UniBotAPI/internal/bot/embedding/googleEmbedding"
	"github.com/campusbot/UniBotAPI/internal/bot/embedding/openaiEmbedding"
	"github.com/campusbot/UniBotAPI/internal/bot/vectorIndex/qdrantDB"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/data/mongoStore"
	"github.com/campusbot/UniBotAPI/internal/data/store"
	jobmodel "github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/handlers"
	"github.com/campusbot/UniBotAPI/internal/job"
	"github.com/campusbot/UniBotAPI/internal/middleware"
	"github.com/campusbot/UniBotAPI/internal/server"
	"github.com/campusbot/UniBotAPI/internal/worker"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var (
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	settings := config.Load()

	logger_i.Init(settings.Debug)
	var logger = logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//persistence
	mongo, err := mongoStore.Connect(serviceContext, settings)
	if err != nil {
		logger.Error("Mongo is unreachable, shutting down", "error", err)
		return
	}
	defer mongo.Disconnect(context.Background())

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.JobBufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext, settings.RedisAddr, settings.RedisPassword),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil {
		logger.Error("Redis job store is offline, falling back to in-memory")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	jobService := job.InitJobService(serviceConfig)

	//retrieval stack
	vectorIndex := qdrantDB.GetQdrantClient(serviceContext, settings.QdrantHost, settings.QdrantPort)
	embedder := pickEmbedder(serviceContext, settings)

	if vectorIndex == nil || embedder == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services", "VectorIndex", vectorIndex != nil, "Embedder", embedder != nil)
		return
	}

	botService := bot.NewService(vectorIndex, embedder, mongo.FAQs())

	//init worker pool
	worker.InitServices(jobService, botService, mongo.Queries())
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//auth
	tokenManager := auth.NewTokenManager(settings.JWTSecretKey)
	middleware.InitAuth(tokenManager)

	h := handlers.New(handlers.Config{
		Users:          mongo.Users(),
		FAQs:           mongo.FAQs(),
		Queries:        mongo.Queries(),
		Reviews:        mongo.Reviews(),
		Questionnaires: mongo.Questionnaires(),
		Bot:            botService,
		Jobs:           jobService,
		Tokens:         tokenManager,
		DB:             mongo,
		Settings:       settings,
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}

	listenAddr := net.JoinHostPort(settings.Host, settings.Port)
	go server.CreateServer(listenAddr, h, settings.CORSOrigins)
	go server.ShutDownHandler(shutdownParams)

	<-stopExecution
	logger.Info("Server stopped")
}

func pickEmbedder(ctx context.Context, settings *config.Settings) embedding.Embedder {
	switch settings.EmbeddingProvider {
	case config.ProviderGoogle:
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, settings.GoogleAPIKey)
	default:
		return openaiEmbedding.GetOpenAIEmbeddingClient(settings.OpenAIAPIKey)
	}
}
