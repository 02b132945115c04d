package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/job"
	"github.com/campusbot/UniBotAPI/internal/metrics"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var (
	_jobService        *job.Service
	_botService        bot.Service
	_queryStore        queryLogger
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             *logger_i.Logger
	minWorkerCount     = config.MinWorkerCount
)

// queryLogger is the slice of the query store the worker needs for
// asynchronous query logging.
type queryLogger interface {
	LogOrIncrement(ctx context.Context, rec *commonModels.QueryRecord) error
}

func InitServices(jobService *job.Service, botService bot.Service, queryStore queryLogger) {
	_jobService = jobService
	_botService = botService
	_queryStore = queryStore
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing worker pool")
	go dispatcher()
}

func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "WorkerCount :", currentWorkerCount)
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	logger.Info("Created new worker")
}

func worker() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-stopWorkerChannel:
			removeWorker("Stop worker signal received")
			return

		case <-time.After(config.IdleWorkerTimeout):
			// Worker was idle for too long, retire if the pool is above
			// its floor
			if tryRetire() {
				retireWorker("Idle worker timeout - Removed worker")
				return
			}
		}
	}
}
