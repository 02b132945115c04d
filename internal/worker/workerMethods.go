package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/campusbot/UniBotAPI/internal/config"
	jobmodel "github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 5*time.Minute)
	defer cancel()
	log := logger.With("traceId", job.TraceId, "jobId", job.Id)
	log.Debug("Processing job", "jobType", job.JobType)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeRebuild:
		job = _botService.RebuildIndex(ctx, job)

	case jobmodel.JobTypeQueryLog:
		job = logQuery(ctx, job)

	default:
		log.Error("Unknown job type, dropping", "jobType", job.JobType)
		return
	}

	job.EndTime = time.Now()

	finalStatus := jobmodel.JobStatusComplete
	if job.Status == jobmodel.JobStatusError {
		finalStatus = jobmodel.JobStatusError
	}
	saveJobState(ctx, job, finalStatus)

	if job.JobType == jobmodel.JobTypeRebuild {
		finishRebuild(ctx, job, finalStatus)
	}
}

// finishRebuild aliases the finished job under LastRebuildKey so the
// status endpoint can answer "when did we last retrain" without an id.
func finishRebuild(ctx context.Context, job jobmodel.Job, status jobmodel.JobStatus) {
	if status == jobmodel.JobStatusComplete {
		metrics.CountRebuild("success")
	} else {
		metrics.CountRebuild("error")
	}
	job.Status = status
	if err := _jobService.JobStore.SaveJobAs(ctx, jobmodel.LastRebuildKey, job); err != nil {
		logger.Error("Failed to alias rebuild job", "err", err)
	}
}

func logQuery(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	job.CurrentStep = jobmodel.QueryLogWrite
	if job.Payload.Query == nil {
		logger.Error("Query log job without a record", "jobId", job.Id)
		job.Status = jobmodel.JobStatusError
		return job
	}
	if err := _queryStore.LogOrIncrement(ctx, job.Payload.Query); err != nil {
		logger.Error("Failed to persist query log", "err", err)
		job.Status = jobmodel.JobStatusError
		return job
	}
	job.CurrentStep = jobmodel.Complete
	return job
}

func removeWorker(reason string) {
	atomic.AddInt64(&currentWorkerCount, -1)
	retireWorker(reason)
}

// tryRetire reserves one retirement slot above the worker floor. The CAS
// keeps workers whose idle timers fire together from all retiring past
// the minimum.
func tryRetire() bool {
	for {
		n := atomic.LoadInt64(&currentWorkerCount)
		if n <= minWorkerCount {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, n, n-1) {
			return true
		}
	}
}

func retireWorker(reason string) {
	workerWaitGroup.Done()
	logger.Info("Removed worker ", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
