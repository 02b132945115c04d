package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campusbot/UniBotAPI/internal/bot"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
	"github.com/campusbot/UniBotAPI/internal/job"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

// MockBotService to track if jobs are executed
type MockBotService struct {
	RebuiltCount int32
}

func (m *MockBotService) Answer(ctx context.Context, question string) bot.Result {
	return bot.Result{}
}

func (m *MockBotService) RebuildIndex(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.RebuiltCount, 1)
	j.CurrentStep = jobModel.Complete
	return j
}

type MockJobStore struct {
	mu    sync.Mutex
	saved map[string]jobModel.Job
}

func newMockJobStore() *MockJobStore {
	return &MockJobStore{saved: make(map[string]jobModel.Job)}
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.saved[jobId]
	return j, ok
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	return m.SaveJobAs(ctx, j.Id, j)
}

func (m *MockJobStore) SaveJobAs(ctx context.Context, key string, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[key] = j
	return nil
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, jobID)
}

type MockQueryLogger struct {
	LoggedCount int32
}

func (m *MockQueryLogger) LogOrIncrement(ctx context.Context, rec *commonModels.QueryRecord) error {
	atomic.AddInt32(&m.LoggedCount, 1)
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobStore := newMockJobStore()
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	mockBot := &MockBotService{}
	mockQueries := &MockQueryLogger{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockBot, mockQueries)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a rebuild job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "rebuild-1", JobType: jobModel.JobTypeRebuild}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockBot.RebuiltCount)
		if processed != 1 {
			t.Errorf("Expected 1 rebuild processed, got %d", processed)
		}

		if alias, ok := jobStore.GetJob(context.Background(), jobModel.LastRebuildKey); !ok {
			t.Error("Expected finished rebuild to be aliased under LastRebuildKey")
		} else if alias.Status != jobModel.JobStatusComplete {
			t.Errorf("Alias status got %v, want %v", alias.Status, jobModel.JobStatusComplete)
		}
	})

	t.Run("Worker persists a query log job", func(t *testing.T) {
		testJob := jobModel.Job{
			Id:      "qlog-1",
			JobType: jobModel.JobTypeQueryLog,
			Payload: jobModel.JobPayload{Query: &commonModels.QueryRecord{Question: "when is enrolment?"}},
		}
		jobSvc.JobChannel <- testJob

		time.Sleep(50 * time.Millisecond)

		logged := atomic.LoadInt32(&mockQueries.LoggedCount)
		if logged != 1 {
			t.Errorf("Expected 1 query logged, got %d", logged)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockBotService{}, &MockQueryLogger{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Grow the pool above the floor, then let the idle timers fire.
	createWorker()
	createWorker()
	time.Sleep(config.IdleWorkerTimeout + 200*time.Millisecond)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != config.MinWorkerCount {
		t.Errorf("Idle pool should have shrunk to the floor of %d, but count is %d", config.MinWorkerCount, count)
	}

	// The remaining worker holds the floor through further idle cycles.
	time.Sleep(config.IdleWorkerTimeout + 200*time.Millisecond)
	if count := atomic.LoadInt64(&currentWorkerCount); count != config.MinWorkerCount {
		t.Errorf("Floor worker retired on idle timeout, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
}
