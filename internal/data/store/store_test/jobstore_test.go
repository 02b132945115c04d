package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/data/redisStore"
	"github.com/campusbot/UniBotAPI/internal/data/store"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
)

func newTestJobStore(t *testing.T) (*miniredis.Miniredis, *store.RedisJobStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, store.TestJobStore(redisStore.NewTestStore(client))
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr, jobStore := newTestJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:      jobID,
		JobType: jobModel.JobTypeRebuild,
		Status:  jobModel.JobStatusRunning,
		Payload: jobModel.JobPayload{
			RequestedBy: "admin@university.edu",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrievedJob.Payload.RequestedBy != testJob.Payload.RequestedBy {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.Payload.RequestedBy, testJob.Payload.RequestedBy)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Alias Under Explicit Key", func(t *testing.T) {
		if err := jobStore.SaveJobAs(ctx, jobModel.LastRebuildKey, testJob); err != nil {
			t.Fatalf("SaveJobAs failed: %v", err)
		}

		aliased, found := jobStore.GetJob(ctx, jobModel.LastRebuildKey)
		if !found {
			t.Fatal("Aliased job not found under explicit key")
		}
		// The aliased copy keeps its real id.
		if aliased.Id != jobID {
			t.Errorf("Aliased job id = %s, want %s", aliased.Id, jobID)
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	_, jobStore := newTestJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
}

func TestInMemoryJobStore_AliasRoundtrip(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	job := jobModel.Job{Id: "mem-job", Status: jobModel.JobStatusComplete}

	if err := jobStore.SaveJobAs(ctx, jobModel.LastRebuildKey, job); err != nil {
		t.Fatalf("SaveJobAs failed: %v", err)
	}
	got, found := jobStore.GetJob(ctx, jobModel.LastRebuildKey)
	if !found || got.Id != "mem-job" {
		t.Fatalf("alias lookup = (%+v, %v), want mem-job under %s", got, found, jobModel.LastRebuildKey)
	}
}
