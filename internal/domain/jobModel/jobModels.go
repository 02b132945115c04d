package jobModel

import (
	"context"
	"time"

	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string
type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "ERROR"

	RebuildInit      InternalStatus = "Init"
	RebuildFetch     InternalStatus = "FetchFAQs"
	RebuildEmbedding InternalStatus = "EmbeddingAPI"
	RebuildUpsert    InternalStatus = "VectorUpsert"
	QueryLogWrite    InternalStatus = "QueryLogWrite"
	Complete         InternalStatus = "Complete"

	JobTypeRebuild  JobType = "Rebuild"
	JobTypeQueryLog JobType = "QueryLog"
)

// LastRebuildKey aliases the most recent completed rebuild job so the
// status endpoint can find it without scanning.
const LastRebuildKey = "rebuild:last"

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	Payload     JobPayload     `json:"payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	// Rebuild jobs
	RequestedBy string `json:"requested_by,omitempty"`
	FAQCount    int    `json:"faq_count,omitempty"`

	// QueryLog jobs carry the record to persist off the request path.
	Query *commonModels.QueryRecord `json:"query,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	// SaveJobAs stores the job under an explicit key, e.g. LastRebuildKey.
	SaveJobAs(ctx context.Context, key string, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
