package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
)

// Retrain godoc
// @Summary      Rebuild the FAQ vector index (admin)
// @Description  Queues a background job that re-embeds every FAQ and swaps the index. Returns 202 with the job id.
// @Tags         Retrain
// @Produce      json
// @Success      202  {object}  api.RebuildAcceptedResponse
// @Router       /retrain [post]
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)

	newJob := jobModel.Job{
		Id:          utils.GetNewUUID(),
		TraceId:     traceId,
		JobType:     jobModel.JobTypeRebuild,
		Payload:     jobModel.JobPayload{RequestedBy: claims.Email()},
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.RebuildInit,
	}
	h.pushJob(newJob)

	writeJsonResponse(w, http.StatusAccepted, api.RebuildAcceptedResponse{
		JobID:     newJob.Id,
		StatusURL: fmt.Sprintf("retrain/status?job_id=%s", newJob.Id),
	})
}

// RetrainStatus godoc
// @Summary      Status of a rebuild (admin)
// @Description  With ?job_id= reports that job; otherwise the most recently finished rebuild.
// @Tags         Retrain
// @Produce      json
// @Success      200  {object}  api.RebuildStatusResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /retrain/status [get]
func (h *Handler) RetrainStatus(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("job_id")
	if key == "" {
		key = jobModel.LastRebuildKey
	}

	job, found := h.jobs.JobStore.GetJob(r.Context(), key)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "No rebuild recorded")
		return
	}

	resp := api.RebuildStatusResponse{
		State:       string(job.Status),
		TotalFAQs:   job.Payload.FAQCount,
		RequestedBy: job.Payload.RequestedBy,
	}
	if !job.EndTime.IsZero() {
		resp.LastUpdated = job.EndTime.UTC().Format(time.RFC3339)
	}
	if job.Status == jobModel.JobStatusError {
		resp.Message = job.Error.Message
	}
	writeJsonResponse(w, http.StatusOK, resp)
}
