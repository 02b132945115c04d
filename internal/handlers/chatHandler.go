package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/internal/domain/jobModel"
)

// Query godoc
// @Summary      Ask the chatbot a question
// @Description  Embeds the question, checks the semantic cache, searches the FAQ index and answers. Falls back to an apology message instead of failing.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuestionRequest  true  "The question"
// @Success      200      {object}  api.AnswerResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /query [post]
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.QuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	start := time.Now()
	result := h.bot.Answer(r.Context(), question)
	responseTime := time.Since(start).Seconds()

	h.enqueueQueryLog(r, question, result.Answered, result.Answer, responseTime)

	writeJsonResponse(w, http.StatusOK, api.AnswerResponse{Answer: result.Answer})
}

// enqueueQueryLog hands the record to the worker pool so Mongo writes
// stay off the request path.
func (h *Handler) enqueueQueryLog(r *http.Request, question string, answered bool, answer string, responseTime float64) {
	rec := &commonModels.QueryRecord{
		Question:     question,
		UserName:     "Anonymous",
		UserAgent:    r.UserAgent(),
		IPAddress:    clientIP(r),
		Answered:     answered,
		ResponseTime: responseTime,
		Attempts:     1,
		Timestamp:    time.Now().UTC(),
	}
	if answered {
		rec.Answer = answer
	}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		rec.UserID = claims.UserID
		rec.UserName = claims.Name
		rec.UserEmail = claims.Email()
	}

	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	h.pushJob(jobModel.Job{
		Id:          utils.GetNewUUID(),
		TraceId:     traceId,
		JobType:     jobModel.JobTypeQueryLog,
		Payload:     jobModel.JobPayload{Query: rec},
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.QueryLogWrite,
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
