package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// CollectQuery godoc
// @Summary      Store a user query for future training
// @Description  Works with or without a token; always reports success so the chat widget never breaks.
// @Tags         Queries
// @Accept       json
// @Produce      json
// @Param        request  body      api.CollectQueryRequest  true  "The raw query"
// @Success      200      {object}  api.SuccessResponse
// @Router       /collect-query [post]
func (h *Handler) CollectQuery(w http.ResponseWriter, r *http.Request) {
	var req api.CollectQueryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	rec := &commonModels.QueryRecord{
		Question:  query,
		UserName:  "Anonymous",
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
		Timestamp: time.Now().UTC(),
		Attempts:  1,
	}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		rec.UserID = claims.UserID
		rec.UserName = claims.Name
		rec.UserEmail = claims.Email()
	}

	if _, err := h.queries.InsertQuery(r.Context(), rec); err != nil {
		// Swallowed on purpose: collection is best effort.
		h.logger.Error("Query collection failed", "error", err)
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Query processed"})
}

// ListCollectedQueries godoc
// @Summary      List collected queries (admin)
// @Tags         Queries
// @Produce      json
// @Param        limit  query  int  false  "page size"  default(100)
// @Param        skip   query  int  false  "offset"
// @Success      200  {array}  commonModels.QueryRecord
// @Router       /admin/collected-queries [get]
func (h *Handler) ListCollectedQueries(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	skip := queryInt(r, "skip", 0)

	records, err := h.queries.ListQueries(r.Context(), limit, skip)
	if err != nil {
		h.logger.Error("Query list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving queries")
		return
	}
	writeJsonResponse(w, http.StatusOK, records)
}

// MarkQueryUsed godoc
// @Summary      Mark a query as used for training (admin)
// @Tags         Queries
// @Produce      json
// @Param        id   path      string  true  "Query id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/collected-queries/{id}/mark-used [put]
func (h *Handler) MarkQueryUsed(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	err := h.queries.MarkUsed(r.Context(), id, claims.Name)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Query not found")
		return
	}
	if err != nil {
		h.logger.Error("Mark used failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Query marked as used for training"})
}

// DeleteCollectedQuery godoc
// @Summary      Delete a collected query (admin)
// @Tags         Queries
// @Produce      json
// @Param        id   path      string  true  "Query id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/collected-queries/{id} [delete]
func (h *Handler) DeleteCollectedQuery(w http.ResponseWriter, r *http.Request) {
	id := utils.GetChiURLParam(r, "id")

	err := h.queries.DeleteQuery(r.Context(), id)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Query not found")
		return
	}
	if err != nil {
		h.logger.Error("Query delete failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Query deleted successfully"})
}

// ExportCollectedQueries godoc
// @Summary      Export collected queries as CSV (admin)
// @Tags         Queries
// @Produce      text/csv
// @Success      200  {string}  string  "CSV attachment"
// @Router       /admin/collected-queries/export [get]
func (h *Handler) ExportCollectedQueries(w http.ResponseWriter, r *http.Request) {
	records, err := h.queries.ListQueries(r.Context(), 0, 0)
	if err != nil {
		h.logger.Error("Query export failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	filename := fmt.Sprintf("collected_queries_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Query", "User Name", "User Email", "Timestamp", "Used For Training", "User Agent", "IP Address"})
	for _, rec := range records {
		used := "No"
		if rec.UsedForTraining {
			used = "Yes"
		}
		_ = cw.Write([]string{
			rec.Question,
			rec.UserName,
			rec.UserEmail,
			rec.Timestamp.UTC().Format(time.RFC3339),
			used,
			rec.UserAgent,
			rec.IPAddress,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("CSV write failed", "error", err)
	}
}

// CollectedQueryStats godoc
// @Summary      Collected query statistics (admin)
// @Tags         Queries
// @Produce      json
// @Success      200  {object}  commonModels.QueryStats
// @Router       /admin/collected-queries/stats [get]
func (h *Handler) CollectedQueryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.Stats(r.Context())
	if err != nil {
		h.logger.Error("Query stats failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, stats)
}

// ReplyAndAddFAQ godoc
// @Summary      Reply to a collected query and publish it as a FAQ (admin)
// @Tags         Queries
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Query id"
// @Param        request  body      api.QueryReplyRequest true  "The answer"
// @Success      200      {object}  api.ConvertToFAQResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/collected-queries/{id}/reply-and-add-faq [post]
func (h *Handler) ReplyAndAddFAQ(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	var req api.QueryReplyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "answer is required")
		return
	}

	rec, err := h.queries.GetQuery(r.Context(), id)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Query not found")
		return
	}
	if err != nil {
		h.logger.Error("Query lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	faq := &commonModels.FAQ{
		Question:  rec.Question,
		Answer:    answer,
		Source:    commonModels.FAQSourceQueryReply,
		CreatedBy: claims.Name,
		CreatedAt: time.Now().UTC(),
	}
	faqID, err := h.faqs.InsertFAQ(r.Context(), faq)
	if err != nil {
		h.logger.Error("FAQ insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.queries.MarkReplied(r.Context(), id, claims.Name, faqID); err != nil {
		h.logger.Warn("Could not mark query replied", "error", err)
	}

	writeJsonResponse(w, http.StatusOK, api.ConvertToFAQResponse{
		Status:  "created",
		Message: "Query replied to and added to FAQ successfully",
		FAQID:   faqID,
	})
}

func queryInt(r *http.Request, key string, def int64) int64 {
	val, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || val < 0 {
		return def
	}
	return val
}
