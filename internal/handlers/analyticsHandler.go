package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// AnalyticsOverview godoc
// @Summary      Overview metrics
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  api.AnalyticsOverviewResponse
// @Router       /analytics/overview [get]
func (h *Handler) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	userCounts, err := h.users.CountUsers(ctx)
	if err != nil {
		h.logger.Error("Overview user counts failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving analytics data")
		return
	}
	activeUsers, err := h.users.CountUsersCreatedSince(ctx, thirtyDaysAgo)
	if err != nil {
		h.logger.Error("Overview active users failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving analytics data")
		return
	}
	totalFAQs, err := h.faqs.CountFAQs(ctx)
	if err != nil {
		h.logger.Error("Overview FAQ count failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving analytics data")
		return
	}

	// No query history yet: report the documented defaults.
	successRate := 85.0
	avgResponseTime := 1.2
	if stats, err := h.queries.Stats(ctx); err == nil && stats.Total > 0 {
		successRate = math.Round(float64(stats.Answered)/float64(stats.Total)*1000) / 10
		if stats.AvgResponseTime > 0 {
			avgResponseTime = math.Round(stats.AvgResponseTime*100) / 100
		}
	}

	writeJsonResponse(w, http.StatusOK, api.AnalyticsOverviewResponse{
		TotalUsers:      userCounts.Total,
		ActiveUsers:     activeUsers,
		SuccessRate:     successRate,
		AvgResponseTime: avgResponseTime,
		TotalFAQs:       totalFAQs,
	})
}

// TopFAQs godoc
// @Summary      Most relevant FAQs with keyword categories
// @Tags         Analytics
// @Produce      json
// @Param        limit  query  int  false  "max entries"  default(10)
// @Success      200  {object}  api.TopFAQsResponse
// @Router       /analytics/top-faqs [get]
func (h *Handler) TopFAQs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	faqs, err := h.faqs.ListFAQs(r.Context(), limit)
	if err != nil {
		h.logger.Error("Top FAQs failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving FAQ data")
		return
	}

	resp := api.TopFAQsResponse{FAQs: []api.TopFAQ{}}
	for _, faq := range faqs {
		resp.FAQs = append(resp.FAQs, api.TopFAQ{
			Question: faq.Question,
			Count:    1,
			Category: classifyQuestion(faq.Question),
		})
	}
	writeJsonResponse(w, http.StatusOK, resp)
}

var questionCategories = []struct {
	name     string
	keywords []string
}{
	{"admission", []string{"admission", "apply", "enroll"}},
	{"fees", []string{"fee", "cost", "payment"}},
	{"academic", []string{"class", "course", "subject", "semester"}},
	{"facilities", []string{"library", "facility", "building"}},
	{"financial", []string{"scholarship", "financial"}},
}

func classifyQuestion(question string) string {
	lower := strings.ToLower(question)
	for _, cat := range questionCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return "general"
}

// UserActivity godoc
// @Summary      User activity metrics
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  api.UserActivityResponse
// @Router       /analytics/user-activity [get]
func (h *Handler) UserActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userCounts, err := h.users.CountUsers(ctx)
	if err != nil {
		h.logger.Error("User activity counts failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving user activity data")
		return
	}
	newUsers, err := h.users.CountUsersCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		h.logger.Error("User activity new users failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving user activity data")
		return
	}

	mostActive := []api.ActiveUserItem{}
	if top, err := h.queries.TopUsers(ctx, 5); err == nil {
		for _, u := range top {
			mostActive = append(mostActive, api.ActiveUserItem{
				UserID:  u.UserID,
				Name:    u.Name,
				Queries: u.Queries,
			})
		}
	}

	writeJsonResponse(w, http.StatusOK, api.UserActivityResponse{
		TotalUsers:        userCounts.Total,
		NewUsersThisMonth: newUsers,
		MostActiveUsers:   mostActive,
		UserEngagement: api.UserEngagement{
			DailyActive:   engagementTier(userCounts.Total, 0.1),
			WeeklyActive:  engagementTier(userCounts.Total, 0.3),
			MonthlyActive: engagementTier(userCounts.Total, 0.6),
		},
	})
}

// engagementTier estimates actives as a fraction of the user base,
// clamped to [1, total]. Zero users stays zero.
func engagementTier(total int64, fraction float64) int64 {
	if total == 0 {
		return 0
	}
	tier := int64(float64(total) * fraction)
	if tier < 1 {
		tier = 1
	}
	if tier > total {
		tier = total
	}
	return tier
}

// LogQuery godoc
// @Summary      Log a chatbot query for analytics
// @Description  A repeated unanswered question from the same user increments attempts instead of inserting a duplicate.
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        request  body      api.LogQueryRequest  true  "Query outcome"
// @Success      200      {object}  api.SuccessResponse
// @Router       /analytics/log-query [post]
func (h *Handler) LogQuery(w http.ResponseWriter, r *http.Request) {
	var req api.LogQueryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	rec := &commonModels.QueryRecord{
		Question:     strings.TrimSpace(req.Question),
		UserID:       req.UserID,
		UserName:     "Anonymous",
		Answered:     req.ResponseFound,
		Answer:       req.Response,
		ResponseTime: req.ResponseTime,
		Attempts:     1,
		Timestamp:    time.Now().UTC(),
	}
	if err := h.queries.LogOrIncrement(r.Context(), rec); err != nil {
		// Logging failures never break the caller.
		h.logger.Error("Query log failed", "error", err)
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Query logged successfully"})
}

// ConvertToFAQ godoc
// @Summary      Convert a failed query into a FAQ entry
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        request  body      api.ConvertToFAQRequest  true  "Question and optional answer"
// @Success      200      {object}  api.ConvertToFAQResponse
// @Router       /analytics/convert-to-faq [post]
func (h *Handler) ConvertToFAQ(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req api.ConvertToFAQRequest
	if !decodeBody(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	existing, err := h.faqs.FindFAQByQuestion(r.Context(), question)
	if err != nil {
		h.logger.Error("FAQ duplicate check failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to convert query to FAQ")
		return
	}
	if existing != nil {
		writeJsonResponse(w, http.StatusOK, api.ConvertToFAQResponse{
			Status:  "exists",
			Message: "Similar FAQ already exists",
			FAQID:   existing.ID.Hex(),
		})
		return
	}

	answer := strings.TrimSpace(req.SuggestedAnswer)
	status := "active"
	if answer == "" {
		answer = "Answer pending - to be filled by admin"
		status = "pending"
	}
	category := req.Category
	if category == "" {
		category = "general"
	}

	faq := &commonModels.FAQ{
		Question:  question,
		Answer:    answer,
		Category:  category,
		Status:    status,
		Source:    commonModels.FAQSourceFailedQuery,
		CreatedBy: claims.Email(),
		CreatedAt: time.Now().UTC(),
	}
	faqID, err := h.faqs.InsertFAQ(r.Context(), faq)
	if err != nil {
		h.logger.Error("FAQ insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to convert query to FAQ")
		return
	}

	if err := h.queries.MarkConverted(r.Context(), question, faqID); err != nil {
		h.logger.Warn("Could not mark queries converted", "error", err)
	}

	writeJsonResponse(w, http.StatusOK, api.ConvertToFAQResponse{
		Status:      "created",
		Message:     "Failed query successfully converted to FAQ",
		FAQID:       faqID,
		NeedsAnswer: status == "pending",
	})
}

// DismissFailedQuery godoc
// @Summary      Dismiss all unanswered records for a question
// @Tags         Analytics
// @Produce      json
// @Param        question  query  string  true  "The failed question"
// @Success      200  {object}  api.SuccessResponse
// @Router       /analytics/dismiss-failed-query [delete]
func (h *Handler) DismissFailedQuery(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	question := strings.TrimSpace(r.URL.Query().Get("question"))
	if question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	modified, err := h.queries.DismissFailed(r.Context(), question, claims.Email())
	if err != nil {
		h.logger.Error("Dismiss failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to dismiss query")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{
		Success: true,
		Message: "Dismissed " + strconv.FormatInt(modified, 10) + " failed queries",
	})
}
