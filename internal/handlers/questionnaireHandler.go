package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// SubmitQuestionnaire godoc
// @Summary      Ask the administration a question the bot could not answer
// @Tags         Questionnaires
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuestionnaireRequest  true  "The question"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /questionnaire [post]
func (h *Handler) SubmitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req api.QuestionnaireRequest
	if !decodeBody(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if len(question) < 10 || len(question) > 2000 {
		WriteErrorResponse(w, http.StatusBadRequest, "Question must be between 10 and 2000 characters")
		return
	}
	category := req.Category
	if category == "" {
		category = "general"
	}
	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}

	q := &commonModels.Questionnaire{
		Question:  question,
		Category:  category,
		Priority:  priority,
		Context:   strings.TrimSpace(req.Context),
		Status:    commonModels.QuestionnairePending,
		UserID:    claims.UserID,
		UserName:  claims.Name,
		UserEmail: claims.Email(),
	}
	id, err := h.questionnaires.Insert(r.Context(), q)
	if err != nil {
		h.logger.Error("Questionnaire insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to submit questionnaire")
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.IDResponse{ID: id})
}

// MyQuestionnaires godoc
// @Summary      The caller's submitted questions
// @Tags         Questionnaires
// @Produce      json
// @Success      200  {array}  commonModels.Questionnaire
// @Router       /my-questionnaires [get]
func (h *Handler) MyQuestionnaires(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	items, err := h.questionnaires.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Questionnaire list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving questionnaires")
		return
	}
	writeJsonResponse(w, http.StatusOK, items)
}

// MarkQuestionnaireRead godoc
// @Summary      Mark an answered question as read
// @Tags         Questionnaires
// @Produce      json
// @Param        id   path      string  true  "Questionnaire id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /questionnaires/{id}/mark-read [put]
func (h *Handler) MarkQuestionnaireRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	err := h.questionnaires.MarkRead(r.Context(), id, claims.UserID)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}
	if err != nil {
		h.logger.Error("Mark read failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Marked as read"})
}

// DeleteQuestionnaire godoc
// @Summary      Delete a question (own, or any as admin)
// @Tags         Questionnaires
// @Produce      json
// @Param        id   path      string  true  "Questionnaire id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /questionnaires/{id} [delete]
func (h *Handler) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	err := h.questionnaires.Delete(r.Context(), id, claims.UserID, claims.Role == commonModels.RoleAdmin)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Questionnaire not found or access denied")
		return
	}
	if err != nil {
		h.logger.Error("Questionnaire delete failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete questionnaire")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Questionnaire deleted successfully"})
}

// QuestionnaireStats godoc
// @Summary      Question counts for the caller (all users for admins)
// @Tags         Questionnaires
// @Produce      json
// @Success      200  {object}  commonModels.QuestionnaireCounts
// @Router       /questionnaire-stats [get]
func (h *Handler) QuestionnaireStats(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	counts, err := h.questionnaires.Counts(r.Context(), claims.UserID, claims.Role == commonModels.RoleAdmin)
	if err != nil {
		h.logger.Error("Questionnaire stats failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving questionnaire stats")
		return
	}
	writeJsonResponse(w, http.StatusOK, counts)
}

// UnreadAnswersCount godoc
// @Summary      How many answered questions the caller has not read yet
// @Tags         Questionnaires
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /user/unread-answers-count [get]
func (h *Handler) UnreadAnswersCount(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	count, err := h.questionnaires.CountUnreadAnswers(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Unread answers count failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]int64{"unread_count": count})
}

// AdminListQuestionnaires godoc
// @Summary      List questionnaires, optionally by status (admin)
// @Tags         Questionnaires
// @Produce      json
// @Param        status  query  string  false  "pending | answered"
// @Success      200  {array}  commonModels.Questionnaire
// @Router       /admin/questionnaires [get]
func (h *Handler) AdminListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != commonModels.QuestionnairePending && status != commonModels.QuestionnaireAnswered {
		WriteErrorResponse(w, http.StatusBadRequest, "status must be 'pending' or 'answered'")
		return
	}

	items, err := h.questionnaires.ListByStatus(r.Context(), status)
	if err != nil {
		h.logger.Error("Questionnaire list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving questionnaires")
		return
	}
	writeJsonResponse(w, http.StatusOK, items)
}

// ReplyToQuestionnaire godoc
// @Summary      Answer a pending question, optionally publishing it as a FAQ (admin)
// @Tags         Questionnaires
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Questionnaire id"
// @Param        request  body      api.QuestionnaireReplyRequest true  "The answer"
// @Success      200      {object}  api.ConvertToFAQResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/questionnaires/{id}/reply [post]
func (h *Handler) ReplyToQuestionnaire(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	var req api.QuestionnaireReplyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "answer is required")
		return
	}

	q, err := h.questionnaires.Get(r.Context(), id)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}
	if err != nil {
		h.logger.Error("Questionnaire lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.questionnaires.Answer(r.Context(), id, answer, claims.Email()); err != nil {
		h.logger.Error("Questionnaire answer failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to answer questionnaire")
		return
	}

	resp := api.ConvertToFAQResponse{
		Status:  "answered",
		Message: "Questionnaire answered successfully",
	}
	if req.AddToFAQ {
		faq := &commonModels.FAQ{
			Question:  q.Question,
			Answer:    answer,
			Category:  q.Category,
			Source:    commonModels.FAQSourceQuestionnaire,
			CreatedBy: claims.Email(),
			CreatedAt: time.Now().UTC(),
		}
		faqID, err := h.faqs.InsertFAQ(r.Context(), faq)
		if err != nil {
			h.logger.Warn("Could not add answered questionnaire to FAQ", "error", err)
		} else {
			resp.FAQID = faqID
			resp.Message = "Questionnaire answered and added to FAQ"
		}
	}
	writeJsonResponse(w, http.StatusOK, resp)
}

// AdminUnreadQuestionnairesCount godoc
// @Summary      How many questions are still pending (admin)
// @Tags         Questionnaires
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /admin/unread-questionnaires-count [get]
func (h *Handler) AdminUnreadQuestionnairesCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.questionnaires.CountPending(r.Context())
	if err != nil {
		h.logger.Error("Pending count failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]int64{"unread_count": count})
}
