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

// ListFAQs godoc
// @Summary      List all FAQs
// @Tags         FAQs
// @Produce      json
// @Success      200  {array}  commonModels.FAQ
// @Router       /faqs [get]
func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.ListFAQs(r.Context(), 0)
	if err != nil {
		h.logger.Error("FAQ list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving FAQs")
		return
	}
	writeJsonResponse(w, http.StatusOK, faqs)
}

// CreateFAQ godoc
// @Summary      Add a FAQ (admin)
// @Tags         FAQs
// @Accept       json
// @Produce      json
// @Param        request  body      api.FAQRequest  true  "Question and answer"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /faqs [post]
func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req api.FAQRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	claims, _ := auth.ClaimsFromContext(r.Context())
	faq := &commonModels.FAQ{
		Question:  strings.TrimSpace(req.Question),
		Answer:    strings.TrimSpace(req.Answer),
		Category:  req.Category,
		Source:    commonModels.FAQSourceManual,
		CreatedBy: claims.Email(),
		CreatedAt: time.Now().UTC(),
	}
	id, err := h.faqs.InsertFAQ(r.Context(), faq)
	if err != nil {
		h.logger.Error("FAQ insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to add FAQ")
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.IDResponse{ID: id})
}

// DeleteFAQ godoc
// @Summary      Remove a FAQ (admin)
// @Tags         FAQs
// @Produce      json
// @Param        id   path      string  true  "FAQ id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /faqs/{id} [delete]
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id := utils.GetChiURLParam(r, "id")
	err := h.faqs.DeleteFAQ(r.Context(), id)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "FAQ not found")
		return
	}
	if err != nil {
		h.logger.Error("FAQ delete failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "FAQ deleted successfully"})
}
