package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

const maxFeedbackLength = 500

// CreateReview godoc
// @Summary      Submit a review (one per user)
// @Tags         Reviews
// @Accept       json
// @Produce      json
// @Param        request  body      api.ReviewRequest  true  "Rating and feedback"
// @Success      201      {object}  api.IDResponse
// @Failure      400      {object}  api.ErrorResponse "Duplicate review or bad rating"
// @Router       /reviews [post]
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req api.ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		WriteErrorResponse(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	feedback := strings.TrimSpace(req.Feedback)
	if len(feedback) > maxFeedbackLength {
		WriteErrorResponse(w, http.StatusBadRequest, "Feedback must be at most 500 characters")
		return
	}

	existing, err := h.reviews.GetReviewByUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Review lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	if existing != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "You have already submitted a review")
		return
	}

	review := &commonModels.Review{
		UserID:    claims.UserID,
		UserName:  claims.Name,
		UserEmail: claims.Email(),
		Rating:    req.Rating,
		Feedback:  feedback,
	}
	id, err := h.reviews.InsertReview(r.Context(), review)
	if err != nil {
		h.logger.Error("Review insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.IDResponse{ID: id})
}

// ListReviews godoc
// @Summary      List reviews
// @Tags         Reviews
// @Produce      json
// @Param        limit    query  int     false  "page size"  default(50)
// @Param        skip     query  int     false  "offset"
// @Param        sort_by  query  string  false  "created_at | rating | user_name"
// @Param        order    query  string  false  "asc | desc"  default(desc)
// @Success      200  {array}  commonModels.Review
// @Router       /reviews [get]
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	skip := queryInt(r, "skip", 0)
	sortBy := r.URL.Query().Get("sort_by")
	descending := r.URL.Query().Get("order") != "asc"

	reviews, err := h.reviews.ListReviews(r.Context(), limit, skip, sortBy, descending)
	if err != nil {
		h.logger.Error("Review list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving reviews")
		return
	}
	writeJsonResponse(w, http.StatusOK, reviews)
}

// ReviewStats godoc
// @Summary      Aggregate review statistics
// @Tags         Reviews
// @Produce      json
// @Success      200  {object}  commonModels.ReviewStats
// @Router       /reviews/stats [get]
func (h *Handler) ReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviews.Stats(r.Context())
	if err != nil {
		h.logger.Error("Review stats failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving review stats")
		return
	}
	writeJsonResponse(w, http.StatusOK, stats)
}

// MyReview godoc
// @Summary      The caller's own review
// @Tags         Reviews
// @Produce      json
// @Success      200  {object}  commonModels.Review
// @Failure      404  {object}  api.ErrorResponse
// @Router       /reviews/my-review [get]
func (h *Handler) MyReview(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	review, err := h.reviews.GetReviewByUser(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Review lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving review")
		return
	}
	if review == nil {
		WriteErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, review)
}

// UpdateMyReview godoc
// @Summary      Update the caller's review
// @Tags         Reviews
// @Accept       json
// @Produce      json
// @Param        request  body      api.ReviewRequest  true  "New rating and feedback"
// @Success      200      {object}  api.SuccessResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /reviews/my-review [put]
func (h *Handler) UpdateMyReview(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req api.ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		WriteErrorResponse(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	feedback := strings.TrimSpace(req.Feedback)
	if len(feedback) > maxFeedbackLength {
		WriteErrorResponse(w, http.StatusBadRequest, "Feedback must be at most 500 characters")
		return
	}

	err := h.reviews.UpdateReviewByUser(r.Context(), claims.UserID, req.Rating, feedback)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		h.logger.Error("Review update failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Review updated successfully"})
}

// DeleteReview godoc
// @Summary      Delete a review (own, or any as admin)
// @Tags         Reviews
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /reviews/{id} [delete]
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id := utils.GetChiURLParam(r, "id")

	review, err := h.reviews.GetReview(r.Context(), id)
	if errors.Is(err, commonModels.ErrNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		h.logger.Error("Review lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if review.UserID != claims.UserID && claims.Role != commonModels.RoleAdmin {
		WriteErrorResponse(w, http.StatusForbidden, "Permission denied")
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), id); err != nil {
		if errors.Is(err, commonModels.ErrNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.Error("Review delete failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: true, Message: "Review deleted successfully"})
}
