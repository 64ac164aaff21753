package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

// CreateReview records a review owned by the caller.
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Success 201 {object} models.Review
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), c.GetString("user_email"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "review created", "id", review.ID, "scholarship_id", review.ScholarshipID)
	c.JSON(http.StatusCreated, review)
}

// ListReviews returns every review.
// @Summary List all reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.Review
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListScholarshipReviews returns the reviews for one scholarship.
// @Summary List reviews by scholarship
// @Tags reviews
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {array} models.Review
// @Router /reviews/scholarship/{id} [get]
func (h *ReviewHandler) ListScholarshipReviews(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListForScholarship(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListUserReviews returns the reviews written by one user.
// @Summary List reviews by user
// @Tags reviews
// @Produce json
// @Param email path string true "Reviewer email"
// @Success 200 {array} models.Review
// @Router /reviews/user/{email} [get]
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListForUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// UpdateReview edits the caller's own review.
// @Summary Update review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.reviewService.Update(c.Request.Context(), id, &req, c.GetString("user_email")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteReview removes a review. Allowed to the owner and to the moderation
// tier; the service enforces that.
// @Summary Delete review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id, c.GetString("user_email")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
