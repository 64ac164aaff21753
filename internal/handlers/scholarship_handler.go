package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type ScholarshipHandler struct {
	BaseHandler
	scholarshipService services.ScholarshipService
}

func NewScholarshipHandler(scholarshipService services.ScholarshipService, logger utils.Logger) *ScholarshipHandler {
	return &ScholarshipHandler{
		BaseHandler:        NewBaseHandler(logger),
		scholarshipService: scholarshipService,
	}
}

// ListScholarships returns one page of the public catalogue.
// @Summary List scholarships
// @Tags scholarships
// @Produce json
// @Param search query string false "Substring match over name, university and degree"
// @Param country query string false "Exact country filter"
// @Param category query string false "Exact category filter"
// @Param sort query string false "fees-asc, fees-desc, date-asc or date-desc"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 9)"
// @Success 200 {object} services.ScholarshipListResponse
// @Router /scholarships [get]
func (h *ScholarshipHandler) ListScholarships(c *gin.Context) {
	filters := repositories.ScholarshipFilters{
		Search:   c.Query("search"),
		Country:  c.Query("country"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	filters.Page, _ = strconv.Atoi(c.Query("page"))
	filters.Limit, _ = strconv.Atoi(c.Query("limit"))

	resp, err := h.scholarshipService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAllScholarships returns the full unpaginated catalogue.
// @Summary List all scholarships
// @Tags scholarships
// @Produce json
// @Success 200 {array} models.Scholarship
// @Router /admin/scholarships [get]
func (h *ScholarshipHandler) ListAllScholarships(c *gin.Context) {
	scholarships, err := h.scholarshipService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scholarships)
}

// GetScholarship returns one scholarship by ID.
// @Summary Get scholarship
// @Tags scholarships
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {object} models.Scholarship
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /scholarships/{id} [get]
func (h *ScholarshipHandler) GetScholarship(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	scholarship, err := h.scholarshipService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scholarship)
}

// CreateScholarship adds a scholarship to the catalogue.
// @Summary Create scholarship
// @Tags scholarships
// @Accept json
// @Produce json
// @Success 201 {object} models.Scholarship
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /scholarships [post]
func (h *ScholarshipHandler) CreateScholarship(c *gin.Context) {
	var req services.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	scholarship, err := h.scholarshipService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "scholarship created", "id", scholarship.ID)
	c.JSON(http.StatusCreated, scholarship)
}

// UpdateScholarship applies a partial update. The body is a free-form JSON
// object; fields outside the allow-list are dropped, and a request that ends
// up changing nothing is rejected.
// @Summary Update scholarship
// @Tags scholarships
// @Accept json
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /scholarships/{id} [put]
func (h *ScholarshipHandler) UpdateScholarship(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.scholarshipService.Update(c.Request.Context(), id, fields); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "scholarship updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteScholarship removes a scholarship. Existing applications referencing
// it are left in place.
// @Summary Delete scholarship
// @Tags scholarships
// @Produce json
// @Param id path int true "Scholarship ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /scholarships/{id} [delete]
func (h *ScholarshipHandler) DeleteScholarship(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scholarshipService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "scholarship deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
