package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
	}
}

// SubmitApplication records a new application owned by the caller.
// @Summary Submit application
// @Tags applications
// @Accept json
// @Produce json
// @Success 201 {object} models.Application
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /applications [post]
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req services.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	app, err := h.applicationService.Submit(c.Request.Context(), c.GetString("user_email"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "application submitted", "id", app.ID, "scholarship_id", app.ScholarshipID)
	c.JSON(http.StatusCreated, app)
}

// ListApplications returns every application.
// @Summary List all applications
// @Tags applications
// @Produce json
// @Success 200 {array} models.Application
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.applicationService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListUserApplications returns the applications owned by one user.
// @Summary List applications by user
// @Tags applications
// @Produce json
// @Param email path string true "Owner email"
// @Success 200 {array} models.Application
// @Router /applications/user/{email} [get]
func (h *ApplicationHandler) ListUserApplications(c *gin.Context) {
	apps, err := h.applicationService.ListForOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatus overwrites the moderation status.
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.applicationService.SetStatus(c.Request.Context(), id, &req, c.GetString("user_email")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "application status updated", "id", id, "status", req.Status)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateFeedback attaches reviewer feedback to an application.
// @Summary Update application feedback
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /applications/{id}/feedback [patch]
func (h *ApplicationHandler) UpdateFeedback(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.applicationService.SetFeedback(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdatePaymentStatus marks the caller's own application as paid.
// @Summary Update application payment status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /applications/{id}/payment [patch]
func (h *ApplicationHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.applicationService.SetPaymentStatus(c.Request.Context(), id, &req, c.GetString("user_email")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "application payment status updated", "id", id, "payment_status", req.PaymentStatus)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// WithdrawApplication deletes an application. Allowed to the owner and to
// the moderation tier; the service enforces that.
// @Summary Withdraw application
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(c.Request.Context(), id, c.GetString("user_email")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "application withdrawn", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportApplications streams an XLSX report of every application, one row
// per application.
// @Summary Export applications report
// @Tags applications
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "XLSX report"
// @Router /applications/export [get]
func (h *ApplicationHandler) ExportApplications(c *gin.Context) {
	apps, err := h.applicationService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	file, err := buildApplicationsWorkbook(apps)
	if err != nil {
		h.LogError(c, err, "failed to build applications workbook")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to build report",
		})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("applications-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "failed to stream applications workbook")
	}
}

func buildApplicationsWorkbook(apps []*models.Application) (*excelize.File, error) {
	file := excelize.NewFile()
	const sheet = "Applications"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Applicant Email", "Scholarship ID", "Status", "Payment Status", "Feedback", "Submitted At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, app := range apps {
		feedback := ""
		if app.Feedback != nil {
			feedback = *app.Feedback
		}
		values := []interface{}{
			app.ID,
			app.UserEmail,
			app.ScholarshipID,
			string(app.Status),
			string(app.PaymentStatus),
			feedback,
			app.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return file, nil
}
