package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// Register creates a user record, or echoes the existing one when the email
// is already registered.
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} services.RegisterUserResponse "Existing user"
// @Success 201 {object} services.RegisterUserResponse "Created user"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// GetUser returns one user by email.
// @Summary Get user by email
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{email} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Param("email")
	h.LogRequest(c, "getting user", "email", email)

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers returns every user.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole changes a user's role.
// @Summary Update user role
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{email}/role [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	email := c.Param("email")

	var req services.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), email, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "user role updated", "email", email, "role", req.Role)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUser removes a user record.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{email} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	email := c.Param("email")

	if err := h.userService.Delete(c.Request.Context(), email); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "user deleted", "email", email)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
