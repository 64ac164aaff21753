package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/auth"
	"github.com/ScholarStream/scholarship-service/internal/config"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	tokens *auth.TokenManager
	cfg    *config.Config
}

func NewAuthHandler(tokens *auth.TokenManager, cfg *config.Config, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		tokens:      tokens,
		cfg:         cfg,
	}
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// IssueToken mints a session token for the given identity and sets it as an
// HTTP-only cookie. The token body is never returned to the client.
// @Summary Issue session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "success flag"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		h.LogError(c, err, "failed to sign session token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to issue token",
		})
		return
	}

	h.setSessionCookie(c, token, int(auth.TokenTTL.Seconds()))
	h.LogRequest(c, "session token issued", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation.
// @Summary Clear session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "success flag"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// setSessionCookie writes the HTTP-only session cookie. Cross-site frontends
// in production need SameSite=None with Secure; everywhere else Strict is
// the safer default.
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	secure := false
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
		secure = true
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", secure, true)
}
