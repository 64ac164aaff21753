package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/auth"
	"github.com/ScholarStream/scholarship-service/internal/config"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	scholarshipHandler *ScholarshipHandler
	applicationHandler *ApplicationHandler
	reviewHandler      *ReviewHandler
	paymentHandler     *PaymentHandler
	authMiddleware     *CookieAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(tokens, cfg, logger),
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		scholarshipHandler: NewScholarshipHandler(serviceManager.Scholarship(), logger),
		applicationHandler: NewApplicationHandler(serviceManager.Application(), logger),
		reviewHandler:      NewReviewHandler(serviceManager.Review(), logger),
		paymentHandler:     NewPaymentHandler(serviceManager.Payment(), logger),
		authMiddleware:     NewCookieAuthMiddleware(tokens, userRepo),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	authn := hm.authMiddleware.AuthMiddleware()
	modOrAdmin := hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin)
	adminOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)

	api := router.Group("/api")
	{
		// Session lifecycle
		api.POST("/jwt", hm.authHandler.IssueToken)
		api.POST("/logout", hm.authHandler.Logout)

		// Users
		users := api.Group("/users")
		{
			users.POST("/register", hm.userHandler.Register)
			users.GET("", authn, adminOnly, hm.userHandler.ListUsers)
			users.GET("/:email", authn, hm.userHandler.GetUser)
			users.PATCH("/:email/role", authn, adminOnly, hm.userHandler.UpdateRole)
			users.DELETE("/:email", authn, adminOnly, hm.userHandler.DeleteUser)
		}

		// Scholarships: reads are public, writes are admin only
		scholarships := api.Group("/scholarships")
		{
			scholarships.GET("", hm.scholarshipHandler.ListScholarships)
			scholarships.GET("/:id", hm.scholarshipHandler.GetScholarship)
			scholarships.POST("", authn, adminOnly, hm.scholarshipHandler.CreateScholarship)
			scholarships.PUT("/:id", authn, adminOnly, hm.scholarshipHandler.UpdateScholarship)
			scholarships.DELETE("/:id", authn, adminOnly, hm.scholarshipHandler.DeleteScholarship)
		}
		api.GET("/admin/scholarships", authn, adminOnly, hm.scholarshipHandler.ListAllScholarships)

		// Applications
		applications := api.Group("/applications")
		applications.Use(authn)
		{
			applications.POST("", hm.applicationHandler.SubmitApplication)
			applications.GET("", modOrAdmin, hm.applicationHandler.ListApplications)
			applications.GET("/export", modOrAdmin, hm.applicationHandler.ExportApplications)
			applications.GET("/user/:email", hm.authMiddleware.RequireOwnerMiddleware("email"), hm.applicationHandler.ListUserApplications)
			applications.PATCH("/:id/status", modOrAdmin, hm.applicationHandler.UpdateStatus)
			applications.PATCH("/:id/feedback", modOrAdmin, hm.applicationHandler.UpdateFeedback)
			applications.PATCH("/:id/payment", hm.applicationHandler.UpdatePaymentStatus)
			applications.DELETE("/:id", hm.applicationHandler.WithdrawApplication)
		}

		// Reviews: per-scholarship reads are public, everything else needs a session
		reviews := api.Group("/reviews")
		{
			reviews.GET("/scholarship/:id", hm.reviewHandler.ListScholarshipReviews)
			reviews.GET("", authn, modOrAdmin, hm.reviewHandler.ListReviews)
			reviews.GET("/user/:email", authn, hm.reviewHandler.ListUserReviews)
			reviews.POST("", authn, hm.reviewHandler.CreateReview)
			reviews.PATCH("/:id", authn, hm.reviewHandler.UpdateReview)
			reviews.DELETE("/:id", authn, hm.reviewHandler.DeleteReview)
		}

		// Payments
		api.POST("/create-payment-intent", authn, hm.paymentHandler.CreatePaymentIntent)
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "scholarship-service",
	})
}
