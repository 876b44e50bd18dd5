package api

import (
	"net/http"

	"jobtracker-backend/internal/auth/delivery"
	authUsecase "jobtracker-backend/internal/auth/usecase"
	emailDelivery "jobtracker-backend/internal/email/delivery"
	emailUsecasePkg "jobtracker-backend/internal/email/usecase"
	"jobtracker-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the public HTTP surface. Paths are part of the API
// contract with the frontend and must not move.
func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, emailUc emailUsecasePkg.EmailUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUc, cfg)
	emailHandler := emailDelivery.NewEmailHandler(emailUc)

	// Health check (no auth required)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Smart Job Application Tracker API",
		})
	})

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.GET("/login", authHandler.Login)
		auth.GET("/callback", authHandler.Callback)
		auth.GET("/session", authHandler.Session)
		auth.GET("/logout", authHandler.Logout)
	}

	// Email routes
	r.GET("/emails", emailHandler.GetEmails)
	r.GET("/emails/:id", emailHandler.GetEmailDetail)
	r.GET("/dashboard/stats", emailHandler.GetDashboardStats)
}
