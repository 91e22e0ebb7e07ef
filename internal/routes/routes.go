package routes

import (
	"github.com/gin-gonic/gin"

	"buildlink/internal/handlers"
	"buildlink/internal/middleware"
	"buildlink/internal/models"
)

// RegisterRoutes wires every API endpoint under /api/v1.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/refresh", h.AuthHandler.RefreshToken)
		auth.POST("/logout", h.AuthHandler.Logout)
		auth.POST("/request-password-reset", h.AuthHandler.RequestPasswordReset)
		auth.POST("/reset-password", h.AuthHandler.ResetPassword)
	}

	// Open-job browsing is public.
	v1.GET("/jobs", h.JobHandler.ListOpen)
	v1.GET("/jobs/:id", h.JobHandler.Get)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		profile := authed.Group("/profile")
		{
			profile.GET("/me", h.ProfileHandler.GetMe)
			profile.PATCH("/me", h.ProfileHandler.UpdateMe)
			profile.POST("/complete", h.ProfileHandler.CompleteProfile)
			profile.GET("/portfolio", h.ProfileHandler.ListPortfolio)
		}
		authed.GET("/users/:id", h.ProfileHandler.GetByID)

		jobs := authed.Group("/jobs")
		{
			jobs.POST("", middleware.RequireRoles(models.UserRoleOwner, models.UserRoleCompany), h.JobHandler.Create)
			jobs.PATCH("/:id", h.JobHandler.Update)
			jobs.DELETE("/:id", h.JobHandler.Delete)
			jobs.POST("/:id/apply", h.ApplicationHandler.Apply)
			jobs.GET("/:id/applications", h.ApplicationHandler.ListForJob)
		}

		applications := authed.Group("/applications")
		{
			applications.GET("/mine", h.ApplicationHandler.ListMine)
			applications.PATCH("/:id/status", h.ApplicationHandler.UpdateStatus)
		}

		authed.GET("/my-postings", h.ApplicationHandler.ListMyPostings)
		authed.POST("/ratings", h.ApplicationHandler.RateUser)
		authed.GET("/notifications", h.NotificationHandler.ListMine)

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.POST("/companies/:id/verify", h.ProfileHandler.VerifyCompany)
		}
	}
}
