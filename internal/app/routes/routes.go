package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/controllers"
	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/middleware"
	"github.com/okaradag/unipath/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	onboardingController *controllers.OnboardingController,
	studentController *controllers.StudentController,
	universityController *controllers.UniversityController,
	programController *controllers.ProgramController,
	applicationController *controllers.ApplicationController,
	chatController *controllers.ChatController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/landing", authController.Landing)

		// Onboarding wizard routes, student only
		onboarding := authenticated.Group("/onboarding")
		onboarding.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			onboarding.GET("/status", onboardingController.Status)

			onboarding.POST("/personal", onboardingController.SubmitPersonal)
			onboarding.POST("/personal/skip", onboardingController.SkipPersonal)
			onboarding.POST("/personal/validate-step", onboardingController.ValidatePersonalStep)

			onboarding.POST("/academic", onboardingController.SubmitAcademic)
			onboarding.POST("/academic/skip", onboardingController.SkipAcademic)
			onboarding.POST("/academic/validate-step", onboardingController.ValidateAcademicStep)
		}

		// Student profile routes
		students := authenticated.Group("/students")
		students.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			students.GET("/me", studentController.GetProfile)
			students.PUT("/me", studentController.UpdateProfile)
			students.GET("/me/completion", studentController.GetCompletion)
		}

		// University catalog routes
		universities := authenticated.Group("/universities")
		{
			universities.GET("", universityController.ListUniversities)
			universities.GET("/:id", universityController.GetUniversity)
		}

		// Program catalog routes
		programs := authenticated.Group("/programs")
		{
			programs.GET("", programController.ListPrograms)
			programs.GET("/:id", programController.GetProgram)
		}

		// Application routes, student only
		applications := authenticated.Group("/applications")
		applications.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			applications.POST("", applicationController.CreateApplication)
			applications.GET("", applicationController.ListApplications)
			applications.GET("/:id", applicationController.GetApplication)
			applications.POST("/:id/withdraw", applicationController.WithdrawApplication)
		}

		// Chat routes, any authenticated participant
		conversations := authenticated.Group("/conversations")
		{
			conversations.POST("", chatController.CreateConversation)
			conversations.GET("", chatController.ListConversations)
			conversations.GET("/:id/messages", chatController.GetMessages)
			conversations.POST("/:id/messages", chatController.SendMessage)
			conversations.GET("/:id/ws", wsHandler.HandleConnection)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
