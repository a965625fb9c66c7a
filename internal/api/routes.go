package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/lifetrack/internal/monitoring"
	"alcyxob/lifetrack/internal/service"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Profile   service.ProfileService
	Entry     service.EntryService
	Goal      service.GoalService
	Dashboard service.DashboardService
	Calendar  service.CalendarService
	Nutrition service.NutritionService
	Report    service.ReportService
}

// SetupRoutes registers every endpoint on router.
func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profile)
	entryHandler := NewEntryHandler(svc.Entry)
	goalHandler := NewGoalHandler(svc.Goal)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, svc.Calendar)
	reportHandler := NewReportHandler(svc.Nutrition, svc.Report)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", monitoring.PrometheusHandler())

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := mustUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		// --- Profile & goal planner ---
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PATCH("/profile", profileHandler.UpdateProfile)
		protected.GET("/profile/presets", profileHandler.ListPresets)
		protected.POST("/profile/presets/:name", profileHandler.ApplyPreset)

		// --- Entries ---
		food := protected.Group("/food")
		{
			food.POST("", entryHandler.CreateFood)
			food.GET("", entryHandler.ListFood)
			food.DELETE("/:id", entryHandler.DeleteFood)
		}
		exercises := protected.Group("/exercises")
		{
			exercises.POST("", entryHandler.CreateExercise)
			exercises.GET("", entryHandler.ListExercises)
			exercises.DELETE("/:id", entryHandler.DeleteExercise)
		}
		work := protected.Group("/work-sessions")
		{
			work.POST("", entryHandler.CreateWorkSession)
			work.GET("", entryHandler.ListWorkSessions)
			work.POST("/start", entryHandler.StartWorkSession)
			work.POST("/:id/finish", entryHandler.FinishWorkSession)
			work.DELETE("/:id", entryHandler.DeleteWorkSession)
		}
		protected.POST("/photos/upload-url", entryHandler.RequestPhotoUpload)

		// --- Goals ---
		goals := protected.Group("/goals")
		{
			goals.POST("", goalHandler.CreateGoal)
			goals.GET("", goalHandler.ListGoals)
			goals.GET("/stats", goalHandler.GoalStats)
			goals.GET("/templates", goalHandler.GoalTemplates)
			goals.PATCH("/:id", goalHandler.UpdateGoal)
			goals.POST("/:id/toggle", goalHandler.ToggleGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		// --- Aggregated views ---
		protected.GET("/dashboard", dashboardHandler.GetDashboard)
		protected.GET("/calendar", dashboardHandler.GetCalendar)

		// --- Nutrition & reports ---
		protected.GET("/nutrition/search", reportHandler.SearchNutrition)
		reports := protected.Group("/reports")
		{
			reports.POST("/upload-url", reportHandler.RequestReportUpload)
			reports.GET("/:id", reportHandler.GetReport)
			reports.DELETE("/:id", reportHandler.DeleteReport)
			reports.POST("/:id/analyze", reportHandler.AnalyzeReport)
			reports.POST("/:id/plan", reportHandler.PersonalizePlan)
		}
	}
}
