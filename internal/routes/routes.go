package routes

import (
	"github.com/Luapxanna/ops-pilot/internal/etl"
	"github.com/Luapxanna/ops-pilot/internal/handlers"
	"github.com/Luapxanna/ops-pilot/internal/kpi"
	"github.com/Luapxanna/ops-pilot/internal/leaderboard"
	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/projects"
	"github.com/Luapxanna/ops-pilot/internal/realtime"
	"github.com/Luapxanna/ops-pilot/internal/report"
	"github.com/Luapxanna/ops-pilot/internal/tasks"
	"github.com/Luapxanna/ops-pilot/internal/timelogs"
	"github.com/Luapxanna/ops-pilot/internal/workflows"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires every handler onto a gin engine. The hub may be shared with
// other components; pass a fresh one otherwise.
func Setup(db *gorm.DB, taskSvc *tasks.Service, kpiSvc *kpi.Service, hub *realtime.Hub) *gin.Engine {
	router := gin.Default()

	// CORS middleware (for frontend integration)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	authHandler := handlers.NewAuthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskSvc, hub)
	auditHandler := handlers.NewAuditHandler(db)
	projectHandler := handlers.NewProjectHandler(projects.NewService(db))
	orgHandler := handlers.NewOrganizationHandler(db)
	workflowHandler := handlers.NewWorkflowHandler(workflows.NewService(db))
	timeLogHandler := handlers.NewTimeLogHandler(timelogs.NewService(db))
	kpiHandler := handlers.NewKPIHandler(kpiSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboard.NewService(db))
	reportHandler := handlers.NewReportHandler(report.NewService(db))
	etlHandler := handlers.NewETLHandler(etl.NewService(db))
	wsHandler := handlers.NewWSHandler(hub)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/organizations", orgHandler.Create)

	// Protected routes (authentication required)
	protected := router.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/users", authHandler.ListUsers)
		protected.GET("/organizations", orgHandler.List)

		protected.PATCH("/tasks/:id/assign", taskHandler.Assign)
		protected.POST("/tasks/assign", taskHandler.AssignOrCreate)
		protected.PATCH("/tasks/status", taskHandler.UpdateStatus)
		protected.GET("/tasks/:id", taskHandler.Get)

		protected.GET("/audit/logs", auditHandler.Logs)
		protected.POST("/audit/rollback", auditHandler.Rollback)

		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.DELETE("/projects/:id", projectHandler.Delete)

		protected.POST("/workflows", workflowHandler.Create)
		protected.GET("/workflows", workflowHandler.List)
		protected.GET("/workflows/:id", workflowHandler.Get)

		protected.POST("/timelogs", timeLogHandler.Log)
		protected.GET("/timelogs/task/:id", timeLogHandler.ByTask)
		protected.GET("/timelogs/weekly/:userId", timeLogHandler.Weekly)

		protected.GET("/kpi/completion", kpiHandler.Completion)
		protected.GET("/kpi/project-durations", kpiHandler.ProjectDurations)
		protected.GET("/kpi/efficiency", kpiHandler.Efficiency)
		protected.GET("/leaderboard", leaderboardHandler.Fetch)
		protected.GET("/reports/export", reportHandler.Export)

		protected.POST("/etl/import", etlHandler.Import)

		protected.GET("/ws", wsHandler.Connect)
	}

	return router
}
