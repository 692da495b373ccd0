package main

import (
	"context"
	"os"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/database"
	"github.com/Luapxanna/ops-pilot/internal/jobs"
	"github.com/Luapxanna/ops-pilot/internal/kpi"
	"github.com/Luapxanna/ops-pilot/internal/logging"
	"github.com/Luapxanna/ops-pilot/internal/notify"
	"github.com/Luapxanna/ops-pilot/internal/realtime"
	"github.com/Luapxanna/ops-pilot/internal/routes"
	"github.com/Luapxanna/ops-pilot/internal/tasks"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB() *gorm.DB {
	db, err := database.Open(getEnv("DB_PATH", "ops-pilot.db"))
	if err != nil {
		logging.Logger.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func main() {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()
	logging.Init(getEnv("LOG_DIR", "logs"))

	rootCmd := &cobra.Command{
		Use:   "ops-pilot",
		Short: "Project and task management backend",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			taskSvc := tasks.NewService(db)
			kpiSvc := kpi.NewService(db)
			hub := realtime.NewHub()

			notifier := notify.NewNotifier(os.Getenv("DIGEST_WEBHOOK_URL"))
			runner := jobs.NewRunner(taskSvc, kpiSvc, notifier)
			runner.Start(context.Background(), 24*time.Hour)

			router := routes.Setup(db, taskSvc, kpiSvc, hub)
			addr := ":" + getEnv("PORT", "8008")
			logging.Logger.Infof("Server starting on %s", addr)
			if err := router.Run(addr); err != nil {
				logging.Logger.Fatalf("Failed to start server: %v", err)
			}
		},
	}

	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run the daily maintenance jobs once and exit",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			notifier := notify.NewNotifier(os.Getenv("DIGEST_WEBHOOK_URL"))
			runner := jobs.NewRunner(tasks.NewService(db), kpi.NewService(db), notifier)
			runner.RunOnce(time.Now())
		},
	}

	rootCmd.AddCommand(serveCmd, jobsCmd)
	if err := rootCmd.Execute(); err != nil {
		logging.Logger.Fatalf("Command failed: %v", err)
		os.Exit(1)
	}
}
