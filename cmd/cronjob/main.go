package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"atelier-rental-backend/internal/cache"
	"atelier-rental-backend/internal/config"
	"atelier-rental-backend/internal/jobs"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/notify"
	"atelier-rental-backend/internal/repository/postgres"
	"atelier-rental-backend/internal/scheduler"
	"atelier-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-product-statuses', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Atelier Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// The nightly reconcile pass invalidates the catalog cache the same
	// way the online mutations do. Missing Redis only costs freshness.
	var cacheClient *cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient, err = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, cache invalidation skipped", "addr", cfg.Redis.Addr, "error", err)
			cacheClient = nil
		}
	}
	catalogSvc := service.NewCatalogService(
		store.ProductRepository,
		store.CategoryRepository,
		store.BannerRepository,
		cacheClient,
		time.Duration(cfg.Redis.CatalogTTLSeconds)*time.Second,
	)

	// Initialize notification channels
	relay := notify.NewRelayClient(cfg.Notify.RelayBaseURL)
	phone := notify.NewPhoneGateway(cfg.Notify.PhoneGatewayURL)
	var email notify.EmailSender
	if cfg.Notify.SendgridAPIKey != "" {
		email = notify.NewEmailClient(cfg.Notify.SendgridAPIKey, cfg.Notify.FromEmail, cfg.Notify.FromName)
	}
	dispatcher := notify.NewDispatcher(store.SettingsRepository, relay, phone, email)

	// Initialize Services
	reconcileSvc := service.NewReconcileService(store.ProductRepository, catalogSvc)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(reconcileSvc, store.RentalRepository, dispatcher, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "reconcile-product-statuses":
		jobRunner.ReconcileProductStatuses()
	case "report-overdue-rentals":
		jobRunner.ReportOverdueRentals()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - reconcile-product-statuses\n")
		fmt.Printf("  - report-overdue-rentals\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
