package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "atelier-rental-backend/internal/api/http"
	"atelier-rental-backend/internal/cache"
	"atelier-rental-backend/internal/config"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/notify"
	"atelier-rental-backend/internal/repository/postgres"
	"atelier-rental-backend/internal/security"
	"atelier-rental-backend/internal/service"
	"atelier-rental-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Atelier Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "admin_prefix", cfg.Server.AdminPathPrefix)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Redis cache. The catalog works without it, just slower.
	var cacheClient *cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient, err = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, catalog caching disabled", "addr", cfg.Redis.Addr, "error", err)
			cacheClient = nil
		} else {
			logger.Info("Redis cache connected", "addr", cfg.Redis.Addr)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	storageService, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Local storage ready", "upload_dir", cfg.Storage.UploadDir)

	// Initialize notification channels
	relay := notify.NewRelayClient(cfg.Notify.RelayBaseURL)
	phone := notify.NewPhoneGateway(cfg.Notify.PhoneGatewayURL)
	var email notify.EmailSender
	if cfg.Notify.SendgridAPIKey != "" {
		email = notify.NewEmailClient(cfg.Notify.SendgridAPIKey, cfg.Notify.FromEmail, cfg.Notify.FromName)
	}
	dispatcher := notify.NewDispatcher(store.SettingsRepository, relay, phone, email)

	// Initialize Services
	catalogSvc := service.NewCatalogService(
		store.ProductRepository,
		store.CategoryRepository,
		store.BannerRepository,
		cacheClient,
		time.Duration(cfg.Redis.CatalogTTLSeconds)*time.Second,
	)
	availabilitySvc := service.NewAvailabilityService(store.RentalRepository)
	reconcileSvc := service.NewReconcileService(store.ProductRepository, catalogSvc)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ProductRepository,
		store.CustomerRepository,
		availabilitySvc,
		reconcileSvc,
		dispatcher,
		catalogSvc,
	)
	productSvc := service.NewProductService(store.ProductRepository, catalogSvc)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	categorySvc := service.NewCategoryService(store.CategoryRepository, store.AttributeRepository, catalogSvc)
	bannerSvc := service.NewBannerService(store.BannerRepository, storageService, catalogSvc)
	imageSvc := service.NewImageService(store.ProductRepository, storageService, cfg.Storage.AllowedTypes, catalogSvc)
	authSvc := service.NewAuthService(store.StaffRepository, tokenManager)
	settingsSvc := service.NewSettingsService(store.SettingsRepository, cfg.Notify)
	dashboardSvc := service.NewDashboardService(store.StatsRepository)

	// Seed the settings table from the legacy config block, once.
	if err := settingsSvc.MigrateLegacy(context.Background()); err != nil {
		logger.Error("Failed to migrate legacy notification settings", "error", err)
		log.Fatalf("Failed to migrate legacy notification settings: %v", err)
	}

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		Catalog:  httpapi.NewCatalogHandler(catalogSvc, storageService),
		Product:  httpapi.NewProductHandler(productSvc, reconcileSvc, imageSvc),
		Rental:   httpapi.NewRentalHandler(rentalSvc, availabilitySvc),
		Customer: httpapi.NewCustomerHandler(customerSvc),
		Category: httpapi.NewCategoryHandler(categorySvc),
		Banner:   httpapi.NewBannerHandler(bannerSvc),
		Admin:    httpapi.NewAdminHandler(dashboardSvc, settingsSvc),
	}
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)
	router := httpapi.NewRouter(handlers, authMiddleware, cfg.Server.AdminPathPrefix)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
