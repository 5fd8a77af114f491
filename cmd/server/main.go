package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	crmapp "github.com/crm/backend/internal/application/crm"
	dashboardapp "github.com/crm/backend/internal/application/dashboard"
	directoryapp "github.com/crm/backend/internal/application/directory"
	identityapp "github.com/crm/backend/internal/application/identity"
	pipelineapp "github.com/crm/backend/internal/application/pipeline"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/migration"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/storage"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := runMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	callRepo := persistence.NewGormCallRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	salespersonRepo := persistence.NewGormSalespersonRepository(db.DB)
	leadSourceRepo := persistence.NewGormLeadSourceRepository(db.DB)
	pipelineRepo := persistence.NewGormPipelineRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Cache
	var collectionCache cache.CollectionCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		redisCache := cache.NewRedisCache(redisClient, log)
		defer redisCache.Close()
		collectionCache = redisCache
		log.Info("Redis cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		collectionCache = cache.NewMemoryCache()
	}

	// Object storage
	var objectStorage crmapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, using stub presigned URLs")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log,
		cfg.CRM.BootstrapAttempts, cfg.CRM.BootstrapDelay)
	opportunityService := crmapp.NewOpportunityService(opportunityRepo, collectionCache)
	callService := crmapp.NewCallService(callRepo, opportunityRepo, collectionCache, cfg.CRM.StrictCallNumbering)
	noteService := crmapp.NewNoteService(noteRepo, opportunityRepo)
	contactService := crmapp.NewContactService(contactRepo, opportunityRepo)
	attachmentService := crmapp.NewAttachmentService(attachmentRepo, opportunityRepo, objectStorage, cfg.Storage.PresignExpiration)
	salespersonService := directoryapp.NewSalespersonService(salespersonRepo, opportunityRepo, txManager, collectionCache)
	leadSourceService := directoryapp.NewLeadSourceService(leadSourceRepo, opportunityRepo, txManager, collectionCache, cfg.CRM.LeadSourcePlaceholder)
	pipelineService := pipelineapp.NewService(pipelineRepo, opportunityRepo, collectionCache)
	dashboardService := dashboardapp.NewService(opportunityRepo, callRepo, collectionCache)

	// Verify the database answers queries before accepting traffic
	if err := authService.Bootstrap(ctx, func(ctx context.Context) error {
		return db.Ping()
	}); err != nil {
		log.Fatal("Database probe failed", zap.Error(err))
	}

	middleware.SetupValidator()

	engine, err := router.New(router.Config{
		AppConfig:  cfg,
		Logger:     log,
		JWTService: jwtService,
		Registrars: []router.RouteRegistrar{
			handler.NewAuthHandler(authService),
			handler.NewOpportunityHandler(opportunityService),
			handler.NewCallHandler(callService),
			handler.NewNoteHandler(noteService),
			handler.NewContactHandler(contactService),
			handler.NewAttachmentHandler(attachmentService),
			handler.NewDirectoryHandler(salespersonService, leadSourceService),
			handler.NewPipelineHandler(pipelineService),
			handler.NewDashboardHandler(dashboardService),
		},
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Shutdown complete")
}

// runMigrations applies pending schema migrations on startup. The
// migrations directory can be overridden with CRM_MIGRATIONS_PATH.
func runMigrations(db *persistence.Database, log *zap.Logger) error {
	migrationsPath := os.Getenv("CRM_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		log.Warn("Migrations directory not found, skipping", zap.String("path", migrationsPath))
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	migrator, err := migration.New(sqlDB, migrationsPath, log)
	if err != nil {
		return err
	}
	return migrator.Up()
}
