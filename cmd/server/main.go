package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mstream "github.com/haowjy/meridian-stream-go"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"clipdeck/internal/auth"
	"clipdeck/internal/catalog"
	"clipdeck/internal/config"
	"clipdeck/internal/editor"
	"clipdeck/internal/export"
	"clipdeck/internal/handler"
	"clipdeck/internal/handler/sse"
	"clipdeck/internal/media"
	"clipdeck/internal/middleware"
	"clipdeck/internal/repository/postgres"
	"clipdeck/internal/service/account"
	serviceAuth "clipdeck/internal/service/auth"
	"clipdeck/internal/service/content"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logOutput, closeLog, err := config.LogOutput(cfg)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer closeLog()

	logger := config.NewLogger(cfg, logOutput)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	logger.Info("database connected", "tables", tables.All())

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	profileRepo := postgres.NewProfileRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	presentationRepo := postgres.NewPresentationRepository(repoConfig)
	slideRepo := postgres.NewSlideRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Services
	authorizer := serviceAuth.NewRoleAuthorizer()
	goTrue := auth.NewGoTrueClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	sessionService := account.NewSessionService(goTrue, profileRepo, logger)
	userService := account.NewUserService(profileRepo, authorizer, logger)
	projectService := content.NewProjectService(projectRepo, authorizer, logger)
	presentationService := content.NewPresentationService(presentationRepo, authorizer, logger)
	slideService := content.NewSlideService(slideRepo, txManager, authorizer, logger)

	// Editor, export and media
	catalogRegistry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load editor catalogs: %v", err)
	}

	renderClient := export.NewClient(cfg.RenderURL, logger,
		export.WithPollInterval(cfg.RenderPollInterval),
		export.WithTimeout(cfg.RenderTimeout),
	)
	streamRegistry := mstream.NewRegistry()
	go streamRegistry.StartCleanup(ctx)
	exportService := export.NewService(renderClient, streamRegistry, cfg.ExportDir, logger,
		export.WithRetention(cfg.ExportRetention),
	)
	go exportService.StartCleanup(ctx)

	var mediaCache media.Cache = media.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisClient, err := media.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		mediaCache = media.NewRedisCache(redisClient, cfg.TablePrefix+"clipdeck:")
		logger.Info("media cache using redis")
	}
	mediaService := media.NewService(
		media.NewJamendoClient("", cfg.JamendoClientID),
		media.NewPixabayClient("", cfg.PixabayAPIKey),
		mediaCache,
		cfg.MediaCacheTTL,
		logger,
	)

	logger.Info("services initialized")

	handlers := &handler.Handlers{
		Health:        handler.NewHealthHandler(pool),
		Auth:          handler.NewAuthHandler(sessionService, logger),
		Projects:      handler.NewProjectHandler(projectService, logger),
		Presentations: handler.NewPresentationHandler(presentationService, logger),
		Slides:        handler.NewSlideHandler(slideService, logger),
		Users:         handler.NewUserHandler(userService, logger),
		Scenes:        handler.NewSceneHandler(editor.NewStore(), catalogRegistry, exportService, logger),
		Exports:       handler.NewExportHandler(exportService, sse.DefaultConfig(), logger),
		Media:         handler.NewMediaHandler(mediaService, logger),
		Catalog:       handler.NewCatalogHandler(catalogRegistry),
	}

	// Go 1.22+ enhanced patterns
	mux := http.NewServeMux()
	handlers.Register(mux)

	// CORS must run before auth to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "Location"},
		AllowCredentials: true,
	})

	// Order: CORS → Recovery → Auth → RequestLog → Routes
	root := middleware.Chain(mux,
		corsHandler.Handler,
		middleware.Recovery(logger),
		middleware.Auth(jwtVerifier, sessionService, logger),
		middleware.RequestLog(logger),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
