package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"registratur/internal/auth"
	"registratur/internal/blob"
	"registratur/internal/config"
	"registratur/internal/handler"
	"registratur/internal/middleware"
	"registratur/internal/repository/jsonfile"
	"registratur/internal/roles"
	svcauth "registratur/internal/service/auth"
	"registratur/internal/service/cabinet"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, config.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
	)

	// Token verifier; without a JWKS URL the auth middleware falls back to a
	// fixed dev identity.
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		defer v.Close()
		verifier = v
	} else {
		if cfg.Environment != "dev" {
			log.Fatalf("JWKS_URL is required outside dev")
		}
		logger.Warn("DEV MODE: no JWKS_URL configured, all requests run as the dev identity")
	}

	// Persistence: one JSON document for the tree, a flat directory for blobs.
	store, err := jsonfile.NewStore(&jsonfile.StoreConfig{
		Path:   cfg.DocumentPath(),
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to open folders document: %v", err)
	}
	folderRepo := jsonfile.NewFolderRepository(store)

	blobStore, err := blob.NewStore(cfg.UploadDir(), logger)
	if err != nil {
		log.Fatalf("Failed to open blob storage: %v", err)
	}

	// Role registry backs the delete capability checks.
	roleRegistry, err := roles.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load role registry: %v", err)
	}
	authorizer := svcauth.NewRoleBasedAuthorizer(roleRegistry)

	// Services
	folderService := cabinet.NewFolderService(folderRepo, blobStore, authorizer, logger)
	fileService := cabinet.NewFileService(folderRepo, blobStore, authorizer, logger)
	viewService := cabinet.NewViewService(folderRepo, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)
	viewHandler := handler.NewViewHandler(viewService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", viewHandler.HealthCheck)

	// Cabinet view
	mux.HandleFunc("GET /api/cabinet", viewHandler.GetView)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("POST /api/folders/{id}/files", fileHandler.AddFile)
	mux.HandleFunc("PATCH /api/folders/{id}/files/{fileID}", fileHandler.EditFile)
	mux.HandleFunc("DELETE /api/folders/{id}/files/{fileID}", fileHandler.DeleteFile)
	mux.HandleFunc("GET /api/folders/{id}/files/{fileID}/content", fileHandler.ServeContent)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(verifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Drain in-flight requests on SIGINT/SIGTERM before exiting.
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logger.Info("shutdown requested")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
		close(done)
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-done
	logger.Info("server stopped")
}
