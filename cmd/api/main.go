//	@title			Attachments API
//	@version		1.0
//	@description	Upload service for message attachments.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/radif/attachments/internal/attachment"
	"github.com/radif/attachments/internal/config"
	"github.com/radif/attachments/internal/db"
	"github.com/radif/attachments/internal/server"
	"github.com/radif/attachments/internal/storage"
	"github.com/radif/attachments/internal/upload"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("metadata store init failed: %v", err)
	}
	defer closeRepo()

	blobs, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("blob storage init failed: %v", err)
	}

	// Wire dependencies: repository + storage → service → handler
	svc := attachment.NewService(repo, blobs)
	uploadHandler := upload.NewHandler(svc, json.Marshal, cfg.MaxUploadBytes)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Deps{
			Upload:         uploadHandler,
			JWTSecret:      cfg.JWTSecret,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s, metadata=%s, blobs=%s)",
			cfg.Port, cfg.AppEnv, cfg.MetadataBackend, cfg.BlobBackend)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}

func openRepository(ctx context.Context, cfg *config.Config) (attachment.Repository, func(), error) {
	switch cfg.MetadataBackend {
	case config.MetadataPostgres:
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return attachment.NewPostgresRepository(pool), pool.Close, nil
	case config.MetadataSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := attachment.NewSQLiteRepository(conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repo, func() { conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown METADATA_BACKEND %q", cfg.MetadataBackend)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.BlobBackend {
	case config.BlobMinio:
		store, err := storage.NewMinioStorage(ctx,
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageUseSSL,
		)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BlobMemory:
		if cfg.IsProduction() {
			return nil, fmt.Errorf("BLOB_BACKEND=%s is not durable and is refused in production", config.BlobMemory)
		}
		log.Println("storage: using in-memory blobs; uploads are lost on restart")
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown BLOB_BACKEND %q", cfg.BlobBackend)
	}
}
