package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adapterhttp "github.com/your-org/estate-admin/internal/adapter/http"
	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/adapter/repository/cache"
	"github.com/your-org/estate-admin/internal/adapter/repository/mongodb"
	"github.com/your-org/estate-admin/internal/adapter/storage/s3"
	"github.com/your-org/estate-admin/internal/config"
	"github.com/your-org/estate-admin/internal/listing/usecase"
	"github.com/your-org/estate-admin/internal/platform/logger"
	"github.com/your-org/estate-admin/internal/platform/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger()

	tp := tracer.InitTracer()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", "error", err.Error())
		}
	}()

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(db)

	// Initialize storage (MinIO/S3)
	storageClient, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize NATS publisher
	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to initialize NATS: %v", err)
	}
	defer natsPublisher.Close()

	// Initialize Redis cache
	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		log.Fatalf("Failed to initialize Redis cache: %v", err)
	}

	// Usecases
	draftUc := usecase.NewDraftUsecase(appLogger)
	submitUc := usecase.NewSubmitUsecase(listingRepo, storageClient, natsPublisher, listingCache, appLogger, cfg.AdminEmail)
	queryUc := usecase.NewQueryUsecase(listingRepo, listingCache, natsPublisher, appLogger)
	editUc := usecase.NewEditUsecase(listingRepo, storageClient, natsPublisher, listingCache, appLogger)

	handler := adapterhttp.NewHandler(draftUc, submitUc, queryUc, editUc, appLogger)
	router := adapterhttp.NewRouter(handler, cfg.JWTSecret, cfg.AdminUID, appLogger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err.Error())
	}
	appLogger.Info("HTTP server stopped")
}
