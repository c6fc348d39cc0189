package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/blobstore"
	"github.com/chris/twogether-backend/pkg/config"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/handlers"
	"github.com/chris/twogether-backend/pkg/storage/sqlstore"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Apply pending migrations, then serve the HTTP API until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("skip-migrate", false, "do not apply migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	dialect, dsn, err := sqlstore.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if skip, _ := cmd.Flags().GetBool("skip-migrate"); !skip {
		if err := sqlstore.Migrate(dialect, dsn); err != nil {
			return err
		}
	}
	store, err := sqlstore.Open(ctx, dialect, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	// 2. AWS clients for photos and events
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}
	blobs := newBlobStore(cfg, awsCfg)
	if blobs == nil {
		logger.Info("photo uploads disabled, STORAGE_BUCKET or STORAGE_PUBLIC_URL not set")
	}
	var publisher events.Publisher = &events.NoOpPublisher{}
	if cfg.EventsQueueURL != "" {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL)
	}

	// 3. HTTP
	router := handlers.NewRouter(handlers.Dependencies{
		Store:          store,
		DB:             store,
		Authenticator:  auth.NewAuthenticator(store),
		Tokens:         auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Blobs:          blobs,
		Publisher:      publisher,
		Logger:         logger,
		CORSOrigin:     cfg.CORSOrigin,
		MetricsEnabled: cfg.MetricsEnabled,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.HTTPPort, "environment", cfg.Environment, "database", string(dialect))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}

func newBlobStore(cfg config.Config, awsCfg aws.Config) blobstore.Store {
	if cfg.Storage.Bucket == "" || cfg.Storage.PublicURL == "" {
		return nil
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	return blobstore.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.PublicURL)
}
