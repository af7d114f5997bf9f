package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/export"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/server"
	"github.com/jonathan/directionwise/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server that exposes the quiz, matching, catalog, market, export and account endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != 0 {
				a.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides PORT)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	base, err := a.knowledgeBase()
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	sessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	publisher, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		slog.Warn("JWT_SECRET not set; tokens will not survive a restart", slog.String("error", err.Error()))
		if jwtConfig, err = config.EphemeralJWTConfig(); err != nil {
			return err
		}
	}

	deps := server.Deps{
		Store:     store,
		Knowledge: base,
		Sessions:  sessions,
		Events:    publisher,
		Passwords: passwords,
		JWT:       jwtConfig,
	}
	if cfg.ExportS3Bucket != "" {
		archiver, err := export.NewS3Archiver(ctx, export.S3Config{
			Bucket:   cfg.ExportS3Bucket,
			Region:   cfg.ExportS3Region,
			Prefix:   cfg.ExportS3Prefix,
			Endpoint: cfg.ExportS3Endpoint,
		})
		if err != nil {
			return fmt.Errorf("failed to configure export archive: %w", err)
		}
		deps.Archiver = archiver
	}

	srv, err := server.New(server.Config{
		Addr:            cfg.Addr(),
		CORSOrigins:     cfg.CORSAllowedOrigins,
		RateLimit:       ratelimit.LoadConfig(),
		ShutdownTimeout: 30 * time.Second,
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}

func openSessions(ctx context.Context, cfg *config.Config) (quiz.SessionStore, error) {
	if cfg.RedisURL == "" {
		return quiz.NewMemoryStore(cfg.QuizSessionTTL(), time.Minute), nil
	}
	store, err := quiz.NewRedisStore(ctx, cfg.RedisURL, cfg.QuizSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect quiz session store: %w", err)
	}
	slog.Info("quiz sessions stored in redis")
	return store, nil
}

func openPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event broker: %w", err)
	}
	slog.Info("publishing events", slog.String("exchange", cfg.AMQPExchange))
	return p, nil
}
