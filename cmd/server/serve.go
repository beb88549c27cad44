package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/polly"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/translate"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"smartlearn/internal/auth"
	"smartlearn/internal/catalog"
	"smartlearn/internal/config"
	"smartlearn/internal/handler"
	"smartlearn/internal/metrics"
	"smartlearn/internal/middleware"
	"smartlearn/internal/service/content"
	"smartlearn/internal/service/content/converter"
	"smartlearn/internal/service/generation"
	"smartlearn/internal/service/learning"
	"smartlearn/internal/service/prompt"
	"smartlearn/internal/service/speech"
	"smartlearn/internal/service/translation"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"generation_provider", cfg.GenerationProvider,
	)

	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
	if err != nil {
		return fmt.Errorf("create AWS session: %w", err)
	}

	var verifier auth.JWTVerifier
	if cfg.AuthJWKSURL != "" {
		verifier, err = auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			return fmt.Errorf("create JWT verifier: %w", err)
		}
		defer verifier.Close()
		logger.Info("bearer authentication enabled")
	} else {
		logger.Warn("AUTH_JWKS_URL not set: API routes are unauthenticated")
	}

	h, err := buildHandler(cfg, sess, verifier, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Generation and synthesis can run long; bounded by DOWNSTREAM_TIMEOUT
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildHandler wires services, handlers, routes and the middleware chain.
// verifier may be nil, in which case API routes are open.
func buildHandler(cfg *config.Config, sess *session.Session, verifier auth.JWTVerifier, logger *slog.Logger) (http.Handler, error) {
	m := metrics.New()

	catalogRegistry, err := catalog.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		"learner_types", len(catalogRegistry.LearnerTypeNames()),
		"languages", len(catalogRegistry.LanguageCodes()),
	)

	resolver := prompt.NewResolver()

	contentProvider := content.NewProvider(
		content.NewFileSource(cfg.ContentBaseDir),
		content.NewS3Source(s3.New(sess), cfg.ContentS3Bucket, cfg.ContentS3AllowedBuckets, logger),
		converter.NewRegistry(),
		logger,
	)

	generator, err := generation.NewFromConfig(cfg, sess, logger)
	if err != nil {
		return nil, fmt.Errorf("setup generation: %w", err)
	}
	synthesizer := speech.NewPollySynthesizer(polly.New(sess), cfg.PollyVoiceID, cfg.PollyEngine, logger)
	translator := translation.NewAWSTranslator(translate.New(sess), logger)

	lessonService := learning.NewLessonService(resolver, contentProvider, generator, synthesizer, catalogRegistry, cfg, m, logger)
	translationService := learning.NewTranslationService(translator, cfg, m, logger)

	lessonHandler := handler.NewLessonHandler(lessonService, logger)
	translationHandler := handler.NewTranslationHandler(translationService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogRegistry, resolver, logger)

	logger.Info("services initialized", "generator", generator.Name())

	authed := middleware.Auth(verifier, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.Handle("GET /metrics", m.Handler())

	// Routes used by the lesson form
	mux.Handle("POST /get_response", authed(http.HandlerFunc(lessonHandler.GetResponse)))
	mux.Handle("POST /translate", authed(http.HandlerFunc(translationHandler.Translate)))
	mux.Handle("GET /api/catalog", authed(http.HandlerFunc(catalogHandler.GetCatalog)))

	if cfg.IsDev() {
		mux.Handle("POST /debug/prompt", authed(http.HandlerFunc(lessonHandler.PreviewPrompt)))
		logger.Warn("Debug route registered: POST /debug/prompt (rendered prompt preview)")
	}

	// Observe wraps the mux directly so r.Pattern is visible after routing
	var h http.Handler = mux
	h = middleware.Observe(m, logger)(h)

	// CORS - Must be outside auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h, nil
}
