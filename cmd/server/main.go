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

	"devroom/ai"
	"devroom/gateway"
	"devroom/httpapi"
	"devroom/internal"
	"devroom/mail"
	"devroom/observability"
	"devroom/repositories"
	"devroom/runtime"
	"devroom/runtime/workers"
	"devroom/services"

	devauth "devroom/auth"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	userRepository := repositories.NewUserRepository(db)
	projectRepository := repositories.NewProjectRepository(db)

	// 3. Auth, Mail, AI
	tokens := devauth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration, config.ResetTokenDuration)
	mailer := buildMailer(config, logger)

	responder, err := ai.NewGeminiResponder(ctx, config.GeminiAPIKey, config.GeminiModel)
	if err != nil {
		return exitRuntime, fmt.Errorf("assistant init failed: %w", err)
	}

	monitor, err := observability.NewMonitor()
	if err != nil {
		return exitRuntime, fmt.Errorf("monitor init failed: %w", err)
	}

	// 4. Realtime pipeline
	sup := workers.NewSupervisor(logger)
	registry := runtime.NewRegistry(logger)
	pipeline := runtime.NewPipeline(logger, sup, registry, responder, monitor, runtime.PipelineConfig{
		BufferSize:      config.BufferSize,
		BotQueueSize:    config.BotQueueSize,
		BotLabel:        config.BotLabel,
		BotTimeout:      config.BotTimeout,
		CharReplacement: charReplacement,
	})

	// 5. Services & HTTP surface
	authService := services.NewAuthService(userRepository, tokens, mailer, logger)
	projectService := services.NewProjectService(projectRepository, userRepository)

	gate := gateway.NewGate(tokens, projectRepository)
	gw := gateway.NewGateway(logger, gate, pipeline, pipeline.Broadcaster(), monitor, config.ConnectionBufferSize)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Users:     httpapi.NewUserHandlers(authService, config.ResetURL, logger),
		Projects:  httpapi.NewProjectHandlers(projectService),
		Tokens:    tokens,
		Monitor:   monitor,
		WSHandler: gw.HandleWS,
		Debug:     logger.Enabled(ctx, slog.LevelDebug),
		Log:       logger,
	})

	// 6. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Error (HTTP & pipeline)
	errChan := make(chan error, 2)

	// 7. Start the Engine (Workers and Fanout)
	go func() {
		logger.Info("Starting pipeline...")
		if err := pipeline.Start(ctx); err != nil {
			errChan <- fmt.Errorf("pipeline error: %w", err)
		}
	}()

	// 8. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use an error channel to capture ListenAndServe() issues asynchronously.
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 10. Final Cleanup (Graceful Shutdown)
	// We allow in-flight requests to finish and workers to drain their channels.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	pipeline.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

// buildMailer returns the SMTP mailer when a host is configured and a
// log-only mailer otherwise, so local setups work without a relay.
func buildMailer(config internal.Config, logger *slog.Logger) mail.Mailer {
	if config.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, password reset mails will only be logged")
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword, config.SMTPFrom)
}
