package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/nkoval/replyflow/internal/classifier"
	"github.com/nkoval/replyflow/internal/config"
	"github.com/nkoval/replyflow/internal/database"
	"github.com/nkoval/replyflow/internal/email"
	"github.com/nkoval/replyflow/internal/formatter"
	"github.com/nkoval/replyflow/internal/llm"
	"github.com/nkoval/replyflow/internal/mailer"
	"github.com/nkoval/replyflow/internal/parser"
	"github.com/nkoval/replyflow/internal/pipeline"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting support responder", "inbox", cfg.InboxEmail)

	// Connect to database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations completed")

	// Resolve the IMAP server when not configured explicitly
	imapServer := cfg.IMAPServer
	if imapServer == "" {
		imapServer, err = email.ResolveIMAPServer(cfg.InboxEmail)
		if err != nil {
			logger.Error("failed to resolve IMAP server", "error", err)
			os.Exit(1)
		}
		logger.Info("resolved IMAP server", "server", imapServer)
	}

	// Completion client
	completer, err := llm.NewClient(llm.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		os.Exit(1)
	}

	// Outbound sender
	sender := mailer.NewSender(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.FromAddress, cfg.FromName,
	)

	// Pipeline
	processor := pipeline.New(pipeline.Deps{
		Store:           db,
		Completer:       completer,
		Sender:          sender,
		HTMLParser:      parser.NewHTMLParser(),
		Intents:         classifier.NewIntentClassifier(),
		Urgency:         classifier.NewUrgencyDetector(),
		Formatter:       formatter.NewReplyFormatter(cfg.CompanyName, cfg.AgentName),
		EscalationEmail: cfg.EscalationEmail,
		CompanyName:     cfg.CompanyName,
		Logger:          logger,
	})

	// Inbox watcher
	imapClient := email.NewClient(email.ClientConfig{
		Email:       cfg.InboxEmail,
		Password:    cfg.InboxPassword,
		Server:      imapServer,
		DialTimeout: cfg.IMAPDialTimeout,
	}, logger)

	watcher := email.NewWatcher(imapClient, db, cfg.PollInterval, logger)
	watcher.SetMessageHandler(func(raw *email.InboundEmail) {
		mctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		if err := processor.Process(mctx, raw); err != nil {
			logger.Error("failed to process message", "uid", raw.UID, "error", err)
		}
	})
	watcher.SetErrorHandler(func(err error) {
		logger.Error("inbox watcher error", "error", err)
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("responder is running, press Ctrl+C to stop")
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("watcher stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("responder stopped")
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
