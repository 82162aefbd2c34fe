package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fc-landing-bot/internal/classifier"
	"fc-landing-bot/internal/config"
	"fc-landing-bot/internal/generator"
	"fc-landing-bot/internal/handlers"
	"fc-landing-bot/internal/httpserver"
	"fc-landing-bot/internal/ledger"
	"fc-landing-bot/internal/processor"
	"fc-landing-bot/internal/publisher"
	"fc-landing-bot/internal/queue"
	"fc-landing-bot/internal/responder"
	"fc-landing-bot/internal/types"
)

func main() {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	startTime := time.Now()
	logger.Info("bot starting", zap.Time("start_time", startTime))

	cls, err := classifier.New(cfg.AltCreatePattern)
	if err != nil {
		logger.Fatal("invalid classifier configuration", zap.Error(err))
	}

	gen, err := generator.New(ctx, generator.Options{
		APIKey:    cfg.GeminiAPIKey,
		Model:     cfg.GeminiModel,
		Timeout:   cfg.GenerateTimeout,
		Retries:   cfg.GenerateRetries,
		OutputDir: cfg.OutputDir,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize generator", zap.Error(err))
	}

	pub := publisher.New(publisher.Options{
		BaseURL:      cfg.NetlifyBase,
		Token:        cfg.NetlifyToken,
		PollAttempts: cfg.DeployPollAttempts,
		PollInterval: cfg.DeployPollInterval,
	}, logger)

	led := ledger.New(cfg.OwnershipFile)

	resp := responder.New(responder.Options{
		BaseURL:     cfg.NeynarBase,
		APIKey:      cfg.NeynarAPIKey,
		SignerUUID:  cfg.NeynarSignerUUID,
		BotUsername: cfg.BotUsername,
	})

	proc := &processor.Processor{
		Generator: gen,
		Publisher: pub,
		Ledger:    led,
		Log:       logger,
	}

	q := queue.New()
	dispatcher := &queue.Dispatcher{
		Queue:         q,
		Interval:      cfg.DrainInterval,
		ProcessCreate: proc.ProcessCreate,
		ProcessUpdate: proc.ProcessUpdate,
		Respond:       resp.SendResponse,
		Log:           logger,
	}
	go dispatcher.Run(ctx)

	handler := handlers.WebhookHandler{
		BotFID:     cfg.BotFID,
		StartTime:  startTime,
		Classifier: cls,
		IsOwner:    led.IsOwner,
		Enqueue:    func(item types.WorkItem) { q.Push(item) },
		Log:        logger,
	}

	srv := httpserver.NewServer(cfg.Port, cfg.WebhookPath, handler)
	logger.Info("fc-landing-bot listening",
		zap.String("port", cfg.Port),
		zap.String("webhook_path", cfg.WebhookPath))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	zc := zap.NewProductionConfig()
	if os.Getenv("DEBUG") != "" {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
