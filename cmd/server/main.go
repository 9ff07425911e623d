package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tabsplit/internal/broker"
	"tabsplit/internal/cache"
	"tabsplit/internal/config"
	"tabsplit/internal/extract"
	"tabsplit/internal/handler"
	"tabsplit/internal/llm"
	"tabsplit/internal/port"
	"tabsplit/internal/reason"
	"tabsplit/internal/repository/postgres"
	"tabsplit/internal/router"
	"tabsplit/internal/service"
	s3storage "tabsplit/internal/storage/s3"
)

// @title Tabsplit API
// @version 1.0
// @description Receipt parsing and bill splitting over metered inference.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := buildLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	turnRepo := postgres.NewSplitTurnRepo(db)

	// Optional receipt cache
	var receiptCache port.ReceiptCache
	if cfg.Redis.Addr != "" {
		receiptCache, err = cache.NewReceiptCache(&cfg.Redis, sugar)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	// Optional image archive
	var archive port.ObjectStorage
	if cfg.S3.Bucket != "" {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Broker gateway
	gateway := broker.NewGatewayClient(&cfg.Broker)
	warmUpBroker(gateway, cfg, sugar)

	// Inference clients
	visionClient := llm.NewClient(&cfg.Vision)
	reasonClient := llm.NewClient(&cfg.Reason)
	extractor := extract.NewExtractor(visionClient)
	reasoner := reason.NewReasoner(reasonClient)

	// Initialize services
	receiptSvc := service.NewReceiptService(
		gateway, extractor, cfg.Vision.Provider,
		receiptCache, archive, cfg.S3.Bucket, turnRepo, sugar,
	)
	splitSvc := service.NewSplitService(
		gateway, reasoner, cfg.Reason.Provider, turnRepo, sugar,
	)
	turnSvc := service.NewTurnService(turnRepo)

	// Initialize handlers
	receiptH := handler.NewReceiptHandler(receiptSvc, splitSvc)
	accountH := handler.NewAccountHandler(gateway)
	turnH := handler.NewTurnHandler(turnSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, sugar, receiptH, accountH, turnH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sugar.Infow("server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// warmUpBroker logs the ledger balance and registers both providers with the
// broker. Failures are logged but never fatal: the gateway may come up after
// the server does.
func warmUpBroker(gateway *broker.GatewayClient, cfg *config.Config, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if balance, err := gateway.Balance(ctx); err != nil {
		log.Warnw("broker balance check failed", "error", err)
	} else {
		log.Infow("broker ledger", "total", balance.Total, "available", balance.Available, "locked", balance.Locked)
	}

	for _, provider := range []string{cfg.Vision.Provider, cfg.Reason.Provider} {
		if err := gateway.Acknowledge(ctx, provider); err != nil {
			log.Warnw("provider acknowledge failed", "provider", provider, "error", err)
		}
	}
}

func buildLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
