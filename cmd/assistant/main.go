package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/server"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/services"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// .env is optional, env vars win over the config file either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize logging")
	}

	trading := services.NewTradingService(cfg.Trading, nil)
	srv := server.New(cfg.Server.Listen, trading)

	go func() {
		if err := srv.Start(); err != nil {
			logrus.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown error")
	}
}
