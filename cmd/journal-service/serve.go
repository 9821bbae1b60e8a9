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

	"golang-crypto-journal/internal/journal/config"
	delivery "golang-crypto-journal/internal/journal/delivery/http"
	"golang-crypto-journal/internal/journal/delivery/ws"
	"golang-crypto-journal/internal/journal/repository"
	"golang-crypto-journal/internal/journal/service"
	"golang-crypto-journal/internal/journal/store"
	"golang-crypto-journal/pkg/logger"
	"golang-crypto-journal/pkg/redis"
	"golang-crypto-journal/pkg/telegram"
	"golang-crypto-journal/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the journal HTTP service and price refresher",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Journal Service", logger.Field("name", cfg.App.Name))

	// Redis only backs the coin list cache and is optional
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer client.Close()
		redisClient = client.Client
	}

	quoteRepo := repository.NewCoinGeckoRepository(cfg, appLogger, redisClient)

	var narrativeRepo repository.NarrativeRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		narrativeRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	} else {
		appLogger.Warn("Gemini API key not set, enhanced reports are disabled")
	}

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	hub := ws.NewHub(appLogger)
	utils.GoSafe(func() { hub.Run(ctx) })

	positionStore := store.NewPositionStore()
	journalSvc := service.NewJournalService(cfg, positionStore, quoteRepo, narrativeRepo, notifier, hub, appLogger)
	refreshSvc := service.NewRefreshService(cfg, positionStore, quoteRepo, hub, appLogger)

	if err := refreshSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start price refresher", logger.ErrorField(err))
	}
	defer refreshSvc.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	apiV1 := e.Group("/api/v1")
	delivery.NewPositionHandler(journalSvc, refreshSvc, appLogger).RegisterRoutes(apiV1.Group("/positions"))
	delivery.NewStatsHandler(journalSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewReportHandler(journalSvc, appLogger).RegisterRoutes(apiV1.Group("/reports"))
	hub.RegisterRoutes(apiV1)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}
