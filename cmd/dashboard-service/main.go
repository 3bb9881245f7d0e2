package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"golang-stock-sentiment/internal/dashboard/config"
	delivery "golang-stock-sentiment/internal/dashboard/delivery/http"
	"golang-stock-sentiment/internal/dashboard/delivery/websocket"
	_ "golang-stock-sentiment/internal/dashboard/docs"
	"golang-stock-sentiment/internal/dashboard/repository"
	"golang-stock-sentiment/internal/dashboard/scheduler"
	"golang-stock-sentiment/internal/dashboard/service"
	"golang-stock-sentiment/internal/dashboard/strategy"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/nlp"
	"golang-stock-sentiment/pkg/postgres"
	"golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/telegram"
	"golang-stock-sentiment/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

type scheduledJob struct {
	schedule config.JobSchedule
	job      strategy.JobExecutionStrategy
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Sentiment Dashboard Service", logger.Field("name", cfg.App.Name))

	symbols, err := config.LoadSymbolTable(cfg.Sentiment.SymbolsFile)
	if err != nil {
		appLogger.Fatal("Failed to load symbol table", logger.ErrorField(err))
	}

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Cache and update stream live in Redis when it is enabled
	var (
		cacheRepo  repository.CacheRepository
		streamRepo repository.StreamRepository
	)
	if cfg.Redis.Enabled {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		appLogger.Info("Connecting to Redis", logger.StringField("address", cfg.Redis.Addr()))
		redisClient, err := redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()

		cacheRepo = repository.NewRedisCacheRepository(redisClient.Client)
		streamRepo = repository.NewRedisStreamRepository(redisClient.Client, cfg.Redis.StreamMaxLen)
	} else {
		appLogger.Info("Redis disabled, using in-memory cache")
		cacheRepo = repository.NewMemoryCacheRepository(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		streamRepo = repository.NewNopStreamRepository()
	}

	// Initialize text pipeline
	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		appLogger.Fatal("Failed to initialize normalizer", logger.ErrorField(err))
	}
	scorer, err := nlp.NewScorer(nlp.WithWeights(cfg.Sentiment.LexiconWeight, cfg.Sentiment.PolarityWeight))
	if err != nil {
		appLogger.Fatal("Failed to initialize scorer", logger.ErrorField(err))
	}

	// Initialize repositories
	sentimentRepo := repository.NewSentimentRepository(db.DB)
	newsRepo := repository.NewNewsArticleRepository(db.DB)
	snapshotRepo := repository.NewMarketSnapshotRepository(db.DB)
	newsAPIRepo := repository.NewNewsAPIRepository(cfg, appLogger)
	rssRepo := repository.NewRSSRepository(cfg, appLogger)

	if !newsAPIRepo.Enabled() {
		appLogger.Warn("News API key not configured, only RSS feeds will be used")
	}

	// Initialize services
	fetcher := service.NewNewsFetcher(cfg, symbols, newsAPIRepo, rssRepo, appLogger)
	sentimentSvc := service.NewSentimentService(cfg, symbols, fetcher, normalizer, scorer, service.NewRandomSampler(), newsAPIRepo, rssRepo, appLogger)
	provider := service.NewSentimentProvider(sentimentSvc, cacheRepo, cfg.Cache.TTL, appLogger)

	hub := websocket.NewHub(appLogger, cfg.WebSocket.SendBuffer, func(symbol string) bool {
		return slices.Contains(provider.Symbols(), symbol)
	})
	defer hub.Close()

	// Telegram is optional; without it there is no digest and no failure alert
	var (
		telegramNotifier telegram.Notifier
		schedulerOpts    []scheduler.Option
	)
	if cfg.Telegram.Enabled() {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		schedulerOpts = append(schedulerOpts, scheduler.WithFailureHook(func(jobType entity.JobType, jobErr error, result string) {
			alert := telegram.FormatErrorAlertMessage(utils.TimeNow(), string(jobType), jobErr.Error(), result)
			if err := telegramNotifier.SendMessage(alert); err != nil {
				appLogger.Error("Failed to send job failure alert", logger.ErrorField(err))
			}
		}))
	}

	// Initialize scheduler
	schedulerSvc := scheduler.NewSchedulerService(appLogger, schedulerOpts...)
	jobs := []scheduledJob{
		{cfg.Scheduler.SentimentRefresh, strategy.NewSentimentRefreshStrategy(appLogger, provider, sentimentRepo, snapshotRepo, streamRepo)},
		{cfg.Scheduler.SentimentBroadcast, strategy.NewSentimentBroadcastStrategy(appLogger, provider, hub)},
		{cfg.Scheduler.NewsCollect, strategy.NewNewsCollectStrategy(appLogger, provider.Symbols, fetcher, newsRepo)},
		{cfg.Scheduler.DataCleanup, strategy.NewDataCleanupStrategy(appLogger, cfg.Scheduler.RetentionDays, sentimentRepo, newsRepo, snapshotRepo)},
	}

	if telegramNotifier != nil {
		jobs = append(jobs, scheduledJob{cfg.Scheduler.MarketDigest, strategy.NewMarketDigestStrategy(appLogger, provider, telegramNotifier)})
	}

	for _, j := range jobs {
		if !j.schedule.Enabled {
			appLogger.Info("Job disabled", logger.StringField("job_type", string(j.job.GetType())))
			continue
		}
		if err := schedulerSvc.Register(j.schedule.Cron, j.schedule.Timeout, j.job); err != nil {
			appLogger.Fatal("Failed to register job", logger.ErrorField(err))
		}
	}

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		schedulerSvc.Start(ctx)
	}()

	// Warm the cache and the stored history before the first tick
	if cfg.Scheduler.SentimentRefresh.Enabled {
		utils.GoSafe(func() {
			if _, err := schedulerSvc.RunNow(ctx, entity.JobTypeSentimentRefresh); err != nil {
				appLogger.Warn("Initial sentiment refresh failed", logger.ErrorField(err))
			}
		})
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover(), middleware.RequestID(), delivery.RequestContext())

	apiV1 := e.Group("/api/v1")
	delivery.NewSentimentHandler(provider, sentimentRepo, appLogger).RegisterRoutes(apiV1)
	delivery.NewNewsHandler(newsRepo, cfg.Sentiment.NewsLimit, appLogger).RegisterRoutes(apiV1)
	delivery.NewHealthHandler(provider, appLogger).RegisterRoutes(apiV1)

	wsHandler := websocket.NewHandler(hub, cfg.WebSocket.AllowedOrigins, appLogger)
	e.GET("/ws", wsHandler.Serve)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	select {
	case <-schedulerDone:
	case <-shutdownCtx.Done():
		appLogger.Warn("Scheduler did not stop in time")
	}

	appLogger.Info("Server exiting")
}

// @title Stock Sentiment Dashboard API
// @version 1.0
// @description News sentiment scores, trends and market overview for tracked stocks.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
