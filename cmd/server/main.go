package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/config"
	"github.com/mamadbah2/dealyield/internal/domain/models"
	"github.com/mamadbah2/dealyield/internal/engine"
	"github.com/mamadbah2/dealyield/internal/repository/cache"
	"github.com/mamadbah2/dealyield/internal/repository/mongodb"
	"github.com/mamadbah2/dealyield/internal/repository/sheets"
	"github.com/mamadbah2/dealyield/internal/scheduler"
	"github.com/mamadbah2/dealyield/internal/server/handlers"
	"github.com/mamadbah2/dealyield/internal/server/router"
	analysissvc "github.com/mamadbah2/dealyield/internal/service/analysis"
	"github.com/mamadbah2/dealyield/pkg/clients/auth"
	"github.com/mamadbah2/dealyield/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()
	if err := mongoRepo.EnsureIndexes(startupCtx); err != nil {
		baseLogger.Fatal("failed to create mongodb indexes", zap.Error(err))
	}

	var resultCache cache.Cache
	if cfg.Cache.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Cache)
		defer func() { _ = redisCache.Close() }()
		if err := redisCache.Ping(startupCtx); err != nil {
			baseLogger.Warn("redis unreachable, cache calls will fail until it recovers", zap.Error(err))
		}
		resultCache = redisCache
		baseLogger.Info("redis result cache enabled", zap.String("addr", cfg.Cache.Addr))
	} else {
		resultCache = cache.NewMemoryCache()
		baseLogger.Info("in-memory result cache enabled")
	}

	var exporter sheets.Exporter = sheets.Noop{}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheets.NewAnalysisExporter(sheetsRepo)
		baseLogger.Info("google sheets export enabled")
	}

	analysisSvc := analysissvc.NewService(
		engine.NewAnalyzer(cfg.Sensitivity.Workers),
		mongoRepo,
		resultCache,
		exporter,
		analysissvc.Settings{
			CacheTTL:      cfg.Cache.TTL,
			DefaultMetric: models.Metric(cfg.Sensitivity.DefaultMetric),
		},
		baseLogger.Named("svc.analysis"),
	)

	authClient := auth.NewClient(cfg.Auth)
	analysisHandler := handlers.NewAnalysisHandler(analysisSvc, baseLogger.Named("handlers.analysis"))
	ginEngine := router.New(analysisHandler, authClient, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Retention, analysisSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
