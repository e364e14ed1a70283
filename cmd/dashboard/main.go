package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"inboundlogistics/internal/cache"
	"inboundlogistics/internal/config"
	cronrunner "inboundlogistics/internal/cron"
	"inboundlogistics/internal/db"
	"inboundlogistics/internal/export"
	"inboundlogistics/internal/handler"
	"inboundlogistics/internal/logger"
	"inboundlogistics/internal/metrics"
	gormrepository "inboundlogistics/internal/repository/gorm"
	"inboundlogistics/internal/service"
)

// @title Inbound Logistics Dashboard API
// @version 1.0
// @description Vendor performance metrics and reporting for inbound logistics.

//go:generate swag init -g main.go -o ../../docs

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("IL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("IL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	queryCache, redisCache := buildCache(cfg.Cache, logger)
	if redisCache != nil {
		defer redisCache.Close()
	}

	analytics := cfg.Analytics.Normalized()
	store := gormrepository.New(dbConn.Gorm)
	perfService := &service.VendorPerformanceService{
		Repo:  store,
		Cache: queryCache,
		Calc:  metrics.NewCalculator(),
		Thresholds: metrics.Thresholds{
			FairConversion:    analytics.FairConversionPct,
			HighPendingUSD:    analytics.HighPendingUSD,
			InactiveDays:      analytics.InactiveDays,
			MaxReasonableUSD:  analytics.MaxReasonableUSD,
			OverInvoiceFactor: analytics.OverInvoiceFactor,
		},
		TTL:    cfg.Cache.TTL,
		Logger: logger,
	}

	var mailer export.Mailer
	if cfg.Mail.Enabled {
		mailer = &export.SMTPMailer{Cfg: cfg.Mail}
	}
	reportService := &service.ReportService{
		Repo:         store,
		Performance:  perfService,
		Mailer:       mailer,
		Logger:       logger,
		WindowMonths: analytics.DefaultWindowMonths,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	perfHandler := &handler.PerformanceHandler{
		Service:      perfService,
		WindowMonths: analytics.DefaultWindowMonths,
	}
	perfHandler.Register(engine)
	cohortHandler := &handler.CohortHandler{
		Service:      perfService,
		WindowMonths: analytics.DefaultWindowMonths,
	}
	cohortHandler.Register(engine)
	exportHandler := &handler.ExportHandler{
		Service:      perfService,
		WindowMonths: analytics.DefaultWindowMonths,
	}
	exportHandler.Register(engine)
	scheduleHandler := &handler.ScheduleHandler{Repo: store, Reports: reportService}
	scheduleHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		if _, err := cronRunner.Add(cfg.Cron.ReportScan, func(ctx context.Context) {
			if err := reportService.RunDue(ctx); err != nil {
				logger.Warn("report scan failed", zap.Error(err))
			}
		}); err != nil {
			logger.Warn("cron register report scan failed", zap.Error(err))
		}
		if mem, ok := queryCache.(*cache.Memory); ok {
			if _, err := cronRunner.Add(cfg.Cron.CacheSweep, func(context.Context) {
				if dropped := mem.Sweep(); dropped > 0 {
					logger.Debug("cache sweep", zap.Int("dropped", dropped))
				}
			}); err != nil {
				logger.Warn("cron register cache sweep failed", zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func buildCache(cfg config.CacheConfig, logger *zap.Logger) (cache.Cache, *cache.Redis) {
	switch strings.ToLower(cfg.Backend) {
	case "redis":
		redisCache, err := cache.NewRedis(cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("redis cache unavailable, falling back to memory", zap.Error(err))
			return cache.NewMemory(), nil
		}
		return redisCache, redisCache
	case "none":
		return cache.Nop{}, nil
	default:
		return cache.NewMemory(), nil
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
