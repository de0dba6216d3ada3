package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yongin-adm/roster-adp-api/internal/handler"
	"github.com/yongin-adm/roster-adp-api/internal/middleware"
	"github.com/yongin-adm/roster-adp-api/internal/parser"
	"github.com/yongin-adm/roster-adp-api/internal/repository"
	"github.com/yongin-adm/roster-adp-api/internal/service"
	"github.com/yongin-adm/roster-adp-api/pkg/cache"
	"github.com/yongin-adm/roster-adp-api/pkg/config"
	"github.com/yongin-adm/roster-adp-api/pkg/database"
	"github.com/yongin-adm/roster-adp-api/pkg/logger"
	corsmiddleware "github.com/yongin-adm/roster-adp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/yongin-adm/roster-adp-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The dashboard works without Redis; statistics are recomputed
		// per request instead of cached.
		logr.Warn("redis unavailable, stats caching disabled", zap.Error(err))
		redisClient = nil
	}

	positions, err := parser.LoadPositionTable(cfg.Positions.MappingFile)
	if err != nil {
		logr.Fatal("failed to load position mapping", zap.Error(err))
	}

	snapshots := repository.NewSnapshotRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		PasswordHash: cfg.Admin.PasswordHash,
		Username:     cfg.Admin.Username,
		Secret:       cfg.JWT.Secret,
		Expiration:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
	})
	orgSvc := service.NewOrganizationService(snapshots, logr)
	facultySvc := service.NewFacultyService(snapshots, cacheRepo, metricsSvc, logr, cfg.Dashboard.StatsCacheTTL)
	assistantSvc := service.NewAssistantService(snapshots, logr)
	leaveSvc := service.NewLeaveService(snapshots, logr)
	exportSvc := service.NewExportService(assistantSvc, leaveSvc, logr)
	uploadSvc := service.NewUploadService(snapshots, orgSvc, positions, facultySvc, metricsSvc, logr, service.UploadConfig{
		MaxFileSizeBytes:  cfg.Upload.MaxFileSizeBytes,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		HistoryLimit:      cfg.Upload.HistoryLimit,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Upload.MaxFileSizeBytes

	ready := func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Faculty:      handler.NewFacultyHandler(facultySvc, orgSvc),
		Assistant:    handler.NewAssistantHandler(assistantSvc, exportSvc),
		Leave:        handler.NewLeaveHandler(leaveSvc, exportSvc),
		Organization: handler.NewOrganizationHandler(orgSvc),
		Uploads:      handler.NewUploadHandler(uploadSvc),
		Metrics:      handler.NewMetricsHandler(metricsSvc),
	}, authSvc, ready)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
