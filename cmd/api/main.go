package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/fixtrack/repair-shop-api/api/swagger"
	"github.com/fixtrack/repair-shop-api/internal/handler"
	"github.com/fixtrack/repair-shop-api/internal/middleware"
	"github.com/fixtrack/repair-shop-api/internal/repository"
	"github.com/fixtrack/repair-shop-api/internal/service"
	"github.com/fixtrack/repair-shop-api/pkg/config"
	"github.com/fixtrack/repair-shop-api/pkg/database"
	"github.com/fixtrack/repair-shop-api/pkg/logger"
	corsmiddleware "github.com/fixtrack/repair-shop-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fixtrack/repair-shop-api/pkg/middleware/requestid"
)

// @title Repair Shop API
// @version 1.0.0
// @description Repair job tracking for the shop front end
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	metrics := service.NewMetricsService()
	db := database.New(cfg.Database, logr).WithMetrics(metrics)
	if err := db.Connect(ctx); err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	repairRepo := repository.NewRepairRepository(db)
	if err := repairRepo.EnsureSchema(ctx); err != nil {
		// In retry mode the database may still be coming up; the table is
		// created on the next start once it is reachable.
		logr.Warn("failed to ensure repairs schema", zap.Error(err))
	} else if migrated, err := repairRepo.MigrateLegacy(ctx); err != nil {
		logr.Warn("failed to migrate legacy repair_jobs rows", zap.Error(err))
	} else if migrated > 0 {
		logr.Info("migrated legacy repair_jobs rows", zap.Int64("count", migrated))
	}

	repairSvc := service.NewRepairService(repairRepo, nil, logr)
	repairHandler := handler.NewRepairHandler(repairSvc)
	systemHandler := handler.NewSystemHandler(cfg.Env, db, metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/", systemHandler.Root)
	r.GET("/healthcheck", systemHandler.Healthcheck)
	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)
	r.GET("/metrics", systemHandler.Prometheus)

	repairs := r.Group(fmt.Sprintf("/api/%s/repairs", cfg.APIVersion))
	{
		repairs.GET("", repairHandler.List)
		repairs.POST("", repairHandler.Create)
		repairs.PUT("/:id", repairHandler.UpdateStatus)
		repairs.PATCH("/:id", repairHandler.UpdateStatus)
		repairs.DELETE("/:id", repairHandler.Delete)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "api_version", cfg.APIVersion)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
