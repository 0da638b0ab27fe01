package main

import (
	"context"
	"dormhub/internal/database"
	"dormhub/internal/router"
	"dormhub/pkg/config"
	"dormhub/pkg/jwt"
	"dormhub/pkg/logger"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.SetConfig(cfg)

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting dormhub API server...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
		if err := database.CloseRevoker(); err != nil {
			appLogger.Error("Failed to close Redis:", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.Seed {
		if err := seedData(database.GetDB()); err != nil {
			appLogger.Fatalf("Failed to initialize seed data: %v", err)
		}
	}

	revoker := database.GetRevoker()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := revoker.Ping(pingCtx); err != nil {
		appLogger.Warnf("Redis not reachable, logout and authenticated requests will fail: %v", err)
	}
	cancel()

	if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
		appLogger.Fatalf("Failed to create storage dir: %v", err)
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.SetupRouter(router.Deps{
		Config:     cfg,
		DB:         database.GetDB(),
		JWTManager: jwt.GetJWTManager(),
		Revoker:    revoker,
		Redis:      revoker,
		Registry:   registry,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
