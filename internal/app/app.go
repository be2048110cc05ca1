package app

import (
	"database/sql"

	"go-bakery/internal/middleware"
	"go-bakery/internal/shared/config"
	"go-bakery/internal/shared/connection"
	"go-bakery/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the connections opened by BuildApp so main can release them.
type App struct {
	DB    *sql.DB
	Redis *redis.Client
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	router.Use(middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, 200, gin.H{"status": "ok"}, nil)
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	return &App{DB: sqlDB, Redis: redisClient}, nil
}
