package app

import (
	"database/sql"

	"go-bakery/internal/bootstrap"
	"go-bakery/internal/budget"
	"go-bakery/internal/incentive"
	"go-bakery/internal/incentivetier"
	"go-bakery/internal/messaging/kafka"
	"go-bakery/internal/middleware"
	"go-bakery/internal/rbac"
	"go-bakery/internal/rbac/infra"
	"go-bakery/internal/shared/config"
	"go-bakery/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	budgetRepo := budget.NewRepository(gormDB)
	tierRepo := incentivetier.NewRepository(gormDB)
	incentiveRepo := incentive.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	budgetService := budget.NewServiceWithCache(db, budgetRepo, rdb, cfg.Budget.CacheTTL, logger)
	tierService := incentivetier.NewService(db, tierRepo, logger)
	incentiveService := incentive.NewService(db, incentiveRepo, tierService, counterRepo,
		incentive.WithOutbox(outboxRepo),
		incentive.WithAuditLogger(auditLogger),
		incentive.WithConcurrency(cfg.Incentive.CalcConcurrency),
		incentive.WithLogger(logger),
	)

	// --- Handlers ---
	budgetHandler := budget.NewHandler(budgetService)
	tierHandler := incentivetier.NewHandler(tierService)
	incentiveHandler := incentive.NewHandlerWithRedis(incentiveService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
	)
	{
		budget.RegisterRoutes(api, budgetHandler, rbacService)
		incentivetier.RegisterRoutes(api, tierHandler, rbacService)
		incentive.RegisterRoutes(api, incentiveHandler, rbacService, rdb, incentive.RouteConfig{
			WriteRateLimit: rate.Limit(cfg.HTTP.RateLimitPerUser),
			WriteBurst:     cfg.HTTP.RateLimitBurst,
		})
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
