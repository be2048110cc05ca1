package incentive

import (
	"go-bakery/internal/middleware"
	"go-bakery/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	WriteRateLimit rate.Limit
	WriteBurst     int
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	cfg RouteConfig,
) {
	writeLimit := middleware.RateLimitByUser(cfg.WriteRateLimit, cfg.WriteBurst)

	incentives := r.Group("/incentives")
	{
		incentives.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionRead), handler.GetAll)
		incentives.GET("/calculate", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionRead), handler.Calculate)
		incentives.POST("/commit",
			writeLimit,
			middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Commit,
		)
		incentives.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionRead), handler.GetByID)
		incentives.POST("/:id/approve", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionApprove), handler.Approve)
		incentives.POST("/:id/pay", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionPay), handler.Pay)
		incentives.POST("/:id/cancel", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionCancel), handler.Cancel)
		incentives.PATCH("/:id/final-reward", writeLimit, middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveAward, rbac.ActionUpdate), handler.AdjustFinalReward)
	}
}
