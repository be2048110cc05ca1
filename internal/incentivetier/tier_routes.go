package incentivetier

import (
	"go-bakery/internal/middleware"
	"go-bakery/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	tiers := r.Group("/incentive-tiers")
	{
		tiers.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionRead), handler.GetAll)
		tiers.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionCreate), handler.Create)
		tiers.GET("/coverage", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionRead), handler.Coverage)
		tiers.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionRead), handler.GetByID)
		tiers.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionUpdate), handler.Update)
		tiers.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceIncentiveTier, rbac.ActionDelete), handler.Delete)
	}
}
