package budget

import (
	"go-bakery/internal/middleware"
	"go-bakery/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	projects := r.Group("/projects/:project_id")
	{
		projects.GET("/budget-allocations", middleware.RBACAuthorize(rbacService, rbac.ResourceBudget, rbac.ActionRead), handler.GetAllocations)
		projects.PUT("/budget-allocations", middleware.RBACAuthorize(rbacService, rbac.ResourceBudget, rbac.ActionUpdate), handler.UpsertAllocation)
		projects.GET("/actual-cost", middleware.RBACAuthorize(rbacService, rbac.ResourceBudget, rbac.ActionRead), handler.GetActualCost)
		projects.GET("/budget-variance", middleware.RBACAuthorize(rbacService, rbac.ResourceBudget, rbac.ActionRead), handler.GetVarianceReport)
	}
}
