package budget

import (
	"net/http"

	"go-bakery/internal/shared/apperror"
	"go-bakery/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func getActorID(c *gin.Context) string {
	if actorID := c.GetString("user_id_validated"); actorID != "" {
		return actorID
	}
	return c.GetString("user_id")
}

func (h *Handler) UpsertAllocation(c *gin.Context) {
	var req UpsertAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpsertAllocation(
		c.Request.Context(),
		c.GetString("company_id"),
		getActorID(c),
		c.Param("project_id"),
		req,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllocations(c *gin.Context) {
	resp, err := h.service.GetAllocations(c.Request.Context(), c.GetString("company_id"), c.Param("project_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetActualCost(c *gin.Context) {
	var req GetActualCostRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	var categoryID *string
	if req.CategoryID != "" {
		categoryID = &req.CategoryID
	}

	resp, err := h.service.GetReconciledActualCost(
		c.Request.Context(),
		c.GetString("company_id"),
		c.Param("project_id"),
		categoryID,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetVarianceReport(c *gin.Context) {
	resp, err := h.service.GetVarianceReport(c.Request.Context(), c.GetString("company_id"), c.Param("project_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
