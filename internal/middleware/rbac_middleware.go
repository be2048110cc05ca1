package middleware

import (
	"context"

	"go-bakery/internal/domain"
	"go-bakery/internal/shared/apperror"
	"go-bakery/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const (
	ContextUserID    ContextKey = "user_id"
	ContextCompanyID ContextKey = "company_id"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(ContextUserID))
		companyID := c.GetString(string(ContextCompanyID))

		if userID == "" || companyID == "" {
			response.FromError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			UserID:    userID,
			CompanyID: companyID,
			Resource:  resource,
			Action:    action,
		})
		if err != nil {
			response.FromError(c, apperror.Wrap(err, apperror.CodeInternalError, "permission check failed", apperror.ErrInternal.HTTPStatus))
			c.Abort()
			return
		}

		if !allowed {
			response.FromError(c, apperror.ErrForbidden.WithDetail(
				apperror.ErrForbidden.Message,
				map[string]string{"required": resource + ":" + action},
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
