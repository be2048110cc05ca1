package middleware

import (
	"go-bakery/internal/shared/apperror"
	"go-bakery/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID re-publishes the authenticated user as user_id_validated
// once it is known to be a non-empty string.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get("user_id")
		if !exists {
			response.FromError(ctx, apperror.ErrUnauthorized)
			ctx.Abort()
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			response.FromError(ctx, apperror.ErrUnauthorized.WithDetail("invalid user id in token", nil))
			ctx.Abort()
			return
		}

		ctx.Set("user_id_validated", userIDStr)
		ctx.Next()
	}
}
