package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-bakery/internal/domain"
	"go-bakery/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func runAuthorize(rbacSvc middleware.RBACService, setIdentity bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/awards/:id/pay", func(c *gin.Context) {
		if setIdentity {
			c.Set("user_id", "user-1")
			c.Set("company_id", "company-1")
		}
		c.Next()
	}, middleware.RBACAuthorize(rbacSvc, "incentive_award", "pay"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/awards/1/pay", nil))
	return w
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		w := runAuthorize(svc, true)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "user-1", svc.got.UserID)
		assert.Equal(t, "pay", svc.got.Action)
	})

	t.Run("forbidden", func(t *testing.T) {
		w := runAuthorize(&fakeRBAC{}, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "incentive_award:pay")
	})

	t.Run("missing identity", func(t *testing.T) {
		w := runAuthorize(&fakeRBAC{allowed: true}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := runAuthorize(&fakeRBAC{err: errors.New("db down")}, true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
