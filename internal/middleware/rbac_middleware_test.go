package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-portal/internal/domain"
	"hris-portal/internal/middleware"
	middlewareMock "hris-portal/internal/middleware/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func rbacRouter(svc middleware.RBACService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authenticated {
			c.Set("user_id", "u1")
			c.Set("company_id", "c1")
		}
		c.Next()
	})
	r.GET("/leaves", middleware.RBACAuthorize(svc, "leave", "read"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRBACAuthorize(t *testing.T) {
	want := domain.EnforceRequest{UserID: "u1", CompanyID: "c1", Resource: "leave", Action: "read"}

	tests := []struct {
		name          string
		authenticated bool
		setup         func(m *middlewareMock.MockRBACService)
		wantStatus    int
	}{
		{"allowed", true, func(m *middlewareMock.MockRBACService) {
			m.EXPECT().Enforce(gomock.Any(), want).Return(true, nil)
		}, http.StatusNoContent},
		{"denied", true, func(m *middlewareMock.MockRBACService) {
			m.EXPECT().Enforce(gomock.Any(), want).Return(false, nil)
		}, http.StatusForbidden},
		{"enforcer error", true, func(m *middlewareMock.MockRBACService) {
			m.EXPECT().Enforce(gomock.Any(), want).Return(false, errors.New("policy load failed"))
		}, http.StatusInternalServerError},
		{"no auth context", false, func(m *middlewareMock.MockRBACService) {}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := middlewareMock.NewMockRBACService(ctrl)
			tt.setup(svc)

			w := httptest.NewRecorder()
			rbacRouter(svc, tt.authenticated).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
