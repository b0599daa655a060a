package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-portal/internal/company"
	companyerrors "hris-portal/internal/company/errors"
	companyMock "hris-portal/internal/company/mock"
	"hris-portal/internal/domain"
	middlewareMock "hris-portal/internal/middleware/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testCompanyID = "8d0c8f7e-7d3f-4a4e-9a43-3f0d3b1e2c11"

func newTestRouter(t *testing.T, svc company.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rbac := middlewareMock.NewMockRBACService(gomock.NewController(t))
	rbac.EXPECT().Enforce(gomock.Any(), gomock.AssignableToTypeOf(domain.EnforceRequest{})).Return(true, nil).AnyTimes()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Set("company_id", testCompanyID)
		c.Next()
	})
	company.RegisterRoutes(r.Group(""), company.NewHandler(svc), rbac)
	return r
}

func TestCompanyHandler_GetMe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := companyMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetByID(gomock.Any(), testCompanyID).Return(company.CompanyResponse{ID: testCompanyID, Name: "Acme"}, nil)

		w := httptest.NewRecorder()
		newTestRouter(t, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/company/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Acme"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := companyMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetByID(gomock.Any(), testCompanyID).Return(company.CompanyResponse{}, companyerrors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		newTestRouter(t, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/company/me", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyHandler_UpdateMe(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		svc := companyMock.NewMockService(gomock.NewController(t))
		req := httptest.NewRequest(http.MethodPut, "/company/me", strings.NewReader(`{"email":"bad"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		newTestRouter(t, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := companyMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().Update(gomock.Any(), testCompanyID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
				assert.Equal(t, "Acme Ltd", *req.Name)
				return company.CompanyResponse{ID: testCompanyID, Name: *req.Name}, nil
			})
		req := httptest.NewRequest(http.MethodPut, "/company/me", strings.NewReader(`{"name":"Acme Ltd"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		newTestRouter(t, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Acme Ltd")
	})
}
