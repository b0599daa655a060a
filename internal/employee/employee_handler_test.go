package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-portal/internal/employee"
	employeeerrors "hris-portal/internal/employee/errors"
	"hris-portal/internal/shared/access"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	employee.Service
	CreateFn            func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn            func(ctx context.Context, actor access.Actor, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error)
	GetOptionsFn        func(ctx context.Context, companyID string) ([]employee.EmployeeOption, error)
	GetByIDFn           func(ctx context.Context, actor access.Actor, id string) (employee.EmployeeResponse, error)
	UpdateFn            func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn            func(ctx context.Context, companyID, id string) error
	SetPortalPasswordFn func(ctx context.Context, companyID, id string, req employee.SetPortalPasswordRequest) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, actor access.Actor, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
	return f.GetAllFn(ctx, actor, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOption, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, actor access.Actor, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) SetPortalPassword(ctx context.Context, companyID, id string, req employee.SetPortalPasswordRequest) error {
	return f.SetPortalPasswordFn(ctx, companyID, id, req)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withActor(actor access.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("company_id", actor.CompanyID)
		c.Set("role", actor.Role)
		c.Next()
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.New().String()
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{ID: uuid.New().String(), FullName: req.FullName, CompanyID: cid}, nil
			},
		}
		r := setupRouter()
		r.POST("/employees", withActor(actor), employee.NewHandler(svc).Create)

		body := `{"full_name":"John Doe","email":"john@example.com","hire_date":"2026-01-01","work_status":"REGULAR","position_id":"` + uuid.New().String() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", withActor(actor), employee.NewHandler(&fakeEmployeeService{}).Create)

		body := `{"full_name":"","email":"not-an-email","work_status":"ACTIVE"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter()
		r.POST("/employees", withActor(actor), employee.NewHandler(svc).Create)

		body := `{"full_name":"John Doe","email":"john@example.com","hire_date":"2026-01-01","work_status":"REGULAR","position_id":"` + uuid.New().String() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleSupervisor}

	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, a access.Actor, f employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, actor, a)
			assert.Equal(t, "ana", f.Search)
			assert.Equal(t, "REGULAR", f.WorkStatus)
			assert.Equal(t, "desc", f.SortDir)
			assert.Equal(t, 5, f.Limit)
			assert.Equal(t, 5, f.Offset)
			return []employee.EmployeeResponse{{FullName: "Ana"}}, 6, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", withActor(actor), employee.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees?q=ana&work_status=regular&sort_dir=DESC&page=2&page_size=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
			Page       int   `json:"page"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, int64(6), body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
	assert.Equal(t, 2, body.Meta.Page)
}

func TestEmployeeHandler_GetById(t *testing.T) {
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleSupervisor}

	t.Run("out of scope", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, a access.Actor, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeOutOfScope
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withActor(actor), employee.NewHandler(svc).GetById)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, a access.Actor, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withActor(actor), employee.NewHandler(svc).GetById)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.New().String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleAdmin}
	targetID := uuid.New().String()

	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, companyID, id string) error {
			assert.Equal(t, actor.CompanyID, companyID)
			assert.Equal(t, targetID, id)
			return nil
		},
	}
	r := setupRouter()
	r.DELETE("/employees/:id", withActor(actor), employee.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+targetID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestEmployeeHandler_SetPortalPassword(t *testing.T) {
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleHR}

	t.Run("too short", func(t *testing.T) {
		r := setupRouter()
		r.PUT("/employees/:id/portal-password", withActor(actor), employee.NewHandler(&fakeEmployeeService{}).SetPortalPassword)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/"+uuid.New().String()+"/portal-password", strings.NewReader(`{"password":"short"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		called := false
		svc := &fakeEmployeeService{
			SetPortalPasswordFn: func(ctx context.Context, companyID, id string, req employee.SetPortalPasswordRequest) error {
				called = true
				assert.Equal(t, "long-enough-pass", req.Password)
				return nil
			},
		}
		r := setupRouter()
		r.PUT("/employees/:id/portal-password", withActor(actor), employee.NewHandler(svc).SetPortalPassword)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/"+uuid.New().String()+"/portal-password", strings.NewReader(`{"password":"long-enough-pass"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
	})
}
