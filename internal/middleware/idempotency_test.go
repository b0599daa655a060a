package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idempotentRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})
	r.POST("/leaves", middleware.Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "l1"})
	})
	return r, mock, &calls
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	cacheKey := middleware.IdempotencyKey("/leaves", "u1", "k1")
	lockKey := cacheKey + ":lock"

	t.Run("no key runs handler", func(t *testing.T) {
		r, mock, calls := idempotentRouter(t)
		w := post(r, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request is stored", func(t *testing.T) {
		r, mock, calls := idempotentRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", middleware.IdempotencyLockTTL).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `.*`, middleware.IdempotencyTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r, "k1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored response is replayed", func(t *testing.T) {
		r, mock, calls := idempotentRouter(t)
		stored, err := json.Marshal(map[string]any{
			"status":       http.StatusCreated,
			"content_type": "application/json; charset=utf-8",
			"body":         []byte(`{"id":"l1"}`),
		})
		require.NoError(t, err)
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := post(r, "k1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(middleware.ReplayedHeader))
		assert.JSONEq(t, `{"id":"l1"}`, w.Body.String())
		assert.Equal(t, 0, *calls)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		r, mock, calls := idempotentRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", middleware.IdempotencyLockTTL).SetVal(false)

		w := post(r, "k1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, *calls)
	})
}
