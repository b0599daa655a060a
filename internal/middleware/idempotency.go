package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	IdempotencyTTL     = 24 * time.Hour
	IdempotencyLockTTL = 30 * time.Second
)

var ErrRequestInProgress = apperror.New(
	"PROCESSING",
	"a request with this idempotency key is still being processed",
	http.StatusConflict,
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyKey scopes a client key to the caller and the route.
func IdempotencyKey(route, caller, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", route, caller, key)
}

// Idempotency replays the stored response of a POST that carried the same
// Idempotency-Key. Concurrent duplicates get 409 while the first is running.
// Server errors are not stored so the client can retry them.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		caller := c.GetString("user_id")
		if caller == "" {
			caller = "employee:" + c.GetString("employee_id")
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L())
		cacheKey := IdempotencyKey(c.FullPath(), caller, key)
		lockKey := cacheKey + ":lock"

		raw, err := rdb.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var stored storedResponse
			if jerr := json.Unmarshal(raw, &stored); jerr == nil {
				c.Header(ReplayedHeader, "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			log.Warn("discarding unreadable idempotency entry", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			// without redis the request still runs, only unprotected
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "1", IdempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.AbortFail(c, ErrRequestInProgress)
			return
		}
		defer rdb.Del(ctx, lockKey)

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, IdempotencyTTL).Err(); err != nil {
			log.Warn("store idempotent response failed", zap.Error(err))
		}
	}
}
