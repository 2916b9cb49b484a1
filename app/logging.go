package app

import (
	"expvar"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"equipment_borrow/api"
)

const RequestIDHeader = "X-Request-ID"

var (
	requestsTotal  = expvar.NewInt("requests_total")
	requestsErrors = expvar.NewInt("requests_errors_total")
)

// RequestLogger 替代 gin 默认 logger：一行 key=value，并累计 expvar 计数
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("requestID", rid)
		c.Header(RequestIDHeader, rid)

		c.Next()

		status := c.Writer.Status()
		requestsTotal.Add(1)
		if status >= http.StatusBadRequest {
			requestsErrors.Add(1)
		}
		log.Printf("request method=%s path=%s status=%d duration_ms=%d request_id=%s mobile=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds(), rid, c.GetHeader(api.HeaderFromMobile))
	}
}
