package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags each request with an id and logs one line after the
// handler returns. Interview routes also carry the session code.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := requestID(c)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if companyID, ok := c.Get("company_id"); ok {
			fields["company_id"] = companyID
		}
		if code := c.Param("code"); code != "" {
			fields["code"] = code
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		l.WithFields(fields).Log(levelFor(status), "request")
	}
}

func requestID(c *gin.Context) string {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(RequestIDHeader, id)
	c.Set("request_id", id)
	return id
}

func levelFor(status int) logrus.Level {
	switch {
	case status >= 500:
		return logrus.ErrorLevel
	case status >= 400:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
