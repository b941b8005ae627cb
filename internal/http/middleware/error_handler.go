package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
)

// Fail records an error for the trailing ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns recorded errors into the JSON error contract:
// {error, request_id[, fields][, details]}.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		payload := gin.H{
			"error":      apperr.PublicMessage(err),
			"request_id": rid,
		}
		if ae, ok := apperr.As(err); ok {
			if len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			if ae.Detail != "" {
				payload["details"] = ae.Detail
			}
		}
		c.AbortWithStatusJSON(status, payload)
	}
}
