package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request. The token query parameter used by
// websocket upgrades is never logged.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			line := fmt.Sprintf("[%s] %s %s %d %s %s",
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Request.URL.Path,
				param.StatusCode,
				param.Latency,
				param.ClientIP,
			)
			if param.ErrorMessage != "" {
				line += " " + param.ErrorMessage
			}
			return line + "\n"
		},
		SkipPaths: []string{"/health"},
	})
}
