package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a panic in a handler into the 500 envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, rec, debug.Stack())
				if c.Writer.Written() {
					c.Abort()
					return
				}
				utils.FailWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("%v", rec))
				c.Abort()
			}
		}()

		c.Next()
	}
}
