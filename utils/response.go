package utils

import (
	"github.com/gin-gonic/gin"
)

// Success writes {"success": true, "message", "data"}; empty message and nil
// data are left out.
func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailWithError is used for 500s, where the cause is echoed back.
func FailWithError(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

func ValidationFailed(c *gin.Context, fields map[string][]string) {
	c.JSON(422, gin.H{
		"success": false,
		"message": "Validation errors",
		"errors":  fields,
	})
}
