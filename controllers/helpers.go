package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// bindJSON reports malformed bodies as 400 and rule violations as 422.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := utils.FieldErrors(err); ok {
			utils.ValidationFailed(c, fields)
			return false
		}
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if fields, ok := utils.FieldErrors(err); ok {
			utils.ValidationFailed(c, fields)
			return false
		}
		utils.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var fe *services.FieldError
	switch {
	case errors.As(err, &fe):
		utils.ValidationFailed(c, map[string][]string{fe.Field: {fe.Message}})
	case errors.Is(err, services.ErrUserNotFound):
		utils.Fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrPostNotFound):
		utils.Fail(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.Fail(c, http.StatusNotFound, "Category not found")
	case errors.Is(err, services.ErrCommentNotFound):
		utils.Fail(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Fail(c, http.StatusForbidden, "This action is unauthorized.")
	case errors.Is(err, services.ErrCategoryInUse):
		utils.Fail(c, http.StatusBadRequest, "Cannot delete category with existing posts")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, gin.H{
			"success":        false,
			"message":        "Please verify your email address before logging in.",
			"email_verified": false,
		})
	case errors.Is(err, services.ErrAlreadyVerified):
		utils.Fail(c, http.StatusBadRequest, "Email already verified")
	case errors.Is(err, services.ErrInvalidOTP):
		utils.Fail(c, http.StatusBadRequest, "Invalid OTP code")
	case errors.Is(err, services.ErrOTPExpired):
		utils.Fail(c, http.StatusBadRequest, "OTP code has expired. Please request a new one.")
	case errors.Is(err, services.ErrSessionInvalid):
		utils.Fail(c, http.StatusUnauthorized, "Unauthenticated.")
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.FailWithError(c, http.StatusInternalServerError, "Something went wrong", err)
	}
}
