package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// bearerToken reads the Authorization header, or the token query parameter
// on websocket upgrades where browsers cannot set headers.
func bearerToken(c *gin.Context) string {
	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token
		}
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		user, session, err := auth.Authenticate(token)
		if err != nil {
			if !errors.Is(err, services.ErrSessionInvalid) {
				log.Printf("Token validation failed: %v", err)
			}
			abortUnauthenticated(c)
			return
		}

		setIdentity(c, user, session)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, session, err := auth.Authenticate(token); err == nil {
				setIdentity(c, user, session)
			}
		}
		c.Next()
	}
}

// VerifiedRequired must run after AuthRequired.
func VerifiedRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get("user")
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if u, ok := user.(*models.User); !ok || !u.HasVerifiedEmail() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":        false,
				"message":        "Your email address is not verified.",
				"email_verified": false,
			})
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, user *models.User, session *models.Session) {
	c.Set("user_id", user.ID)
	c.Set("user", user)
	c.Set("session_id", session.ID)
}

func abortUnauthenticated(c *gin.Context) {
	utils.Fail(c, http.StatusUnauthorized, "Unauthenticated.")
	c.Abort()
}
