package controllers

import (
	"errors"
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthController(authService *services.AuthService, userService *services.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates the user, mails a six digit verification code and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration"
// @Success 201 {object} models.AuthResponse
// @Failure 422 {object} map[string]interface{}
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ac.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, "Registration successful. Please check your email for the verification code.", resp)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ac.authService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", resp)
}

// VerifyOTP godoc
// @Summary Verify the emailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.VerifyOTPRequest true "Email and code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/verify-otp [post]
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ac.authService.VerifyOTP(&req); err != nil {
		ac.respondUnknownEmail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Email verified successfully. You can now log in.", nil)
}

// @Summary Mail a fresh verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.ResendVerificationRequest true "Email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/resend-verification [post]
func (ac *AuthController) ResendVerification(c *gin.Context) {
	var req models.ResendVerificationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ac.authService.ResendVerification(req.Email); err != nil {
		ac.respondUnknownEmail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "A new verification code has been sent to your email.", nil)
}

// respondUnknownEmail reports a missing account as a validation failure on
// the email field.
func (ac *AuthController) respondUnknownEmail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		utils.ValidationFailed(c, map[string][]string{"email": {"The selected email is invalid."}})
		return
	}
	respondError(c, err)
}

// @Summary Revoke the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if err := ac.authService.Logout(sessionID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Router /auth/profile [get]
// @Router /user [get]
func (ac *AuthController) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	user, err := ac.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", user)
}
