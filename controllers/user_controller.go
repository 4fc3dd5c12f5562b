package controllers

import (
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// @Summary Public profile with published posts
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	user, err := uc.userService.GetUserByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", user)
}

// @Summary Update your own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param body body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := uc.selfOnly(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.UpdateUser(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// @Summary Delete your own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := uc.selfOnly(c)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Account deleted successfully", nil)
}

func (uc *UserController) selfOnly(c *gin.Context) (uint, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return 0, false
	}
	userID, exists := getUserID(c)
	if !exists || userID != id {
		utils.Fail(c, http.StatusForbidden, "You can only modify your own account")
		return 0, false
	}
	return id, true
}
