package controllers

import (
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService *services.CategoryService
}

func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// GetCategories godoc
// @Summary List categories with their live post counts
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.categoryService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", categories)
}

// @Summary Category with its published posts
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{slug} [get]
func (cc *CategoryController) GetCategory(c *gin.Context) {
	category, err := cc.categoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", category)
}

// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /categories [post]
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categoryService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, "Category created successfully", category)
}

// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Param body body models.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /categories/{slug} [put]
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categoryService.Update(c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Category updated successfully", category)
}

// @Summary Delete an unused category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{slug} [delete]
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	if err := cc.categoryService.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
