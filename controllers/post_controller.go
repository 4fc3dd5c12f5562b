package controllers

import (
	"bytes"
	"net/http"
	"time"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	postService   *services.PostService
	exportService *services.ExportService
	hubService    *services.HubService
}

func NewPostController(postService *services.PostService, exportService *services.ExportService, hubService *services.HubService) *PostController {
	return &PostController{
		postService:   postService,
		exportService: exportService,
		hubService:    hubService,
	}
}

type postQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Author   uint   `form:"author"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" binding:"omitempty,min=1"`
}

func (q postQuery) filter() models.PostFilter {
	return models.PostFilter{
		Status:   q.Status,
		Category: q.Category,
		Search:   q.Search,
		AuthorID: q.Author,
		Page:     q.Page,
		PerPage:  q.PerPage,
	}
}

// GetPosts godoc
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Title or content substring"
// @Param author query int false "Author id"
// @Param page query int false "Page"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} models.Paginated[models.Post]
// @Failure 400 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	var q postQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := pc.postService.ListPublished(q.filter())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", page)
}

// @Summary Get a post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{slug} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	viewerID, _ := getUserID(c)

	post, err := pc.postService.GetBySlug(c.Param("slug"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", post)
}

// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	userID, _ := getUserID(c)

	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := pc.postService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if post.IsPublished() {
		pc.hubService.BroadcastToAll(models.EventPostPublished, post)
	}

	utils.Success(c, http.StatusCreated, "Post created successfully", post)
}

// @Summary Update your post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Param body body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /posts/{slug} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	userID, _ := getUserID(c)

	var req models.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, published, err := pc.postService.Update(userID, c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if published {
		pc.hubService.BroadcastToAll(models.EventPostPublished, post)
	}

	utils.Success(c, http.StatusOK, "Post updated successfully", post)
}

// @Summary Move your post to the trash
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{slug} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	userID, _ := getUserID(c)

	if err := pc.postService.Delete(userID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Post moved to trash", nil)
}

// @Summary List your posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft or published"
// @Param page query int false "Page"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} models.Paginated[models.Post]
// @Failure 401 {object} map[string]interface{}
// @Router /me/posts [get]
func (pc *PostController) GetMyPosts(c *gin.Context) {
	userID, _ := getUserID(c)

	var q postQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := pc.postService.ListByAuthor(userID, q.filter())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", page)
}

// ExportMyPosts streams the caller's posts as csv (default) or xlsx.
// @Summary Download your posts
// @Tags posts
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 401 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /me/posts/export [get]
func (pc *PostController) ExportMyPosts(c *gin.Context) {
	userID, _ := getUserID(c)

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		utils.ValidationFailed(c, map[string][]string{"format": {"The selected format is invalid. Allowed: csv, xlsx."}})
		return
	}

	posts, err := pc.exportService.AuthorPosts(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = pc.exportService.WriteXLSX(&buf, posts)
	} else {
		err = pc.exportService.WriteCSV(&buf, posts)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(format, time.Now())+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// @Summary List your trashed posts
// @Tags trash
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Post
// @Failure 401 {object} map[string]interface{}
// @Router /trash [get]
func (pc *PostController) GetTrash(c *gin.Context) {
	userID, _ := getUserID(c)

	posts, err := pc.postService.ListTrashed(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", posts)
}

// @Summary Restore a trashed post
// @Tags trash
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /trash/{slug}/restore [post]
func (pc *PostController) RestorePost(c *gin.Context) {
	userID, _ := getUserID(c)

	post, err := pc.postService.Restore(userID, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Post restored successfully", post)
}

// @Summary Permanently delete a trashed post
// @Tags trash
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /trash/{slug} [delete]
func (pc *PostController) ForceDeletePost(c *gin.Context) {
	userID, _ := getUserID(c)

	if err := pc.postService.ForceDelete(userID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Post permanently deleted", nil)
}
