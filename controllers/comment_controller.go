package controllers

import (
	"net/http"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService *services.CommentService
	hubService     *services.HubService
}

func NewCommentController(commentService *services.CommentService, hubService *services.HubService) *CommentController {
	return &CommentController{
		commentService: commentService,
		hubService:     hubService,
	}
}

// @Summary List comments, newest first
// @Tags comments
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {array} models.Comment
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{slug}/comments [get]
func (cc *CommentController) GetComments(c *gin.Context) {
	comments, err := cc.commentService.ListForPost(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "", comments)
}

// @Summary Comment on a published post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Post slug"
// @Param body body models.CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /posts/{slug}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	userID, _ := getUserID(c)

	var req models.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, post, err := cc.commentService.Create(userID, c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if post.UserID != userID {
		cc.hubService.BroadcastToUser(post.UserID, models.EventCommentCreated, gin.H{
			"post_slug":  post.Slug,
			"post_title": post.Title,
			"comment":    comment,
		})
	}

	utils.Success(c, http.StatusCreated, "Comment added successfully", comment)
}

// @Summary Edit your comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Param body body models.CommentRequest true "Comment"
// @Success 200 {object} models.Comment
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /comments/{id} [put]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	userID, _ := getUserID(c)
	commentID, ok := paramID(c, "id")
	if !ok {
		utils.Fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	var req models.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.commentService.Update(userID, commentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Comment updated successfully", comment)
}

// @Summary Delete a comment on your post or your own comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID, _ := getUserID(c)
	commentID, ok := paramID(c, "id")
	if !ok {
		utils.Fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	if err := cc.commentService.Delete(userID, commentID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Comment deleted successfully", nil)
}
