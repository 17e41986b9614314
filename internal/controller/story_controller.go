package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type StoryController struct {
	Service *service.StoryService
}

func NewStoryController(svc *service.StoryService) *StoryController {
	return &StoryController{Service: svc}
}

// @Summary Share a success story
// @Tags Stories
// @Accept json
// @Produce json
// @Param body body service.StoryRequest true "Story"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/success-stories [post]
func (c *StoryController) Submit(ctx *gin.Context) {
	var req service.StoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	story, err := c.Service.Submit(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":      story.ID,
		"message": "Story created successfully",
	})
}

// @Summary List success stories
// @Tags Stories
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/success-stories [get]
func (c *StoryController) List(ctx *gin.Context) {
	stories, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stories": stories})
}

type likeRequest struct {
	Email string `json:"email"`
}

// @Summary Like a story
// @Tags Stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param body body likeRequest true "Liker email"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/success-stories/{id}/like [post]
func (c *StoryController) Like(ctx *gin.Context) {
	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.Like(ctx.Param("id"), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLikeRequiresQuiz):
			util.Forbidden(ctx, "Only employees who completed a training quiz can like stories")
		case errors.Is(err, util.ErrStoryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyLiked):
			util.Conflict(ctx, "You have already liked this story")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Story liked"})
}
