package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"
	"ai_hub_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary Submit a completed quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body service.QuizSubmissionRequest true "Quiz submission"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/quiz-submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req service.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.Submit(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound),
			errors.Is(err, util.ErrIncompleteAnswers),
			errors.Is(err, util.ErrUnknownQuestion):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.Itoa(sub.ModuleID)).Inc()

	util.Created(ctx, gin.H{
		"success": true,
		"id":      sub.ID,
		"score":   sub.Score,
		"total":   sub.TotalQuestions,
	})
}

// @Summary Per-module completion counts and average scores
// @Tags Quiz
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/module-stats [get]
func (c *QuizController) ModuleStats(ctx *gin.Context) {
	stats, err := c.Service.ModuleStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
