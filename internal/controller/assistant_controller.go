package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	Service *service.AssistantService
}

func NewAssistantController(svc *service.AssistantService) *AssistantController {
	return &AssistantController{Service: svc}
}

// @Summary Get an AI suggestion for a workplace challenge
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body service.HelperRequest true "Challenge"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/ai-helper [post]
func (c *AssistantController) Helper(ctx *gin.Context) {
	var req service.HelperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Helper(ctx.Request.Context(), req)
	if err != nil {
		c.assistantError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// assistantError maps provider failures to 502 and everything else, such as
// persistence errors, to a logged 500.
func (c *AssistantController) assistantError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrConversationNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAIProvider):
		util.Error(ctx, http.StatusBadGateway, "AI provider unavailable")
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Chat with the hub assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body service.ChatRequest true "Message"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/ai-chat [post]
func (c *AssistantController) Chat(ctx *gin.Context) {
	var req service.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Chat(ctx.Request.Context(), req)
	if err != nil {
		c.assistantError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary Ask the per-module training assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body service.ModuleAssistantRequest true "Message with module context"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/module-assistant [post]
func (c *AssistantController) ModuleAssistant(ctx *gin.Context) {
	var req service.ModuleAssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.ModuleAssistant(ctx.Request.Context(), req)
	if err != nil {
		c.assistantError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}
