package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Service *service.ExportService
}

func NewAdminController(svc *service.ExportService) *AdminController {
	return &AdminController{Service: svc}
}

// @Summary Download all quiz results as CSV
// @Tags Admin
// @Produce text/csv
// @Param password query string true "Admin password"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Router /api/quiz-results/download [get]
func (c *AdminController) Download(ctx *gin.Context) {
	data, count, err := c.Service.CSV()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if count == 0 {
		util.Success(ctx, gin.H{"message": "No quiz results yet"})
		return
	}

	filename := fmt.Sprintf("quiz_results_%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, "text/csv", data)
}

// @Summary View all quiz results in the browser
// @Tags Admin
// @Produce html
// @Param password query string true "Admin password"
// @Success 200 {string} string
// @Failure 403 {object} util.Response
// @Router /api/quiz-results/view [get]
func (c *AdminController) View(ctx *gin.Context) {
	page, _, err := c.Service.HTMLView()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Data(200, "text/html; charset=utf-8", page)
}
