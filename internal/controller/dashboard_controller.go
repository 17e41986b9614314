package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// @Summary Champions leaderboard and program-wide totals
// @Tags Dashboard
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/champions/dashboard [get]
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.Service.GetDashboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
