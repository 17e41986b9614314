package controller

import (
	"ai_hub_backend/internal/service"
	"ai_hub_backend/internal/util"
	"ai_hub_backend/pkg/monitoring"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Service *service.CertificateService
}

func NewCertificateController(svc *service.CertificateService) *CertificateController {
	return &CertificateController{Service: svc}
}

type certificateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

// @Summary Check certificate eligibility
// @Tags Certificate
// @Accept json
// @Produce json
// @Param body body certificateRequest true "Employee identity"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/certificate/check [post]
func (c *CertificateController) Check(ctx *gin.Context) {
	var req certificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.CheckEligibility(req.Name, req.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Generate a completion certificate PDF
// @Tags Certificate
// @Accept json
// @Produce application/pdf
// @Param body body certificateRequest true "Employee identity"
// @Success 200 {file} binary "PDF when eligible, eligibility payload otherwise"
// @Failure 400 {object} util.Response
// @Router /api/certificate/generate [post]
func (c *CertificateController) Generate(ctx *gin.Context) {
	var req certificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pdf, result, err := c.Service.GenerateCertificate(req.Name, req.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	// Ineligible identities get the full eligibility payload, same shape as
	// the check endpoint, instead of a document.
	if pdf == nil {
		util.Success(ctx, result)
		return
	}

	monitoring.CertificatesIssued.Inc()

	filename := fmt.Sprintf("AI_Champion_Certificate_%s.pdf", strings.ReplaceAll(req.Name, " ", "_"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, "application/pdf", pdf)
}
