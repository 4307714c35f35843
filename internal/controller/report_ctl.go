package controller

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/service"
)

type ReportController struct {
	reportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// ExportCards 导出卡片台账
// @Summary 导出当前合作伙伴的卡片台账 (xlsx)
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/reports/cards [get]
func (ctrl *ReportController) ExportCards(c *gin.Context) {
	partnerID := middleware.GetPartnerID(c)

	data, err := ctrl.reportService.ExportCards(c.Request.Context(), partnerID)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "导出失败: " + err.Error()})
		return
	}

	filename := service.ReportFilename(partnerID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetAIUsage AI 用量统计
// @Summary 当前合作伙伴最近 N 天的 AI 调用用量
// @Tags Report
// @Param days query int false "统计天数" default(30)
// @Success 200 {object} repository.AIUsageStats
// @Router /api/reports/ai-usage [get]
func (ctrl *ReportController) GetAIUsage(c *gin.Context) {
	partnerID := middleware.GetPartnerID(c)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	stats, err := ctrl.reportService.AIUsage(c.Request.Context(), partnerID, days)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "统计失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    stats,
	})
}
