package controller

import (
	"github.com/gin-gonic/gin"

	"sellhub_uz_202608/internal/api/dto"
	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

type PriceController struct {
	pricingService *service.PricingService
	partnerRepo    repository.PartnerRepository
}

func NewPriceController(pricingService *service.PricingService, partnerRepo repository.PartnerRepository) *PriceController {
	return &PriceController{pricingService: pricingService, partnerRepo: partnerRepo}
}

// CalculatePrice 计算最优售价
// @Summary 基于竞品价格计算最优售价
// @Tags Price
// @Accept json
// @Param body body dto.CalculatePriceRequest true "定价输入"
// @Success 200 {object} service.PriceCalcResult
// @Router /api/prices/calculate [post]
func (ctrl *PriceController) CalculatePrice(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	// 鉴权中间件已解析套餐等级，缺失时回查数据库
	tier := model.PartnerTier(middleware.GetPartnerTier(c))
	if tier == "" {
		partner, err := ctrl.partnerRepo.GetByID(c.Request.Context(), middleware.GetPartnerID(c))
		if err != nil {
			c.JSON(404, gin.H{"code": 404, "message": "合作伙伴不存在"})
			return
		}
		tier = partner.Tier
	}

	result, err := ctrl.pricingService.CalculateOptimalPrice(service.PriceCalcInput{
		CostPrice:        req.CostPrice,
		ProductCategory:  req.ProductCategory,
		MarketplaceType:  req.MarketplaceType,
		PartnerTier:      tier,
		CompetitorPrices: req.CompetitorPrices,
		TargetMargin:     req.TargetMargin,
	})
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "定价失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}
