package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sellhub_uz_202608/internal/api/dto"
	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

type CardController struct {
	cardService *service.CardService
	cardRepo    repository.CardRepository
}

func NewCardController(cardService *service.CardService, cardRepo repository.CardRepository) *CardController {
	return &CardController{cardService: cardService, cardRepo: cardRepo}
}

// ==================== 生成接口 ====================

// CreateCard 生成并发布商品卡片
// @Summary 生成商品卡片（AI内容+信息图+定价+发布）
// @Tags Card
// @Accept json
// @Param body body dto.CreateCardRequest true "商品原始信息"
// @Success 200 {object} service.CardResult
// @Router /api/cards [post]
func (ctrl *CardController) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	req.PartnerID = middleware.GetPartnerID(c)

	result, err := ctrl.cardService.CreateCard(c.Request.Context(), &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "卡片生成失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}

// PreviewCard 预览商品卡片
// @Summary 预览商品卡片（纯本地计算，不调AI、不落库、不发布）
// @Tags Card
// @Accept json
// @Param body body dto.CreateCardRequest true "商品原始信息"
// @Success 200 {object} service.CardPreview
// @Router /api/cards/preview [post]
func (ctrl *CardController) PreviewCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	req.PartnerID = middleware.GetPartnerID(c)

	preview, err := ctrl.cardService.PreviewCard(c.Request.Context(), &req)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "预览失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    preview,
	})
}

// ==================== 查询接口 ====================

// GetCards 获取卡片列表
// @Summary 获取当前合作伙伴的卡片列表
// @Tags Card
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.CardListResp
// @Router /api/cards [get]
func (ctrl *CardController) GetCards(c *gin.Context) {
	partnerID := middleware.GetPartnerID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	cards, total, err := ctrl.cardRepo.ListByPartner(c.Request.Context(), partnerID, page, pageSize)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.CardListItem, 0, len(cards))
	for _, card := range cards {
		respList = append(respList, dto.CardListItem{
			ID:            card.ID,
			SKU:           card.SKU,
			TitleRu:       card.TitleRu,
			CategoryID:    card.CategoryID,
			MxikCode:      card.MxikCode,
			FinalPrice:    card.FinalPrice,
			QualityIndex:  card.QualityIndex,
			PublishStatus: int(card.PublishStatus),
			Marketplace:   card.Marketplace,
		})
	}

	c.JSON(200, dto.CardListResp{
		Code:     0,
		Message:  "success",
		Data:     respList,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetCard 获取卡片详情
// @Summary 获取单张卡片详情
// @Tags Card
// @Param id path int true "卡片ID"
// @Success 200 {object} model.ProductCard
// @Router /api/cards/{id} [get]
func (ctrl *CardController) GetCard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的卡片ID"})
		return
	}

	card, err := ctrl.cardRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "卡片不存在"})
		return
	}

	// 防止跨租户读取
	if card.PartnerID != middleware.GetPartnerID(c) {
		c.JSON(403, gin.H{"code": 403, "message": "无权访问该卡片"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    card,
	})
}
