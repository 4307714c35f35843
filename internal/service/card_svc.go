package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"sellhub_uz_202608/internal/api/dto"
	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
)

// ==================== 外部服务依赖 ====================

// ContentGeneratorInterface 文案生成服务接口
type ContentGeneratorInterface interface {
	GenerateTitle(ctx context.Context, name, brand, category, lang string) (string, error)
	GenerateDescription(ctx context.Context, name, brand string, features []string, lang string) (string, error)
}

// InfographicGeneratorInterface 信息图生成服务接口
// 返回 Base64 编码的图片数据
type InfographicGeneratorInterface interface {
	GenerateInfographic(ctx context.Context, productName, description, style string) (string, error)
}

// ImageHostInterface 图片托管服务接口
type ImageHostInterface interface {
	SaveBase64(base64Data, prefix string) (url string, err error)
	UploadFromURL(ctx context.Context, sourceURL, filename string) (url string, err error)
}

// PublishOffer 发布到市场的商品载荷
type PublishOffer struct {
	OfferID     string   `json:"offer_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	CategoryID  int      `json:"category_id"`
	Vendor      string   `json:"vendor"`
	MxikCode    string   `json:"mxik_code"`
	Pictures    []string `json:"pictures"`
}

// PublishResult 市场发布结果
type PublishResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MarketplaceClient 市场客户端能力接口
type MarketplaceClient interface {
	Name() string
	CreateOrUpdateProduct(ctx context.Context, offer *PublishOffer) (*PublishResult, error)
}

// ==================== 配置 ====================

// 卡片生成常量
const (
	cardTitleMaxLen           = 150 // 市场标题长度上限
	cardDefaultWeightGrams    = 500
	cardDefaultInfographics   = 6
	cardMaxInfographics       = 10
	cardDefaultInfographicGap = 500 * time.Millisecond
)

// 信息图风格轮换表
var infographicStyles = []string{"professional", "modern", "elegant", "vibrant", "professional", "modern"}

// CardServiceConfig 卡片服务配置
type CardServiceConfig struct {
	// 信息图生成间隔（外部生成器限流，串行调用）
	InfographicDelay time.Duration
}

// ==================== 结果类型 ====================

// CardPreview 卡片预览（无发布副作用）
type CardPreview struct {
	SKU           string               `json:"sku"`
	TitleRu       string               `json:"title_ru"`
	TitleUz       string               `json:"title_uz"`
	DescriptionRu string               `json:"description_ru"`
	DescriptionUz string               `json:"description_uz"`
	Category      model.CategoryRecord `json:"category"`
	MxikCode      model.MxikMatch      `json:"mxik_code"`
	Price         PriceBreakdown       `json:"price"`
	Images        []string             `json:"images"`
	QualityIndex  int                  `json:"quality_index"`
	MissingFields []string             `json:"missing_fields"`
}

// CardResult 卡片创建结果
// 发布失败时 Success=false，但卡片字段仍完整返回（尽力而为契约）
type CardResult struct {
	CardPreview
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ==================== 服务实现 ====================

// CardService 商品卡片装配服务
// 各步骤独立容错：外部协作方失败降级为确定性兜底，不中断整条流水线
type CardService struct {
	mxik        *MxikService
	category    *CategoryService
	pricing     *PricingService
	quality     *QualityService
	content     ContentGeneratorInterface
	infographic InfographicGeneratorInterface
	storage     ImageHostInterface
	marketplace MarketplaceClient
	cardRepo    repository.CardRepository

	infographicDelay time.Duration
}

// NewCardService 创建卡片服务
// content/infographic/storage/marketplace 允许为 nil，对应步骤直接走兜底
func NewCardService(
	mxik *MxikService,
	category *CategoryService,
	pricing *PricingService,
	quality *QualityService,
	content ContentGeneratorInterface,
	infographic InfographicGeneratorInterface,
	storage ImageHostInterface,
	marketplace MarketplaceClient,
	cardRepo repository.CardRepository,
	cfg *CardServiceConfig,
) *CardService {
	delay := cardDefaultInfographicGap
	if cfg != nil && cfg.InfographicDelay > 0 {
		delay = cfg.InfographicDelay
	}

	return &CardService{
		mxik:             mxik,
		category:         category,
		pricing:          pricing,
		quality:          quality,
		content:          content,
		infographic:      infographic,
		storage:          storage,
		marketplace:      marketplace,
		cardRepo:         cardRepo,
		infographicDelay: delay,
	}
}

// ==================== 预览 ====================

// PreviewCard 生成卡片预览，无任何外部副作用
// 文案一律走模板，图片只统计入参数量
func (s *CardService) PreviewCard(ctx context.Context, req *dto.CreateCardRequest) (*CardPreview, error) {
	if err := validateCardRequest(req); err != nil {
		return nil, err
	}

	preview := s.assembleOffline(req)
	return preview, nil
}

// assembleOffline 纯本地装配：SKU、分类、税码、模板文案、定价、质量指数
func (s *CardService) assembleOffline(req *dto.CreateCardRequest) *CardPreview {
	sku := GenerateSKU(req.Brand, req.Name, req.Model)

	category := s.category.Classify(req.Name+" "+req.Category, req.Brand)
	mxik := s.mxik.GetBestMatch(req.Name, category.NameRu)

	weight := req.WeightGrams
	if weight <= 0 {
		weight = cardDefaultWeightGrams
	}
	price := s.pricing.PriceNewCard(req.CostPrice, category.Key, weight, req.TargetMargin)

	titleRu := buildTitle(req.Brand, req.Name, req.Model, req.Features)
	titleUz := titleRu
	descRu := req.Description
	if descRu == "" {
		descRu = buildDescriptionRu(req.Brand, req.Name, req.Features, req.Country)
	}
	descUz := req.DescriptionUz
	if descUz == "" {
		descUz = buildDescriptionUz(req.Brand, req.Name, req.Features, req.Country)
	}

	preview := &CardPreview{
		SKU:           sku,
		TitleRu:       titleRu,
		TitleUz:       titleUz,
		DescriptionRu: descRu,
		DescriptionUz: descUz,
		Category:      category,
		MxikCode:      mxik,
		Price:         price,
		Images:        append([]string{}, req.Images...),
	}

	s.applyQuality(preview)
	return preview
}

// applyQuality 按当前字段重算质量指数
func (s *CardService) applyQuality(preview *CardPreview) {
	preview.QualityIndex, preview.MissingFields = s.quality.Score(&CardSnapshot{
		TitleRu:       preview.TitleRu,
		TitleUz:       preview.TitleUz,
		DescriptionRu: preview.DescriptionRu,
		DescriptionUz: preview.DescriptionUz,
		CategoryID:    preview.Category.ID,
		MxikCode:      preview.MxikCode.Code,
		Price:         preview.Price.FinalPrice,
		ImageCount:    len(preview.Images),
		SKU:           preview.SKU,
	})
}

// ==================== 创建 ====================

// CreateCard 完整卡片流水线：装配 → AI 文案 → 图片处理 → 入库 → 发布
// Success 只反映市场发布这一步；其余步骤失败均降级继续
func (s *CardService) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*CardResult, error) {
	if err := validateCardRequest(req); err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{"partner_id": req.PartnerID, "name": req.Name})

	preview := s.assembleOffline(req)
	log = log.WithField("sku", preview.SKU)

	// AI 调用日志按合作伙伴与 SKU 归属
	ctx = WithAICallMeta(ctx, req.PartnerID, preview.SKU)

	// --- AI 文案（请求时才调用，失败回落模板） ---
	if req.GenerateAIDescription && s.content != nil {
		s.generateContent(ctx, req, preview, log)
	}

	// --- 图片处理 ---
	preview.Images = s.processImages(ctx, req, preview, log)

	// 图片与文案定稿后重算质量指数
	s.applyQuality(preview)

	result := &CardResult{CardPreview: *preview}

	// --- 入库（尽力而为，失败不阻断发布） ---
	cardID := s.persistCard(ctx, req, result, log)

	// --- 发布 ---
	s.publishCard(ctx, result, log)

	// --- 回写发布状态 ---
	s.persistPublishStatus(ctx, cardID, result, log)

	return result, nil
}

// generateContent RU/UZ 双语文案，逐项失败逐项回落
func (s *CardService) generateContent(ctx context.Context, req *dto.CreateCardRequest, preview *CardPreview, log *logrus.Entry) {
	if title, err := s.content.GenerateTitle(ctx, req.Name, req.Brand, preview.Category.NameRu, "ru"); err != nil {
		log.Warnf("AI 标题生成失败(ru)，使用模板: %v", err)
	} else if title != "" {
		preview.TitleRu = truncateRunes(title, cardTitleMaxLen)
	}

	if title, err := s.content.GenerateTitle(ctx, req.Name, req.Brand, preview.Category.NameUz, "uz"); err != nil {
		log.Warnf("AI 标题生成失败(uz)，使用模板: %v", err)
	} else if title != "" {
		preview.TitleUz = truncateRunes(title, cardTitleMaxLen)
	}

	if desc, err := s.content.GenerateDescription(ctx, req.Name, req.Brand, req.Features, "ru"); err != nil {
		log.Warnf("AI 描述生成失败(ru)，使用模板: %v", err)
	} else if desc != "" {
		preview.DescriptionRu = desc
	}

	if desc, err := s.content.GenerateDescription(ctx, req.Name, req.Brand, req.Features, "uz"); err != nil {
		log.Warnf("AI 描述生成失败(uz)，使用模板: %v", err)
	} else if desc != "" {
		preview.DescriptionUz = desc
	}
}

// processImages 上传用户图 + 生成信息图
// 单张失败跳过；信息图严格串行并留间隔，避免触发生成端限流
func (s *CardService) processImages(ctx context.Context, req *dto.CreateCardRequest, preview *CardPreview, log *logrus.Entry) []string {
	urls := make([]string, 0, len(req.Images)+cardDefaultInfographics)

	if s.storage != nil {
		for i, src := range req.Images {
			url, err := s.storage.UploadFromURL(ctx, src, fmt.Sprintf("%s_src_%d", preview.SKU, i))
			if err != nil {
				log.Warnf("第 %d 张用户图上传失败，跳过: %v", i+1, err)
				continue
			}
			urls = append(urls, url)
		}
	} else {
		// 无托管服务时原样保留外链
		urls = append(urls, req.Images...)
	}

	if !req.GenerateInfographics || s.infographic == nil || s.storage == nil {
		return urls
	}

	count := req.InfographicCount
	if count <= 0 {
		count = cardDefaultInfographics
	}
	if count > cardMaxInfographics {
		count = cardMaxInfographics
	}

	for i := 0; i < count; i++ {
		style := infographicStyles[i%len(infographicStyles)]

		data, err := s.infographic.GenerateInfographic(ctx, req.Name, preview.DescriptionRu, style)
		if err != nil {
			log.Warnf("第 %d 张信息图生成失败(%s): %v", i+1, style, err)
		} else {
			url, upErr := s.storage.SaveBase64(data, fmt.Sprintf("%s_info_%d", preview.SKU, i))
			if upErr != nil {
				log.Warnf("第 %d 张信息图上传失败: %v", i+1, upErr)
			} else {
				urls = append(urls, url)
			}
		}

		if i < count-1 {
			time.Sleep(s.infographicDelay)
		}
	}

	return urls
}

// persistCard 按 SKU upsert 入库，返回落库后的卡片 ID（未入库时为 0）
func (s *CardService) persistCard(ctx context.Context, req *dto.CreateCardRequest, result *CardResult, log *logrus.Entry) int64 {
	if s.cardRepo == nil {
		return 0
	}

	features, _ := json.Marshal(req.Features)
	missing, _ := json.Marshal(result.MissingFields)

	card := &model.ProductCard{
		PartnerID:     req.PartnerID,
		SKU:           result.SKU,
		Barcode:       req.Barcode,
		Name:          req.Name,
		Brand:         req.Brand,
		Model:         req.Model,
		TitleRu:       result.TitleRu,
		TitleUz:       result.TitleUz,
		DescriptionRu: result.DescriptionRu,
		DescriptionUz: result.DescriptionUz,
		Country:       req.Country,
		CategoryID:    result.Category.ID,
		CategoryKey:   result.Category.Key,
		MxikCode:      result.MxikCode.Code,
		CostPrice:     result.Price.CostPrice,
		Commission:    result.Price.Commission,
		Logistics:     result.Price.Logistics,
		Tax:           result.Price.Tax,
		Margin:        result.Price.Margin,
		FinalPrice:    result.Price.FinalPrice,
		WeightGrams:   req.WeightGrams,
		Dimensions:    req.Dimensions,
		Features:      datatypes.JSON(features),
		QualityIndex:  result.QualityIndex,
		MissingFields: datatypes.JSON(missing),
	}
	if s.marketplace != nil {
		card.Marketplace = s.marketplace.Name()
	}

	if err := s.cardRepo.UpsertBySKU(ctx, card); err != nil {
		log.Warnf("卡片入库失败: %v", err)
		return 0
	}
	// 冲突更新路径下部分驱动不回填主键，按 SKU 补查
	if card.ID == 0 {
		if got, err := s.cardRepo.GetBySKU(ctx, card.SKU); err == nil {
			card.ID = got.ID
		}
	}

	images := make([]model.CardImage, 0, len(result.Images))
	for i, url := range result.Images {
		images = append(images, model.CardImage{
			URL:           url,
			Rank:          i,
			IsAiGenerated: i >= len(req.Images),
		})
	}
	if err := s.cardRepo.ReplaceImages(ctx, card.ID, images); err != nil {
		log.Warnf("卡片图片入库失败: %v", err)
	}

	return card.ID
}

// persistPublishStatus 把发布结果回写到存量卡片
// 未配置市场客户端时不算发布尝试，保持草稿状态
func (s *CardService) persistPublishStatus(ctx context.Context, cardID int64, result *CardResult, log *logrus.Entry) {
	if s.cardRepo == nil || cardID == 0 || s.marketplace == nil {
		return
	}

	status := model.CardPublishFailed
	if result.Success {
		status = model.CardPublishSuccess
	}

	if err := s.cardRepo.UpdatePublishStatus(ctx, cardID, status, result.Error); err != nil {
		log.Warnf("发布状态回写失败: %v", err)
	}
}

// publishCard 调用市场客户端发布，失败只记入结果不抛出
func (s *CardService) publishCard(ctx context.Context, result *CardResult, log *logrus.Entry) {
	if s.marketplace == nil {
		result.Success = false
		result.Error = "市场客户端未配置"
		return
	}

	offer := &PublishOffer{
		OfferID:     result.SKU,
		Name:        result.TitleRu,
		Description: result.DescriptionRu,
		Price:       result.Price.FinalPrice,
		CategoryID:  result.Category.ID,
		Vendor:      "",
		MxikCode:    result.MxikCode.Code,
		Pictures:    result.Images,
	}

	resp, err := s.marketplace.CreateOrUpdateProduct(ctx, offer)
	if err != nil {
		log.Warnf("市场发布失败: %v", err)
		result.Success = false
		result.Error = err.Error()
		return
	}

	result.Success = resp.Success
	result.Error = resp.Error

	if !resp.Success {
		log.WithField("marketplace", s.marketplace.Name()).Warnf("市场拒绝发布: %s", resp.Error)
	}
}

// ==================== 校验与模板 ====================

// validateCardRequest 必填字段校验
func validateCardRequest(req *dto.CreateCardRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("商品名称不能为空")
	}
	if strings.TrimSpace(req.Brand) == "" {
		return fmt.Errorf("品牌不能为空")
	}
	if req.CostPrice <= 0 {
		return fmt.Errorf("成本价必须为正数: %d", req.CostPrice)
	}
	return nil
}

// GenerateSKU 确定性 SKU：BRAND3-NAME5[-MODEL5]-RAND4
// 非字母数字全部剔除，剔空时用占位符保证段非空
func GenerateSKU(brand, name, mdl string) string {
	parts := []string{
		skuPart(brand, 3),
		skuPart(name, 5),
	}
	if strings.TrimSpace(mdl) != "" {
		parts = append(parts, skuPart(mdl, 5))
	}
	parts = append(parts, strings.ToUpper(uuid.NewString()[:4]))

	return strings.Join(parts, "-")
}

// skuPart 大写、去非 [A-Z0-9]、截断
func skuPart(s string, maxLen int) string {
	upper := strings.ToUpper(s)
	var b strings.Builder
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	part := b.String()
	if part == "" {
		part = "X"
	}
	if len(part) > maxLen {
		part = part[:maxLen]
	}
	return part
}

// buildTitle 模板标题: "{Brand} {Name} {Model} - {f1}, {f2}"，150 字符截断
func buildTitle(brand, name, mdl string, features []string) string {
	title := brand + " " + name
	if mdl != "" {
		title += " " + mdl
	}
	if len(features) > 0 {
		limit := 2
		if len(features) < limit {
			limit = len(features)
		}
		title += " - " + strings.Join(features[:limit], ", ")
	}
	return truncateRunes(title, cardTitleMaxLen)
}

// buildDescriptionRu 俄语模板描述
func buildDescriptionRu(brand, name string, features []string, country string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — качественный товар от официального поставщика.\n\n", brand, name)

	if len(features) > 0 {
		b.WriteString("Основные характеристики:\n")
		for _, f := range features {
			fmt.Fprintf(&b, "• %s\n", f)
		}
		b.WriteString("\n")
	}

	if country != "" {
		fmt.Fprintf(&b, "Страна производства: %s.\n", country)
	}
	b.WriteString("Гарантия качества и быстрая доставка по всему Узбекистану.")
	return b.String()
}

// buildDescriptionUz 乌兹别克语模板描述
func buildDescriptionUz(brand, name string, features []string, country string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — rasmiy yetkazib beruvchidan sifatli mahsulot.\n\n", brand, name)

	if len(features) > 0 {
		b.WriteString("Asosiy xususiyatlari:\n")
		for _, f := range features {
			fmt.Fprintf(&b, "• %s\n", f)
		}
		b.WriteString("\n")
	}

	if country != "" {
		fmt.Fprintf(&b, "Ishlab chiqarilgan davlat: %s.\n", country)
	}
	b.WriteString("Sifat kafolati va O'zbekiston bo'ylab tez yetkazib berish.")
	return b.String()
}

// truncateRunes 按 rune 截断
func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
