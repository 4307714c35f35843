package service

import (
	"fmt"
	"math"

	"sellhub_uz_202608/internal/model"
)

// ==================== 常量表 ====================

// 平台抽成比例（按套餐）
var tierCommissionRates = map[model.PartnerTier]float64{
	model.TierStarter:          0.05,
	model.TierBusinessStandard: 0.04,
	model.TierBusinessPlus:     0.03,
	model.TierEnterprise:       0.02,
}

// 市场佣金比例（占成交价）
var marketplaceCommissionRates = map[string]float64{
	"uzum":        0.15,
	"wildberries": 0.12,
	"yandex":      0.13,
	"ozon":        0.14,
}

// 类目溢价系数，premium 档价格用
var categoryMultipliers = map[string]float64{
	"phones":      1.10,
	"electronics": 1.20,
	"appliances":  1.15,
	"fashion":     1.30,
	"beauty":      1.25,
	"toys":        1.20,
	"books":       1.10,
	"furniture":   1.20,
	"sport":       1.20,
}

const (
	defaultCategoryMultiplier = 1.15
	logisticsPercentage       = 0.05 // 物流费占成交价
	defaultTargetMargin       = 0.30
)

// 新卡定价（单趟公式）专用表：佣金占成交价，按类目
// 与重定价引擎的表各自独立维护，不得合并
var cardCommissionRates = map[string]float64{
	"phones":      0.12,
	"electronics": 0.12,
	"appliances":  0.12,
	"fashion":     0.15,
	"beauty":      0.15,
	"toys":        0.12,
	"books":       0.10,
	"furniture":   0.12,
	"sport":       0.12,
	"general":     0.12,
}

const (
	cardDefaultCommissionRate = 0.12
	cardTaxRate               = 0.12 // НДС 占成本价
	cardLogisticsRatePerKg    = 5000 // UZS / kg
	cardDefaultMarginRate     = 0.30 // 目标利润占成本价
)

// ==================== 结果类型 ====================

// PriceBreakdown 价格构成，所有金额为 UZS 整数
// 恒等式: CostPrice + Commission + Logistics + Tax + Margin == FinalPrice
// Margin 为余项，由最终价格倒推，不独立取值
type PriceBreakdown struct {
	CostPrice  int64 `json:"cost_price"`
	Commission int64 `json:"commission"`
	Logistics  int64 `json:"logistics"`
	Tax        int64 `json:"tax"`
	Margin     int64 `json:"margin"`
	FinalPrice int64 `json:"final_price"`
}

// CompetitiveAnalysis 竞品价格分析
type CompetitiveAnalysis struct {
	AveragePrice int64  `json:"average_price"`
	MinPrice     int64  `json:"min_price"`
	MaxPrice     int64  `json:"max_price"`
	OurPosition  string `json:"our_position"` // lower | average | higher
}

// PriceRange 三点价格区间
type PriceRange struct {
	Minimum int64 `json:"minimum"` // 保本价
	Optimal int64 `json:"optimal"` // 目标利润价
	Premium int64 `json:"premium"` // 类目溢价
}

// PriceCalcInput 重定价输入
type PriceCalcInput struct {
	CostPrice        int64
	ProductCategory  string
	MarketplaceType  string
	PartnerTier      model.PartnerTier
	CompetitorPrices []int64
	TargetMargin     float64 // 0 时取默认 0.30
}

// PriceCalcResult 重定价结果
type PriceCalcResult struct {
	RecommendedPrice    int64                `json:"recommended_price"`
	Strategy            string               `json:"strategy"` // optimal | competitive | premium
	Breakdown           PriceBreakdown       `json:"breakdown"`
	MarketplaceFee      int64                `json:"marketplace_fee"`
	OurFee              int64                `json:"our_fee"`
	ProfitMargin        float64              `json:"profit_margin"` // %
	CompetitiveAnalysis *CompetitiveAnalysis `json:"competitive_analysis,omitempty"`
	PriceRange          PriceRange           `json:"price_range"`
	Warnings            []string             `json:"warnings"`
}

// ==================== 服务 ====================

// PricingService 定价引擎
// 两套策略并存：CalculateOptimalPrice 面向存量商品重定价（费用按成交价口径），
// PriceNewCard 面向新卡预览（费用按成本价口径）。两者公式和常量表不同，调用方不同。
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// CalculateOptimalPrice 重定价：目标利润求解 + 竞争修正两趟结构
// 第一趟按目标利润解出候选价，第二趟由市场均价决定落点，
// 最终价格确定后再按成交价口径重算费用构成
func (s *PricingService) CalculateOptimalPrice(input PriceCalcInput) (*PriceCalcResult, error) {
	if input.CostPrice <= 0 {
		return nil, fmt.Errorf("成本价必须为正数: %d", input.CostPrice)
	}

	ourRate, ok := tierCommissionRates[input.PartnerTier]
	if !ok {
		return nil, fmt.Errorf("未知的套餐等级: %s", input.PartnerTier)
	}

	mpRate, ok := marketplaceCommissionRates[input.MarketplaceType]
	if !ok {
		return nil, fmt.Errorf("未知的市场佣金配置: %s", input.MarketplaceType)
	}

	catMult, ok := categoryMultipliers[input.ProductCategory]
	if !ok {
		catMult = defaultCategoryMultiplier
	}

	targetMargin := input.TargetMargin
	if targetMargin <= 0 {
		targetMargin = defaultTargetMargin
	}

	cost := float64(input.CostPrice)
	totalRate := mpRate + logisticsPercentage + ourRate

	if totalRate+targetMargin >= 1 {
		return nil, fmt.Errorf("费率与目标利润之和超过 100%%: %.2f", totalRate+targetMargin)
	}

	// --- 第一趟：解出三档候选价 ---
	minimumPrice := cost / (1 - totalRate)
	optimalPrice := cost / (1 - totalRate - targetMargin)
	premiumPrice := optimalPrice * catMult

	// --- 竞品分析 ---
	var analysis *CompetitiveAnalysis
	var mean float64
	if len(input.CompetitorPrices) > 0 {
		mean = competitorMean(input.CompetitorPrices)
		analysis = &CompetitiveAnalysis{
			AveragePrice: int64(math.Round(mean)),
			MinPrice:     competitorMin(input.CompetitorPrices),
			MaxPrice:     competitorMax(input.CompetitorPrices),
			OurPosition:  pricePosition(optimalPrice, mean),
		}
	}

	// --- 第二趟：竞争修正 ---
	recommended := optimalPrice
	strategy := "optimal"

	if analysis != nil && mean < optimalPrice {
		// 市场均价低于目标价：贴近市场，但不跌破保本价上浮 10%
		recommended = math.Max(mean*0.95, minimumPrice*1.10)
		strategy = "competitive"
	} else if analysis != nil && mean > optimalPrice*1.2 {
		// 市场明显更贵：上探溢价档
		recommended = premiumPrice
		strategy = "premium"
	}

	recommendedPrice := roundTo1000(recommended)

	// --- 按最终成交价重算费用构成 ---
	mpFee := int64(math.Round(float64(recommendedPrice) * mpRate))
	logisticsFee := int64(math.Round(float64(recommendedPrice) * logisticsPercentage))
	ourFee := int64(math.Round(float64(recommendedPrice) * ourRate))
	profit := recommendedPrice - (input.CostPrice + mpFee + logisticsFee + ourFee)

	profitMargin := 0.0
	if recommendedPrice > 0 {
		profitMargin = float64(profit) / float64(recommendedPrice) * 100
	}

	result := &PriceCalcResult{
		RecommendedPrice: recommendedPrice,
		Strategy:         strategy,
		Breakdown: PriceBreakdown{
			CostPrice:  input.CostPrice,
			Commission: mpFee + ourFee,
			Logistics:  logisticsFee,
			Tax:        0,
			Margin:     profit,
			FinalPrice: recommendedPrice,
		},
		MarketplaceFee:      mpFee,
		OurFee:              ourFee,
		ProfitMargin:        profitMargin,
		CompetitiveAnalysis: analysis,
		PriceRange: PriceRange{
			Minimum: roundTo1000(minimumPrice),
			Optimal: roundTo1000(optimalPrice),
			Premium: roundTo1000(premiumPrice),
		},
		Warnings: []string{},
	}

	// --- 预警 ---
	if profitMargin < 10 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Низкая маржинальность: %.1f%%", profitMargin))
	}
	if analysis != nil && analysis.OurPosition == "higher" {
		result.Warnings = append(result.Warnings,
			"Цена выше рыночной — возможна потеря конкурентоспособности")
	}
	if float64(recommendedPrice) <= minimumPrice*1.05 {
		result.Warnings = append(result.Warnings,
			"Цена близка к точке безубыточности")
	}

	return result, nil
}

// PriceNewCard 新卡预览定价（单趟公式）
// finalPrice = (成本 + 物流 + 税费 + 目标利润) / (1 - 佣金率)
// 物流按重量计费，税费按成本价 12%，佣金按成交价；Margin 为取整后的余项
func (s *PricingService) PriceNewCard(costPrice int64, categoryKey string, weightGrams int, marginRate float64) PriceBreakdown {
	rate, ok := cardCommissionRates[categoryKey]
	if !ok {
		rate = cardDefaultCommissionRate
	}

	if marginRate <= 0 {
		marginRate = cardDefaultMarginRate
	}

	cost := float64(costPrice)
	logistics := int64(math.Round(float64(weightGrams) / 1000 * cardLogisticsRatePerKg))
	tax := int64(math.Round(cost * cardTaxRate))
	marginTarget := cost * marginRate

	finalRaw := (cost + float64(logistics) + float64(tax) + marginTarget) / (1 - rate)
	finalPrice := roundTo1000(finalRaw)

	commission := int64(math.Round(float64(finalPrice) * rate))
	margin := finalPrice - costPrice - commission - logistics - tax

	return PriceBreakdown{
		CostPrice:  costPrice,
		Commission: commission,
		Logistics:  logistics,
		Tax:        tax,
		Margin:     margin,
		FinalPrice: finalPrice,
	}
}

// ==================== 辅助 ====================

// roundTo1000 取整到最近的 1000 UZS
func roundTo1000(v float64) int64 {
	return int64(math.Round(v/1000)) * 1000
}

// pricePosition 我方目标价相对市场均价的位置
func pricePosition(optimal, mean float64) string {
	switch {
	case optimal < mean*0.9:
		return "lower"
	case optimal > mean*1.1:
		return "higher"
	default:
		return "average"
	}
}

func competitorMean(prices []int64) float64 {
	var sum int64
	for _, p := range prices {
		sum += p
	}
	return float64(sum) / float64(len(prices))
}

func competitorMin(prices []int64) int64 {
	m := prices[0]
	for _, p := range prices[1:] {
		if p < m {
			m = p
		}
	}
	return m
}

func competitorMax(prices []int64) int64 {
	m := prices[0]
	for _, p := range prices[1:] {
		if p > m {
			m = p
		}
	}
	return m
}
