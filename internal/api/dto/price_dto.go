package dto

// ==================== 定价请求 ====================

// CalculatePriceRequest 重定价计算请求
type CalculatePriceRequest struct {
	CostPrice        int64   `json:"cost_price" binding:"required,gt=0"`
	ProductCategory  string  `json:"product_category"`
	MarketplaceType  string  `json:"marketplace_type" binding:"required"`
	CompetitorPrices []int64 `json:"competitor_prices"`
	TargetMargin     float64 `json:"target_margin"`
}
