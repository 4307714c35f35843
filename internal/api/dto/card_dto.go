package dto

// ==================== 卡片请求 ====================

// CreateCardRequest 创建/预览商品卡片请求
// name、brand、cost_price 必填，其余字段缺省时由生成流水线兜底
type CreateCardRequest struct {
	PartnerID int64 `json:"-"` // 鉴权中间件注入

	Name      string `json:"name" binding:"required"`
	Brand     string `json:"brand" binding:"required"`
	Model     string `json:"model"`
	CostPrice int64  `json:"cost_price" binding:"required,gt=0"`

	Category      string   `json:"category"`
	Description   string   `json:"description"`
	DescriptionUz string   `json:"description_uz"`
	Country       string   `json:"country"`
	Images        []string `json:"images"`
	WeightGrams   int      `json:"weight_grams"`
	Dimensions    string   `json:"dimensions"`
	Features      []string `json:"features"`
	Barcode       string   `json:"barcode"`

	GenerateInfographics  bool    `json:"generate_infographics"`
	GenerateAIDescription bool    `json:"generate_ai_description"`
	InfographicCount      int     `json:"infographic_count"`
	TargetMargin          float64 `json:"target_margin"`
}

// ==================== 卡片列表 ====================

// CardListItem 列表项
type CardListItem struct {
	ID            int64  `json:"id"`
	SKU           string `json:"sku"`
	TitleRu       string `json:"title_ru"`
	CategoryID    int    `json:"category_id"`
	MxikCode      string `json:"mxik_code"`
	FinalPrice    int64  `json:"final_price"`
	QualityIndex  int    `json:"quality_index"`
	PublishStatus int    `json:"publish_status"`
	Marketplace   string `json:"marketplace"`
}

// CardListResp 卡片列表响应
type CardListResp struct {
	Code     int            `json:"code"`
	Message  string         `json:"message"`
	Data     []CardListItem `json:"data"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
