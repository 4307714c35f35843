package model

import (
	"gorm.io/datatypes"
)

// ==================== 商品卡片 ====================

// 发布状态
type CardPublishStatus int

const (
	CardPublishPending CardPublishStatus = 0 // 未发布
	CardPublishSuccess CardPublishStatus = 1 // 发布成功
	CardPublishFailed  CardPublishStatus = 2 // 发布失败
)

// ProductCard 生成完成的商品卡片
// 自然键为 SKU，重复创建时按 SKU upsert
type ProductCard struct {
	BaseModel
	PartnerID int64    `gorm:"index:idx_partner_status;not null" json:"partner_id"`
	Partner   *Partner `gorm:"foreignKey:PartnerID" json:"-"`

	// --- 身份字段 ---
	SKU     string `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Barcode string `gorm:"size:30" json:"barcode"`

	// --- 基本信息（双语） ---
	Name          string `gorm:"size:255;not null" json:"name"`
	Brand         string `gorm:"size:100;not null" json:"brand"`
	Model         string `gorm:"size:100" json:"model"`
	TitleRu       string `gorm:"size:255" json:"title_ru"`
	TitleUz       string `gorm:"size:255" json:"title_uz"`
	DescriptionRu string `gorm:"type:text" json:"description_ru"`
	DescriptionUz string `gorm:"type:text" json:"description_uz"`
	Country       string `gorm:"size:50" json:"country"`

	// --- 分类与税务 ---
	CategoryID  int    `gorm:"default:0;index" json:"category_id"`
	CategoryKey string `gorm:"size:50" json:"category_key"`
	MxikCode    string `gorm:"size:8;index" json:"mxik_code"`

	// --- 价格（UZS，无辅币单位） ---
	CostPrice  int64 `gorm:"default:0" json:"cost_price"`
	Commission int64 `gorm:"default:0" json:"commission"`
	Logistics  int64 `gorm:"default:0" json:"logistics"`
	Tax        int64 `gorm:"default:0" json:"tax"`
	Margin     int64 `gorm:"default:0" json:"margin"`
	FinalPrice int64 `gorm:"default:0" json:"final_price"`

	// --- 物理属性 ---
	WeightGrams int            `gorm:"default:0" json:"weight_grams"`
	Dimensions  string         `gorm:"size:50" json:"dimensions"` // 长x宽x高, cm
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"`

	// --- 质量评估 ---
	QualityIndex  int            `gorm:"default:0" json:"quality_index"`
	MissingFields datatypes.JSON `gorm:"type:jsonb" json:"missing_fields"`

	// --- 发布结果 ---
	Marketplace   string            `gorm:"size:20;index" json:"marketplace"`
	PublishStatus CardPublishStatus `gorm:"default:0;index:idx_partner_status" json:"publish_status"`
	PublishError  string            `gorm:"type:text" json:"publish_error,omitempty"`

	Images []CardImage `gorm:"foreignKey:CardID" json:"images,omitempty"`
}

func (ProductCard) TableName() string {
	return "product_cards"
}

// CardImage 卡片图片（上传图或 AI 信息图）
type CardImage struct {
	BaseModel
	CardID int64        `gorm:"index;not null" json:"card_id"`
	Card   *ProductCard `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL       string `gorm:"size:512;not null" json:"url"`
	SourceURL string `gorm:"size:512" json:"source_url,omitempty"`
	Rank      int    `gorm:"default:99" json:"rank"`
	Style     string `gorm:"size:30" json:"style,omitempty"` // 信息图风格

	IsAiGenerated bool `gorm:"default:false" json:"is_ai_generated"`
}

func (*CardImage) TableName() string {
	return "card_images"
}
