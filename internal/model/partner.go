package model

import "github.com/lib/pq"

// ==================== 合作伙伴（卖家） ====================

// 套餐等级，决定平台抽成比例
type PartnerTier string

const (
	TierStarter          PartnerTier = "starter"
	TierBusinessStandard PartnerTier = "business_standard"
	TierBusinessPlus     PartnerTier = "business_plus"
	TierEnterprise       PartnerTier = "enterprise"
)

// 合作伙伴状态
const (
	PartnerStatusActive   = 1
	PartnerStatusInactive = 0
)

// Partner 平台卖家账号
type Partner struct {
	BaseModel
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// --- 套餐与状态 ---
	Tier   PartnerTier `gorm:"size:30;default:business_standard" json:"tier"`
	Status int         `gorm:"default:1;index" json:"status"`

	// --- 接入凭证 ---
	APIToken string `gorm:"size:64;uniqueIndex" json:"-"`

	// --- 已开通的市场 (postgres text[]) ---
	Marketplaces pq.StringArray `gorm:"type:text[]" json:"marketplaces"`

	// --- 市场侧凭证 ---
	UzumSellerID     string `gorm:"size:50" json:"uzum_seller_id"`
	UzumToken        string `gorm:"size:255" json:"-"`
	YandexBusinessID int64  `gorm:"default:0" json:"yandex_business_id"`
	YandexToken      string `gorm:"size:255" json:"-"`

	Cards []ProductCard `gorm:"foreignKey:PartnerID" json:"-"`
}

func (Partner) TableName() string {
	return "partners"
}
