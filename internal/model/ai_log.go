package model

// ==================== AI 调用日志 ====================

// 调用类型
const (
	AICallTypeTitle       = "title"
	AICallTypeDescription = "description"
	AICallTypeInfographic = "infographic"
)

// 调用状态
const (
	AICallStatusSuccess = "success"
	AICallStatusFailed  = "failed"
)

// AICallLog AI 调用记录，用于成本核算与限流排查
type AICallLog struct {
	BaseModel
	PartnerID  int64  `gorm:"index" json:"partner_id"`
	SKU        string `gorm:"size:50;index" json:"sku"`
	CallType   string `gorm:"size:20;index" json:"call_type"`
	ModelName  string `gorm:"size:60" json:"model_name"`
	Lang       string `gorm:"size:5" json:"lang"`
	DurationMs int64  `gorm:"default:0" json:"duration_ms"`
	Status     string `gorm:"size:10;index" json:"status"`
	ErrorMsg   string `gorm:"type:text" json:"error_msg,omitempty"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}
