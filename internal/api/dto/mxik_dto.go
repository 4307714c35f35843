package dto

import "sellhub_uz_202608/internal/model"

// ==================== MXIK 搜索 ====================

// MxikSearchResp 编码搜索响应
type MxikSearchResp struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []model.MxikMatch `json:"data"`
}
