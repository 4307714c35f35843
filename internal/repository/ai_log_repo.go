package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sellhub_uz_202608/internal/model"
)

// ==================== 仓储接口 ====================

// AICallLogRepository AI调用日志仓储接口
type AICallLogRepository interface {
	Create(ctx context.Context, log *model.AICallLog) error
	GetByID(ctx context.Context, id int64) (*model.AICallLog, error)

	// 统计查询
	GetUsageByPartner(ctx context.Context, partnerID int64, startTime, endTime time.Time) (*AIUsageStats, error)
}

// ==================== 统计结构 ====================

// AIUsageStats AI用量统计
type AIUsageStats struct {
	TotalCalls    int64   `json:"total_calls"`
	TitleCalls    int64   `json:"title_calls"`
	DescCalls     int64   `json:"desc_calls"`
	ImageCalls    int64   `json:"image_calls"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
	SuccessCount  int64   `json:"success_count"`
	FailedCount   int64   `json:"failed_count"`
}

// ==================== 仓储实现 ====================

type aiCallLogRepo struct {
	db *gorm.DB
}

// NewAICallLogRepository 创建AI调用日志仓储
func NewAICallLogRepository(db *gorm.DB) AICallLogRepository {
	return &aiCallLogRepo{db: db}
}

func (r *aiCallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCallLogRepo) GetByID(ctx context.Context, id int64) (*model.AICallLog, error) {
	var log model.AICallLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *aiCallLogRepo) GetUsageByPartner(ctx context.Context, partnerID int64, startTime, endTime time.Time) (*AIUsageStats, error) {
	var stats AIUsageStats

	query := r.db.WithContext(ctx).Model(&model.AICallLog{}).Where("partner_id = ?", partnerID)
	if !startTime.IsZero() {
		query = query.Where("created_at >= ?", startTime)
	}
	if !endTime.IsZero() {
		query = query.Where("created_at <= ?", endTime)
	}

	err := query.Select(`
		COUNT(*) as total_calls,
		SUM(CASE WHEN call_type = 'title' THEN 1 ELSE 0 END) as title_calls,
		SUM(CASE WHEN call_type = 'description' THEN 1 ELSE 0 END) as desc_calls,
		SUM(CASE WHEN call_type = 'infographic' THEN 1 ELSE 0 END) as image_calls,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
		SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END) as success_count,
		SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) as failed_count
	`).Scan(&stats).Error

	return &stats, err
}
