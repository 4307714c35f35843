package task

import (
	"context"
	"errors"
	"log"
	"time"

	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

// ErrTaskDisabled 任务未启用
var ErrTaskDisabled = errors.New("任务未启用")

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台任务
// 管理范围：夜间重定价、MXIK编码表刷新
type TaskManager struct {
	repriceTask *RepriceTask
	mxikTask    *MxikReloadTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	// Repositories
	CardRepo    repository.CardRepository
	PartnerRepo repository.PartnerRepository

	// Services
	PricingService *service.PricingService
	MxikService    *service.MxikService

	// 外部能力
	Competitors CompetitorPriceSource
	Updaters    []PriceUpdater
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 重定价
	RepriceEnabled     bool
	RepriceConcurrency int

	// MXIK 刷新
	MxikReloadEnabled bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		RepriceEnabled:     true,
		RepriceConcurrency: 5,

		MxikReloadEnabled: true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	// 重定价任务
	if cfg.RepriceEnabled && deps.PricingService != nil {
		tm.repriceTask = NewRepriceTask(
			deps.CardRepo,
			deps.PartnerRepo,
			deps.PricingService,
			deps.Competitors,
			deps.Updaters,
		)
		tm.repriceTask.SetConcurrency(cfg.RepriceConcurrency, 200*time.Millisecond)
	}

	// MXIK 刷新任务
	if cfg.MxikReloadEnabled && deps.MxikService != nil {
		tm.mxikTask = NewMxikReloadTask(deps.MxikService)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动后台任务...")

	if tm.repriceTask != nil {
		tm.repriceTask.Start()
	}
	if tm.mxikTask != nil {
		tm.mxikTask.Start()
	}

	log.Println("[TaskManager] 后台任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止后台任务...")

	if tm.repriceTask != nil {
		tm.repriceTask.Stop()
	}
	if tm.mxikTask != nil {
		tm.mxikTask.Stop()
	}

	log.Println("[TaskManager] 后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerReprice 触发一轮重定价
func (tm *TaskManager) TriggerReprice(ctx context.Context) error {
	if tm.repriceTask == nil {
		return ErrTaskDisabled
	}
	tm.repriceTask.RepriceNow()
	return nil
}

// TriggerMxikReload 触发MXIK编码表刷新
func (tm *TaskManager) TriggerMxikReload() error {
	if tm.mxikTask == nil {
		return ErrTaskDisabled
	}
	tm.mxikTask.ReloadNow()
	return nil
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"reprice":     tm.repriceTask != nil,
		"mxik_reload": tm.mxikTask != nil,
	}
}
