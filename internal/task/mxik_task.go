package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"sellhub_uz_202608/internal/service"
)

// ==================== MxikReloadTask MXIK编码表刷新任务 ====================

// MxikReloadTask 定时从数据文件重载MXIK编码表
// 税务局编码表更新后替换文件即可，无需重启服务
type MxikReloadTask struct {
	mxikService *service.MxikService
	cron        *cron.Cron
}

// NewMxikReloadTask 创建刷新任务
func NewMxikReloadTask(mxikService *service.MxikService) *MxikReloadTask {
	return &MxikReloadTask{
		mxikService: mxikService,
		cron:        cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *MxikReloadTask) Start() {
	// 每天凌晨 2 点执行
	_, err := t.cron.AddFunc("0 0 2 * * *", func() {
		t.reload()
	})
	if err != nil {
		log.Printf("[MxikReloadTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[MxikReloadTask] 已启动 (每天02:00)")
}

// Stop 停止任务
func (t *MxikReloadTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[MxikReloadTask] 已停止")
}

func (t *MxikReloadTask) reload() {
	t.mxikService.Reload()
	log.Printf("[MxikReloadTask] 编码表已刷新: %d 条", t.mxikService.Count())
}

// ReloadNow 立即刷新
func (t *MxikReloadTask) ReloadNow() {
	go t.reload()
}
