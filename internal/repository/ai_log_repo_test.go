package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellhub_uz_202608/internal/model"
)

func setupAILogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.AICallLog{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedAILog(t *testing.T, repo AICallLogRepository, partnerID int64, callType, status string, durationMs int64) {
	t.Helper()
	err := repo.Create(context.Background(), &model.AICallLog{
		PartnerID:  partnerID,
		SKU:        "SAM-GALAX-A54-TEST",
		CallType:   callType,
		ModelName:  "gemini-2.0-flash",
		Lang:       "ru",
		DurationMs: durationMs,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestAILogRepo_GetUsageByPartner(t *testing.T) {
	repo := NewAICallLogRepository(setupAILogTestDB(t))
	ctx := context.Background()

	seedAILog(t, repo, 1, model.AICallTypeTitle, model.AICallStatusSuccess, 800)
	seedAILog(t, repo, 1, model.AICallTypeTitle, model.AICallStatusFailed, 200)
	seedAILog(t, repo, 1, model.AICallTypeDescription, model.AICallStatusSuccess, 1500)
	seedAILog(t, repo, 1, model.AICallTypeInfographic, model.AICallStatusSuccess, 5500)
	// 其他合作伙伴的记录不应计入
	seedAILog(t, repo, 2, model.AICallTypeTitle, model.AICallStatusSuccess, 900)

	stats, err := repo.GetUsageByPartner(ctx, 1, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetUsageByPartner() error = %v", err)
	}

	if stats.TotalCalls != 4 {
		t.Errorf("TotalCalls = %d, 期望 4", stats.TotalCalls)
	}
	if stats.TitleCalls != 2 {
		t.Errorf("TitleCalls = %d, 期望 2", stats.TitleCalls)
	}
	if stats.DescCalls != 1 {
		t.Errorf("DescCalls = %d, 期望 1", stats.DescCalls)
	}
	if stats.ImageCalls != 1 {
		t.Errorf("ImageCalls = %d, 期望 1", stats.ImageCalls)
	}
	if stats.SuccessCount != 3 || stats.FailedCount != 1 {
		t.Errorf("成功/失败 = %d/%d, 期望 3/1", stats.SuccessCount, stats.FailedCount)
	}
	if stats.AvgDurationMs != 2000 {
		t.Errorf("AvgDurationMs = %v, 期望 2000", stats.AvgDurationMs)
	}
}

func TestAILogRepo_GetUsageByPartner_TimeWindow(t *testing.T) {
	repo := NewAICallLogRepository(setupAILogTestDB(t))
	ctx := context.Background()

	seedAILog(t, repo, 1, model.AICallTypeTitle, model.AICallStatusSuccess, 800)

	// 完全落在过去的窗口不应命中
	end := time.Now().Add(-time.Hour)
	start := end.Add(-24 * time.Hour)
	stats, err := repo.GetUsageByPartner(ctx, 1, start, end)
	if err != nil {
		t.Fatalf("GetUsageByPartner() error = %v", err)
	}
	if stats.TotalCalls != 0 {
		t.Errorf("TotalCalls = %d, 期望 0", stats.TotalCalls)
	}
}

func TestAILogRepo_GetUsageByPartner_Empty(t *testing.T) {
	repo := NewAICallLogRepository(setupAILogTestDB(t))

	stats, err := repo.GetUsageByPartner(context.Background(), 99, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetUsageByPartner() error = %v", err)
	}
	if stats.TotalCalls != 0 || stats.AvgDurationMs != 0 {
		t.Errorf("空记录统计 = %+v", stats)
	}
}
