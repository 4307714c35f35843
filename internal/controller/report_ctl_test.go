package controller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

func TestReportCtl_GetAIUsage(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.AICallLog{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	aiLogRepo := repository.NewAICallLogRepository(db)
	for _, entry := range []*model.AICallLog{
		{PartnerID: 1, SKU: "SAM-GALAX-A54-0001", CallType: model.AICallTypeTitle, Status: model.AICallStatusSuccess, DurationMs: 700},
		{PartnerID: 1, SKU: "SAM-GALAX-A54-0001", CallType: model.AICallTypeDescription, Status: model.AICallStatusFailed, DurationMs: 300},
		{PartnerID: 2, SKU: "XIA-REDMI-N13-0001", CallType: model.AICallTypeTitle, Status: model.AICallStatusSuccess, DurationMs: 900},
	} {
		if err := aiLogRepo.Create(context.Background(), entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	ctrl := NewReportController(service.NewReportService(nil, aiLogRepo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyPartnerID, int64(1))
		c.Next()
	})
	router.GET("/api/reports/ai-usage", ctrl.GetAIUsage)

	w := performRequest(router, "GET", "/api/reports/ai-usage?days=7", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Code int                     `json:"code"`
		Data repository.AIUsageStats `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, int64(2), resp.Data.TotalCalls)
	assert.Equal(t, int64(1), resp.Data.TitleCalls)
	assert.Equal(t, int64(1), resp.Data.FailedCount)
}

func TestReportCtl_GetAIUsage_NoRepo(t *testing.T) {
	ctrl := NewReportController(service.NewReportService(nil, nil))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyPartnerID, int64(1))
		c.Next()
	})
	router.GET("/api/reports/ai-usage", ctrl.GetAIUsage)

	w := performRequest(router, "GET", "/api/reports/ai-usage", nil)
	assert.Equal(t, 500, w.Code)
}
