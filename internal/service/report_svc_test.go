package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
)

func setupReportTestRepo(t *testing.T) repository.CardRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.ProductCard{}, &model.CardImage{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return repository.NewCardRepository(db)
}

func TestExportCards(t *testing.T) {
	repo := setupReportTestRepo(t)
	ctx := context.Background()

	cards := []*model.ProductCard{
		{
			PartnerID: 1, SKU: "SAM-GALAX-A54-0001",
			TitleRu: "Samsung Galaxy A54", TitleUz: "Samsung Galaxy A54 smartfoni",
			CategoryKey: "electronics", MxikCode: "26201100",
			CostPrice: 3000000, Commission: 540000, Logistics: 150000,
			Tax: 360000, Margin: 450000, FinalPrice: 4500000,
			QualityIndex: 92, PublishStatus: model.CardPublishSuccess,
		},
		{
			PartnerID: 1, SKU: "ART-KOVER-0002",
			TitleRu: "Ковер шерстяной", CategoryKey: "home",
			MxikCode: "47190000", CostPrice: 800000, FinalPrice: 1200000,
			QualityIndex: 55,
		},
	}
	for _, card := range cards {
		if err := repo.UpsertBySKU(ctx, card); err != nil {
			t.Fatalf("写入测试卡片失败: %v", err)
		}
	}
	// 他人卡片不应进入导出
	repo.UpsertBySKU(ctx, &model.ProductCard{PartnerID: 2, SKU: "OTH-OTHER-0001",
		Name: "x", Brand: "x"})

	svc := NewReportService(repo, nil)
	data, err := svc.ExportCards(ctx, 1)
	if err != nil {
		t.Fatalf("ExportCards() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("导出内容为空")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("重新打开xlsx失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Карточки")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 2 条数据
	if len(rows) != 3 {
		t.Fatalf("行数 = %d, 期望 3", len(rows))
	}
	if rows[0][0] != "SKU" || rows[0][1] != "Название (рус)" {
		t.Errorf("表头 = %v", rows[0][:2])
	}

	body := strings.Join(rows[1], "|") + "\n" + strings.Join(rows[2], "|")
	if !strings.Contains(body, "SAM-GALAX-A54-0001") {
		t.Error("导出缺少第一张卡片")
	}
	if !strings.Contains(body, "Опубликовано") {
		t.Error("已发布卡片状态列应为 Опубликовано")
	}
	if !strings.Contains(body, "Черновик") {
		t.Error("未发布卡片状态列应为 Черновик")
	}
	if strings.Contains(body, "OTH-OTHER-0001") {
		t.Error("不应导出其他合作伙伴的卡片")
	}
}

func TestReportFilename(t *testing.T) {
	name := ReportFilename(42)
	if !strings.HasPrefix(name, "cards_p42_") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("文件名格式错误: %s", name)
	}
}
