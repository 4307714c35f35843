package task

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

type fakePriceUpdater struct {
	mu    sync.Mutex
	calls map[string]int64 // offerID -> 推送价格
}

func (f *fakePriceUpdater) Name() string { return "uzum" }

func (f *fakePriceUpdater) UpdatePrice(ctx context.Context, offerID string, price int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int64)
	}
	f.calls[offerID] = price
	return nil
}

func setupRepriceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Partner{}, &model.ProductCard{}, &model.CardImage{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedPublishedCard(t *testing.T, repo repository.CardRepository, partnerID int64, sku string) {
	t.Helper()
	card := &model.ProductCard{
		PartnerID:     partnerID,
		SKU:           sku,
		Name:          "Чехол для телефона",
		Brand:         "Generic",
		CategoryKey:   "electronics",
		Marketplace:   "uzum",
		CostPrice:     50000,
		FinalPrice:    1234, // 非 1000 整数倍，重算后必然变化
		PublishStatus: model.CardPublishSuccess,
	}
	if err := repo.UpsertBySKU(context.Background(), card); err != nil {
		t.Fatalf("UpsertBySKU() error = %v", err)
	}
}

func TestRepriceAll_SkipsInactivePartners(t *testing.T) {
	db := setupRepriceTestDB(t)
	cardRepo := repository.NewCardRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	ctx := context.Background()

	active := &model.Partner{Name: "Активный", Email: "active@example.uz", APIToken: "tok-reprice-active", Tier: model.TierBusinessStandard}
	if err := partnerRepo.Create(ctx, active); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	inactive := &model.Partner{Name: "Отключённый", Email: "off@example.uz", APIToken: "tok-reprice-off", Tier: model.TierBusinessStandard}
	if err := partnerRepo.Create(ctx, inactive); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// status 有默认值 1，停用需要显式落库
	if err := db.Model(inactive).Update("status", model.PartnerStatusInactive).Error; err != nil {
		t.Fatalf("停用卖家失败: %v", err)
	}

	seedPublishedCard(t, cardRepo, active.ID, "GEN-CHEHO-ACT-0001")
	seedPublishedCard(t, cardRepo, inactive.ID, "GEN-CHEHO-OFF-0001")

	updater := &fakePriceUpdater{}
	task := NewRepriceTask(cardRepo, partnerRepo, service.NewPricingService(), nil, []PriceUpdater{updater})
	task.SetConcurrency(1, 0)

	task.repriceAll(ctx)

	activeCard, err := cardRepo.GetBySKU(ctx, "GEN-CHEHO-ACT-0001")
	if err != nil {
		t.Fatalf("GetBySKU() error = %v", err)
	}
	if activeCard.FinalPrice == 1234 {
		t.Error("激活卖家的卡片价格应被重算")
	}
	if activeCard.FinalPrice%1000 != 0 {
		t.Errorf("重算价格 %d 应取整到 1000", activeCard.FinalPrice)
	}

	inactiveCard, err := cardRepo.GetBySKU(ctx, "GEN-CHEHO-OFF-0001")
	if err != nil {
		t.Fatalf("GetBySKU() error = %v", err)
	}
	if inactiveCard.FinalPrice != 1234 {
		t.Errorf("停用卖家的卡片价格 = %d, 应保持不变", inactiveCard.FinalPrice)
	}

	if _, ok := updater.calls["GEN-CHEHO-ACT-0001"]; !ok {
		t.Error("激活卖家的改价应推送到市场")
	}
	if _, ok := updater.calls["GEN-CHEHO-OFF-0001"]; ok {
		t.Error("停用卖家的卡片不应推送改价")
	}
}

func TestRepriceAll_OnlyPublishedCards(t *testing.T) {
	db := setupRepriceTestDB(t)
	cardRepo := repository.NewCardRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	ctx := context.Background()

	partner := &model.Partner{Name: "Активный", Email: "pub@example.uz", APIToken: "tok-reprice-pub", Tier: model.TierBusinessStandard}
	if err := partnerRepo.Create(ctx, partner); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 草稿卡片不参与重定价
	draft := &model.ProductCard{
		PartnerID:   partner.ID,
		SKU:         "GEN-CHEHO-DRF-0001",
		Name:        "Чехол для телефона",
		CategoryKey: "electronics",
		Marketplace: "uzum",
		CostPrice:   50000,
		FinalPrice:  1234,
	}
	if err := cardRepo.UpsertBySKU(ctx, draft); err != nil {
		t.Fatalf("UpsertBySKU() error = %v", err)
	}

	updater := &fakePriceUpdater{}
	task := NewRepriceTask(cardRepo, partnerRepo, service.NewPricingService(), nil, []PriceUpdater{updater})
	task.SetConcurrency(1, 0)

	task.repriceAll(ctx)

	stored, err := cardRepo.GetBySKU(ctx, "GEN-CHEHO-DRF-0001")
	if err != nil {
		t.Fatalf("GetBySKU() error = %v", err)
	}
	if stored.FinalPrice != 1234 {
		t.Errorf("草稿卡片价格 = %d, 应保持不变", stored.FinalPrice)
	}
	if len(updater.calls) != 0 {
		t.Errorf("草稿卡片不应触发市场推送, 推送了 %d 次", len(updater.calls))
	}
}
