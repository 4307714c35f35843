package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
	"sellhub_uz_202608/internal/service"
)

// ==================== RepriceTask 夜间重定价任务 ====================

// PriceUpdater 市场侧改价能力
type PriceUpdater interface {
	Name() string
	UpdatePrice(ctx context.Context, offerID string, price int64) error
}

// CompetitorPriceSource 竞品价格来源
// 没有数据时返回空切片，重定价会退化为纯成本加成
type CompetitorPriceSource interface {
	FetchCompetitorPrices(ctx context.Context, card *model.ProductCard) ([]int64, error)
}

// RepriceTask 已发布卡片的夜间重定价任务
type RepriceTask struct {
	cardRepo       repository.CardRepository
	partnerRepo    repository.PartnerRepository
	pricingService *service.PricingService
	competitors    CompetitorPriceSource
	updaters       map[string]PriceUpdater // marketplace name -> client
	cron           *cron.Cron

	// 并发控制
	concurrencyLimit int
	sleepTime        time.Duration
	batchSize        int
}

// NewRepriceTask 创建重定价任务
// competitors 允许为 nil，此时仅按成本加成重算
func NewRepriceTask(
	cardRepo repository.CardRepository,
	partnerRepo repository.PartnerRepository,
	pricingService *service.PricingService,
	competitors CompetitorPriceSource,
	updaters []PriceUpdater,
) *RepriceTask {
	byName := make(map[string]PriceUpdater, len(updaters))
	for _, u := range updaters {
		if u != nil {
			byName[u.Name()] = u
		}
	}

	return &RepriceTask{
		cardRepo:         cardRepo,
		partnerRepo:      partnerRepo,
		pricingService:   pricingService,
		competitors:      competitors,
		updaters:         byName,
		cron:             cron.New(cron.WithSeconds()),
		concurrencyLimit: 5,
		sleepTime:        200 * time.Millisecond,
		batchSize:        500,
	}
}

// SetConcurrency 设置并发参数
func (t *RepriceTask) SetConcurrency(limit int, sleep time.Duration) {
	t.concurrencyLimit = limit
	t.sleepTime = sleep
}

// Start 启动定时任务
func (t *RepriceTask) Start() {
	// 每天凌晨 3 点执行
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		t.repriceAll(ctx)
	})
	if err != nil {
		log.Printf("[RepriceTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[RepriceTask] 已启动 (每天03:00)")
}

// Stop 停止任务
func (t *RepriceTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[RepriceTask] 已停止")
}

// repriceAll 重定价所有已发布卡片
func (t *RepriceTask) repriceAll(ctx context.Context) {
	log.Println("[RepriceTask] 开始夜间重定价...")

	cards, err := t.cardRepo.ListByPublishStatus(ctx, model.CardPublishSuccess, t.batchSize)
	if err != nil {
		log.Printf("[RepriceTask] 获取卡片列表失败: %v", err)
		return
	}
	if len(cards) == 0 {
		log.Println("[RepriceTask] 无已发布卡片需要重定价")
		return
	}

	// 只给激活中的卖家推价
	partners, err := t.partnerRepo.ListActive(ctx)
	if err != nil {
		log.Printf("[RepriceTask] 获取激活卖家失败: %v", err)
		return
	}
	activeByID := make(map[int64]model.Partner, len(partners))
	for _, p := range partners {
		activeByID[p.ID] = p
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	var (
		totalChanged int
		totalSkipped int
		totalErrors  int
		mu           sync.Mutex
	)

	log.Printf("[RepriceTask] 开始处理 %d 张卡片", len(cards))

	for i := range cards {
		card := cards[i]
		select {
		case <-ctx.Done():
			log.Println("[RepriceTask] 任务超时停止")
			wg.Wait()
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		time.Sleep(t.sleepTime)

		go func(card model.ProductCard) {
			defer wg.Done()
			defer func() { <-sem }()

			partner, active := activeByID[card.PartnerID]
			if !active {
				mu.Lock()
				totalSkipped++
				mu.Unlock()
				return
			}

			changed, err := t.repriceCard(ctx, &card, &partner)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Printf("[RepriceTask] 卡片 %s 重定价失败: %v", card.SKU, err)
				totalErrors++
				return
			}
			if changed {
				totalChanged++
			}
		}(card)
	}

	wg.Wait()
	log.Printf("[RepriceTask] 重定价完成: 卡片 %d, 改价 %d, 跳过 %d, 错误 %d",
		len(cards), totalChanged, totalSkipped, totalErrors)
}

// repriceCard 重定价单张卡片，价格变化时落库并推送市场
func (t *RepriceTask) repriceCard(ctx context.Context, card *model.ProductCard, partner *model.Partner) (bool, error) {
	var competitorPrices []int64
	var err error
	if t.competitors != nil {
		competitorPrices, err = t.competitors.FetchCompetitorPrices(ctx, card)
		if err != nil {
			// 竞品数据拿不到时按纯成本加成重算
			log.Printf("[RepriceTask] 卡片 %s 竞品价格获取失败: %v", card.SKU, err)
			competitorPrices = nil
		}
	}

	result, err := t.pricingService.CalculateOptimalPrice(service.PriceCalcInput{
		CostPrice:        card.CostPrice,
		ProductCategory:  card.CategoryKey,
		MarketplaceType:  card.Marketplace,
		PartnerTier:      partner.Tier,
		CompetitorPrices: competitorPrices,
	})
	if err != nil {
		return false, err
	}

	if result.RecommendedPrice == card.FinalPrice {
		return false, nil
	}

	err = t.cardRepo.UpdatePrice(ctx, card.ID, map[string]interface{}{
		"final_price": result.Breakdown.FinalPrice,
		"commission":  result.Breakdown.Commission,
		"logistics":   result.Breakdown.Logistics,
		"tax":         result.Breakdown.Tax,
		"margin":      result.Breakdown.Margin,
	})
	if err != nil {
		return false, err
	}

	if updater, ok := t.updaters[card.Marketplace]; ok {
		if err := updater.UpdatePrice(ctx, card.SKU, result.RecommendedPrice); err != nil {
			// 推送失败不回滚本地价格，下一轮会重试
			log.Printf("[RepriceTask] 卡片 %s 市场改价推送失败: %v", card.SKU, err)
		}
	}

	return true, nil
}

// ==================== 手动触发 ====================

// RepriceNow 立即执行一轮重定价
func (t *RepriceTask) RepriceNow() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		t.repriceAll(ctx)
	}()
}
