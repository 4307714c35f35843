package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sellhub_uz_202608/internal/model"
)

// ==================== 接口定义 ====================

// CardRepository 商品卡片仓储接口
// 卡片生成核心对其写多读少，自然键为 SKU
type CardRepository interface {
	// 基础 CRUD
	GetByID(ctx context.Context, id int64) (*model.ProductCard, error)
	GetBySKU(ctx context.Context, sku string) (*model.ProductCard, error)
	Delete(ctx context.Context, id int64) error

	// Upsert：SKU 冲突时更新生成字段
	UpsertBySKU(ctx context.Context, card *model.ProductCard) error

	// 列表查询
	ListByPartner(ctx context.Context, partnerID int64, page, pageSize int) ([]model.ProductCard, int64, error)
	ListByPublishStatus(ctx context.Context, status model.CardPublishStatus, limit int) ([]model.ProductCard, error)

	// 发布状态更新
	UpdatePublishStatus(ctx context.Context, id int64, status model.CardPublishStatus, errMsg string) error
	UpdatePrice(ctx context.Context, id int64, breakdownFields map[string]interface{}) error

	// 图片
	ReplaceImages(ctx context.Context, cardID int64, images []model.CardImage) error
}

// ==================== 仓储实现 ====================

type cardRepo struct {
	db *gorm.DB
}

// NewCardRepository 创建卡片仓储
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepo{db: db}
}

func (r *cardRepo) GetByID(ctx context.Context, id int64) (*model.ProductCard, error) {
	var card model.ProductCard
	err := r.db.WithContext(ctx).
		Preload("Images").
		First(&card, id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) GetBySKU(ctx context.Context, sku string) (*model.ProductCard, error) {
	var card model.ProductCard
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("sku = ?", sku).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ProductCard{}, id).Error
}

func (r *cardRepo) UpsertBySKU(ctx context.Context, card *model.ProductCard) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title_ru", "title_uz", "description_ru", "description_uz",
			"category_id", "category_key", "mxik_code",
			"cost_price", "commission", "logistics", "tax", "margin", "final_price",
			"quality_index", "missing_fields",
			"marketplace", "publish_status", "publish_error", "updated_at",
		}),
	}).Create(card).Error
}

func (r *cardRepo) ListByPartner(ctx context.Context, partnerID int64, page, pageSize int) ([]model.ProductCard, int64, error) {
	var cards []model.ProductCard
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ProductCard{}).Where("partner_id = ?", partnerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := query.
		Preload("Images").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&cards).Error
	return cards, total, err
}

func (r *cardRepo) ListByPublishStatus(ctx context.Context, status model.CardPublishStatus, limit int) ([]model.ProductCard, error) {
	var cards []model.ProductCard
	query := r.db.WithContext(ctx).Where("publish_status = ?", status).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&cards).Error
	return cards, err
}

func (r *cardRepo) UpdatePublishStatus(ctx context.Context, id int64, status model.CardPublishStatus, errMsg string) error {
	return r.db.WithContext(ctx).Model(&model.ProductCard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"publish_status": status,
			"publish_error":  errMsg,
		}).Error
}

func (r *cardRepo) UpdatePrice(ctx context.Context, id int64, breakdownFields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.ProductCard{}).
		Where("id = ?", id).
		Updates(breakdownFields).Error
}

func (r *cardRepo) ReplaceImages(ctx context.Context, cardID int64, images []model.CardImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&model.CardImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].CardID = cardID
		}
		return tx.Create(&images).Error
	})
}
