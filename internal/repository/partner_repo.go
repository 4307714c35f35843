package repository

import (
	"context"

	"gorm.io/gorm"

	"sellhub_uz_202608/internal/model"
)

// ==================== 接口定义 ====================

// PartnerRepository 卖家仓储接口
type PartnerRepository interface {
	Create(ctx context.Context, partner *model.Partner) error
	GetByID(ctx context.Context, id int64) (*model.Partner, error)
	GetByAPIToken(ctx context.Context, token string) (*model.Partner, error)
	Update(ctx context.Context, partner *model.Partner) error
	ListActive(ctx context.Context) ([]model.Partner, error)
}

// ==================== 仓储实现 ====================

type partnerRepo struct {
	db *gorm.DB
}

// NewPartnerRepository 创建卖家仓储
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, partner *model.Partner) error {
	return r.db.WithContext(ctx).Create(partner).Error
}

func (r *partnerRepo) GetByID(ctx context.Context, id int64) (*model.Partner, error) {
	var partner model.Partner
	err := r.db.WithContext(ctx).First(&partner, id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepo) GetByAPIToken(ctx context.Context, token string) (*model.Partner, error) {
	var partner model.Partner
	err := r.db.WithContext(ctx).
		Where("api_token = ? AND status = ?", token, model.PartnerStatusActive).
		First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepo) Update(ctx context.Context, partner *model.Partner) error {
	return r.db.WithContext(ctx).Save(partner).Error
}

func (r *partnerRepo) ListActive(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	err := r.db.WithContext(ctx).
		Where("status = ?", model.PartnerStatusActive).
		Find(&partners).Error
	return partners, err
}
