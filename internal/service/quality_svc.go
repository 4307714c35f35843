package service

import (
	"fmt"
	"math"
)

// ==================== 质量评分 ====================

// CardSnapshot 参与评分的卡片字段快照
type CardSnapshot struct {
	TitleRu       string
	TitleUz       string
	DescriptionRu string
	DescriptionUz string
	CategoryID    int
	MxikCode      string
	Price         int64
	ImageCount    int
	SKU           string
}

// qualityField 单个字段的权重定义
type qualityField struct {
	DisplayName string
	Weight      float64
}

// 权重合计 100；图片为部分得分字段，5 张封顶
var qualityFields = []qualityField{
	{"Название (рус)", 15},
	{"Название (узб)", 5},
	{"Описание (рус)", 15},
	{"Описание (узб)", 5},
	{"Категория", 10},
	{"Код МХИК", 10},
	{"Цена", 10},
	{"Изображения", 20},
	{"Артикул (SKU)", 10},
}

// 图片低于 3 张时进入缺失清单（比满分门槛 5 张更宽松）
const imageMissingThreshold = 3

// QualityService 卡片完整度评分器
// 0..100 的加权完整度指数，发布前闸门与发布后报表共用
type QualityService struct{}

func NewQualityService() *QualityService {
	return &QualityService{}
}

// Score 计算质量指数与缺失字段清单
func (s *QualityService) Score(card *CardSnapshot) (int, []string) {
	earned := 0.0
	total := 0.0
	missing := make([]string, 0)

	for _, f := range qualityFields {
		total += f.Weight

		switch f.DisplayName {
		case "Изображения":
			// 部分得分：5 张封顶
			ratio := math.Min(float64(card.ImageCount)/5, 1)
			earned += f.Weight * ratio
			if card.ImageCount < imageMissingThreshold {
				missing = append(missing, fmt.Sprintf("%s (%d/5)", f.DisplayName, card.ImageCount))
			}
		default:
			if s.fieldPresent(card, f.DisplayName) {
				earned += f.Weight
			} else {
				missing = append(missing, f.DisplayName)
			}
		}
	}

	index := int(math.Round(100 * earned / total))
	return index, missing
}

// fieldPresent 标量字段的存在性检查
func (s *QualityService) fieldPresent(card *CardSnapshot, displayName string) bool {
	switch displayName {
	case "Название (рус)":
		return card.TitleRu != ""
	case "Название (узб)":
		return card.TitleUz != ""
	case "Описание (рус)":
		return card.DescriptionRu != ""
	case "Описание (узб)":
		return card.DescriptionUz != ""
	case "Категория":
		return card.CategoryID > 0
	case "Код МХИК":
		return card.MxikCode != ""
	case "Цена":
		return card.Price > 0
	case "Артикул (SKU)":
		return card.SKU != ""
	}
	return false
}
