package service

import (
	"strings"

	"sellhub_uz_202608/internal/model"
)

// ==================== 类目分类 ====================

// CategoryService 关键词包含式类目分类器
// 规则表顺序即优先级，首个命中胜出；无命中返回通用类目
type CategoryService struct {
	rules []model.CategoryRule
}

// NewCategoryService 创建分类器
// rules 为 nil 时使用默认规则表
func NewCategoryService(rules []model.CategoryRule) *CategoryService {
	if rules == nil {
		rules = model.DefaultCategoryRules()
	}
	return &CategoryService{rules: rules}
}

// Classify 按商品名称+品牌分类，永不失败
func (s *CategoryService) Classify(name, brand string) model.CategoryRecord {
	haystack := strings.ToLower(name + " " + brand)

	for _, rule := range s.rules {
		if strings.Contains(haystack, rule.Keyword) {
			return rule.Record
		}
	}

	return model.CategoryGeneral
}
