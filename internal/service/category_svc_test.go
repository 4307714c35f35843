package service

import (
	"testing"

	"sellhub_uz_202608/internal/model"
)

func TestCategoryService_Classify(t *testing.T) {
	s := NewCategoryService(nil)

	tests := []struct {
		name    string
		product string
		brand   string
		want    model.CategoryRecord
	}{
		{"俄语关键词", "Смартфон Galaxy A54", "Samsung", model.CategoryPhones},
		{"乌兹别克语关键词", "Muzlatgich ikki kamerali", "Artel", model.CategoryAppliances},
		{"英语关键词", "iPhone 15 Pro Max", "Apple", model.CategoryPhones},
		{"大小写不敏感", "НОУТБУК игровой", "Asus", model.CategoryNotebooks},
		{"词干匹配", "Кроссовки беговые", "Nike", model.CategoryShoes},
		{"品牌参与匹配", "X100 Pro", "Telefon Market", model.CategoryPhones},
		{"无命中回退通用", "Загадочный предмет", "NoName", model.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.product, tt.brand)
			if got.ID != tt.want.ID {
				t.Errorf("Classify(%q, %q).ID = %d, 期望 %d", tt.product, tt.brand, got.ID, tt.want.ID)
			}
		})
	}
}

func TestCategoryService_FirstMatchWins(t *testing.T) {
	// iphone 在规则表里先于 laptop，同时命中时取前者
	s := NewCategoryService(nil)

	got := s.Classify("iphone держатель для laptop", "")
	if got.ID != model.CategoryPhones.ID {
		t.Errorf("首个命中规则应胜出，得到类目 %d", got.ID)
	}
}

func TestCategoryService_CustomRules(t *testing.T) {
	custom := []model.CategoryRule{
		{Keyword: "ковер", Record: model.CategoryFurniture},
	}
	s := NewCategoryService(custom)

	if got := s.Classify("Ковер шерстяной", ""); got.ID != model.CategoryFurniture.ID {
		t.Errorf("自定义规则未生效，得到类目 %d", got.ID)
	}
	// 自定义规则表之外回退通用
	if got := s.Classify("смартфон", ""); got.ID != model.CategoryGeneral.ID {
		t.Errorf("自定义规则外应回退通用类目，得到 %d", got.ID)
	}
}

func TestCategoryService_GeneralFallback(t *testing.T) {
	s := NewCategoryService(nil)

	got := s.Classify("", "")
	if got.ID != model.GeneralCategoryID {
		t.Errorf("空输入应回退通用类目 %d, 得到 %d", model.GeneralCategoryID, got.ID)
	}
	if got.Key != "general" {
		t.Errorf("通用类目 Key = %s, 期望 general", got.Key)
	}
}
