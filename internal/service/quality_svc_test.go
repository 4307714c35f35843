package service

import (
	"strings"
	"testing"
)

func fullCardSnapshot() *CardSnapshot {
	return &CardSnapshot{
		TitleRu:       "Смартфон Samsung Galaxy A54",
		TitleUz:       "Samsung Galaxy A54 smartfoni",
		DescriptionRu: "Флагманский смартфон с AMOLED экраном",
		DescriptionUz: "AMOLED ekranli flagman smartfon",
		CategoryID:    10101,
		MxikCode:      "26201100",
		Price:         5000000,
		ImageCount:    5,
		SKU:           "SAM-GALAX-A54-X7K2",
	}
}

func TestQualityService_FullCard(t *testing.T) {
	s := NewQualityService()

	index, missing := s.Score(fullCardSnapshot())
	if index != 100 {
		t.Errorf("满字段卡片指数 = %d, 期望 100", index)
	}
	if len(missing) != 0 {
		t.Errorf("满字段卡片不应有缺失清单，得到 %v", missing)
	}
}

func TestQualityService_EmptyCard(t *testing.T) {
	s := NewQualityService()

	index, missing := s.Score(&CardSnapshot{})
	if index != 0 {
		t.Errorf("空卡片指数 = %d, 期望 0", index)
	}
	// 九个字段全部缺失
	if len(missing) != 9 {
		t.Errorf("空卡片缺失字段数 = %d, 期望 9, 清单 %v", len(missing), missing)
	}
}

func TestQualityService_ImagePartialCredit(t *testing.T) {
	s := NewQualityService()

	// 图片按 n/5 部分计分，其余字段齐全
	card := fullCardSnapshot()
	card.ImageCount = 2

	index, missing := s.Score(card)
	// 80 + 20 * 2/5 = 88
	if index != 88 {
		t.Errorf("2 张图片指数 = %d, 期望 88", index)
	}

	// 低于 3 张进入缺失清单，并带计数
	found := false
	for _, m := range missing {
		if strings.Contains(m, "Изображения") && strings.Contains(m, "(2/5)") {
			found = true
		}
	}
	if !found {
		t.Errorf("缺失清单应包含图片计数，得到 %v", missing)
	}
}

func TestQualityService_ImageThreshold(t *testing.T) {
	s := NewQualityService()

	// 3 张图片：有扣分但不进缺失清单
	card := fullCardSnapshot()
	card.ImageCount = 3

	index, missing := s.Score(card)
	// 80 + 20 * 3/5 = 92
	if index != 92 {
		t.Errorf("3 张图片指数 = %d, 期望 92", index)
	}
	if len(missing) != 0 {
		t.Errorf("3 张图片不应进缺失清单，得到 %v", missing)
	}

	// 超出 5 张封顶
	card.ImageCount = 12
	index, _ = s.Score(card)
	if index != 100 {
		t.Errorf("12 张图片指数 = %d, 期望封顶 100", index)
	}
}

func TestQualityService_WeightDistribution(t *testing.T) {
	s := NewQualityService()

	// 只缺俄语标题: 100 - 15 = 85
	card := fullCardSnapshot()
	card.TitleRu = ""
	index, missing := s.Score(card)
	if index != 85 {
		t.Errorf("缺俄语标题指数 = %d, 期望 85", index)
	}
	if len(missing) != 1 || missing[0] != "Название (рус)" {
		t.Errorf("缺失清单 = %v, 期望 [Название (рус)]", missing)
	}

	// 只缺乌兹别克语标题: 100 - 5 = 95
	card = fullCardSnapshot()
	card.TitleUz = ""
	if index, _ = s.Score(card); index != 95 {
		t.Errorf("缺乌兹别克语标题指数 = %d, 期望 95", index)
	}

	// 只缺 MXIK: 100 - 10 = 90
	card = fullCardSnapshot()
	card.MxikCode = ""
	if index, _ = s.Score(card); index != 90 {
		t.Errorf("缺MXIK指数 = %d, 期望 90", index)
	}
}

func TestQualityService_IndexBounds(t *testing.T) {
	s := NewQualityService()

	cards := []*CardSnapshot{
		{},
		{TitleRu: "x"},
		{ImageCount: 100},
		fullCardSnapshot(),
	}
	for _, card := range cards {
		index, _ := s.Score(card)
		if index < 0 || index > 100 {
			t.Errorf("指数 %d 超出 [0, 100]", index)
		}
	}
}
