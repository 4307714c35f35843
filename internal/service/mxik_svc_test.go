package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"sellhub_uz_202608/internal/model"
)

func newBuiltinMxikService(t *testing.T) *MxikService {
	t.Helper()
	// 空路径直接走内置表
	return NewMxikService("")
}

func TestMxikService_BuiltinFallback(t *testing.T) {
	s := NewMxikService("/nonexistent/mxik.json")

	if !s.IsLoaded() {
		t.Fatal("加载失败时也应标记已加载（内置表兜底）")
	}
	if s.Count() == 0 {
		t.Fatal("内置表不应为空")
	}
}

func TestMxikService_SearchMxikCode(t *testing.T) {
	s := newBuiltinMxikService(t)

	matches := s.SearchMxikCode("Смартфон Samsung", "ru")
	if len(matches) == 0 {
		t.Fatal("смартфон 应该命中内置表")
	}
	if matches[0].Code != "26201100" {
		t.Errorf("最优编码 = %s, 期望 26201100", matches[0].Code)
	}

	// 结果不超过 5 条，按相似度降序，且全部高于入选阈值
	if len(matches) > 5 {
		t.Errorf("结果数 = %d, 期望 <= 5", len(matches))
	}
	for i, m := range matches {
		if m.Similarity <= 40 {
			t.Errorf("结果[%d] 相似度 = %d, 期望 > 40", i, m.Similarity)
		}
		if i > 0 && matches[i-1].Similarity < m.Similarity {
			t.Error("结果应按相似度降序")
		}
	}
}

func TestMxikService_SearchUzbekLang(t *testing.T) {
	s := newBuiltinMxikService(t)

	matches := s.SearchMxikCode("kitoblar", "uz")
	if len(matches) == 0 {
		t.Fatal("kitoblar 应该命中乌兹别克语名称")
	}
	if matches[0].Code != "58111100" {
		t.Errorf("最优编码 = %s, 期望 58111100", matches[0].Code)
	}
}

func TestMxikService_SearchEmptyQuery(t *testing.T) {
	s := newBuiltinMxikService(t)

	if got := s.SearchMxikCode("", "ru"); len(got) != 0 {
		t.Errorf("空查询应返回空结果，得到 %v", got)
	}
	if got := s.SearchMxikCode("!!! ---", "ru"); len(got) != 0 {
		t.Errorf("纯标点查询应返回空结果，得到 %v", got)
	}
}

func TestMxikService_GetBestMatchFallbackChain(t *testing.T) {
	s := newBuiltinMxikService(t)

	// 直接命中
	m := s.GetBestMatch("смартфон мобильный телефон", "")
	if m.Code != "26201100" {
		t.Errorf("直接命中编码 = %s, 期望 26201100", m.Code)
	}

	// 查询无结果时走类目提示
	m = s.GetBestMatch("qqqqqqq", "Наушники")
	if m.Code != "26402100" {
		t.Errorf("类目提示编码 = %s, 期望 26402100", m.Code)
	}

	// 全链路落空时回退默认编码
	m = s.GetBestMatch("qqqqqqq", "")
	if m.Code != model.DefaultMxikCode {
		t.Errorf("兜底编码 = %s, 期望 %s", m.Code, model.DefaultMxikCode)
	}
	if m.Similarity != 30 {
		t.Errorf("兜底相似度 = %d, 期望 30", m.Similarity)
	}
}

func TestMxikService_GetBestMatchNeverEmpty(t *testing.T) {
	s := newBuiltinMxikService(t)

	for _, q := range []string{"", "???", "zzzzz xxxxx", "товар"} {
		m := s.GetBestMatch(q, "")
		if m.Code == "" {
			t.Errorf("查询 %q 返回空编码", q)
		}
	}
}

func TestMxikService_ReloadFromFile(t *testing.T) {
	codes := []model.MxikCode{
		{Code: "99990000", NameUz: "Sinov tovari", NameRu: "Тестовый товар", Level: 1, IsActive: true},
		{Code: "88880000", NameUz: "Eski tovar", NameRu: "Устаревший товар", Level: 1, IsActive: false},
	}
	data, _ := json.Marshal(codes)

	path := filepath.Join(t.TempDir(), "mxik.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	s := NewMxikService(path)
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, 期望 2", s.Count())
	}

	// 停用编码不参与搜索
	if got := s.SearchMxikCode("устаревший", "ru"); len(got) != 0 {
		t.Errorf("停用编码不应出现在结果中，得到 %v", got)
	}

	matches := s.SearchMxikCode("тестовый товар", "ru")
	if len(matches) != 1 || matches[0].Code != "99990000" {
		t.Fatalf("文件表搜索结果 = %v, 期望命中 99990000", matches)
	}

	// Reload 幂等
	s.Reload()
	if s.Count() != 2 {
		t.Errorf("Reload 后 Count() = %d, 期望 2", s.Count())
	}
}
