package service

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/pkg/utils"
)

// ==================== 匹配参数 ====================

const (
	mxikTokenMatchFloor = 50 // 单词命中阈值
	mxikResultFloor     = 40 // 候选入选阈值
	mxikBestMatchFloor  = 50 // 最优结果可信阈值
	mxikMaxResults      = 5
	mxikDefaultScore    = 30 // 兜底编码的标称相似度
)

// ==================== 服务 ====================

// MxikService MXIK 税收编码模糊匹配服务
// 参考表进程内只读，Reload 时整表原子替换
type MxikService struct {
	mu       sync.RWMutex
	codes    []model.MxikCode
	loaded   bool
	filePath string
}

// NewMxikService 创建服务并立即加载参考表
// 加载失败不致命：记录日志后回退到内置表
func NewMxikService(filePath string) *MxikService {
	s := &MxikService{filePath: filePath}
	s.Reload()
	return s
}

// Reload 重新加载参考表，幂等
func (s *MxikService) Reload() {
	codes := s.loadCodes()

	s.mu.Lock()
	s.codes = codes
	s.loaded = true
	s.mu.Unlock()
}

// IsLoaded 参考表是否已加载（含兜底表）
func (s *MxikService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count 当前表条目数
func (s *MxikService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.codes)
}

// loadCodes 从文件读取 JSON 数组，任何失败都回退内置表
func (s *MxikService) loadCodes() []model.MxikCode {
	if s.filePath == "" {
		logrus.Info("MXIK: 未配置参考表路径，使用内置表")
		return model.BuiltinMxikCodes()
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		logrus.WithField("path", s.filePath).Warnf("MXIK: 读取参考表失败: %v，使用内置表", err)
		return model.BuiltinMxikCodes()
	}

	var codes []model.MxikCode
	if err := json.Unmarshal(data, &codes); err != nil {
		logrus.WithField("path", s.filePath).Warnf("MXIK: 解析参考表失败: %v，使用内置表", err)
		return model.BuiltinMxikCodes()
	}

	if len(codes) == 0 {
		logrus.WithField("path", s.filePath).Warn("MXIK: 参考表为空，使用内置表")
		return model.BuiltinMxikCodes()
	}

	logrus.WithField("count", len(codes)).Info("MXIK: 参考表加载完成")
	return codes
}

// ==================== 搜索 ====================

// SearchMxikCode 按商品名称/类目模糊搜索编码
// lang: "uz" 或 "ru"，决定参与匹配的本地化名称
// 返回相似度 >40 的前 5 条，按相似度降序
func (s *MxikService) SearchMxikCode(query, lang string) []model.MxikMatch {
	queryTokens := utils.Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	s.mu.RLock()
	codes := s.codes
	s.mu.RUnlock()

	matches := make([]model.MxikMatch, 0, mxikMaxResults)
	for _, code := range codes {
		// 停用编码不参与搜索
		if !code.IsActive {
			continue
		}

		name := code.NameRu
		if lang == "uz" {
			name = code.NameUz
		}

		sim := similarity(queryTokens, utils.Tokenize(name))
		if sim > mxikResultFloor {
			matches = append(matches, model.MxikMatch{
				Code:       code.Code,
				NameUz:     code.NameUz,
				NameRu:     code.NameRu,
				Similarity: sim,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > mxikMaxResults {
		matches = matches[:mxikMaxResults]
	}
	return matches
}

// similarity 候选相似度 = 已命中查询词得分的均值
// 查询词得分 = 与候选词的最高相似度，>50 记为命中
func similarity(queryTokens, nameTokens []string) int {
	if len(nameTokens) == 0 {
		return 0
	}

	sum := 0
	matched := 0
	for _, qt := range queryTokens {
		best := 0
		for _, nt := range nameTokens {
			if s := utils.TokenSimilarity(qt, nt); s > best {
				best = s
			}
		}
		if best > mxikTokenMatchFloor {
			sum += best
			matched++
		}
	}

	if matched == 0 {
		return 0
	}
	return sum / matched
}

// ==================== 最优匹配 ====================

// GetBestMatch 取最优编码，永不失败
// 回退链：俄语查询 → 类目提示 → 乌兹别克语查询 → 兜底编码 47190000
// 兜底策略保证卡片流水线不会因税码缺失而阻塞
func (s *MxikService) GetBestMatch(query, categoryHint string) model.MxikMatch {
	results := s.SearchMxikCode(query, "ru")

	if len(results) == 0 && categoryHint != "" {
		results = s.SearchMxikCode(categoryHint, "ru")
	}

	if len(results) == 0 {
		results = s.SearchMxikCode(query, "uz")
	}

	if len(results) == 0 || results[0].Similarity <= mxikBestMatchFloor {
		return s.defaultMatch()
	}

	return results[0]
}

// defaultMatch 兜底编码，标称相似度 30
func (s *MxikService) defaultMatch() model.MxikMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, code := range s.codes {
		if code.Code == model.DefaultMxikCode {
			return model.MxikMatch{
				Code:       code.Code,
				NameUz:     code.NameUz,
				NameRu:     code.NameRu,
				Similarity: mxikDefaultScore,
			}
		}
	}

	// 参考表里没有兜底编码时取内置命名
	return model.MxikMatch{
		Code:       model.DefaultMxikCode,
		NameUz:     "Boshqa chakana tovarlar",
		NameRu:     "Прочие розничные товары",
		Similarity: mxikDefaultScore,
	}
}
