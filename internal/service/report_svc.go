package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
)

// ReportService 卡片台账导出与用量统计服务
type ReportService struct {
	cardRepo  repository.CardRepository
	aiLogRepo repository.AICallLogRepository
}

func NewReportService(cardRepo repository.CardRepository, aiLogRepo repository.AICallLogRepository) *ReportService {
	return &ReportService{cardRepo: cardRepo, aiLogRepo: aiLogRepo}
}

// AIUsage 统计合作伙伴最近 days 天的 AI 用量
func (s *ReportService) AIUsage(ctx context.Context, partnerID int64, days int) (*repository.AIUsageStats, error) {
	if s.aiLogRepo == nil {
		return nil, fmt.Errorf("AI调用日志仓储未配置")
	}
	if days <= 0 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.aiLogRepo.GetUsageByPartner(ctx, partnerID, start, end)
}

var cardReportHeaders = []string{
	"SKU", "Название (рус)", "Название (узб)", "Категория", "Код МХИК",
	"Себестоимость", "Комиссия", "Логистика", "Налог", "Маржа", "Итоговая цена",
	"Индекс качества", "Статус", "Создано",
}

// ExportCards 导出合作伙伴的全部卡片为 xlsx
func (s *ReportService) ExportCards(ctx context.Context, partnerID int64) ([]byte, error) {
	const pageSize = 500

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Карточки"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range cardReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("写入表头失败: %v", err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "B", 28)
	_ = f.SetColWidth(sheet, "C", "N", 16)

	row := 2
	for page := 1; ; page++ {
		cards, total, err := s.cardRepo.ListByPartner(ctx, partnerID, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("查询卡片失败: %v", err)
		}
		for _, card := range cards {
			if err := s.writeCardRow(f, sheet, row, card); err != nil {
				return nil, err
			}
			row++
		}
		if int64(page*pageSize) >= total || len(cards) == 0 {
			break
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成xlsx失败: %v", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) writeCardRow(f *excelize.File, sheet string, row int, card model.ProductCard) error {
	values := []interface{}{
		card.SKU,
		card.TitleRu,
		card.TitleUz,
		card.CategoryKey,
		card.MxikCode,
		card.CostPrice,
		card.Commission,
		card.Logistics,
		card.Tax,
		card.Margin,
		card.FinalPrice,
		card.QualityIndex,
		publishStatusLabel(card.PublishStatus),
		card.CreatedAt.Format("2006-01-02 15:04"),
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("写入第%d行失败: %v", row, err)
	}
	return nil
}

func publishStatusLabel(status model.CardPublishStatus) string {
	switch status {
	case model.CardPublishSuccess:
		return "Опубликовано"
	case model.CardPublishFailed:
		return "Ошибка публикации"
	default:
		return "Черновик"
	}
}

// ReportFilename 导出文件名
func ReportFilename(partnerID int64) string {
	ts := time.Now().Format("20060102_150405")
	return strings.ToLower(fmt.Sprintf("cards_p%d_%s.xlsx", partnerID, ts))
}
