package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
)

// ==================== 调用日志 ====================

type fakeAICallLogRepo struct {
	entries []*model.AICallLog
}

func (f *fakeAICallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAICallLogRepo) GetByID(ctx context.Context, id int64) (*model.AICallLog, error) {
	return nil, errors.New("未实现")
}

func (f *fakeAICallLogRepo) GetUsageByPartner(ctx context.Context, partnerID int64, start, end time.Time) (*repository.AIUsageStats, error) {
	return &repository.AIUsageStats{}, nil
}

func newLogOnlyAIService(repo repository.AICallLogRepository) *AIService {
	return &AIService{
		Config: &AIConfig{
			TextModel:  "gemini-2.0-flash",
			ImageModel: "gemini-2.0-flash-exp",
		},
		callLogRepo: repo,
	}
}

func TestLogCall_CarriesPartnerMeta(t *testing.T) {
	repo := &fakeAICallLogRepo{}
	s := newLogOnlyAIService(repo)

	ctx := WithAICallMeta(context.Background(), 7, "SAM-GALAX-SMA54-X9K2")
	s.logCall(ctx, model.AICallTypeTitle, "ru", time.Now(), nil)

	if len(repo.entries) != 1 {
		t.Fatalf("日志条数 = %d, 期望 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.PartnerID != 7 {
		t.Errorf("PartnerID = %d, 期望 7", entry.PartnerID)
	}
	if entry.SKU != "SAM-GALAX-SMA54-X9K2" {
		t.Errorf("SKU = %q", entry.SKU)
	}
	if entry.CallType != model.AICallTypeTitle {
		t.Errorf("CallType = %q", entry.CallType)
	}
	if entry.ModelName != "gemini-2.0-flash" {
		t.Errorf("ModelName = %q", entry.ModelName)
	}
	if entry.Status != model.AICallStatusSuccess {
		t.Errorf("Status = %q", entry.Status)
	}
}

func TestLogCall_FailureRecordsError(t *testing.T) {
	repo := &fakeAICallLogRepo{}
	s := newLogOnlyAIService(repo)

	ctx := WithAICallMeta(context.Background(), 3, "XIA-REDMI-N13-A1B2")
	s.logCall(ctx, model.AICallTypeInfographic, "ru", time.Now(), errors.New("quota exceeded"))

	entry := repo.entries[0]
	if entry.Status != model.AICallStatusFailed {
		t.Errorf("Status = %q, 期望 %q", entry.Status, model.AICallStatusFailed)
	}
	if entry.ErrorMsg != "quota exceeded" {
		t.Errorf("ErrorMsg = %q", entry.ErrorMsg)
	}
	// 信息图走图片模型
	if entry.ModelName != "gemini-2.0-flash-exp" {
		t.Errorf("ModelName = %q", entry.ModelName)
	}
}

func TestLogCall_NoMetaDefaultsToZero(t *testing.T) {
	repo := &fakeAICallLogRepo{}
	s := newLogOnlyAIService(repo)

	s.logCall(context.Background(), model.AICallTypeDescription, "uz", time.Now(), nil)

	entry := repo.entries[0]
	if entry.PartnerID != 0 || entry.SKU != "" {
		t.Errorf("无归属上下文时 PartnerID = %d, SKU = %q", entry.PartnerID, entry.SKU)
	}
}
