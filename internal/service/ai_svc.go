package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/repository"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	ApiKey     string
	TextModel  string
	ImageModel string
}

// ==================== 服务 ====================

// AIService 文案与信息图生成服务
// 文案走 genai SDK，信息图走 REST 多模态接口
type AIService struct {
	Config      *AIConfig
	client      *genai.Client
	textModel   *genai.GenerativeModel
	callLogRepo repository.AICallLogRepository

	// 最小调用间隔节流
	mu    sync.Mutex
	last  time.Time
	delay time.Duration
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *AIConfig, callLogRepo repository.AICallLogRepository) (*AIService, error) {
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("Gemini API Key 未配置")
	}

	// 固定模型配置
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.0-flash"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %v", err)
	}

	textModel := client.GenerativeModel(cfg.TextModel)
	textModel.SetTemperature(0.3)
	textModel.SetTopK(20)
	textModel.SetTopP(0.9)
	textModel.SetMaxOutputTokens(2048)

	return &AIService{
		Config:      cfg,
		client:      client,
		textModel:   textModel,
		callLogRepo: callLogRepo,
		delay:       350 * time.Millisecond,
	}, nil
}

// Close 释放客户端
func (s *AIService) Close() error {
	return s.client.Close()
}

// ==================== 文案生成 ====================

var titleLangHints = map[string]string{
	"ru": "Russian",
	"uz": "Uzbek (latin script)",
}

// GenerateTitle 生成市场商品标题
func (s *AIService) GenerateTitle(ctx context.Context, name, brand, category, lang string) (string, error) {
	hint, ok := titleLangHints[lang]
	if !ok {
		hint = titleLangHints["ru"]
	}

	prompt := fmt.Sprintf(`You are a marketplace SEO expert for Central Asian e-commerce (Uzum, Yandex Market).
Write ONE selling product title in %s.

Product: %s
Brand: %s
Category: %s

Requirements:
- max 150 characters
- include brand and key selling point
- no quotes, no markdown, output the title only`, hint, name, brand, category)

	start := time.Now()
	text, err := s.generateText(ctx, prompt)
	s.logCall(ctx, model.AICallTypeTitle, lang, start, err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateDescription 生成市场商品描述
func (s *AIService) GenerateDescription(ctx context.Context, name, brand string, features []string, lang string) (string, error) {
	hint, ok := titleLangHints[lang]
	if !ok {
		hint = titleLangHints["ru"]
	}

	prompt := fmt.Sprintf(`You are a marketplace copywriter. Write an engaging product description in %s.

Product: %s
Brand: %s
Features: %s

Requirements:
- 150-300 words, sales oriented
- bullet list of features
- no markdown headers, plain text with line breaks`, hint, name, brand, strings.Join(features, "; "))

	start := time.Now()
	text, err := s.generateText(ctx, prompt)
	s.logCall(ctx, model.AICallTypeDescription, lang, start, err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// generateText 单轮文本生成
func (s *AIService) generateText(ctx context.Context, prompt string) (string, error) {
	s.throttle()

	resp, err := s.textModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini 请求失败: %v", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("无生成结果")
	}

	return extractText(resp), nil
}

// extractText 从响应拼出文本
func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				b.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return b.String()
}

// ==================== 信息图生成 ====================

// GenerateInfographic 生成一张商品信息图，返回 Base64 数据
// SDK 暂不支持图片模态输出，走 REST 接口（与文案共用限流节流）
func (s *AIService) GenerateInfographic(ctx context.Context, productName, description, style string) (string, error) {
	s.throttle()

	prompt := fmt.Sprintf(`You are a professional e-commerce designer.
Generate a high-quality product infographic image.

Product: %s
Description: %s
Style: %s

Requirements:
- Professional studio lighting
- Clean, appealing composition
- High resolution, suitable for marketplace listing
- Focus on product details and quality`, productName, description, style)

	start := time.Now()
	data, err := s.callImageGeneration(ctx, prompt)
	s.logCall(ctx, model.AICallTypeInfographic, "", start, err)
	return data, err
}

// callImageGeneration 调用 Gemini 图片生成 API
func (s *AIService) callImageGeneration(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.Config.ImageModel, s.Config.ApiKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API 错误 [%d]: %s", resp.StatusCode, string(respBody))
	}

	// 解析响应，提取生成的图片
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text       string `json:"text,omitempty"`
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData,omitempty"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API错误: %s", geminiResp.Error.Message)
	}

	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData.Data, nil
			}
		}
	}

	return "", fmt.Errorf("响应中未找到图片数据")
}

// ==================== 调用归属 ====================

type aiCallMetaKey struct{}

// AICallMeta AI 调用归属信息，随 ctx 传递到调用日志
type AICallMeta struct {
	PartnerID int64
	SKU       string
}

// WithAICallMeta 给 ctx 附加调用归属
func WithAICallMeta(ctx context.Context, partnerID int64, sku string) context.Context {
	return context.WithValue(ctx, aiCallMetaKey{}, AICallMeta{PartnerID: partnerID, SKU: sku})
}

func aiCallMetaFrom(ctx context.Context) AICallMeta {
	if meta, ok := ctx.Value(aiCallMetaKey{}).(AICallMeta); ok {
		return meta
	}
	return AICallMeta{}
}

// ==================== 辅助 ====================

// throttle 保证两次调用之间的最小间隔
func (s *AIService) throttle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.last.IsZero() {
		if sleep := s.delay - now.Sub(s.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	s.last = now
}

// logCall 记录调用日志，日志失败忽略
func (s *AIService) logCall(ctx context.Context, callType, lang string, start time.Time, callErr error) {
	if s.callLogRepo == nil {
		return
	}

	meta := aiCallMetaFrom(ctx)
	entry := &model.AICallLog{
		PartnerID:  meta.PartnerID,
		SKU:        meta.SKU,
		CallType:   callType,
		ModelName:  s.Config.TextModel,
		Lang:       lang,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     model.AICallStatusSuccess,
	}
	if callType == model.AICallTypeInfographic {
		entry.ModelName = s.Config.ImageModel
	}
	if callErr != nil {
		entry.Status = model.AICallStatusFailed
		entry.ErrorMsg = callErr.Error()
	}

	_ = s.callLogRepo.Create(ctx, entry)
}
