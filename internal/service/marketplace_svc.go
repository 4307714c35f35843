package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// ==================== 配置 ====================

type MarketplaceConfig struct {
	UzumBaseURL    string
	UzumToken      string
	YandexBaseURL  string
	YandexToken    string
	YandexCampaign string // Yandex Market 的 campaignId
}

const (
	defaultUzumBaseURL   = "https://api-seller.uzum.uz"
	defaultYandexBaseURL = "https://api.partner.market.yandex.ru"
)

func newMarketplaceHTTPClient() *resty.Client {
	// 设置超时和重试，防止网络波动
	return resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3)
}

// ==================== Uzum Market ====================

// UzumClient Uzum Market 卖家API客户端
type UzumClient struct {
	client  *resty.Client
	baseURL string
	token   string
}

func NewUzumClient(cfg *MarketplaceConfig) *UzumClient {
	baseURL := cfg.UzumBaseURL
	if baseURL == "" {
		baseURL = defaultUzumBaseURL
	}
	return &UzumClient{
		client:  newMarketplaceHTTPClient(),
		baseURL: baseURL,
		token:   cfg.UzumToken,
	}
}

func (c *UzumClient) Name() string {
	return "uzum"
}

type uzumProductPayload struct {
	SkuTitle    string   `json:"skuTitle"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	CategoryID  int      `json:"categoryId"`
	Brand       string   `json:"brand"`
	IkpuCode    string   `json:"ikpuCode"` // Uzum 侧的 MXIK 字段名
	Images      []string `json:"images"`
}

type uzumAPIResp struct {
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateOrUpdateProduct 创建或更新商品
func (c *UzumClient) CreateOrUpdateProduct(ctx context.Context, offer *PublishOffer) (*PublishResult, error) {
	payload := uzumProductPayload{
		SkuTitle:    offer.OfferID,
		Title:       offer.Name,
		Description: offer.Description,
		Price:       offer.Price,
		CategoryID:  offer.CategoryID,
		Brand:       offer.Vendor,
		IkpuCode:    offer.MxikCode,
		Images:      offer.Pictures,
	}

	var res uzumAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&res).
		Post(c.baseURL + "/api/seller/product/v2/upsert")
	if err != nil {
		return nil, fmt.Errorf("uzum请求失败: %v", err)
	}

	if resp.IsError() {
		return &PublishResult{
			Success: false,
			Error:   fmt.Sprintf("uzum返回 HTTP %d: %s", resp.StatusCode(), res.Error.Message),
		}, nil
	}
	if !res.Success {
		return &PublishResult{Success: false, Error: res.Error.Message}, nil
	}

	return &PublishResult{Success: true}, nil
}

// UpdatePrice 更新商品价格
func (c *UzumClient) UpdatePrice(ctx context.Context, offerID string, price int64) error {
	var res uzumAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(map[string]interface{}{
			"skuTitle": offerID,
			"price":    price,
		}).
		SetResult(&res).
		Post(c.baseURL + "/api/seller/product/price")
	if err != nil {
		return fmt.Errorf("uzum改价请求失败: %v", err)
	}
	if resp.IsError() {
		return fmt.Errorf("uzum改价返回 HTTP %d: %s", resp.StatusCode(), res.Error.Message)
	}
	return nil
}

// UpdateStock 更新库存数量
func (c *UzumClient) UpdateStock(ctx context.Context, offerID string, amount int) error {
	var res uzumAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(map[string]interface{}{
			"skuTitle": offerID,
			"amount":   amount,
		}).
		SetResult(&res).
		Post(c.baseURL + "/api/seller/product/stocks")
	if err != nil {
		return fmt.Errorf("uzum库存请求失败: %v", err)
	}
	if resp.IsError() {
		return fmt.Errorf("uzum库存返回 HTTP %d: %s", resp.StatusCode(), res.Error.Message)
	}
	return nil
}

// ==================== Yandex Market ====================

// YandexClient Yandex Market 合作伙伴API客户端
type YandexClient struct {
	client     *resty.Client
	baseURL    string
	token      string
	campaignID string
}

func NewYandexClient(cfg *MarketplaceConfig) *YandexClient {
	baseURL := cfg.YandexBaseURL
	if baseURL == "" {
		baseURL = defaultYandexBaseURL
	}
	return &YandexClient{
		client:     newMarketplaceHTTPClient(),
		baseURL:    baseURL,
		token:      cfg.YandexToken,
		campaignID: cfg.YandexCampaign,
	}
}

func (c *YandexClient) Name() string {
	return "yandex"
}

type yandexOfferPayload struct {
	OfferMappings []struct {
		Offer yandexOffer `json:"offer"`
	} `json:"offerMappings"`
}

type yandexOffer struct {
	OfferID     string   `json:"offerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Vendor      string   `json:"vendor"`
	Pictures    []string `json:"pictures"`
	BasicPrice  struct {
		Value      int64  `json:"value"`
		CurrencyID string `json:"currencyId"`
	} `json:"basicPrice"`
	CommodityCodes []struct {
		Code string `json:"code"`
		Type string `json:"type"`
	} `json:"commodityCodes"`
}

type yandexAPIResp struct {
	Status string `json:"status"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateOrUpdateProduct 创建或更新商品 (offer-mappings/update)
func (c *YandexClient) CreateOrUpdateProduct(ctx context.Context, offer *PublishOffer) (*PublishResult, error) {
	var yo yandexOffer
	yo.OfferID = offer.OfferID
	yo.Name = offer.Name
	yo.Description = offer.Description
	yo.Vendor = offer.Vendor
	yo.Pictures = offer.Pictures
	yo.BasicPrice.Value = offer.Price
	yo.BasicPrice.CurrencyID = "UZS"
	yo.CommodityCodes = []struct {
		Code string `json:"code"`
		Type string `json:"type"`
	}{{Code: offer.MxikCode, Type: "IKPU_CODE"}}

	payload := yandexOfferPayload{}
	payload.OfferMappings = append(payload.OfferMappings, struct {
		Offer yandexOffer `json:"offer"`
	}{Offer: yo})

	var res yandexAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(payload).
		SetResult(&res).
		Post(fmt.Sprintf("%s/businesses/%s/offer-mappings/update", c.baseURL, c.campaignID))
	if err != nil {
		return nil, fmt.Errorf("yandex请求失败: %v", err)
	}

	if resp.IsError() || res.Status == "ERROR" {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode())
		if len(res.Errors) > 0 {
			msg = res.Errors[0].Message
		}
		return &PublishResult{Success: false, Error: fmt.Sprintf("yandex返回错误: %s", msg)}, nil
	}

	return &PublishResult{Success: true}, nil
}

// UpdatePrice 更新商品价格 (offer-prices/updates)
func (c *YandexClient) UpdatePrice(ctx context.Context, offerID string, price int64) error {
	body := map[string]interface{}{
		"offers": []map[string]interface{}{
			{
				"offerId": offerID,
				"price": map[string]interface{}{
					"value":      price,
					"currencyId": "UZS",
				},
			},
		},
	}

	var res yandexAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(body).
		SetResult(&res).
		Post(fmt.Sprintf("%s/campaigns/%s/offer-prices/updates", c.baseURL, c.campaignID))
	if err != nil {
		return fmt.Errorf("yandex改价请求失败: %v", err)
	}
	if resp.IsError() || res.Status == "ERROR" {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode())
		if len(res.Errors) > 0 {
			msg = res.Errors[0].Message
		}
		return fmt.Errorf("yandex改价失败: %s", msg)
	}
	return nil
}

// UpdateStock 更新库存数量 (offers/stocks)
func (c *YandexClient) UpdateStock(ctx context.Context, offerID string, amount int) error {
	body := map[string]interface{}{
		"skus": []map[string]interface{}{
			{
				"sku": offerID,
				"items": []map[string]interface{}{
					{"count": amount},
				},
			},
		},
	}

	var res yandexAPIResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(body).
		SetResult(&res).
		Put(fmt.Sprintf("%s/campaigns/%s/offers/stocks", c.baseURL, c.campaignID))
	if err != nil {
		return fmt.Errorf("yandex库存请求失败: %v", err)
	}
	if resp.IsError() || res.Status == "ERROR" {
		return fmt.Errorf("yandex库存失败: HTTP %d", resp.StatusCode())
	}
	return nil
}

// ==================== 路由辅助 ====================

// ResolveMarketplaceClient 按名称选择市场客户端
func ResolveMarketplaceClient(name string, uzum *UzumClient, yandex *YandexClient) (MarketplaceClient, error) {
	switch name {
	case "uzum":
		if uzum == nil {
			return nil, fmt.Errorf("uzum客户端未配置")
		}
		return uzum, nil
	case "yandex":
		if yandex == nil {
			return nil, fmt.Errorf("yandex客户端未配置")
		}
		return yandex, nil
	default:
		log.Warnf("未知市场: %s", name)
		return nil, fmt.Errorf("不支持的市场: %s", name)
	}
}
