package controller

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"sellhub_uz_202608/internal/api/dto"
	"sellhub_uz_202608/internal/model"
	"sellhub_uz_202608/internal/service"
	"sellhub_uz_202608/pkg/utils"
)

const mxikCacheTTL = 10 * time.Minute

type MxikController struct {
	mxikService *service.MxikService
}

func NewMxikController(mxikService *service.MxikService) *MxikController {
	return &MxikController{mxikService: mxikService}
}

// SearchMxik 搜索MXIK编码
// @Summary 按商品名称模糊搜索MXIK税务编码
// @Tags Mxik
// @Param q query string true "搜索词"
// @Param lang query string false "语言 ru|uz" default(ru)
// @Success 200 {object} dto.MxikSearchResp
// @Router /api/mxik/search [get]
func (ctrl *MxikController) SearchMxik(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少搜索词 q"})
		return
	}
	lang := c.DefaultQuery("lang", "ru")
	if lang != "ru" && lang != "uz" {
		lang = "ru"
	}

	// 搜索结果短期缓存，编码表本身很少变动
	cacheKey := fmt.Sprintf("mxik:search:%s:%s", lang, query)
	if cached, ok := utils.GetCache(cacheKey); ok {
		var matches []model.MxikMatch
		if err := json.Unmarshal([]byte(cached), &matches); err == nil {
			c.JSON(200, dto.MxikSearchResp{Code: 0, Message: "success", Data: matches})
			return
		}
	}

	matches := ctrl.mxikService.SearchMxikCode(query, lang)
	if data, err := json.Marshal(matches); err == nil {
		utils.SetCache(cacheKey, string(data), mxikCacheTTL)
	}

	c.JSON(200, dto.MxikSearchResp{Code: 0, Message: "success", Data: matches})
}

// ReloadMxik 重新加载编码表
// @Summary 从数据文件重新加载MXIK编码表
// @Tags Mxik
// @Success 200 {object} map[string]interface{}
// @Router /api/mxik/reload [post]
func (ctrl *MxikController) ReloadMxik(c *gin.Context) {
	ctrl.mxikService.Reload()

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"count": ctrl.mxikService.Count(),
		},
	})
}
