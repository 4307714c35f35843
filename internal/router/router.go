package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sellhub_uz_202608/internal/controller"
	"sellhub_uz_202608/internal/middleware"
	"sellhub_uz_202608/internal/repository"

	_ "sellhub_uz_202608/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	partnerRepo repository.PartnerRepository,
	cardCtl *controller.CardController,
	priceCtl *controller.PriceController,
	mxikCtl *controller.MxikController,
	reportCtl *controller.ReportController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组（全部需要合作伙伴鉴权）
	api := r.Group("/api")
	api.Use(middleware.PartnerAuth(partnerRepo))
	{
		// card 卡片组
		cards := api.Group("/cards")
		{
			// POST /api/cards 是完整AI流水线，单独限流
			cards.POST("", middleware.RateLimitCardGen(10*time.Second), cardCtl.CreateCard)
			cards.POST("/preview", cardCtl.PreviewCard)
			cards.GET("", cardCtl.GetCards)
			cards.GET("/:id", cardCtl.GetCard)
		}
		// price 定价组
		prices := api.Group("/prices")
		{
			prices.POST("/calculate", priceCtl.CalculatePrice)
		}
		// mxik 税务编码组
		mxik := api.Group("/mxik")
		{
			mxik.GET("/search", mxikCtl.SearchMxik)
			mxik.POST("/reload", mxikCtl.ReloadMxik)
		}
		// report 报表组
		reports := api.Group("/reports")
		{
			reports.GET("/cards", reportCtl.ExportCards)
			reports.GET("/ai-usage", reportCtl.GetAIUsage)
		}
	}
}
