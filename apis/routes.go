package apis

import (
	"stock_insight/controllers"
	"stock_insight/pkg/middleware"
	"stock_insight/pkg/websocket"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// 创建控制器实例
	authController := &controllers.AuthController{}
	quoteController := controllers.NewQuoteController()
	analysisController := controllers.NewAnalysisController()
	adsController := controllers.NewAdsController()
	suggestionController := controllers.NewSuggestionController()
	activityController := controllers.NewActivityController()
	configController := controllers.NewConfigController()

	// 初始化WebSocket管理器
	wsManager := websocket.GetGlobalWebSocketManager()

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Stock Insight API is running",
		})
	})

	// 添加认证中间件
	r.Use(middleware.AuthMiddleware())

	// WebSocket路由（管理端活动事件推送）
	r.GET("/ws", wsManager.HandleWebSocket)

	// 认证路由
	auth := r.Group("/api/v1/auth")
	{
		auth.GET("/captcha", authController.GetCaptcha)      // 获取图形验证码
		auth.POST("/otp", authController.RequestOTP)         // 申请邮箱验证码
		auth.POST("/login", authController.Login)            // 用户登录
		auth.POST("/admin/login", authController.AdminLogin) // 管理员登录
	}

	// 公开广告位
	r.GET("/api/v1/ads/active", adsController.GetActiveAds)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 用户信息路由
		user := v1.Group("/user")
		{
			user.GET("/profile", authController.GetProfile) // 获取用户信息
		}

		// 行情与分析路由
		v1.GET("/quote/:symbol", quoteController.GetQuote)            // AI报价
		v1.POST("/analysis", analysisController.AnalyzePosition)      // 持仓分析
		v1.GET("/suggestions", suggestionController.GetMySuggestions) // 面向当前用户的操作提示

		// 管理端路由
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			ads := admin.Group("/ads")
			{
				ads.GET("", adsController.GetAds)          // 获取所有广告
				ads.POST("", adsController.CreateAd)       // 创建广告
				ads.PUT("/:id", adsController.UpdateAd)    // 更新广告
				ads.DELETE("/:id", adsController.DeleteAd) // 删除广告
			}

			tips := admin.Group("/suggestions")
			{
				tips.GET("", suggestionController.GetSuggestions)          // 获取所有操作提示
				tips.POST("", suggestionController.CreateSuggestion)       // 创建操作提示
				tips.DELETE("/:id", suggestionController.DeleteSuggestion) // 删除操作提示
			}

			admin.GET("/activities", activityController.GetActivities) // 活动日志
			admin.GET("/users", activityController.GetUsers)           // 用户列表
			admin.GET("/config", configController.GetSystemConfig)     // 系统配置
			admin.GET("/ws/stats", wsManager.GetStats)                 // WebSocket统计
		}
	}

	// 未匹配的API路由返回404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "API endpoint not found"})
	})
}
