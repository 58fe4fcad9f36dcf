package controllers

import (
	"net/http"

	"stock_insight/pkg/config"

	"github.com/gin-gonic/gin"
)

// ConfigController 系统配置控制器
type ConfigController struct{}

// NewConfigController 创建配置控制器
func NewConfigController() *ConfigController {
	return &ConfigController{}
}

// SystemConfigResponse 系统配置响应
type SystemConfigResponse struct {
	GeminiModel      string  `json:"gemini_model"`       // 使用的模型
	GeminiConfigured bool    `json:"gemini_configured"`  // API Key是否已配置
	QuoteBuyRatio    float64 `json:"quote_buy_ratio"`    // 回退买入价比例
	QuoteSellRatio   float64 `json:"quote_sell_ratio"`   // 回退卖出价比例
	OTPTTLSeconds    int     `json:"otp_ttl_seconds"`    // 验证码有效期
	ActivityRetained int     `json:"activity_retention"` // 活动日志保留条数
}

// GetSystemConfig 获取系统配置（管理端，不含敏感信息）
func (c *ConfigController) GetSystemConfig(ctx *gin.Context) {
	cfg := config.GlobalConfig

	response := SystemConfigResponse{
		GeminiModel:      cfg.GeminiModel,
		GeminiConfigured: cfg.GeminiAPIKey != "",
		QuoteBuyRatio:    cfg.QuoteBuyRatio,
		QuoteSellRatio:   cfg.QuoteSellRatio,
		OTPTTLSeconds:    int(cfg.OTPTTL.Seconds()),
		ActivityRetained: cfg.ActivityRetention,
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}
