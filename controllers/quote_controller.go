package controllers

import (
	"errors"
	"net/http"
	"strings"

	"stock_insight/models"
	"stock_insight/pkg/activity"
	"stock_insight/pkg/config"
	"stock_insight/pkg/gemini"
	"stock_insight/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type QuoteController struct{}

func NewQuoteController() *QuoteController {
	return &QuoteController{}
}

// GetQuote 获取指定代码的AI报价
func (q *QuoteController) GetQuote(ctx *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(ctx.Param("symbol")))
	if symbol == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "股票代码不能为空",
			"code":  "INVALID_SYMBOL",
		})
		return
	}

	// 每次请求惰性构造客户端，凭据缺失在任何网络调用前暴露
	client, err := gemini.NewClient(config.GlobalConfig)
	if err != nil {
		respondGeminiError(ctx, symbol, err)
		return
	}

	quote, err := client.FetchQuote(ctx.Request.Context(), symbol)
	if err != nil {
		respondGeminiError(ctx, symbol, err)
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityQuote, symbol, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"data": quote,
	})
}

// respondGeminiError 把Gemini服务的错误分类映射为HTTP响应
func respondGeminiError(ctx *gin.Context, symbol string, err error) {
	var (
		quoteErr *gemini.QuoteUnavailableError
		rateErr  *gemini.RateLimitError
	)

	switch {
	case errors.Is(err, gemini.ErrAPIKeyMissing):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"code":  "CONFIG_REQUIRED",
		})
	case errors.As(err, &rateErr):
		ctx.JSON(http.StatusTooManyRequests, gin.H{
			"error": err.Error(),
			"code":  "RATE_LIMITED",
		})
	case errors.As(err, &quoteErr):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
			"code":  "QUOTE_UNAVAILABLE",
		})
	default:
		logrus.Errorf("AI服务调用失败 %s: %v", symbol, err)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error": "分析过程中断，请稍后重试",
			"code":  "ANALYSIS_INTERRUPTED",
		})
	}
}
