package controllers

import (
	"net/http"

	"stock_insight/models"
	"stock_insight/pkg/activity"
	"stock_insight/pkg/config"
	"stock_insight/pkg/gemini"
	"stock_insight/pkg/middleware"
	"stock_insight/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AnalysisController struct{}

func NewAnalysisController() *AnalysisController {
	return &AnalysisController{}
}

// AnalysisResponse 分析响应：AI分析结果加持仓估值
type AnalysisResponse struct {
	*models.AnalysisResult
	Valuation *models.Valuation `json:"valuation,omitempty"`
}

// AnalyzePosition 对提交的持仓执行一次AI分析。
// 结果不持久化，只存在于本次请求周期。
func (ac *AnalysisController) AnalyzePosition(ctx *gin.Context) {
	var position models.Position
	if err := ctx.ShouldBindJSON(&position); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	position.Normalize()
	if err := position.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "INVALID_POSITION",
		})
		return
	}

	client, err := gemini.NewClient(config.GlobalConfig)
	if err != nil {
		respondGeminiError(ctx, position.Symbol, err)
		return
	}

	result, err := client.AnalyzePosition(ctx.Request.Context(), &position)
	if err != nil {
		if telegram.GlobalTelegramClient != nil {
			if terr := telegram.GlobalTelegramClient.SendError("持仓分析失败: "+position.Symbol, err); terr != nil {
				logrus.Warnf("发送Telegram通知失败: %v", terr)
			}
		}
		respondGeminiError(ctx, position.Symbol, err)
		return
	}

	response := AnalysisResponse{AnalysisResult: result}
	if result.CurrentPriceEstimate != nil {
		valuation := position.Valuate(*result.CurrentPriceEstimate)
		response.Valuation = &valuation
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityAnalysis, position.Symbol, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}
