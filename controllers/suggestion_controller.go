package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"stock_insight/models"
	"stock_insight/pkg/activity"
	"stock_insight/pkg/middleware"
	"stock_insight/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SuggestionController struct{}

func NewSuggestionController() *SuggestionController {
	return &SuggestionController{}
}

// SuggestionRequest 操作提示写入请求结构
type SuggestionRequest struct {
	TargetEmail string `json:"target_email"` // 为空表示推送给全部用户
	Symbol      string `json:"symbol"`
	Content     string `json:"content" binding:"required"`
}

// GetMySuggestions 获取面向当前用户的操作提示
func (s *SuggestionController) GetMySuggestions(ctx *gin.Context) {
	email := middleware.GetCurrentUser(ctx)

	suggestions, err := redis.GlobalRedisClient.GetSuggestionsForUser(email)
	if err != nil {
		logrus.Errorf("获取操作提示失败 %s: %v", email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取操作提示失败",
			"code":  "TIPS_FETCH_FAILED",
		})
		return
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].CreatedAt.After(suggestions[j].CreatedAt)
	})

	ctx.JSON(http.StatusOK, gin.H{
		"data": suggestions,
	})
}

// GetSuggestions 获取所有操作提示（管理端）
func (s *SuggestionController) GetSuggestions(ctx *gin.Context) {
	suggestions, err := redis.GlobalRedisClient.GetAllSuggestions()
	if err != nil {
		logrus.Errorf("获取操作提示列表失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取操作提示列表失败",
			"code":  "TIPS_FETCH_FAILED",
		})
		return
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].CreatedAt.After(suggestions[j].CreatedAt)
	})

	ctx.JSON(http.StatusOK, gin.H{
		"data": suggestions,
	})
}

// CreateSuggestion 创建操作提示
func (s *SuggestionController) CreateSuggestion(ctx *gin.Context) {
	var req SuggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	suggestion := &models.Suggestion{
		ID:          uuid.New().String(),
		TargetEmail: strings.ToLower(strings.TrimSpace(req.TargetEmail)),
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}

	if err := redis.GlobalRedisClient.SetSuggestion(suggestion); err != nil {
		logrus.Errorf("保存操作提示失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存操作提示失败",
			"code":  "TIP_SAVE_FAILED",
		})
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityTipChange, "create:"+suggestion.ID, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "操作提示已创建",
		"data":    suggestion,
	})
}

// DeleteSuggestion 删除操作提示
func (s *SuggestionController) DeleteSuggestion(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "ID不能为空",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	if err := redis.GlobalRedisClient.DeleteSuggestion(id); err != nil {
		logrus.Errorf("删除操作提示失败 %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除操作提示失败",
			"code":  "TIP_DELETE_FAILED",
		})
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityTipChange, "delete:"+id, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "操作提示已删除",
	})
}
