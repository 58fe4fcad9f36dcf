package controllers

import (
	"net/http"
	"sort"
	"time"

	"stock_insight/models"
	"stock_insight/pkg/activity"
	"stock_insight/pkg/middleware"
	"stock_insight/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AdsController struct{}

func NewAdsController() *AdsController {
	return &AdsController{}
}

// AdRequest 广告写入请求结构
type AdRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Active   *bool  `json:"active"`
}

// GetAds 获取所有广告（管理端）
func (a *AdsController) GetAds(ctx *gin.Context) {
	ads, err := redis.GlobalRedisClient.GetAllAds()
	if err != nil {
		logrus.Errorf("获取广告列表失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取广告列表失败",
			"code":  "ADS_FETCH_FAILED",
		})
		return
	}

	// 按创建时间倒序
	sort.Slice(ads, func(i, j int) bool {
		return ads[i].CreatedAt.After(ads[j].CreatedAt)
	})

	ctx.JSON(http.StatusOK, gin.H{
		"data": ads,
	})
}

// GetActiveAds 获取启用中的广告（公开接口）
func (a *AdsController) GetActiveAds(ctx *gin.Context) {
	ads, err := redis.GlobalRedisClient.GetActiveAds()
	if err != nil {
		logrus.Errorf("获取广告失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取广告失败",
			"code":  "ADS_FETCH_FAILED",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": ads,
	})
}

// CreateAd 创建广告
func (a *AdsController) CreateAd(ctx *gin.Context) {
	var req AdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	now := time.Now()
	ad := &models.Ad{
		ID:        uuid.New().String(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Active:    req.Active == nil || *req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := redis.GlobalRedisClient.SetAd(ad); err != nil {
		logrus.Errorf("保存广告失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存广告失败",
			"code":  "AD_SAVE_FAILED",
		})
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityAdChange, "create:"+ad.ID, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "广告已创建",
		"data":    ad,
	})
}

// UpdateAd 更新广告
func (a *AdsController) UpdateAd(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "ID不能为空",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	ad, err := redis.GlobalRedisClient.GetAdById(id)
	if err != nil {
		logrus.Errorf("读取广告失败 %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "读取广告失败",
			"code":  "AD_FETCH_FAILED",
		})
		return
	}
	if ad == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "广告不存在",
			"code":  "AD_NOT_FOUND",
		})
		return
	}

	var req AdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	ad.Title = req.Title
	ad.ImageURL = req.ImageURL
	ad.LinkURL = req.LinkURL
	if req.Active != nil {
		ad.Active = *req.Active
	}
	ad.UpdatedAt = time.Now()

	if err := redis.GlobalRedisClient.SetAd(ad); err != nil {
		logrus.Errorf("更新广告失败 %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "更新广告失败",
			"code":  "AD_SAVE_FAILED",
		})
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityAdChange, "update:"+id, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "广告已更新",
		"data":    ad,
	})
}

// DeleteAd 删除广告
func (a *AdsController) DeleteAd(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "ID不能为空",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	if err := redis.GlobalRedisClient.DeleteAd(id); err != nil {
		logrus.Errorf("删除广告失败 %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除广告失败",
			"code":  "AD_DELETE_FAILED",
		})
		return
	}

	activity.Record(middleware.GetCurrentUser(ctx), models.ActivityAdChange, "delete:"+id, ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "广告已删除",
	})
}
