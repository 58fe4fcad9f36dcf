package controllers

import (
	"math"
	"net/http"
	"strconv"

	"stock_insight/models"
	"stock_insight/pkg/database"
	"stock_insight/pkg/redis"

	"github.com/gin-gonic/gin"
)

// ActivityController 活动日志控制器（管理端）
type ActivityController struct{}

func NewActivityController() *ActivityController {
	return &ActivityController{}
}

// GetActivities retrieves activity logs with optional filtering and pagination
func (ac *ActivityController) GetActivities(c *gin.Context) {
	var logs []models.ActivityLog

	// Query parameters
	actor := c.Query("actor")
	action := c.Query("action")
	detail := c.Query("detail")
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	// Parse pagination
	page, _ := strconv.Atoi(pageStr)
	pageSize, _ := strconv.Atoi(pageSizeStr)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize

	// Build query
	query := database.GetDB().Model(&models.ActivityLog{})

	if actor != "" {
		query = query.Where("actor = ?", actor)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if detail != "" {
		// 支持模糊查询：匹配包含detail的记录
		query = query.Where("detail LIKE ?", "%"+detail+"%")
	}

	// Get total count
	var total int64
	query.Count(&total)

	// Get data
	result := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&logs)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取活动日志失败",
			"code":  "ACTIVITIES_FETCH_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       logs,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// GetUsers 获取所有用户档案（管理端）
func (ac *ActivityController) GetUsers(c *gin.Context) {
	profiles, err := redis.GlobalRedisClient.GetAllUserProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取用户列表失败",
			"code":  "USERS_FETCH_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  profiles,
		"total": len(profiles),
	})
}
