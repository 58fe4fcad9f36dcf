package core

import (
	"time"

	"stock_insight/models"
	"stock_insight/pkg/config"
	"stock_insight/pkg/database"

	"github.com/sirupsen/logrus"
)

// RetentionWorker 定期裁剪活动日志，只保留最新的N条
type RetentionWorker struct {
	running      bool
	stopChan     chan bool
	tickInterval time.Duration
	keep         int
}

var GlobalRetentionWorker *RetentionWorker

// InitRetentionWorker 初始化日志保留工作器
func InitRetentionWorker() {
	keep := config.GlobalConfig.ActivityRetention
	if keep <= 0 {
		keep = 1000
	}

	GlobalRetentionWorker = &RetentionWorker{
		running:      false,
		stopChan:     make(chan bool),
		tickInterval: 10 * time.Minute,
		keep:         keep,
	}
}

// Start 开始定期裁剪
func (rw *RetentionWorker) Start() {
	if rw.running {
		logrus.Warn("retention worker is already running")
		return
	}

	rw.running = true
	logrus.Info("retention worker started")

	go rw.trimLoop()
}

// Stop 停止裁剪
func (rw *RetentionWorker) Stop() {
	if !rw.running {
		return
	}

	rw.running = false
	rw.stopChan <- true
	logrus.Info("日志裁剪已停止")
}

// trimLoop 裁剪循环
func (rw *RetentionWorker) trimLoop() {
	ticker := time.NewTicker(rw.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rw.stopChan:
			return
		case <-ticker.C:
			rw.trim()
		}
	}
}

// trim 删除保留窗口之外的旧日志
func (rw *RetentionWorker) trim() {
	db := database.GetDB()
	if db == nil {
		return
	}

	var total int64
	if err := db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		logrus.Errorf("统计活动日志失败: %v", err)
		return
	}
	if total <= int64(rw.keep) {
		return
	}

	// 找到保留窗口边界的那条记录，删除比它更旧的
	var boundary models.ActivityLog
	if err := db.Model(&models.ActivityLog{}).
		Order("id desc").
		Offset(rw.keep - 1).
		First(&boundary).Error; err != nil {
		logrus.Errorf("查询日志保留边界失败: %v", err)
		return
	}

	result := db.Where("id < ?", boundary.ID).Delete(&models.ActivityLog{})
	if result.Error != nil {
		logrus.Errorf("裁剪活动日志失败: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		logrus.Infof("已裁剪 %d 条过期活动日志", result.RowsAffected)
	}
}
