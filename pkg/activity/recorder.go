package activity

import (
	"stock_insight/models"
	"stock_insight/pkg/database"
	"stock_insight/pkg/websocket"

	"github.com/sirupsen/logrus"
)

// Record 记录一条活动日志并推送给在线的管理端。
// 日志失败只记log不影响业务请求。
func Record(actor, action, detail, clientIP string) {
	entry := &models.ActivityLog{
		Actor:    actor,
		Action:   action,
		Detail:   detail,
		ClientIP: clientIP,
	}

	if db := database.GetDB(); db != nil {
		if err := db.Create(entry).Error; err != nil {
			logrus.Errorf("写入活动日志失败: %v", err)
			return
		}
	}

	if wsm := websocket.GlobalWebSocketManager; wsm != nil {
		wsm.BroadcastActivity(entry)
	}
}
