package websocket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 在生产环境中应该检查Origin
		return true
	},
}

// WebSocketManager WebSocket管理器
type WebSocketManager struct {
	hub *Hub
}

// NewWebSocketManager 创建WebSocket管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		hub: NewHub(),
	}
}

// Start 启动WebSocket管理器
func (wsm *WebSocketManager) Start() {
	go wsm.hub.Run()
}

// HandleWebSocket 处理WebSocket连接
func (wsm *WebSocketManager) HandleWebSocket(c *gin.Context) {
	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Errorf("WebSocket升级失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "WebSocket升级失败",
			"details": err.Error(),
		})
		return
	}

	// 生成客户端ID
	clientID := fmt.Sprintf("client_%d_%s", time.Now().UnixNano(), c.ClientIP())

	// 创建并注册客户端
	client := NewClient(wsm.hub, conn, clientID)
	wsm.hub.register <- client
	client.StartClient()

	logrus.WithFields(logrus.Fields{
		"clientId":   clientID,
		"remoteAddr": c.Request.RemoteAddr,
	}).Info("WebSocket连接已建立")
}

// GetStats 获取WebSocket统计信息
func (wsm *WebSocketManager) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   wsm.hub.GetStats(),
	})
}

// BroadcastActivity 向管理端广播一条活动日志
func (wsm *WebSocketManager) BroadcastActivity(data interface{}) {
	wsm.hub.Broadcast(DataTypeActivities, data)
}
