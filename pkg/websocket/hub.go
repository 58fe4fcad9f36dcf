package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub 维护活跃的管理端连接并向其广播活动事件
type Hub struct {
	// 注册的客户端
	clients map[*Client]bool

	// 待广播的消息
	broadcast chan []byte

	// 来自客户端的注册请求
	register chan *Client

	// 来自客户端的注销请求
	unregister chan *Client

	clientsMutex sync.RWMutex
}

// Client 表示单个WebSocket客户端
type Client struct {
	hub *Hub

	// WebSocket连接
	conn *websocket.Conn

	// 出站消息的缓冲通道
	send chan []byte

	// 客户端唯一标识
	id string

	// 连接时间
	connectedAt time.Time

	// 客户端状态
	closed     bool
	closeMutex sync.RWMutex
}

// Message 表示WebSocket消息格式
type Message struct {
	Type      string      `json:"type"`      // message, ping, pong, error
	DataType  string      `json:"dataType"`  // activities, system
	Data      interface{} `json:"data"`      // 实际数据
	Timestamp int64       `json:"timestamp"` // 时间戳
	ClientID  string      `json:"clientId,omitempty"`
}

const (
	// 消息类型
	MessageTypeMessage = "message"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
	MessageTypeError   = "error"

	// 数据类型
	DataTypeActivities = "activities"
	DataTypeSystem     = "system"

	// 时间常量
	writeWait      = 10 * time.Second    // 写入等待时间
	pongWait       = 60 * time.Second    // Pong等待时间
	pingPeriod     = (pongWait * 9) / 10 // Ping发送周期
	maxMessageSize = 512                 // 最大消息大小
)

// NewHub 创建新的Hub
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run 启动Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = true
			h.clientsMutex.Unlock()
			logrus.WithField("clientId", client.id).Info("客户端已连接")

			// 发送欢迎消息
			welcome := Message{
				Type:      MessageTypeMessage,
				DataType:  DataTypeSystem,
				Data:      map[string]string{"status": "connected", "clientId": client.id},
				Timestamp: time.Now().UnixMilli(),
				ClientID:  client.id,
			}
			if data, err := json.Marshal(welcome); err == nil {
				select {
				case client.send <- data:
				default:
					client.safeClose()
					delete(h.clients, client)
				}
			}

		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.safeClose()
				logrus.WithField("clientId", client.id).Info("客户端已断开")
			}
			h.clientsMutex.Unlock()

		case message := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					client.safeClose()
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// GetStats 获取Hub统计信息
func (h *Hub) GetStats() map[string]interface{} {
	h.clientsMutex.RLock()
	clientCount := len(h.clients)
	h.clientsMutex.RUnlock()

	return map[string]interface{}{
		"connectedClients": clientCount,
	}
}

// Broadcast 向所有连接的客户端广播一条消息
func (h *Hub) Broadcast(dataType string, data interface{}) {
	message := Message{
		Type:      MessageTypeMessage,
		DataType:  dataType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}

	messageData, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("序列化广播消息失败: %v", err)
		return
	}

	select {
	case h.broadcast <- messageData:
	default:
		logrus.Warn("广播通道已满，丢弃消息")
	}
}

// safeClose 安全关闭客户端
func (c *Client) safeClose() {
	c.closeMutex.Lock()
	defer c.closeMutex.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// NewClient 创建新的客户端
func NewClient(hub *Hub, conn *websocket.Conn, id string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, 256),
		id:          id,
		connectedAt: time.Now(),
	}
}

// StartClient 启动客户端的读写循环
func (c *Client) StartClient() {
	go c.writePump()
	go c.readPump()
}

// readPump 处理来自WebSocket连接的读取操作
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageData, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Errorf("WebSocket错误: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(messageData, &msg); err != nil {
			logrus.Errorf("解析WebSocket消息失败: %v", err)
			continue
		}

		// 只响应应用层ping，其余消息忽略
		if msg.Type == MessageTypePing {
			pong := Message{
				Type:      MessageTypePong,
				Timestamp: time.Now().UnixMilli(),
				ClientID:  c.id,
			}
			if data, err := json.Marshal(pong); err == nil {
				select {
				case c.send <- data:
				default:
				}
			}
		}
	}
}

// writePump 处理向WebSocket连接的写入操作
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
