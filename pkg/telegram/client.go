package telegram

import (
	"fmt"
	"time"

	"stock_insight/pkg/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	MaxMessageLength = 4096 // Telegram单条消息最大长度
)

type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var GlobalTelegramClient *TelegramClient

// InitTelegram 初始化Telegram通知客户端，未配置token时静默跳过
func InitTelegram() error {
	if config.GlobalConfig.TelegramBotToken == "" {
		logrus.Warn("未配置Telegram Bot Token，跳过Telegram初始化")
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(config.GlobalConfig.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("创建Telegram Bot失败: %v", err)
	}

	bot.Debug = false

	if config.GlobalConfig.TelegramChatID == 0 {
		return fmt.Errorf("未配置TELEGRAM_CHAT_ID")
	}

	GlobalTelegramClient = &TelegramClient{
		bot:    bot,
		chatID: config.GlobalConfig.TelegramChatID,
	}

	logrus.Info("Telegram客户端初始化成功")
	return nil
}

// SendMessage 发送普通消息
func (t *TelegramClient) SendMessage(text string) error {
	if t == nil || t.bot == nil {
		return fmt.Errorf("telegram客户端未初始化")
	}

	if len(text) > MaxMessageLength {
		text = text[:MaxMessageLength]
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"

	_, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("发送消息失败: %v", err)
	}

	return nil
}

// SendError 发送错误通知
func (t *TelegramClient) SendError(operation string, err error) error {
	message := fmt.Sprintf("%s\n\n错误详情: %v", operation, err)

	return t.SendMessage(message)
}

// SendOTPEcho 发送验证码回显。邮件发送是模拟的，验证码通过日志和
// Telegram透出，方便演示环境取码登录。
func (t *TelegramClient) SendOTPEcho(email, code string) error {
	message := fmt.Sprintf("登录验证码\n\n邮箱: %s\n验证码: `%s`", email, code)

	return t.SendMessage(message)
}

// SendServiceStatus 发送服务状态通知
func (t *TelegramClient) SendServiceStatus(status, message string) error {
	statusMap := map[string]string{
		"starting": "启动中",
		"started":  "已启动",
		"stopping": "停止中",
		"stopped":  "已停止",
		"error":    "错误",
	}

	statusText, exists := statusMap[status]
	if !exists {
		statusText = "信息"
	}

	text := fmt.Sprintf(`%s

%s

时间: %s`, statusText, message, time.Now().Format("2006-01-02 15:04:05"))

	return t.SendMessage(text)
}
