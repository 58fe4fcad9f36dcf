package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock_insight/core"
	"stock_insight/pkg/config"
	"stock_insight/pkg/database"
	"stock_insight/pkg/redis"
	"stock_insight/pkg/telegram"
	"stock_insight/servers"

	"github.com/sirupsen/logrus"
)

func main() {
	// 设置日志级别
	logrus.SetLevel(logrus.InfoLevel)
	logrus.Info("启动股票分析助手...")

	// 加载配置
	config.LoadConfig()

	// 初始化Telegram客户端
	if err := telegram.InitTelegram(); err != nil {
		logrus.Errorf("Telegram init fail: %v", err)
	}

	// 初始化Redis
	if err := redis.InitRedis(); err != nil {
		if telegram.GlobalTelegramClient != nil {
			telegram.GlobalTelegramClient.SendServiceStatus("error", fmt.Sprintf("Redis初始化失败\n错误: %v\n服务即将停止", err))
		}
		logrus.Fatalf("Redis init fail: %v", err)
	}

	// 初始化MySQL（活动日志）
	if err := database.InitMySQL(config.GlobalConfig); err != nil {
		if telegram.GlobalTelegramClient != nil {
			telegram.GlobalTelegramClient.SendServiceStatus("error", fmt.Sprintf("MySQL初始化失败\n错误: %v\n服务即将停止", err))
		}
		logrus.Fatalf("MySQL init fail: %v", err)
	}

	// Gemini凭据在每次请求时校验，这里只提前提示
	if config.GlobalConfig.GeminiAPIKey == "" {
		logrus.Warn("未配置GEMINI_API_KEY，AI相关接口将返回配置错误")
	}

	// 启动活动日志裁剪
	core.InitRetentionWorker()
	core.GlobalRetentionWorker.Start()

	// 创建HTTP服务器
	server := servers.NewHTTPServer()
	go func() {
		server.Start()
	}()

	if telegram.GlobalTelegramClient != nil {
		telegram.GlobalTelegramClient.SendServiceStatus("started", "股票分析助手启动完成")
	}
	logrus.Info("股票分析助手启动完成!")

	// 优雅关闭
	gracefulShutdown()
}

// gracefulShutdown 优雅关闭
func gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("正在关闭股票分析助手...")

	// 停止HTTP服务器 (当前实现没有优雅关闭，直接退出)
	logrus.Info("HTTP服务器将随程序退出关闭")

	// 停止日志裁剪
	if core.GlobalRetentionWorker != nil {
		core.GlobalRetentionWorker.Stop()
	}

	// 发送服务完全停止的Telegram通知
	if telegram.GlobalTelegramClient != nil {
		if err := telegram.GlobalTelegramClient.SendServiceStatus("stopped", "股票分析助手已关闭"); err != nil {
			logrus.Errorf("发送关闭完成通知失败: %v", err)
		}
	}

	logrus.Info("股票分析助手已关闭")
}
