package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Redis配置
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MySQL配置（活动日志）
	MySQLHost     string
	MySQLPort     string
	MySQLUser     string
	MySQLPassword string
	MySQLDB       string

	// 服务配置
	Port     string
	LogLevel string

	// Gemini配置
	GeminiAPIKey string // 必填，缺失时所有AI入口返回配置错误
	GeminiModel  string
	GeminiRPM    int // 每分钟请求数上限

	// 行情回退参数
	QuoteBuyRatio  float64 // 回退买入价 = 现价 * QuoteBuyRatio
	QuoteSellRatio float64 // 回退卖出价 = 现价 * QuoteSellRatio
	QuoteMinPrice  float64 // 裸文本扫价时的最小可信价格

	// 登录配置
	OTPTTL     time.Duration // 验证码有效期
	CaptchaTTL time.Duration // 图形验证码有效期

	// 认证配置
	AdminUsername string // 管理员用户名
	AdminPassword string // 管理员密码
	JWTSecret     string // JWT密钥

	// Telegram通知配置（可选）
	TelegramBotToken string
	TelegramChatID   int64

	// 活动日志保留条数
	ActivityRetention int
}

var GlobalConfig *Config

func LoadConfig() {
	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		logrus.Warn("未找到.env文件，使用环境变量")
	}

	GlobalConfig = &Config{
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MySQLHost:     getEnv("MYSQL_HOST", "localhost"),
		MySQLPort:     getEnv("MYSQL_PORT", "3306"),
		MySQLUser:     getEnv("MYSQL_USER", "root"),
		MySQLPassword: getEnv("MYSQL_PASSWORD", ""),
		MySQLDB:       getEnv("MYSQL_DB", "stock_insight"),

		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""), // 无默认值，必须显式配置
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiRPM:    getEnvInt("GEMINI_RPM", 10),

		QuoteBuyRatio:  getEnvFloat("QUOTE_BUY_RATIO", 0.95),
		QuoteSellRatio: getEnvFloat("QUOTE_SELL_RATIO", 1.10),
		QuoteMinPrice:  getEnvFloat("QUOTE_MIN_PRICE", 1),

		OTPTTL:     getEnvDuration("OTP_TTL", "5m"),
		CaptchaTTL: getEnvDuration("CAPTCHA_TTL", "3m"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "f2a9c8e1b4d7f0a3c6e9b2d5f8a1c4e7b0d3f6a9c2e5b8d1f4a7c0e3b6d9f2a5"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),

		ActivityRetention: getEnvInt("ACTIVITY_RETENTION", 1000),
	}

	// 设置日志级别
	level, err := logrus.ParseLevel(GlobalConfig.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.Info("配置加载完成")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.Warnf("无法解析环境变量 %s 的时间间隔值: %s，使用默认值: %s", key, value, defaultValue)
	}

	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}

	logrus.Errorf("无法解析默认时间间隔值: %s，使用5分钟", defaultValue)
	return 5 * time.Minute
}
