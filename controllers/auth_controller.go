package controllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"stock_insight/models"
	"stock_insight/pkg/activity"
	"stock_insight/pkg/auth"
	"stock_insight/pkg/config"
	"stock_insight/pkg/redis"
	"stock_insight/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthController struct{}

// OTPRequest 验证码申请结构
type OTPRequest struct {
	Email         string `json:"email" binding:"required,email"`
	CaptchaID     string `json:"captcha_id" binding:"required"`
	CaptchaAnswer string `json:"captcha_answer" binding:"required"`
}

// LoginRequest 用户登录请求结构
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// AdminLoginRequest 管理员登录请求结构
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // 过期时间（秒）
}

// GetCaptcha 签发一道算术验证码
func (a *AuthController) GetCaptcha(ctx *gin.Context) {
	captcha := auth.NewCaptcha(uuid.New().String())

	if err := redis.GlobalRedisClient.SetCaptcha(captcha.ID, captcha.Answer()); err != nil {
		logrus.Errorf("保存验证码失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成验证码失败",
			"code":  "CAPTCHA_FAILED",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": captcha,
	})
}

// RequestOTP 申请邮箱验证码。邮件发送是模拟的：验证码写入日志，
// 配置了Telegram时同步推送一份。
func (a *AuthController) RequestOTP(ctx *gin.Context) {
	var req OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	ok, err := redis.GlobalRedisClient.VerifyCaptcha(req.CaptchaID, req.CaptchaAnswer)
	if err != nil {
		logrus.Errorf("校验图形验证码失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "校验验证码失败",
			"code":  "CAPTCHA_CHECK_FAILED",
		})
		return
	}
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "图形验证码错误或已过期",
			"code":  "INVALID_CAPTCHA",
		})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	email := strings.ToLower(req.Email)

	if err := redis.GlobalRedisClient.SetOTP(email, code); err != nil {
		logrus.Errorf("保存验证码失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "发送验证码失败",
			"code":  "OTP_FAILED",
		})
		return
	}

	// 模拟邮件投递
	logrus.Infof("模拟发送验证码到 %s: %s", email, code)
	if telegram.GlobalTelegramClient != nil {
		if err := telegram.GlobalTelegramClient.SendOTPEcho(email, code); err != nil {
			logrus.Warnf("推送验证码到Telegram失败: %v", err)
		}
	}

	activity.Record(email, models.ActivityOTPRequest, "", ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "验证码已发送",
		"ttl":     int(config.GlobalConfig.OTPTTL.Seconds()),
	})
}

// Login 用户邮箱+验证码登录
func (a *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	email := strings.ToLower(req.Email)
	ok, err := redis.GlobalRedisClient.VerifyOTP(email, req.Code)
	if err != nil {
		logrus.Errorf("校验验证码失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "校验验证码失败",
			"code":  "OTP_CHECK_FAILED",
		})
		return
	}
	if !ok {
		logrus.Warnf("登录失败: 验证码错误 - %s", email)
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "验证码错误或已过期",
			"code":  "INVALID_OTP",
		})
		return
	}

	// 登录成功，更新用户档案
	profile, err := redis.GlobalRedisClient.GetUserProfile(email)
	if err != nil {
		logrus.Errorf("读取用户档案失败 %s: %v", email, err)
	}
	now := time.Now()
	if profile == nil {
		profile = &models.UserProfile{
			Email:     email,
			CreatedAt: now,
		}
	}
	profile.LoginCount++
	profile.LastLoginAt = now
	if err := redis.GlobalRedisClient.SetUserProfile(profile); err != nil {
		logrus.Errorf("更新用户档案失败 %s: %v", email, err)
	}

	token, err := auth.GenerateToken(email, auth.RoleUser)
	if err != nil {
		logrus.Errorf("生成token失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成认证token失败",
			"code":  "TOKEN_GENERATION_FAILED",
		})
		return
	}

	logrus.Infof("用户登录成功: %s", email)
	activity.Record(email, models.ActivityLogin, "", ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": LoginResponse{
			Token:     token,
			Email:     email,
			Role:      auth.RoleUser,
			ExpiresIn: 24 * 3600, // 24小时
		},
	})
}

// AdminLogin 管理员登录
func (a *AuthController) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数格式错误",
			"code":  "INVALID_PARAMS",
		})
		return
	}

	// 检查管理员密码是否已配置
	if config.GlobalConfig.AdminPassword == "" {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "系统未配置管理员密码，请联系管理员",
			"code":  "PASSWORD_NOT_CONFIGURED",
		})
		return
	}

	if !auth.ValidateAdminCredentials(req.Username, req.Password) {
		logrus.Warnf("管理员登录失败: 用户名或密码错误 - %s", req.Username)
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户名或密码错误",
			"code":  "INVALID_CREDENTIALS",
		})
		return
	}

	token, err := auth.GenerateToken(req.Username, auth.RoleAdmin)
	if err != nil {
		logrus.Errorf("生成token失败: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成认证token失败",
			"code":  "TOKEN_GENERATION_FAILED",
		})
		return
	}

	logrus.Infof("管理员登录成功: %s", req.Username)
	activity.Record(req.Username, models.ActivityAdminLogin, "", ctx.ClientIP())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": LoginResponse{
			Token:     token,
			Email:     req.Username,
			Role:      auth.RoleAdmin,
			ExpiresIn: 24 * 3600, // 24小时
		},
	})
}

// GetProfile 获取当前登录用户信息
func (a *AuthController) GetProfile(ctx *gin.Context) {
	email := ctx.GetString("email")
	role := ctx.GetString("role")

	if role == auth.RoleAdmin {
		ctx.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"email": email,
				"role":  role,
			},
		})
		return
	}

	profile, err := redis.GlobalRedisClient.GetUserProfile(email)
	if err != nil || profile == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "用户档案不存在",
			"code":  "PROFILE_NOT_FOUND",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"email":         profile.Email,
			"role":          role,
			"login_count":   profile.LoginCount,
			"last_login_at": profile.LastLoginAt,
		},
	})
}
