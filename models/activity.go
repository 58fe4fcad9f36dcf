package models

import "time"

// 活动日志操作类型常量
const (
	ActivityLogin      = "login"
	ActivityOTPRequest = "otp_request"
	ActivityQuote      = "quote"
	ActivityAnalysis   = "analysis"
	ActivityAdChange   = "ad_change"
	ActivityTipChange  = "tip_change"
	ActivityAdminLogin = "admin_login"
)

// ActivityLog 对应 MySQL 中的 activity_logs 表
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Actor     string    `json:"actor" gorm:"index"`  // 用户邮箱或admin
	Action    string    `json:"action" gorm:"index"` // 操作类型
	Detail    string    `json:"detail"`              // 操作详情，如股票代码
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
