package models

import "time"

// UserProfile 用户档案，登录成功后写入/更新
type UserProfile struct {
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	LoginCount  int       `json:"login_count"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
}
