package models

import "time"

// Ad 管理员投放的广告位
type Ad struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Suggestion 管理员定向推送给用户的操作提示（pro tip）
type Suggestion struct {
	ID          string    `json:"id"`
	TargetEmail string    `json:"target_email"` // 为空表示推送给全部用户
	Symbol      string    `json:"symbol,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
