package auth

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Captcha 算术验证码：请求验证码前先答题，答案存Redis按ID消费
type Captcha struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	answer   int
}

// Answer 验证码的正确答案，存储用
func (c *Captcha) Answer() string {
	return strconv.Itoa(c.answer)
}

// NewCaptcha 生成一道简单算术题
func NewCaptcha(id string) *Captcha {
	a := rand.Intn(9) + 1
	b := rand.Intn(9) + 1

	if rand.Intn(2) == 0 {
		return &Captcha{
			ID:       id,
			Question: fmt.Sprintf("%d + %d = ?", a, b),
			answer:   a + b,
		}
	}

	// 减法保证结果非负
	if a < b {
		a, b = b, a
	}
	return &Captcha{
		ID:       id,
		Question: fmt.Sprintf("%d - %d = ?", a, b),
		answer:   a - b,
	}
}
