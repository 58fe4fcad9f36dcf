package redis

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"stock_insight/pkg/config"
)

// SetOTP 写入邮箱验证码，带有效期
func (c *Client) SetOTP(email, code string) error {
	key := fmt.Sprintf("%s:%s", KeyOTP, strings.ToLower(email))
	return c.rdb.Set(c.ctx, key, code, config.GlobalConfig.OTPTTL).Err()
}

// VerifyOTP 校验并消费验证码。校验成功后立即删除，验证码只能用一次。
func (c *Client) VerifyOTP(email, code string) (bool, error) {
	key := fmt.Sprintf("%s:%s", KeyOTP, strings.ToLower(email))
	stored, err := c.rdb.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if stored != code {
		return false, nil
	}

	c.rdb.Del(c.ctx, key)
	return true, nil
}

// SetCaptcha 写入图形验证码答案
func (c *Client) SetCaptcha(id, answer string) error {
	key := fmt.Sprintf("%s:%s", KeyCaptcha, id)
	return c.rdb.Set(c.ctx, key, answer, config.GlobalConfig.CaptchaTTL).Err()
}

// VerifyCaptcha 校验并消费图形验证码
func (c *Client) VerifyCaptcha(id, answer string) (bool, error) {
	key := fmt.Sprintf("%s:%s", KeyCaptcha, id)
	stored, err := c.rdb.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	c.rdb.Del(c.ctx, key)
	return strings.TrimSpace(answer) == stored, nil
}
