package redis

import (
	"encoding/json"
	"fmt"
	"strings"

	"stock_insight/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SetUserProfile 写入用户档案
func (c *Client) SetUserProfile(profile *models.UserProfile) error {
	key := fmt.Sprintf("%s:%s", KeyUser, strings.ToLower(profile.Email))
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.rdb.Set(c.ctx, key, data, 0).Err()
}

// GetUserProfile 获取用户档案，不存在时返回(nil, nil)
func (c *Client) GetUserProfile(email string) (*models.UserProfile, error) {
	key := fmt.Sprintf("%s:%s", KeyUser, strings.ToLower(email))
	data, err := c.rdb.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err = json.Unmarshal([]byte(data), &profile)
	return &profile, err
}

// GetAllUserProfiles 获取所有用户档案
func (c *Client) GetAllUserProfiles() ([]*models.UserProfile, error) {
	keys, err := c.rdb.Keys(c.ctx, fmt.Sprintf("%s:*", KeyUser)).Result()
	if err != nil {
		return nil, err
	}

	var profiles []*models.UserProfile
	for i := range keys {
		data, err := c.rdb.Get(c.ctx, keys[i]).Result()
		if err != nil {
			logrus.Errorf("获取用户档案失败 %s: %v", keys[i], err)
			continue
		}

		var profile models.UserProfile
		if err := json.Unmarshal([]byte(data), &profile); err != nil {
			logrus.Errorf("解析用户档案失败 %s: %v", keys[i], err)
			continue
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}
