package redis

import (
	"encoding/json"
	"fmt"
	"strings"

	"stock_insight/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SetSuggestion 写入操作提示
func (c *Client) SetSuggestion(s *models.Suggestion) error {
	key := fmt.Sprintf("%s:%s", KeySuggestion, s.ID)
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(c.ctx, key, data, 0).Err()
}

// GetSuggestionById 获取操作提示
func (c *Client) GetSuggestionById(id string) (*models.Suggestion, error) {
	key := fmt.Sprintf("%s:%s", KeySuggestion, id)
	data, err := c.rdb.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s models.Suggestion
	err = json.Unmarshal([]byte(data), &s)
	return &s, err
}

// GetAllSuggestions 获取所有操作提示
func (c *Client) GetAllSuggestions() ([]*models.Suggestion, error) {
	keys, err := c.rdb.Keys(c.ctx, fmt.Sprintf("%s:*", KeySuggestion)).Result()
	if err != nil {
		return nil, err
	}

	var suggestions []*models.Suggestion
	for i := range keys {
		data, err := c.rdb.Get(c.ctx, keys[i]).Result()
		if err != nil {
			logrus.Errorf("获取操作提示失败 %s: %v", keys[i], err)
			continue
		}

		var s models.Suggestion
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			logrus.Errorf("解析操作提示失败 %s: %v", keys[i], err)
			continue
		}
		suggestions = append(suggestions, &s)
	}

	return suggestions, nil
}

// GetSuggestionsForUser 获取面向指定用户的操作提示，包含全员提示
func (c *Client) GetSuggestionsForUser(email string) ([]*models.Suggestion, error) {
	all, err := c.GetAllSuggestions()
	if err != nil {
		return nil, err
	}

	emailLower := strings.ToLower(email)
	var matched []*models.Suggestion
	for i := range all {
		target := strings.ToLower(all[i].TargetEmail)
		if target == "" || target == emailLower {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// DeleteSuggestion 删除操作提示
func (c *Client) DeleteSuggestion(id string) error {
	key := fmt.Sprintf("%s:%s", KeySuggestion, id)
	return c.rdb.Del(c.ctx, key).Err()
}
