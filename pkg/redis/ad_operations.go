package redis

import (
	"encoding/json"
	"fmt"

	"stock_insight/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SetAd 写入广告
func (c *Client) SetAd(ad *models.Ad) error {
	key := fmt.Sprintf("%s:%s", KeyAd, ad.ID)
	data, err := json.Marshal(ad)
	if err != nil {
		return err
	}
	return c.rdb.Set(c.ctx, key, data, 0).Err()
}

// GetAdById 获取广告
func (c *Client) GetAdById(id string) (*models.Ad, error) {
	key := fmt.Sprintf("%s:%s", KeyAd, id)
	data, err := c.rdb.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ad models.Ad
	err = json.Unmarshal([]byte(data), &ad)
	return &ad, err
}

// GetAllAds 获取所有广告
func (c *Client) GetAllAds() ([]*models.Ad, error) {
	keys, err := c.rdb.Keys(c.ctx, fmt.Sprintf("%s:*", KeyAd)).Result()
	if err != nil {
		return nil, err
	}

	var ads []*models.Ad
	for i := range keys {
		data, err := c.rdb.Get(c.ctx, keys[i]).Result()
		if err != nil {
			logrus.Errorf("获取广告数据失败 %s: %v", keys[i], err)
			continue
		}

		var ad models.Ad
		if err := json.Unmarshal([]byte(data), &ad); err != nil {
			logrus.Errorf("解析广告数据失败 %s: %v", keys[i], err)
			continue
		}
		ads = append(ads, &ad)
	}

	return ads, nil
}

// GetActiveAds 获取启用中的广告
func (c *Client) GetActiveAds() ([]*models.Ad, error) {
	ads, err := c.GetAllAds()
	if err != nil {
		return nil, err
	}

	var active []*models.Ad
	for i := range ads {
		if ads[i].Active {
			active = append(active, ads[i])
		}
	}
	return active, nil
}

// DeleteAd 删除广告
func (c *Client) DeleteAd(id string) error {
	key := fmt.Sprintf("%s:%s", KeyAd, id)
	return c.rdb.Del(c.ctx, key).Err()
}
