package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"stock_insight/models"
	"stock_insight/pkg/config"

	"github.com/jpillora/backoff"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const maxAttempts = 3

// reply 一次模型调用的产出：正文加搜索引用来源
type reply struct {
	Text    string
	Sources []models.GroundingSource
}

// generateFunc 底层模型调用，测试中可替换为桩实现
type generateFunc func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error)

// Client Gemini服务客户端。不使用包级单例：每个入口按需通过
// NewClient构造，配置校验在这里完成，便于测试注入。
type Client struct {
	model     string
	limiter   *rate.Limiter
	generate  generateFunc
	buyRatio  float64
	sellRatio float64
	minPrice  float64
}

// NewClient 构造Gemini客户端。API Key缺失时立即返回ErrAPIKeyMissing，
// 不会创建任何网络对象。
func NewClient(cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, ErrAPIKeyMissing
	}

	ai, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	rpm := cfg.GeminiRPM
	if rpm <= 0 {
		rpm = 10
	}

	c := &Client{
		model:     cfg.GeminiModel,
		limiter:   rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		buyRatio:  cfg.QuoteBuyRatio,
		sellRatio: cfg.QuoteSellRatio,
		minPrice:  cfg.QuoteMinPrice,
	}
	c.generate = func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return c.callModel(ctx, ai, prompt, genCfg)
	}
	return c, nil
}

// groundedConfig 带Google搜索工具的生成配置
func groundedConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}

// jsonConfig 要求模型直接输出JSON的生成配置，不附带搜索工具
func jsonConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
}

// callModel 执行一次模型调用：限流等待、临时失败退避重试、错误分类
func (c *Client) callModel(ctx context.Context, ai *genai.Client, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := ai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genCfg)
		if err == nil {
			return &reply{
				Text:    resp.Text(),
				Sources: extractSources(resp),
			}, nil
		}

		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			// 配额耗尽不重试，直接告知调用方稍后再试
			if apiErr.Code == 429 {
				return nil, &RateLimitError{}
			}
			if apiErr.Code < 500 {
				return nil, err
			}
		}

		lastErr = err
		if attempt < maxAttempts {
			wait := b.Duration()
			logrus.Warnf("Gemini调用失败(第%d次): %v，%v后重试", attempt, err, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, lastErr
}

// extractSources 按模型返回顺序收集搜索引用，标题或链接缺失的跳过
func extractSources(resp *genai.GenerateContentResponse) []models.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	var sources []models.GroundingSource
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.Title == "" || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, models.GroundingSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}
