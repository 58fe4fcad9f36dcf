package gemini

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"stock_insight/models"

	"google.golang.org/genai"
)

const narrativeText = `Reliance continues to show resilience in a choppy market.

NEWS_ITEM: Refining margins improve | GRM上升带动利润 | Positive
CURRENT_PRICE: 2500.00
FINAL_RECOMMENDATION: STRONG_BUY | 2,600.00 | retail segment growth

Hold through the current volatility.`

const forecastText = `[
  {"label": "Day 1", "price": 2510},
  {"label": "Day 2", "price": "2,520.50"},
  {"label": "", "price": 2530},
  {"label": "Day 4", "price": 0}
]`

func testPosition() *models.Position {
	return &models.Position{
		Symbol:   "RELIANCE",
		BuyPrice: 2400,
		Quantity: 10,
		Strategy: models.StrategyLongTerm,
	}
}

// routeStub 按生成配置区分两路并发调用：带搜索工具的是叙述分析，
// 要求JSON输出的是价格预测
func routeStub(narrative func() (*reply, error), forecast func() (*reply, error)) generateFunc {
	return func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		if genCfg != nil && genCfg.ResponseMIMEType == "application/json" {
			return forecast()
		}
		return narrative()
	}
}

func TestAnalyzePosition(t *testing.T) {
	var calls int64
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		atomic.AddInt64(&calls, 1)
		if genCfg != nil && genCfg.ResponseMIMEType == "application/json" {
			return &reply{Text: forecastText}, nil
		}
		return &reply{
			Text: narrativeText,
			Sources: []models.GroundingSource{
				{Title: "Moneycontrol", URI: "https://example.com/mc"},
			},
		}, nil
	})

	result, err := c.AnalyzePosition(context.Background(), testPosition())
	if err != nil {
		t.Fatalf("不应返回错误: %v", err)
	}
	if calls != 2 {
		t.Errorf("期望两路并发各调用1次，实际 %d", calls)
	}

	if result.Symbol != "RELIANCE" {
		t.Errorf("代码错误: %s", result.Symbol)
	}
	if len(result.News) != 1 || result.News[0].Sentiment != models.NewsSentimentPositive {
		t.Errorf("新闻提取错误: %+v", result.News)
	}
	if result.Recommendation == nil || result.Recommendation.Signal != models.SignalStrongBuy {
		t.Fatalf("最终建议错误: %+v", result.Recommendation)
	}
	if result.Recommendation.Price != 2600 {
		t.Errorf("建议价格错误: %v", result.Recommendation.Price)
	}
	if result.CurrentPriceEstimate == nil || *result.CurrentPriceEstimate != 2500 {
		t.Errorf("现价估计错误: %v", result.CurrentPriceEstimate)
	}
	// 估计2500高于买入价2400
	if result.Sentiment != models.SentimentBullish {
		t.Errorf("持仓情绪错误: %s", result.Sentiment)
	}
	if len(result.Sources) != 1 {
		t.Errorf("引用来源错误: %+v", result.Sources)
	}

	// 空标签和非正价格的点被跳过
	if len(result.Chart) != 2 {
		t.Fatalf("图表点数错误: 期望 2, 实际 %d", len(result.Chart))
	}
	if result.Chart[0].Label != "Day 1" || result.Chart[0].Price != 2510 {
		t.Errorf("第一个预测点错误: %+v", result.Chart[0])
	}
	if result.Chart[1].Price != 2520.5 {
		t.Errorf("千分位价格清洗错误: %+v", result.Chart[1])
	}
	for _, p := range result.Chart {
		if p.Type != models.ChartPointForecast {
			t.Errorf("预测点类型错误: %+v", p)
		}
	}
}

func TestAnalyzePositionForecastFailureDegrades(t *testing.T) {
	c := stubClient(routeStub(
		func() (*reply, error) { return &reply{Text: narrativeText}, nil },
		func() (*reply, error) { return nil, errors.New("timeout") },
	))

	result, err := c.AnalyzePosition(context.Background(), testPosition())
	if err != nil {
		t.Fatalf("预测失败不应使整个分析失败: %v", err)
	}
	if len(result.Chart) != 0 {
		t.Errorf("预测失败时图表应为空: %+v", result.Chart)
	}
	if result.Recommendation == nil {
		t.Error("叙述分析结果应完整保留")
	}
}

func TestAnalyzePositionNarrativeFailure(t *testing.T) {
	cause := errors.New("connection refused")
	c := stubClient(routeStub(
		func() (*reply, error) { return nil, cause },
		func() (*reply, error) { return &reply{Text: forecastText}, nil },
	))

	_, err := c.AnalyzePosition(context.Background(), testPosition())
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("期望AnalysisError, 实际 %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("包装后应保留原始错误链")
	}
}

func TestAnalyzePositionRateLimitPassthrough(t *testing.T) {
	c := stubClient(routeStub(
		func() (*reply, error) { return nil, &RateLimitError{} },
		func() (*reply, error) { return &reply{Text: forecastText}, nil },
	))

	_, err := c.AnalyzePosition(context.Background(), testPosition())
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("限流错误应原样上抛, 实际 %v", err)
	}
}

func TestParseForecastInvalidPayloads(t *testing.T) {
	cases := []string{
		"",
		"no json here",
		`{"not": "an array"}`,
		"```json\n[{\"label\": \"Day 1\"}]\n```",
	}
	for _, text := range cases {
		if chart := parseForecast(text); len(chart) != 0 {
			t.Errorf("异常输入 %q 应得到空图表, 实际 %+v", text, chart)
		}
	}
}
