package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stock_insight/models"
	"stock_insight/pkg/extract"

	"github.com/sirupsen/logrus"
)

// quotePayload 行情响应中期望的JSON结构，字段全部按any解码后单独清洗
type quotePayload struct {
	CurrentPrice  interface{} `json:"currentPrice"`
	SuggestedBuy  interface{} `json:"suggestedBuy"`
	SuggestedSell interface{} `json:"suggestedSell"`
}

// FetchQuote 获取指定代码的当前报价和建议买卖点。
// 结构化提取失败时回退为扫描裸文本中的第一个价格样式数字；
// 两种方式都拿不到可用价格则返回QuoteUnavailableError。
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("股票代码不能为空")
	}

	rep, err := c.generate(ctx, quotePrompt(symbol), groundedConfig())
	if err != nil {
		var rateErr *RateLimitError
		if errors.As(err, &rateErr) || errors.Is(err, ErrAPIKeyMissing) {
			return nil, err
		}
		logrus.Errorf("行情请求失败 %s: %v", symbol, err)
		return nil, &AnalysisError{cause: err}
	}

	quote := &models.Quote{
		Symbol:    symbol,
		Sources:   rep.Sources,
		UpdatedAt: time.Now(),
	}

	// 各数值字段独立清洗，单个字段异常不影响其他字段
	if raw, ok := extract.ExtractJSON(rep.Text); ok {
		var payload quotePayload
		if err := json.Unmarshal(raw, &payload); err == nil {
			quote.CurrentPrice = extract.CleanNumberValue(payload.CurrentPrice)
			quote.SuggestedBuy = extract.CleanNumberValue(payload.SuggestedBuy)
			quote.SuggestedSell = extract.CleanNumberValue(payload.SuggestedSell)
		}
	}

	// 兜底：从裸文本中找第一个超过可信阈值的数字当作现价
	if quote.CurrentPrice <= 0 {
		quote.CurrentPrice = extract.FirstPriceToken(rep.Text, c.minPrice)
		quote.SuggestedBuy = 0
		quote.SuggestedSell = 0
	}

	if quote.CurrentPrice <= 0 {
		return nil, &QuoteUnavailableError{Symbol: symbol}
	}

	// 买卖点缺失时按固定比例从现价推算
	if quote.SuggestedBuy <= 0 {
		quote.SuggestedBuy = round2(quote.CurrentPrice * c.buyRatio)
	}
	if quote.SuggestedSell <= 0 {
		quote.SuggestedSell = round2(quote.CurrentPrice * c.sellRatio)
	}

	return quote, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
