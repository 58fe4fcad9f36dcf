package gemini

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"stock_insight/models"
	"stock_insight/pkg/config"

	"google.golang.org/genai"
)

// stubClient 构造一个跳过网络层的客户端，generate被桩实现替换
func stubClient(fn generateFunc) *Client {
	return &Client{
		model:     "gemini-2.5-flash",
		generate:  fn,
		buyRatio:  0.95,
		sellRatio: 1.10,
		minPrice:  1,
	}
}

func TestNewClientWithoutAPIKey(t *testing.T) {
	cfg := &config.Config{GeminiAPIKey: ""}

	client, err := NewClient(cfg)
	if client != nil {
		t.Fatal("缺少API Key时不应返回客户端")
	}
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("期望ErrAPIKeyMissing, 实际 %v", err)
	}
}

func TestFetchQuoteFromJSONResponse(t *testing.T) {
	var calls int64
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		atomic.AddInt64(&calls, 1)
		return &reply{
			Text: "Here is the quote:\n```json\n{\"currentPrice\": \"₹1,234.50\", \"suggestedBuy\": 1200, \"suggestedSell\": 1300}\n```",
			Sources: []models.GroundingSource{
				{Title: "NSE India", URI: "https://example.com/nse"},
			},
		}, nil
	})

	quote, err := c.FetchQuote(context.Background(), "RELIANCE")
	if err != nil {
		t.Fatalf("不应返回错误: %v", err)
	}
	if calls != 1 {
		t.Errorf("期望调用模型1次，实际 %d", calls)
	}
	if quote.CurrentPrice != 1234.5 {
		t.Errorf("现价错误: %v", quote.CurrentPrice)
	}
	if quote.SuggestedBuy != 1200 || quote.SuggestedSell != 1300 {
		t.Errorf("买卖点错误: %v / %v", quote.SuggestedBuy, quote.SuggestedSell)
	}
	if len(quote.Sources) != 1 || quote.Sources[0].Title != "NSE India" {
		t.Errorf("引用来源错误: %+v", quote.Sources)
	}
}

func TestFetchQuoteFallbackToPlainText(t *testing.T) {
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return &reply{Text: "The stock is trading around 452.30 today, up 0.5 percent."}, nil
	})

	quote, err := c.FetchQuote(context.Background(), "TCS")
	if err != nil {
		t.Fatalf("不应返回错误: %v", err)
	}
	if quote.CurrentPrice != 452.30 {
		t.Errorf("兜底现价错误: %v", quote.CurrentPrice)
	}
	// 兜底提取时买卖点按比例从现价推算
	if quote.SuggestedBuy != round2(452.30*0.95) {
		t.Errorf("推算买点错误: %v", quote.SuggestedBuy)
	}
	if quote.SuggestedSell != round2(452.30*1.10) {
		t.Errorf("推算卖点错误: %v", quote.SuggestedSell)
	}
}

func TestFetchQuoteUnavailable(t *testing.T) {
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return &reply{Text: "I could not find any price data for this symbol."}, nil
	})

	_, err := c.FetchQuote(context.Background(), "UNKNOWN")
	var unavailable *QuoteUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("期望QuoteUnavailableError, 实际 %v", err)
	}
	if unavailable.Symbol != "UNKNOWN" {
		t.Errorf("错误中的代码不符: %s", unavailable.Symbol)
	}
}

func TestFetchQuoteRateLimitPassthrough(t *testing.T) {
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return nil, &RateLimitError{}
	})

	_, err := c.FetchQuote(context.Background(), "INFY")
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("限流错误应原样上抛, 实际 %v", err)
	}
}

func TestFetchQuoteWrapsTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return nil, cause
	})

	_, err := c.FetchQuote(context.Background(), "INFY")
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("期望AnalysisError, 实际 %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("包装后应保留原始错误链")
	}
}

func TestFetchQuoteDerivesMissingSuggestions(t *testing.T) {
	c := stubClient(func(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*reply, error) {
		return &reply{Text: `{"currentPrice": 100, "suggestedBuy": "N/A", "suggestedSell": null}`}, nil
	})

	quote, err := c.FetchQuote(context.Background(), "WIPRO")
	if err != nil {
		t.Fatalf("不应返回错误: %v", err)
	}
	if quote.SuggestedBuy != 95 {
		t.Errorf("缺失买点应按比例推算: %v", quote.SuggestedBuy)
	}
	if quote.SuggestedSell != 110 {
		t.Errorf("缺失卖点应按比例推算: %v", quote.SuggestedSell)
	}
}
