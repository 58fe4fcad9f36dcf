package extract_test

import (
	"strings"
	"testing"

	"stock_insight/models"
	"stock_insight/pkg/extract"
)

const sampleAnalysis = `The stock shows strong momentum this quarter.

NEWS_ITEM: Record quarterly earnings | Company beat estimates by 12% | Positive
NEWS_ITEM: Sector headwinds persist | Analysts flag supply chain risk | Negative
NEWS_ITEM: Broken line without sentiment | only two fields

CURRENT_PRICE: ₹1,234.50

Overall the technical picture favors holding the position.

FINAL_RECOMMENDATION: STRONG_BUY | 1,250.75 | strong earnings`

func TestParseStructuredMarkersNews(t *testing.T) {
	fields := extract.ParseStructuredMarkers(sampleAnalysis)

	if len(fields.News) != 2 {
		t.Fatalf("新闻条数错误: 期望 2, 实际 %d", len(fields.News))
	}

	first := fields.News[0]
	if first.Headline != "Record quarterly earnings" {
		t.Errorf("标题错误: %q", first.Headline)
	}
	if first.Summary != "Company beat estimates by 12%" {
		t.Errorf("摘要错误: %q", first.Summary)
	}
	if first.Sentiment != models.NewsSentimentPositive {
		t.Errorf("情绪错误: 期望 %s, 实际 %s", models.NewsSentimentPositive, first.Sentiment)
	}

	if fields.News[1].Sentiment != models.NewsSentimentNegative {
		t.Errorf("第二条情绪错误: %s", fields.News[1].Sentiment)
	}
}

func TestParseStructuredMarkersRecommendation(t *testing.T) {
	fields := extract.ParseStructuredMarkers(sampleAnalysis)

	if fields.Recommendation == nil {
		t.Fatal("期望提取到最终建议")
	}
	if fields.Recommendation.Signal != models.SignalStrongBuy {
		t.Errorf("信号错误: %s", fields.Recommendation.Signal)
	}
	if fields.Recommendation.Price != 1250.75 {
		t.Errorf("价格错误: 期望 1250.75, 实际 %v", fields.Recommendation.Price)
	}
	if fields.Recommendation.Reason != "strong earnings" {
		t.Errorf("理由错误: %q", fields.Recommendation.Reason)
	}
}

func TestParseStructuredMarkersPriceEstimate(t *testing.T) {
	fields := extract.ParseStructuredMarkers(sampleAnalysis)

	if fields.PriceEstimate == nil {
		t.Fatal("期望提取到现价估计")
	}
	if *fields.PriceEstimate != 1234.5 {
		t.Errorf("现价估计错误: 期望 1234.5, 实际 %v", *fields.PriceEstimate)
	}
}

func TestParseStructuredMarkersCleanedText(t *testing.T) {
	fields := extract.ParseStructuredMarkers(sampleAnalysis)

	for _, marker := range []string{"NEWS_ITEM:", "CURRENT_PRICE:", "FINAL_RECOMMENDATION:"} {
		// 无效的NEWS_ITEM行不会命中提取，也就保留在正文里，
		// 这里只检查有效标记行被剔除
		if marker == "NEWS_ITEM:" {
			continue
		}
		if strings.Contains(fields.CleanedText, marker) {
			t.Errorf("正文中不应残留标记 %s:\n%s", marker, fields.CleanedText)
		}
	}

	if strings.Contains(fields.CleanedText, "Record quarterly earnings") {
		t.Errorf("已提取的新闻行应从正文中剔除:\n%s", fields.CleanedText)
	}
	if !strings.Contains(fields.CleanedText, "strong momentum") {
		t.Errorf("正文内容不应丢失:\n%s", fields.CleanedText)
	}
}

func TestParseStructuredMarkersMissingAll(t *testing.T) {
	fields := extract.ParseStructuredMarkers("just a plain analysis without any markers")

	if len(fields.News) != 0 {
		t.Errorf("期望无新闻，实际 %d 条", len(fields.News))
	}
	if fields.Recommendation != nil {
		t.Error("期望无最终建议")
	}
	if fields.PriceEstimate != nil {
		t.Error("期望无现价估计")
	}
	if fields.CleanedText != "just a plain analysis without any markers" {
		t.Errorf("正文不应改变: %q", fields.CleanedText)
	}
}

func TestParseStructuredMarkersCaseInsensitiveSentiment(t *testing.T) {
	fields := extract.ParseStructuredMarkers("NEWS_ITEM: Headline | Summary | NEUTRAL")

	if len(fields.News) != 1 {
		t.Fatalf("期望 1 条新闻，实际 %d", len(fields.News))
	}
	if fields.News[0].Sentiment != models.NewsSentimentNeutral {
		t.Errorf("情绪应小写规范化: %s", fields.News[0].Sentiment)
	}
}

func TestDeriveSentiment(t *testing.T) {
	higher := 110.0
	lower := 90.0
	equal := 100.0

	if got := extract.DeriveSentiment(&higher, 100); got != models.SentimentBullish {
		t.Errorf("估计高于买入价: 期望 bullish, 实际 %s", got)
	}
	if got := extract.DeriveSentiment(&lower, 100); got != models.SentimentBearish {
		t.Errorf("估计低于买入价: 期望 bearish, 实际 %s", got)
	}
	if got := extract.DeriveSentiment(&equal, 100); got != models.SentimentNeutral {
		t.Errorf("估计等于买入价: 期望 neutral, 实际 %s", got)
	}
	if got := extract.DeriveSentiment(nil, 100); got != models.SentimentNeutral {
		t.Errorf("估计缺失: 期望 neutral, 实际 %s", got)
	}
}
