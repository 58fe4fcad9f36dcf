package models

import "time"

// 情绪常量：现价估计与买入价比较得出
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// 新闻情绪常量
const (
	NewsSentimentPositive = "positive"
	NewsSentimentNegative = "negative"
	NewsSentimentNeutral  = "neutral"
)

// 操作信号常量
const (
	SignalStrongBuy  = "STRONG_BUY"
	SignalStrongSell = "STRONG_SELL"
	SignalNeutral    = "NEUTRAL"
	SignalWait       = "WAIT"
)

// 图表数据点类型，当前所有生成的点均为预测点
const (
	ChartPointForecast   = "forecast"
	ChartPointHistorical = "historical"
)

// GroundingSource 模型搜索引用的网页来源
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// NewsItem 从分析文本中提取的新闻条目
type NewsItem struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"` // positive, negative, neutral
}

// Recommendation 模型给出的最终操作建议
type Recommendation struct {
	Signal string  `json:"signal"` // STRONG_BUY, STRONG_SELL, NEUTRAL, WAIT
	Price  float64 `json:"price"`
	Reason string  `json:"reason"`
}

// ChartDataPoint 预测价格曲线上的一个点
type ChartDataPoint struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
	Type  string  `json:"type"` // forecast
}

// Quote 单次查询的行情快照，不持久化
type Quote struct {
	Symbol        string            `json:"symbol"`
	CurrentPrice  float64           `json:"current_price"`
	SuggestedBuy  float64           `json:"suggested_buy"`
	SuggestedSell float64           `json:"suggested_sell"`
	Sources       []GroundingSource `json:"sources,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// AnalysisResult 一次持仓分析的完整结果，仅存在于单次请求周期内。
// 除Narrative外所有字段均为尽力提取，缺失时保持零值/空。
type AnalysisResult struct {
	Symbol               string            `json:"symbol"`
	Narrative            string            `json:"narrative"` // markdown正文，已剔除结构化标记行
	Sources              []GroundingSource `json:"sources,omitempty"`
	Chart                []ChartDataPoint  `json:"chart,omitempty"`
	CurrentPriceEstimate *float64          `json:"current_price_estimate,omitempty"`
	Sentiment            string            `json:"sentiment"` // bullish, bearish, neutral
	News                 []NewsItem        `json:"news,omitempty"`
	Recommendation       *Recommendation   `json:"recommendation,omitempty"`
}
