package extract

import (
	"regexp"
	"strings"

	"stock_insight/models"
)

// MarkerFields 从分析文本中提取出的结构化字段。
// 所有字段均为尽力提取：缺失的标记对应零值/nil，不是错误。
type MarkerFields struct {
	News           []models.NewsItem
	Recommendation *models.Recommendation
	PriceEstimate  *float64
	CleanedText    string // 剔除标记行后的markdown正文
}

var (
	newsRe = regexp.MustCompile(
		`(?im)NEWS_ITEM:\s*([^|\n]+?)\s*\|\s*([^|\n]+?)\s*\|\s*(Positive|Negative|Neutral)\s*$`)
	recommendationRe = regexp.MustCompile(
		`(?m)FINAL_RECOMMENDATION:\s*(STRONG_BUY|STRONG_SELL|NEUTRAL|WAIT)\s*\|\s*([0-9,.]+)\s*\|\s*(.+)$`)
	priceEstimateRe = regexp.MustCompile(
		`(?m)CURRENT_PRICE:\s*[^0-9\n]*([0-9][0-9,]*\.?[0-9]*)`)
)

// ParseStructuredMarkers 解析模型在自由文本中按约定输出的结构化标记行
// （NEWS_ITEM、FINAL_RECOMMENDATION、CURRENT_PRICE），并把命中的行从
// 正文中剔除，避免用户看到原始指令格式。
func ParseStructuredMarkers(text string) MarkerFields {
	fields := MarkerFields{CleanedText: text}
	if text == "" {
		return fields
	}

	// 新闻条目：三段式管道分隔，情绪非法的行直接忽略
	for _, m := range newsRe.FindAllStringSubmatch(text, -1) {
		fields.News = append(fields.News, models.NewsItem{
			Headline:  strings.TrimSpace(m[1]),
			Summary:   strings.TrimSpace(m[2]),
			Sentiment: strings.ToLower(m[3]),
		})
	}

	// 最终建议：只取第一条命中，价格兼容千分位逗号
	if m := recommendationRe.FindStringSubmatch(text); m != nil {
		fields.Recommendation = &models.Recommendation{
			Signal: m[1],
			Price:  CleanNumber(m[2]),
			Reason: strings.TrimSpace(m[3]),
		}
	}

	// 现价估计：允许货币符号前缀
	if m := priceEstimateRe.FindStringSubmatch(text); m != nil {
		if v := CleanNumber(m[1]); v > 0 {
			fields.PriceEstimate = &v
		}
	}

	cleaned := text
	cleaned = newsRe.ReplaceAllString(cleaned, "")
	cleaned = recommendationRe.ReplaceAllString(cleaned, "")
	cleaned = priceEstimateRe.ReplaceAllString(cleaned, "")
	fields.CleanedText = strings.TrimSpace(cleaned)

	return fields
}

// DeriveSentiment 根据现价估计与买入价的比较得出持仓情绪。
// 估计缺失或与买入价持平时为neutral。
func DeriveSentiment(estimate *float64, buyPrice float64) string {
	if estimate == nil {
		return models.SentimentNeutral
	}
	switch {
	case *estimate > buyPrice:
		return models.SentimentBullish
	case *estimate < buyPrice:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
