package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// CleanNumber 清洗字符串形式的数值：剔除货币符号、千分位逗号等
// 非数字字符后解析。无法解析时返回0，绝不返回NaN/Inf。
func CleanNumber(s string) float64 {
	cleaned := nonNumericRe.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CleanNumberValue 清洗JSON解码出的任意类型数值字段
func CleanNumberValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return CleanNumberValue(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return CleanNumber(n)
	default:
		return 0
	}
}

// 裸文本中的价格样式数字：可带千分位逗号和小数
var priceTokenRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?|\d+(?:\.\d+)?`)

// FirstPriceToken 在裸文本中扫描第一个大于threshold的价格样式数字，
// 用于结构化提取完全失败后的兜底。找不到返回0。
func FirstPriceToken(text string, threshold float64) float64 {
	for _, token := range priceTokenRe.FindAllString(text, -1) {
		v := CleanNumber(token)
		if v > threshold {
			return v
		}
	}
	return 0
}
