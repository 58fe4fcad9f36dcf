package extract_test

import (
	"testing"

	"stock_insight/pkg/extract"
)

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"₹1,234.50", 1234.5},
		{"$99.99", 99.99},
		{"1,250.75", 1250.75},
		{"42", 42},
		{"-3.5", -3.5},
		{"N/A", 0},
		{"", 0},
		{"abc", 0},
		{"...", 0},
	}

	for _, c := range cases {
		got := extract.CleanNumber(c.input)
		if got != c.want {
			t.Errorf("CleanNumber(%q): 期望 %v, 实际 %v", c.input, c.want, got)
		}
	}
}

func TestCleanNumberValue(t *testing.T) {
	if got := extract.CleanNumberValue(float64(42)); got != 42 {
		t.Errorf("数值输入: 期望 42, 实际 %v", got)
	}
	if got := extract.CleanNumberValue("₹1,234.50"); got != 1234.5 {
		t.Errorf("字符串输入: 期望 1234.5, 实际 %v", got)
	}
	if got := extract.CleanNumberValue(nil); got != 0 {
		t.Errorf("nil输入: 期望 0, 实际 %v", got)
	}
	if got := extract.CleanNumberValue(true); got != 0 {
		t.Errorf("布尔输入: 期望 0, 实际 %v", got)
	}
}

func TestFirstPriceToken(t *testing.T) {
	text := "The stock price is around 452.30 today, up 0.5 percent."

	got := extract.FirstPriceToken(text, 1)
	if got != 452.30 {
		t.Errorf("期望 452.30, 实际 %v", got)
	}
}

func TestFirstPriceTokenSkipsSmallNumbers(t *testing.T) {
	// 阈值以下的数字（涨跌幅之类）要跳过
	text := "up 0.5 percent to reach 1,234.50 in trading"

	got := extract.FirstPriceToken(text, 1)
	if got != 1234.5 {
		t.Errorf("期望 1234.5, 实际 %v", got)
	}
}

func TestFirstPriceTokenNoMatch(t *testing.T) {
	if got := extract.FirstPriceToken("no numbers here", 1); got != 0 {
		t.Errorf("期望 0, 实际 %v", got)
	}
}
