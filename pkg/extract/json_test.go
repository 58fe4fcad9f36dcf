package extract_test

import (
	"encoding/json"
	"testing"

	"stock_insight/pkg/extract"
)

func TestExtractJSONFromFencedBlock(t *testing.T) {
	input := "Sure, here you go:\n```json\n{\"currentPrice\":100.5,\"suggestedBuy\":95,\"suggestedSell\":110}\n```"

	raw, ok := extract.ExtractJSON(input)
	if !ok {
		t.Fatal("期望提取成功，实际失败")
	}

	var payload map[string]float64
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("解析提取结果失败: %v", err)
	}

	if payload["currentPrice"] != 100.5 {
		t.Errorf("currentPrice错误: 期望 100.5, 实际 %v", payload["currentPrice"])
	}
	if payload["suggestedBuy"] != 95 {
		t.Errorf("suggestedBuy错误: 期望 95, 实际 %v", payload["suggestedBuy"])
	}
	if payload["suggestedSell"] != 110 {
		t.Errorf("suggestedSell错误: 期望 110, 实际 %v", payload["suggestedSell"])
	}
}

func TestExtractJSONPlain(t *testing.T) {
	raw, ok := extract.ExtractJSON(`{"a":1}`)
	if !ok {
		t.Fatal("纯JSON应当直接解析成功")
	}
	if string(raw) != `{"a":1}` {
		t.Errorf("提取结果错误: %s", string(raw))
	}
}

func TestExtractJSONWithProse(t *testing.T) {
	input := `Based on my search, the data is {"currentPrice": 452.3} as of today.`

	raw, ok := extract.ExtractJSON(input)
	if !ok {
		t.Fatal("期望从对话文本中提取JSON成功")
	}

	var payload map[string]float64
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("解析提取结果失败: %v", err)
	}
	if payload["currentPrice"] != 452.3 {
		t.Errorf("currentPrice错误: 期望 452.3, 实际 %v", payload["currentPrice"])
	}
}

func TestExtractJSONArray(t *testing.T) {
	input := "Here is the forecast:\n```\n[{\"label\":\"Day 1\",\"price\":100},{\"label\":\"Day 2\",\"price\":102}]\n```\nGood luck!"

	raw, ok := extract.ExtractJSON(input)
	if !ok {
		t.Fatal("期望提取数组成功")
	}

	var points []map[string]interface{}
	if err := json.Unmarshal(raw, &points); err != nil {
		t.Fatalf("解析数组失败: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("数组长度错误: 期望 2, 实际 %d", len(points))
	}
}

func TestExtractJSONFirstOpenerWins(t *testing.T) {
	// 数组先出现时提取数组
	input := `result: [1,2,3] and also {"x":1}`

	raw, ok := extract.ExtractJSON(input)
	if !ok {
		t.Fatal("期望提取成功")
	}
	if raw[0] != '[' {
		t.Errorf("期望提取数组，实际: %s", string(raw))
	}
}

func TestExtractJSONFailureIsSilent(t *testing.T) {
	cases := []string{
		"no data available",
		"",
		"{broken json",
		"```json\nnot json at all\n```",
	}

	for _, input := range cases {
		raw, ok := extract.ExtractJSON(input)
		if ok {
			t.Errorf("输入 %q 期望提取失败，实际得到: %s", input, string(raw))
		}
		if raw != nil {
			t.Errorf("输入 %q 失败时应返回nil", input)
		}
	}
}
