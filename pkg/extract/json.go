package extract

import (
	"encoding/json"
	"strings"
)

// ExtractJSON 从模型返回的文本中提取JSON负载。
// 文本可能是纯JSON、markdown代码块包裹的JSON，或夹在对话式前后缀中的JSON。
// 提取失败返回(nil, false)，不产生错误。
func ExtractJSON(text string) (json.RawMessage, bool) {
	cleaned := StripFences(text)
	if cleaned == "" {
		return nil, false
	}

	if raw, ok := tryParse(cleaned); ok {
		return raw, true
	}

	// 直接解析失败时，取第一个 { 或 [（以先出现者为准）到对应闭合符
	// 最后一次出现之间的子串重试。不做括号配对扫描：只要负载是文本中
	// 唯一的同类结构，该策略就是正确的。
	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	start, closer := objStart, byte('}')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, ']'
	}
	if start == -1 {
		return nil, false
	}

	end := strings.LastIndexByte(cleaned, closer)
	if end <= start {
		return nil, false
	}

	return tryParse(cleaned[start : end+1])
}

// StripFences 去除markdown代码块标记，带语言标签和不带的都处理
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, "```") {
		return trimmed
	}

	var kept []string
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func tryParse(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}
