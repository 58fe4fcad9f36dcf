package gemini

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing 凭据缺失。在任何网络调用之前就会返回，
// 且不被包装，调用方可据此提示"需要配置"而非"服务故障"。
var ErrAPIKeyMissing = errors.New("未配置GEMINI_API_KEY，无法调用AI服务")

// QuoteUnavailableError 结构化提取和兜底扫描都未能得到可用报价。
// 宁可明确报错也不静默返回零价。
type QuoteUnavailableError struct {
	Symbol string
}

func (e *QuoteUnavailableError) Error() string {
	return fmt.Sprintf("无法获取 %s 的有效报价", e.Symbol)
}

// RateLimitError 服务端配额耗尽，属于可重试的临时失败
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "AI服务配额已用尽，请稍后重试"
}

// AnalysisError 分析链路中未另行分类的失败（网络、响应异常等）。
// 对外只暴露统一的提示语，原始错误记录到日志用于排查。
type AnalysisError struct {
	cause error
}

func (e *AnalysisError) Error() string {
	return "分析过程中断，请稍后重试"
}

func (e *AnalysisError) Unwrap() error {
	return e.cause
}
