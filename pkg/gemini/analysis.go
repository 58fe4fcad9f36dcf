package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"stock_insight/models"
	"stock_insight/pkg/extract"

	"github.com/sirupsen/logrus"
)

// forecastPoint 预测响应中期望的JSON数组元素
type forecastPoint struct {
	Label string      `json:"label"`
	Price interface{} `json:"price"`
}

// AnalyzePosition 对一个持仓执行完整分析：带搜索的叙述性分析和
// 纯JSON的价格预测两次调用并发发出，汇合后组装结果。
// 预测调用失败只会让图表为空，不会使整个分析失败。
func (c *Client) AnalyzePosition(ctx context.Context, position *models.Position) (*models.AnalysisResult, error) {
	var (
		wg           sync.WaitGroup
		narrative    *reply
		narrativeErr error
		forecast     *reply
		forecastErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		narrative, narrativeErr = c.generate(ctx, analysisPrompt(position), groundedConfig())
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = c.generate(ctx, forecastPrompt(position), jsonConfig())
	}()
	wg.Wait()

	if narrativeErr != nil {
		// 配置错误和限流错误原样上抛，其余统一归为分析中断
		var rateErr *RateLimitError
		if errors.As(narrativeErr, &rateErr) || errors.Is(narrativeErr, ErrAPIKeyMissing) {
			return nil, narrativeErr
		}
		logrus.Errorf("持仓分析请求失败 %s: %v", position.Symbol, narrativeErr)
		return nil, &AnalysisError{cause: narrativeErr}
	}

	fields := extract.ParseStructuredMarkers(narrative.Text)

	result := &models.AnalysisResult{
		Symbol:               position.Symbol,
		Narrative:            fields.CleanedText,
		Sources:              narrative.Sources,
		News:                 fields.News,
		Recommendation:       fields.Recommendation,
		CurrentPriceEstimate: fields.PriceEstimate,
		Sentiment:            extract.DeriveSentiment(fields.PriceEstimate, position.BuyPrice),
	}

	if forecastErr != nil {
		// 预测失败降级为无图表
		logrus.Warnf("价格预测请求失败 %s: %v", position.Symbol, forecastErr)
		return result, nil
	}
	result.Chart = parseForecast(forecast.Text)

	return result, nil
}

// parseForecast 解析预测响应，非数组或格式异常时返回空序列
func parseForecast(text string) []models.ChartDataPoint {
	raw, ok := extract.ExtractJSON(text)
	if !ok {
		return nil
	}

	var points []forecastPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil
	}

	var chart []models.ChartDataPoint
	for _, p := range points {
		price := extract.CleanNumberValue(p.Price)
		if p.Label == "" || price <= 0 {
			continue
		}
		chart = append(chart, models.ChartDataPoint{
			Label: p.Label,
			Price: price,
			Type:  models.ChartPointForecast,
		})
	}
	return chart
}
