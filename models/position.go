package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// 分析策略常量
const (
	StrategyIntraday = "intraday"  // 日内交易视角
	StrategyLongTerm = "long-term" // 中长线视角
)

// Position 用户提交的持仓，一次分析周期内不可变
type Position struct {
	Symbol   string  `json:"symbol" binding:"required"`
	BuyPrice float64 `json:"buy_price" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Strategy string  `json:"strategy" binding:"required"`
}

// Normalize 规范化持仓参数：代码统一大写去空格
func (p *Position) Normalize() {
	p.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
}

// Validate 校验持仓参数
func (p *Position) Validate() error {
	if p.Symbol == "" {
		return fmt.Errorf("股票代码不能为空")
	}
	if p.BuyPrice <= 0 {
		return fmt.Errorf("买入价格必须大于0")
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("持仓数量必须大于0")
	}
	if p.Strategy != StrategyIntraday && p.Strategy != StrategyLongTerm {
		return fmt.Errorf("策略必须是 %s 或 %s", StrategyIntraday, StrategyLongTerm)
	}
	return nil
}

// Valuation 持仓估值，基于AI给出的现价估计计算
type Valuation struct {
	Invested      decimal.Decimal `json:"invested"`        // 投入成本
	CurrentValue  decimal.Decimal `json:"current_value"`   // 当前市值
	ProfitLoss    decimal.Decimal `json:"profit_loss"`     // 浮动盈亏
	ProfitLossPct decimal.Decimal `json:"profit_loss_pct"` // 盈亏百分比
}

// Valuate 根据现价估计计算持仓估值
func (p *Position) Valuate(currentPrice float64) Valuation {
	buy := decimal.NewFromFloat(p.BuyPrice)
	qty := decimal.NewFromFloat(p.Quantity)
	cur := decimal.NewFromFloat(currentPrice)

	invested := buy.Mul(qty)
	currentValue := cur.Mul(qty)
	pnl := currentValue.Sub(invested)

	pct := decimal.Zero
	if !invested.IsZero() {
		pct = pnl.Div(invested).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return Valuation{
		Invested:      invested.Round(2),
		CurrentValue:  currentValue.Round(2),
		ProfitLoss:    pnl.Round(2),
		ProfitLossPct: pct,
	}
}
