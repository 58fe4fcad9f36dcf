package gemini

import (
	"fmt"

	"stock_insight/models"
)

// 提示词全部面向模型，保持英文

func quotePrompt(symbol string) string {
	return fmt.Sprintf(`Search the web for the latest stock price of %s.
Respond with ONLY a JSON object in this exact format, no other text:
{"currentPrice": <number>, "suggestedBuy": <number>, "suggestedSell": <number>}
currentPrice is the most recent traded price. suggestedBuy is a reasonable
near-term entry level and suggestedSell a reasonable exit level based on
recent support and resistance.`, symbol)
}

func analysisPrompt(p *models.Position) string {
	var focus string
	switch p.Strategy {
	case models.StrategyIntraday:
		focus = `Focus on the intraday picture: today's price action, volume,
momentum, intraday support/resistance and short-horizon technical signals.`
	default:
		focus = `Focus on fundamentals: earnings trajectory, valuation,
sector position, and multi-week catalysts relevant to a long-term holder.`
	}

	return fmt.Sprintf(`You are a stock analyst. Search the web for current
information about %s and analyze this position: bought %.4f shares at %.2f.
%s

Your response MUST contain, in addition to free-form markdown reasoning:
1. At least 3 news lines, each on its own line, in exactly this format:
NEWS_ITEM: <headline> | <one sentence summary> | <Positive/Negative/Neutral>
2. Exactly one line with the current market price:
CURRENT_PRICE: <number>
3. Exactly one final recommendation line:
FINAL_RECOMMENDATION: <STRONG_BUY/STRONG_SELL/NEUTRAL/WAIT> | <target price> | <short reason>`,
		p.Symbol, p.Quantity, p.BuyPrice, focus)
}

func forecastPrompt(p *models.Position) string {
	horizon := "the next 7 trading days"
	if p.Strategy == models.StrategyIntraday {
		horizon = "the next 7 hours of the trading session"
	}
	return fmt.Sprintf(`Project a plausible price path for %s over %s,
starting from a price near %.2f.
Respond with ONLY a JSON array of exactly 7 points, no other text:
[{"label": "<short time label>", "price": <number>}, ...]`,
		p.Symbol, horizon, p.BuyPrice)
}
