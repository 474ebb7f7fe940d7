package trading

import (
	"vt-tradesim/internal/types"

	"github.com/shopspring/decimal"
)

// ProfitLoss computes the realized result of closing a position. The sign
// depends on direction: buys gain when the exit is above the entry, sells
// gain when the exit is below it.
func ProfitLoss(direction types.TradeDirection, entryPrice, exitPrice, quantity decimal.Decimal) decimal.Decimal {
	if direction == types.TradeDirectionBuy {
		return exitPrice.Sub(entryPrice).Mul(quantity)
	}
	return entryPrice.Sub(exitPrice).Mul(quantity)
}
