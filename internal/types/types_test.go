package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTradeStatusTransitions(t *testing.T) {
	tests := []struct {
		from TradeStatus
		to   TradeStatus
		ok   bool
	}{
		{TradeStatusPending, TradeStatusExecuted, true},
		{TradeStatusPending, TradeStatusCancelled, true},
		{TradeStatusPending, TradeStatusClosed, false},
		{TradeStatusExecuted, TradeStatusClosed, true},
		{TradeStatusExecuted, TradeStatusCancelled, true},
		{TradeStatusExecuted, TradeStatusPending, false},
		{TradeStatusClosed, TradeStatusExecuted, false},
		{TradeStatusClosed, TradeStatusCancelled, false},
		{TradeStatusCancelled, TradeStatusClosed, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	require.True(t, TradeStatusClosed.Terminal())
	require.True(t, TradeStatusCancelled.Terminal())
	require.False(t, TradeStatusPending.Terminal())
	require.False(t, TradeStatusExecuted.Terminal())
}

func TestTradeDirectionValid(t *testing.T) {
	require.True(t, TradeDirectionBuy.Valid())
	require.True(t, TradeDirectionSell.Valid())
	require.False(t, TradeDirection("hold").Valid())
	require.False(t, TradeDirection("").Valid())
}

func TestTransactionTypeValid(t *testing.T) {
	require.True(t, TransactionTypeFundWallet.Valid())
	require.True(t, TransactionTypeSubscription.Valid())
	require.False(t, TransactionType("refund").Valid())
}
