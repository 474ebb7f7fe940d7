package types

type TradeDirection string

type TradeStatus string

type SignalType string

type SubscriptionStatus string

type CopyTradeStatus string

type TransactionType string

type TransactionStatus string

type AssetType string

const (
	TradeDirectionBuy  TradeDirection = "buy"
	TradeDirectionSell TradeDirection = "sell"
)

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusExecuted  TradeStatus = "executed"
	TradeStatusClosed    TradeStatus = "closed"
	TradeStatusCancelled TradeStatus = "cancelled"
)

const (
	SignalTypeBuy  SignalType = "buy"
	SignalTypeSell SignalType = "sell"
)

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

const (
	CopyTradeStatusPending  CopyTradeStatus = "pending"
	CopyTradeStatusExecuted CopyTradeStatus = "executed"
	CopyTradeStatusFailed   CopyTradeStatus = "failed"
)

const (
	TransactionTypeDeposit      TransactionType = "deposit"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"
	TransactionTypeTrade        TransactionType = "trade"
	TransactionTypeSubscription TransactionType = "subscription"
	TransactionTypeFundWallet   TransactionType = "fund_wallet"
)

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeForex  AssetType = "forex"
)

func (d TradeDirection) Valid() bool {
	return d == TradeDirectionBuy || d == TradeDirectionSell
}

// Terminal reports whether a trade status permits no further transitions.
func (s TradeStatus) Terminal() bool {
	return s == TradeStatusClosed || s == TradeStatusCancelled
}

// CanTransition encodes the trade lifecycle: pending -> executed -> {closed, cancelled}.
func (s TradeStatus) CanTransition(to TradeStatus) bool {
	switch s {
	case TradeStatusPending:
		return to == TradeStatusExecuted || to == TradeStatusCancelled
	case TradeStatusExecuted:
		return to == TradeStatusClosed || to == TradeStatusCancelled
	default:
		return false
	}
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTrade,
		TransactionTypeSubscription, TransactionTypeFundWallet:
		return true
	}
	return false
}
