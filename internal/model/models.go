package model

import (
	"time"

	"vt-tradesim/internal/types"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Username       string          `json:"username"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Phone          *string         `json:"phone"`
	Country        *string         `json:"country"`
	VirtualBalance decimal.Decimal `json:"virtual_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Trader struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	DisplayName       string          `json:"display_name"`
	Bio               *string         `json:"bio"`
	SubscriptionPrice decimal.Decimal `json:"subscription_price"`
	ProfitPercentage  decimal.Decimal `json:"profit_percentage"`
	WinRate           decimal.Decimal `json:"win_rate"`
	TotalTrades       int             `json:"total_trades"`
	Followers         int             `json:"followers"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Signal struct {
	ID          string           `json:"id"`
	TraderID    string           `json:"trader_id"`
	Symbol      string           `json:"symbol"`
	AssetType   types.AssetType  `json:"asset_type"`
	SignalType  types.SignalType `json:"signal_type"`
	EntryPrice  decimal.Decimal  `json:"entry_price"`
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
	Description *string          `json:"description"`
	IsActive    bool             `json:"is_active"`
	ExpiresAt   *time.Time       `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Trade struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	Symbol     string               `json:"symbol"`
	AssetType  types.AssetType      `json:"asset_type"`
	TradeType  types.TradeDirection `json:"trade_type"`
	Quantity   decimal.Decimal      `json:"quantity"`
	EntryPrice decimal.Decimal      `json:"entry_price"`
	ExitPrice  *decimal.Decimal     `json:"exit_price"`
	Status     types.TradeStatus    `json:"status"`
	ProfitLoss *decimal.Decimal     `json:"profit_loss"`
	CreatedAt  time.Time            `json:"created_at"`
	ClosedAt   *time.Time           `json:"closed_at"`
}

type Subscription struct {
	ID           string                   `json:"id"`
	SubscriberID string                   `json:"subscriber_id"`
	TraderID     string                   `json:"trader_id"`
	Status       types.SubscriptionStatus `json:"status"`
	PricePaid    decimal.Decimal          `json:"price_paid"`
	StartDate    time.Time                `json:"start_date"`
	EndDate      *time.Time               `json:"end_date"`
}

type CopyTrade struct {
	ID            string                `json:"id"`
	SubscriberID  string                `json:"subscriber_id"`
	TraderID      string                `json:"trader_id"`
	SignalID      string                `json:"signal_id"`
	CopiedTradeID string                `json:"copied_trade_id"`
	Status        types.CopyTradeStatus `json:"status"`
	ExecutedAt    *time.Time            `json:"executed_at"`
	CreatedAt     time.Time             `json:"created_at"`
}

type Wallet struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LockedBalance    decimal.Decimal `json:"locked_balance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Transaction struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	Type        types.TransactionType   `json:"type"`
	Amount      decimal.Decimal         `json:"amount"`
	Currency    string                  `json:"currency"`
	Status      types.TransactionStatus `json:"status"`
	Description *string                 `json:"description"`
	ReferenceID *string                 `json:"reference_id"`
	CreatedAt   time.Time               `json:"created_at"`
	ProcessedAt *time.Time              `json:"processed_at"`
}

type Asset struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	AssetType    types.AssetType `json:"asset_type"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type EducationalContent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
