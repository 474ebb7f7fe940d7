package trading

import (
	"context"
	"time"

	"vt-tradesim/internal/model"
	"vt-tradesim/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

const tradeColumns = "id, user_id, symbol, asset_type, trade_type, quantity, entry_price, exit_price, status, profit_loss, created_at, closed_at"

func scanTrade(row pgx.Row) (model.Trade, error) {
	var t model.Trade
	var assetType, tradeType, status string
	err := row.Scan(&t.ID, &t.UserID, &t.Symbol, &assetType, &tradeType, &t.Quantity, &t.EntryPrice, &t.ExitPrice, &status, &t.ProfitLoss, &t.CreatedAt, &t.ClosedAt)
	if err != nil {
		return t, err
	}
	t.AssetType = types.AssetType(assetType)
	t.TradeType = types.TradeDirection(tradeType)
	t.Status = types.TradeStatus(status)
	return t, nil
}

func (s *Store) InsertTrade(ctx context.Context, tx pgx.Tx, userID, symbol string, assetType types.AssetType, direction types.TradeDirection, quantity, entryPrice decimal.Decimal, status types.TradeStatus) (model.Trade, error) {
	return scanTrade(tx.QueryRow(ctx,
		"insert into trades (user_id, symbol, asset_type, trade_type, quantity, entry_price, status) values ($1,$2,$3,$4,$5,$6,$7) returning "+tradeColumns,
		userID, symbol, string(assetType), string(direction), quantity, entryPrice, string(status)))
}

func (s *Store) GetTradeForUpdate(ctx context.Context, tx pgx.Tx, tradeID string) (model.Trade, error) {
	return scanTrade(tx.QueryRow(ctx, "select "+tradeColumns+" from trades where id = $1 for update", tradeID))
}

// CloseTrade sets the terminal fields in a single statement so exit_price,
// profit_loss and closed_at only ever appear together.
func (s *Store) CloseTrade(ctx context.Context, tx pgx.Tx, tradeID string, exitPrice, profitLoss decimal.Decimal, closedAt time.Time) (model.Trade, error) {
	return scanTrade(tx.QueryRow(ctx,
		"update trades set status = $2, exit_price = $3, profit_loss = $4, closed_at = $5 where id = $1 returning "+tradeColumns,
		tradeID, string(types.TradeStatusClosed), exitPrice, profitLoss, closedAt))
}

// GetBalanceForUpdate locks the user row for the rest of the transaction.
func (s *Store) GetBalanceForUpdate(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, "select virtual_balance from users where id = $1 for update", userID).Scan(&balance)
	return balance, err
}

// AdjustBalance applies a delta as a single atomic statement; concurrent
// operations on the same user cannot lose updates.
func (s *Store) AdjustBalance(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		"update users set virtual_balance = virtual_balance + $2, updated_at = $3 where id = $1",
		userID, delta, time.Now().UTC())
	return err
}
