package copytrading

import (
	"context"
	"errors"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/model"
	"vt-tradesim/internal/subscriptions"
	"vt-tradesim/internal/trading"
	"vt-tradesim/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Copied trades use a fixed placeholder quantity; no position sizing is
// applied to the subscriber's account.
var copyQuantity = decimal.RequireFromString("1.00000000")

type Service struct {
	pool       *pgxpool.Pool
	tradeStore *trading.Store
	log        *zap.Logger
}

func NewService(pool *pgxpool.Pool, tradeStore *trading.Store, log *zap.Logger) *Service {
	return &Service{pool: pool, tradeStore: tradeStore, log: log}
}

const copyTradeColumns = "id, subscriber_id, trader_id, signal_id, copied_trade_id, status, executed_at, created_at"

func scanCopyTrade(row pgx.Row) (model.CopyTrade, error) {
	var ct model.CopyTrade
	var status string
	err := row.Scan(&ct.ID, &ct.SubscriberID, &ct.TraderID, &ct.SignalID, &ct.CopiedTradeID, &status, &ct.ExecutedAt, &ct.CreatedAt)
	if err != nil {
		return ct, err
	}
	ct.Status = types.CopyTradeStatus(status)
	return ct, nil
}

// Copy materializes a trade on the subscriber's account from a trader's
// signal. The checks run in a fixed order and the first failure wins. The
// copied trade is inserted as executed without a balance precondition:
// subscribers mirror the signal even when their virtual balance would not
// cover a direct execution of the same size.
func (s *Service) Copy(ctx context.Context, subscriberID, traderID, signalID string) (model.CopyTrade, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.CopyTrade{}, err
	}
	defer tx.Rollback(ctx)

	var signal struct {
		TraderID   string
		Symbol     string
		AssetType  string
		SignalType string
		EntryPrice decimal.Decimal
		IsActive   bool
	}
	err = tx.QueryRow(ctx,
		"select trader_id, symbol, asset_type, signal_type, entry_price, is_active from signals where id = $1",
		signalID).Scan(&signal.TraderID, &signal.Symbol, &signal.AssetType, &signal.SignalType, &signal.EntryPrice, &signal.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CopyTrade{}, errs.NotFound("signal not found")
	}
	if err != nil {
		return model.CopyTrade{}, err
	}
	if !signal.IsActive {
		return model.CopyTrade{}, errs.InvalidState("signal no longer active")
	}
	if signal.TraderID != traderID {
		return model.CopyTrade{}, errs.Mismatch("trader does not match signal trader")
	}
	var exists bool
	if err := tx.QueryRow(ctx, "select exists(select 1 from users where id = $1)", subscriberID).Scan(&exists); err != nil {
		return model.CopyTrade{}, err
	}
	if !exists {
		return model.CopyTrade{}, errs.NotFound("subscriber not found")
	}
	active, err := subscriptions.HasActive(ctx, tx, subscriberID, traderID)
	if err != nil {
		return model.CopyTrade{}, err
	}
	if !active {
		return model.CopyTrade{}, errs.Unauthorized("no active subscription")
	}
	trade, err := s.tradeStore.InsertTrade(ctx, tx, subscriberID, signal.Symbol,
		types.AssetType(signal.AssetType), types.TradeDirection(signal.SignalType),
		copyQuantity, signal.EntryPrice, types.TradeStatusExecuted)
	if err != nil {
		return model.CopyTrade{}, err
	}
	ct, err := scanCopyTrade(tx.QueryRow(ctx,
		"insert into copy_trades (subscriber_id, trader_id, signal_id, copied_trade_id, status, executed_at) values ($1,$2,$3,$4,$5,$6) returning "+copyTradeColumns,
		subscriberID, traderID, signalID, trade.ID, string(types.CopyTradeStatusExecuted), time.Now().UTC()))
	if err != nil {
		return model.CopyTrade{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.CopyTrade{}, err
	}
	s.log.Info("copy trade executed",
		zap.String("copy_trade_id", ct.ID),
		zap.String("subscriber_id", subscriberID),
		zap.String("signal_id", signalID),
		zap.String("copied_trade_id", trade.ID))
	return ct, nil
}

func (s *Service) ListBySubscriber(ctx context.Context, subscriberID string) ([]model.CopyTrade, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, "select exists(select 1 from users where id = $1)", subscriberID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("user not found")
	}
	rows, err := s.pool.Query(ctx, "select "+copyTradeColumns+" from copy_trades where subscriber_id = $1 order by created_at desc", subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CopyTrade{}
	for rows.Next() {
		ct, err := scanCopyTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}
