package trading

import (
	"context"
	"errors"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/model"
	"vt-tradesim/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	pool  *pgxpool.Pool
	store *Store
	log   *zap.Logger
}

func NewService(pool *pgxpool.Pool, store *Store, log *zap.Logger) *Service {
	return &Service{pool: pool, store: store, log: log}
}

type ExecuteTradeRequest struct {
	UserID     string
	Symbol     string
	AssetType  types.AssetType
	Direction  types.TradeDirection
	Quantity   decimal.Decimal
	EntryPrice decimal.Decimal
}

// ExecuteTrade opens a position and settles its cost against the user's
// virtual balance in one transaction. Buys debit quantity*entry_price and
// require cover; sells credit the same amount with no balance precondition.
func (s *Service) ExecuteTrade(ctx context.Context, req ExecuteTradeRequest) (model.Trade, error) {
	if !req.Direction.Valid() {
		return model.Trade{}, errs.Invalid("invalid trade direction")
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return model.Trade{}, errs.Invalid("quantity must be positive")
	}
	if req.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return model.Trade{}, errs.Invalid("entry price must be positive")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Trade{}, err
	}
	defer tx.Rollback(ctx)

	balance, err := s.store.GetBalanceForUpdate(ctx, tx, req.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trade{}, errs.NotFound("user not found")
	}
	if err != nil {
		return model.Trade{}, err
	}
	cost := req.Quantity.Mul(req.EntryPrice)
	delta := cost
	if req.Direction == types.TradeDirectionBuy {
		if balance.LessThan(cost) {
			return model.Trade{}, errs.InsufficientFunds("insufficient virtual balance")
		}
		delta = cost.Neg()
	}
	trade, err := s.store.InsertTrade(ctx, tx, req.UserID, req.Symbol, req.AssetType, req.Direction, req.Quantity, req.EntryPrice, types.TradeStatusExecuted)
	if err != nil {
		return model.Trade{}, err
	}
	if err := s.store.AdjustBalance(ctx, tx, req.UserID, delta); err != nil {
		return model.Trade{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Trade{}, err
	}
	s.log.Info("trade executed",
		zap.String("trade_id", trade.ID),
		zap.String("user_id", req.UserID),
		zap.String("direction", string(req.Direction)),
		zap.String("cost", cost.String()))
	return trade, nil
}

// CloseTrade transitions an executed trade to closed, records its terminal
// fields and credits the realized profit/loss (possibly negative) to the
// owning user. The trade row is locked so a second closure of the same trade
// observes the terminal status and is rejected.
func (s *Service) CloseTrade(ctx context.Context, tradeID string, exitPrice decimal.Decimal) (model.Trade, error) {
	if exitPrice.LessThanOrEqual(decimal.Zero) {
		return model.Trade{}, errs.Invalid("exit price must be positive")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Trade{}, err
	}
	defer tx.Rollback(ctx)

	trade, err := s.store.GetTradeForUpdate(ctx, tx, tradeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trade{}, errs.NotFound("trade not found")
	}
	if err != nil {
		return model.Trade{}, err
	}
	switch trade.Status {
	case types.TradeStatusExecuted:
	case types.TradeStatusClosed:
		return model.Trade{}, errs.InvalidState("trade already closed")
	case types.TradeStatusCancelled:
		return model.Trade{}, errs.InvalidState("trade already cancelled")
	default:
		return model.Trade{}, errs.InvalidState("trade not executed")
	}
	pnl := ProfitLoss(trade.TradeType, trade.EntryPrice, exitPrice, trade.Quantity)
	closed, err := s.store.CloseTrade(ctx, tx, tradeID, exitPrice, pnl, time.Now().UTC())
	if err != nil {
		return model.Trade{}, err
	}
	if err := s.store.AdjustBalance(ctx, tx, trade.UserID, pnl); err != nil {
		return model.Trade{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Trade{}, err
	}
	s.log.Info("trade closed",
		zap.String("trade_id", tradeID),
		zap.String("user_id", trade.UserID),
		zap.String("profit_loss", pnl.String()))
	return closed, nil
}

func (s *Service) Get(ctx context.Context, tradeID string) (model.Trade, error) {
	t, err := scanTrade(s.pool.QueryRow(ctx, "select "+tradeColumns+" from trades where id = $1", tradeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trade{}, errs.NotFound("trade not found")
	}
	return t, err
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]model.Trade, error) {
	rows, err := s.pool.Query(ctx, "select "+tradeColumns+" from trades where user_id = $1 order by created_at desc", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
