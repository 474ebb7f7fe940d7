package trading

import (
	"context"
	"sync"
	"testing"

	"vt-tradesim/internal/db/dbtest"
	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ServiceSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	svc  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	s.pool = dbtest.Pool(s.T())
	s.svc = NewService(s.pool, NewStore(), zap.NewNop())
}

func (s *ServiceSuite) createUser(balance string) string {
	tag := uuid.NewString()[:8]
	var id string
	err := s.pool.QueryRow(context.Background(),
		"insert into users (email, username, first_name, last_name, virtual_balance) values ($1,$2,'Test','User',$3) returning id",
		"trader_"+tag+"@example.com", "trader_"+tag, decimal.RequireFromString(balance)).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *ServiceSuite) balance(userID string) decimal.Decimal {
	var b decimal.Decimal
	err := s.pool.QueryRow(context.Background(),
		"select virtual_balance from users where id = $1", userID).Scan(&b)
	s.Require().NoError(err)
	return b
}

func (s *ServiceSuite) TestExecuteBuyDebitsBalance() {
	ctx := context.Background()
	userID := s.createUser("100000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("0.5"),
		EntryPrice: decimal.RequireFromString("50000"),
	})
	s.Require().NoError(err)
	s.Equal(types.TradeStatusExecuted, trade.Status)
	s.Nil(trade.ExitPrice)
	s.Nil(trade.ProfitLoss)
	s.True(s.balance(userID).Equal(decimal.RequireFromString("75000")))
}

func (s *ServiceSuite) TestExecuteSellCreditsBalance() {
	ctx := context.Background()
	userID := s.createUser("1000")

	_, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "AAPL",
		AssetType:  types.AssetTypeStock,
		Direction:  types.TradeDirectionSell,
		Quantity:   decimal.RequireFromString("2"),
		EntryPrice: decimal.RequireFromString("300"),
	})
	s.Require().NoError(err)
	s.True(s.balance(userID).Equal(decimal.RequireFromString("1600")))
}

func (s *ServiceSuite) TestExecuteBuyInsufficientFunds() {
	ctx := context.Background()
	userID := s.createUser("100")

	_, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("1"),
		EntryPrice: decimal.RequireFromString("50000"),
	})
	s.Require().Error(err)
	s.True(errs.Is(err, errs.KindInsufficientFunds))
	s.True(s.balance(userID).Equal(decimal.RequireFromString("100")))

	trades, err := s.svc.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Empty(trades)
}

func (s *ServiceSuite) TestExecuteUnknownUser() {
	_, err := s.svc.ExecuteTrade(context.Background(), ExecuteTradeRequest{
		UserID:     uuid.NewString(),
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("1"),
		EntryPrice: decimal.RequireFromString("1"),
	})
	s.True(errs.Is(err, errs.KindNotFound))
}

func (s *ServiceSuite) TestExecuteRejectsBadInput() {
	ctx := context.Background()
	userID := s.createUser("1000")
	base := ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("1"),
		EntryPrice: decimal.RequireFromString("1"),
	}

	req := base
	req.Direction = "hold"
	_, err := s.svc.ExecuteTrade(ctx, req)
	s.True(errs.Is(err, errs.KindInvalid))

	req = base
	req.Quantity = decimal.Zero
	_, err = s.svc.ExecuteTrade(ctx, req)
	s.True(errs.Is(err, errs.KindInvalid))

	req = base
	req.EntryPrice = decimal.RequireFromString("-5")
	_, err = s.svc.ExecuteTrade(ctx, req)
	s.True(errs.Is(err, errs.KindInvalid))
}

func (s *ServiceSuite) TestCloseBuyCreditsProfit() {
	ctx := context.Background()
	userID := s.createUser("100000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("0.5"),
		EntryPrice: decimal.RequireFromString("50000"),
	})
	s.Require().NoError(err)

	closed, err := s.svc.CloseTrade(ctx, trade.ID, decimal.RequireFromString("55000"))
	s.Require().NoError(err)
	s.Equal(types.TradeStatusClosed, closed.Status)
	s.Require().NotNil(closed.ExitPrice)
	s.Require().NotNil(closed.ProfitLoss)
	s.Require().NotNil(closed.ClosedAt)
	s.True(closed.ProfitLoss.Equal(decimal.RequireFromString("2500")))
	s.True(s.balance(userID).Equal(decimal.RequireFromString("77500")))
}

func (s *ServiceSuite) TestCloseSellDebitsLoss() {
	ctx := context.Background()
	userID := s.createUser("10000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "ETH/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionSell,
		Quantity:   decimal.RequireFromString("2"),
		EntryPrice: decimal.RequireFromString("1000"),
	})
	s.Require().NoError(err)
	// Sell credits 2000 up front.
	s.True(s.balance(userID).Equal(decimal.RequireFromString("12000")))

	closed, err := s.svc.CloseTrade(ctx, trade.ID, decimal.RequireFromString("1100"))
	s.Require().NoError(err)
	s.Require().NotNil(closed.ProfitLoss)
	s.True(closed.ProfitLoss.Equal(decimal.RequireFromString("-200")))
	s.True(s.balance(userID).Equal(decimal.RequireFromString("11800")))
}

func (s *ServiceSuite) TestCloseTwiceRejected() {
	ctx := context.Background()
	userID := s.createUser("100000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("0.5"),
		EntryPrice: decimal.RequireFromString("50000"),
	})
	s.Require().NoError(err)
	_, err = s.svc.CloseTrade(ctx, trade.ID, decimal.RequireFromString("55000"))
	s.Require().NoError(err)
	after := s.balance(userID)

	_, err = s.svc.CloseTrade(ctx, trade.ID, decimal.RequireFromString("60000"))
	s.Require().Error(err)
	s.True(errs.Is(err, errs.KindInvalidState))
	s.EqualError(err, "trade already closed")
	s.True(s.balance(userID).Equal(after))
}

func (s *ServiceSuite) TestConcurrentCloseSettlesOnce() {
	ctx := context.Background()
	userID := s.createUser("100000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("1"),
		EntryPrice: decimal.RequireFromString("10000"),
	})
	s.Require().NoError(err)

	const workers = 4
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.CloseTrade(ctx, trade.ID, decimal.RequireFromString("12000"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.True(errs.Is(err, errs.KindInvalidState))
		}
	}
	s.Equal(1, succeeded)
	// 100000 - 10000 cost + 12000 exit proceeds, credited exactly once.
	s.True(s.balance(userID).Equal(decimal.RequireFromString("92000")))
}

func (s *ServiceSuite) TestCloseUnknownTrade() {
	_, err := s.svc.CloseTrade(context.Background(), uuid.NewString(), decimal.RequireFromString("1"))
	s.True(errs.Is(err, errs.KindNotFound))
}

func (s *ServiceSuite) TestCloseRejectsNonPositiveExit() {
	_, err := s.svc.CloseTrade(context.Background(), uuid.NewString(), decimal.Zero)
	s.True(errs.Is(err, errs.KindInvalid))
}

func (s *ServiceSuite) TestGetAndListByUser() {
	ctx := context.Background()
	userID := s.createUser("100000")

	trade, err := s.svc.ExecuteTrade(ctx, ExecuteTradeRequest{
		UserID:     userID,
		Symbol:     "BTC/USD",
		AssetType:  types.AssetTypeCrypto,
		Direction:  types.TradeDirectionBuy,
		Quantity:   decimal.RequireFromString("0.1"),
		EntryPrice: decimal.RequireFromString("50000"),
	})
	s.Require().NoError(err)

	got, err := s.svc.Get(ctx, trade.ID)
	s.Require().NoError(err)
	s.Equal(trade.ID, got.ID)

	trades, err := s.svc.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Len(trades, 1)

	_, err = s.svc.Get(ctx, uuid.NewString())
	s.True(errs.Is(err, errs.KindNotFound))
}
