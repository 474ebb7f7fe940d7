package copytrading

import (
	"context"
	"testing"

	"vt-tradesim/internal/db/dbtest"
	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/trading"
	"vt-tradesim/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	pool         *pgxpool.Pool
	svc          *Service
	subscriberID string
	traderID     string
	signalID     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pool := dbtest.Pool(t)
	f := &fixture{pool: pool, svc: NewService(pool, trading.NewStore(), zap.NewNop())}
	f.subscriberID = f.newUser(t, "5")
	traderUserID := f.newUser(t, "0")
	ctx := context.Background()
	err := pool.QueryRow(ctx,
		"insert into traders (user_id, display_name, subscription_price) values ($1,'Signal Pro',50) returning id",
		traderUserID).Scan(&f.traderID)
	require.NoError(t, err)
	err = pool.QueryRow(ctx,
		"insert into signals (trader_id, symbol, asset_type, signal_type, entry_price, is_active) values ($1,'BTC/USD','crypto','buy',50000,true) returning id",
		f.traderID).Scan(&f.signalID)
	require.NoError(t, err)
	return f
}

func (f *fixture) newUser(t *testing.T, balance string) string {
	t.Helper()
	tag := uuid.NewString()[:8]
	var id string
	err := f.pool.QueryRow(context.Background(),
		"insert into users (email, username, first_name, last_name, virtual_balance) values ($1,$2,'Test','User',$3) returning id",
		"copy_"+tag+"@example.com", "copy_"+tag, decimal.RequireFromString(balance)).Scan(&id)
	require.NoError(t, err)
	return id
}

func (f *fixture) subscribe(t *testing.T) {
	t.Helper()
	_, err := f.pool.Exec(context.Background(),
		"insert into subscriptions (subscriber_id, trader_id, status, price_paid) values ($1,$2,'active',50)",
		f.subscriberID, f.traderID)
	require.NoError(t, err)
}

func TestCopyCreatesTradeAndRecord(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t)
	ctx := context.Background()

	ct, err := f.svc.Copy(ctx, f.subscriberID, f.traderID, f.signalID)
	require.NoError(t, err)
	require.Equal(t, types.CopyTradeStatusExecuted, ct.Status)
	require.Equal(t, f.signalID, ct.SignalID)
	require.NotNil(t, ct.ExecutedAt)

	var symbol, tradeType, status string
	var quantity, entryPrice decimal.Decimal
	err = f.pool.QueryRow(ctx,
		"select symbol, trade_type, status, quantity, entry_price from trades where id = $1",
		ct.CopiedTradeID).Scan(&symbol, &tradeType, &status, &quantity, &entryPrice)
	require.NoError(t, err)
	require.Equal(t, "BTC/USD", symbol)
	require.Equal(t, "buy", tradeType)
	require.Equal(t, "executed", status)
	require.True(t, quantity.Equal(decimal.RequireFromString("1")))
	require.True(t, entryPrice.Equal(decimal.RequireFromString("50000")))
}

func TestCopySkipsBalanceCheck(t *testing.T) {
	// Subscriber balance is 5, far below 1 * 50000; the copy still executes
	// and the balance is left alone.
	f := newFixture(t)
	f.subscribe(t)
	ctx := context.Background()

	_, err := f.svc.Copy(ctx, f.subscriberID, f.traderID, f.signalID)
	require.NoError(t, err)

	var balance decimal.Decimal
	err = f.pool.QueryRow(ctx, "select virtual_balance from users where id = $1", f.subscriberID).Scan(&balance)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("5")))
}

func TestCopyInactiveSignal(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t)
	ctx := context.Background()
	_, err := f.pool.Exec(ctx, "update signals set is_active = false where id = $1", f.signalID)
	require.NoError(t, err)

	_, err = f.svc.Copy(ctx, f.subscriberID, f.traderID, f.signalID)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindInvalidState))
	require.EqualError(t, err, "signal no longer active")

	cts, err := f.svc.ListBySubscriber(ctx, f.subscriberID)
	require.NoError(t, err)
	require.Empty(t, cts)
	var count int
	err = f.pool.QueryRow(ctx, "select count(*) from trades where user_id = $1", f.subscriberID).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCopyTraderMismatch(t *testing.T) {
	f := newFixture(t)
	f.subscribe(t)

	otherUserID := f.newUser(t, "0")
	var otherTraderID string
	err := f.pool.QueryRow(context.Background(),
		"insert into traders (user_id, display_name, subscription_price) values ($1,'Other',10) returning id",
		otherUserID).Scan(&otherTraderID)
	require.NoError(t, err)

	_, err = f.svc.Copy(context.Background(), f.subscriberID, otherTraderID, f.signalID)
	require.True(t, errs.Is(err, errs.KindMismatch))
}

func TestCopyWithoutSubscription(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Copy(context.Background(), f.subscriberID, f.traderID, f.signalID)
	require.True(t, errs.Is(err, errs.KindUnauthorized))
	require.EqualError(t, err, "no active subscription")
}

func TestCopyExpiredSubscriptionRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.pool.Exec(context.Background(),
		"insert into subscriptions (subscriber_id, trader_id, status, price_paid) values ($1,$2,'expired',50)",
		f.subscriberID, f.traderID)
	require.NoError(t, err)

	_, err = f.svc.Copy(context.Background(), f.subscriberID, f.traderID, f.signalID)
	require.True(t, errs.Is(err, errs.KindUnauthorized))
}

func TestCopyUnknownSignal(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Copy(context.Background(), f.subscriberID, f.traderID, uuid.NewString())
	require.True(t, errs.Is(err, errs.KindNotFound))
	require.EqualError(t, err, "signal not found")
}

func TestCopyInactiveBeatsMismatch(t *testing.T) {
	// When the signal is inactive and the trader does not match, the active
	// check fires first.
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.pool.Exec(ctx, "update signals set is_active = false where id = $1", f.signalID)
	require.NoError(t, err)

	_, err = f.svc.Copy(ctx, f.subscriberID, uuid.NewString(), f.signalID)
	require.True(t, errs.Is(err, errs.KindInvalidState))
}
