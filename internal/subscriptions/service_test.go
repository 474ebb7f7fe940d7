package subscriptions

import (
	"context"
	"testing"

	"vt-tradesim/internal/db/dbtest"
	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUser(t *testing.T, pool *pgxpool.Pool, balance string) string {
	t.Helper()
	tag := uuid.NewString()[:8]
	var id string
	err := pool.QueryRow(context.Background(),
		"insert into users (email, username, first_name, last_name, virtual_balance) values ($1,$2,'Test','User',$3) returning id",
		"sub_"+tag+"@example.com", "sub_"+tag, decimal.RequireFromString(balance)).Scan(&id)
	require.NoError(t, err)
	return id
}

func newTestTrader(t *testing.T, pool *pgxpool.Pool, price string) string {
	t.Helper()
	userID := newTestUser(t, pool, "0")
	var id string
	err := pool.QueryRow(context.Background(),
		"insert into traders (user_id, display_name, subscription_price) values ($1,'Pro Trader',$2) returning id",
		userID, decimal.RequireFromString(price)).Scan(&id)
	require.NoError(t, err)
	return id
}

func userBalance(t *testing.T, pool *pgxpool.Pool, userID string) decimal.Decimal {
	t.Helper()
	var b decimal.Decimal
	err := pool.QueryRow(context.Background(),
		"select virtual_balance from users where id = $1", userID).Scan(&b)
	require.NoError(t, err)
	return b
}

func TestCreateDebitsSubscriber(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())
	ctx := context.Background()

	subscriberID := newTestUser(t, pool, "500")
	traderID := newTestTrader(t, pool, "150")

	sub, err := svc.Create(ctx, subscriberID, traderID, decimal.RequireFromString("150"))
	require.NoError(t, err)
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)
	require.True(t, sub.PricePaid.Equal(decimal.RequireFromString("150")))
	require.True(t, userBalance(t, pool, subscriberID).Equal(decimal.RequireFromString("350")))
}

func TestCreateAllowsOverpayment(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())
	ctx := context.Background()

	subscriberID := newTestUser(t, pool, "500")
	traderID := newTestTrader(t, pool, "150")

	sub, err := svc.Create(ctx, subscriberID, traderID, decimal.RequireFromString("200"))
	require.NoError(t, err)
	require.True(t, sub.PricePaid.Equal(decimal.RequireFromString("200")))
	require.True(t, userBalance(t, pool, subscriberID).Equal(decimal.RequireFromString("300")))
}

func TestCreateRejectsPriceBelowFloor(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())
	ctx := context.Background()

	subscriberID := newTestUser(t, pool, "500")
	traderID := newTestTrader(t, pool, "150")

	_, err := svc.Create(ctx, subscriberID, traderID, decimal.RequireFromString("100"))
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindPriceTooLow))
	require.True(t, userBalance(t, pool, subscriberID).Equal(decimal.RequireFromString("500")))

	subs, err := svc.ListBySubscriber(ctx, subscriberID)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestCreateBalanceCheckedBeforePriceFloor(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())
	ctx := context.Background()

	// Both checks would fail; insufficient funds is reported.
	subscriberID := newTestUser(t, pool, "100")
	traderID := newTestTrader(t, pool, "150")

	_, err := svc.Create(ctx, subscriberID, traderID, decimal.RequireFromString("120"))
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindInsufficientFunds))
}

func TestCreateUnknownParties(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())
	ctx := context.Background()

	traderID := newTestTrader(t, pool, "150")
	_, err := svc.Create(ctx, uuid.NewString(), traderID, decimal.RequireFromString("150"))
	require.True(t, errs.Is(err, errs.KindNotFound))
	require.EqualError(t, err, "subscriber not found")

	subscriberID := newTestUser(t, pool, "500")
	_, err = svc.Create(ctx, subscriberID, uuid.NewString(), decimal.RequireFromString("150"))
	require.True(t, errs.Is(err, errs.KindNotFound))
	require.EqualError(t, err, "trader not found")
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	pool := dbtest.Pool(t)
	svc := NewService(pool, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), decimal.Zero)
	require.True(t, errs.Is(err, errs.KindInvalid))
}
