package subscriptions

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
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewService(pool *pgxpool.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

const subscriptionColumns = "id, subscriber_id, trader_id, status, price_paid, start_date, end_date"

func scanSubscription(row pgx.Row) (model.Subscription, error) {
	var sub model.Subscription
	var status string
	err := row.Scan(&sub.ID, &sub.SubscriberID, &sub.TraderID, &status, &sub.PricePaid, &sub.StartDate, &sub.EndDate)
	if err != nil {
		return sub, err
	}
	sub.Status = types.SubscriptionStatus(status)
	return sub, nil
}

// Create charges the subscriber for access to a trader's signals. The balance
// check runs before the price-floor check; both must pass before any write.
func (s *Service) Create(ctx context.Context, subscriberID, traderID string, pricePaid decimal.Decimal) (model.Subscription, error) {
	if pricePaid.LessThanOrEqual(decimal.Zero) {
		return model.Subscription{}, errs.Invalid("price_paid must be positive")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Subscription{}, err
	}
	defer tx.Rollback(ctx)

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, "select virtual_balance from users where id = $1 for update", subscriberID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Subscription{}, errs.NotFound("subscriber not found")
	}
	if err != nil {
		return model.Subscription{}, err
	}
	var subscriptionPrice decimal.Decimal
	err = tx.QueryRow(ctx, "select subscription_price from traders where id = $1", traderID).Scan(&subscriptionPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Subscription{}, errs.NotFound("trader not found")
	}
	if err != nil {
		return model.Subscription{}, err
	}
	if balance.LessThan(pricePaid) {
		return model.Subscription{}, errs.InsufficientFunds("insufficient virtual balance")
	}
	if pricePaid.LessThan(subscriptionPrice) {
		return model.Subscription{}, errs.PriceTooLow("price paid is less than trader subscription price")
	}
	sub, err := scanSubscription(tx.QueryRow(ctx,
		"insert into subscriptions (subscriber_id, trader_id, status, price_paid) values ($1,$2,$3,$4) returning "+subscriptionColumns,
		subscriberID, traderID, string(types.SubscriptionStatusActive), pricePaid))
	if err != nil {
		return model.Subscription{}, err
	}
	_, err = tx.Exec(ctx,
		"update users set virtual_balance = virtual_balance - $2, updated_at = $3 where id = $1",
		subscriberID, pricePaid, time.Now().UTC())
	if err != nil {
		return model.Subscription{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Subscription{}, err
	}
	s.log.Info("subscription created",
		zap.String("subscription_id", sub.ID),
		zap.String("subscriber_id", subscriberID),
		zap.String("trader_id", traderID),
		zap.String("price_paid", pricePaid.String()))
	return sub, nil
}

// HasActive reports whether the subscriber currently holds an active
// subscription to the trader.
func HasActive(ctx context.Context, tx pgx.Tx, subscriberID, traderID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		"select exists(select 1 from subscriptions where subscriber_id = $1 and trader_id = $2 and status = $3)",
		subscriberID, traderID, string(types.SubscriptionStatusActive)).Scan(&exists)
	return exists, err
}

func (s *Service) ListBySubscriber(ctx context.Context, subscriberID string) ([]model.Subscription, error) {
	rows, err := s.pool.Query(ctx, "select "+subscriptionColumns+" from subscriptions where subscriber_id = $1 order by start_date desc", subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
