package traders

import (
	"context"
	"errors"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

const traderColumns = "id, user_id, display_name, bio, subscription_price, profit_percentage, win_rate, total_trades, followers, created_at, updated_at"

func scanTrader(row pgx.Row) (model.Trader, error) {
	var t model.Trader
	err := row.Scan(&t.ID, &t.UserID, &t.DisplayName, &t.Bio, &t.SubscriptionPrice, &t.ProfitPercentage, &t.WinRate, &t.TotalTrades, &t.Followers, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

type CreateTraderRequest struct {
	UserID            string
	DisplayName       string
	Bio               *string
	SubscriptionPrice decimal.Decimal
}

// Create opts a user into being followed. One profile per user; a second
// insert trips the unique constraint and surfaces as Conflict.
func (s *Service) Create(ctx context.Context, req CreateTraderRequest) (model.Trader, error) {
	if req.SubscriptionPrice.LessThan(decimal.Zero) {
		return model.Trader{}, errs.Invalid("subscription_price must not be negative")
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, "select exists(select 1 from users where id = $1)", req.UserID).Scan(&exists); err != nil {
		return model.Trader{}, err
	}
	if !exists {
		return model.Trader{}, errs.NotFound("user not found")
	}
	t, err := scanTrader(s.pool.QueryRow(ctx,
		"insert into traders (user_id, display_name, bio, subscription_price) values ($1,$2,$3,$4) returning "+traderColumns,
		req.UserID, req.DisplayName, req.Bio, req.SubscriptionPrice))
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return model.Trader{}, errs.Conflict("user already has a trader profile")
		}
		return model.Trader{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Trader, error) {
	t, err := scanTrader(s.pool.QueryRow(ctx, "select "+traderColumns+" from traders where id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trader{}, errs.NotFound("trader not found")
	}
	return t, err
}

func (s *Service) List(ctx context.Context) ([]model.Trader, error) {
	rows, err := s.pool.Query(ctx, "select "+traderColumns+" from traders order by followers desc, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Trader{}
	for rows.Next() {
		t, err := scanTrader(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type UpdateTraderRequest struct {
	ID                string
	DisplayName       *string
	Bio               *string
	SubscriptionPrice *decimal.Decimal
	ProfitPercentage  *decimal.Decimal
	WinRate           *decimal.Decimal
	TotalTrades       *int
	Followers         *int
}

// Update writes stored counters and profile fields. The stats are plain
// stored values; nothing here derives them from trade history.
func (s *Service) Update(ctx context.Context, req UpdateTraderRequest) (model.Trader, error) {
	t, err := scanTrader(s.pool.QueryRow(ctx, `
		update traders set
			display_name = coalesce($2, display_name),
			bio = coalesce($3, bio),
			subscription_price = coalesce($4, subscription_price),
			profit_percentage = coalesce($5, profit_percentage),
			win_rate = coalesce($6, win_rate),
			total_trades = coalesce($7, total_trades),
			followers = coalesce($8, followers),
			updated_at = $9
		where id = $1
		returning `+traderColumns,
		req.ID, req.DisplayName, req.Bio, req.SubscriptionPrice, req.ProfitPercentage, req.WinRate, req.TotalTrades, req.Followers, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trader{}, errs.NotFound("trader not found")
	}
	return t, err
}
