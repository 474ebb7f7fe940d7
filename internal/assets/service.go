package assets

import (
	"context"
	"errors"
	"strings"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/marketdata"
	"vt-tradesim/internal/model"
	"vt-tradesim/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Service struct {
	pool *pgxpool.Pool
	bus  *marketdata.Bus
}

func NewService(pool *pgxpool.Pool, bus *marketdata.Bus) *Service {
	return &Service{pool: pool, bus: bus}
}

const assetColumns = "id, symbol, name, asset_type, current_price, created_at, updated_at"

func scanAsset(row pgx.Row) (model.Asset, error) {
	var a model.Asset
	var assetType string
	err := row.Scan(&a.ID, &a.Symbol, &a.Name, &assetType, &a.CurrentPrice, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}
	a.AssetType = types.AssetType(assetType)
	return a, nil
}

func (s *Service) Create(ctx context.Context, symbol, name string, assetType types.AssetType, currentPrice decimal.Decimal) (model.Asset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.Asset{}, errs.Invalid("symbol is required")
	}
	if currentPrice.LessThanOrEqual(decimal.Zero) {
		return model.Asset{}, errs.Invalid("current price must be positive")
	}
	a, err := scanAsset(s.pool.QueryRow(ctx,
		"insert into assets (symbol, name, asset_type, current_price) values ($1,$2,$3,$4) returning "+assetColumns,
		symbol, name, string(assetType), currentPrice))
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return model.Asset{}, errs.Conflict("asset symbol already exists")
		}
		return model.Asset{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Asset, error) {
	a, err := scanAsset(s.pool.QueryRow(ctx, "select "+assetColumns+" from assets where id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Asset{}, errs.NotFound("asset not found")
	}
	return a, err
}

func (s *Service) List(ctx context.Context) ([]model.Asset, error) {
	rows, err := s.pool.Query(ctx, "select "+assetColumns+" from assets order by symbol")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdatePrice stores the new quote and broadcasts it to websocket clients.
func (s *Service) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (model.Asset, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return model.Asset{}, errs.Invalid("price must be positive")
	}
	a, err := scanAsset(s.pool.QueryRow(ctx,
		"update assets set current_price = $2, updated_at = $3 where id = $1 returning "+assetColumns,
		id, price, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Asset{}, errs.NotFound("asset not found")
	}
	if err != nil {
		return model.Asset{}, err
	}
	s.bus.Publish(marketdata.Event{Type: "price_update", Data: marketdata.PriceUpdate{
		AssetID: a.ID,
		Symbol:  a.Symbol,
		Price:   a.CurrentPrice,
		TS:      time.Now().UnixMilli(),
	}})
	return a, nil
}

type UpdateAssetRequest struct {
	ID     string
	Symbol *string
	Name   *string
}

func (s *Service) Update(ctx context.Context, req UpdateAssetRequest) (model.Asset, error) {
	var symbol *string
	if req.Symbol != nil {
		up := strings.ToUpper(strings.TrimSpace(*req.Symbol))
		symbol = &up
	}
	a, err := scanAsset(s.pool.QueryRow(ctx, `
		update assets set
			symbol = coalesce($2, symbol),
			name = coalesce($3, name),
			updated_at = $4
		where id = $1
		returning `+assetColumns,
		req.ID, symbol, req.Name, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Asset{}, errs.NotFound("asset not found")
	}
	if err != nil && errs.IsUniqueViolation(err) {
		return model.Asset{}, errs.Conflict("asset symbol already exists")
	}
	return a, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "delete from assets where id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("asset not found")
	}
	return nil
}
