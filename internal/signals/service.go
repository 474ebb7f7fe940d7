package signals

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
)

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

const signalColumns = "id, trader_id, symbol, asset_type, signal_type, entry_price, target_price, stop_loss, description, is_active, expires_at, created_at, updated_at"

func scanSignal(row pgx.Row) (model.Signal, error) {
	var sig model.Signal
	var assetType, signalType string
	err := row.Scan(&sig.ID, &sig.TraderID, &sig.Symbol, &assetType, &signalType, &sig.EntryPrice, &sig.TargetPrice, &sig.StopLoss, &sig.Description, &sig.IsActive, &sig.ExpiresAt, &sig.CreatedAt, &sig.UpdatedAt)
	if err != nil {
		return sig, err
	}
	sig.AssetType = types.AssetType(assetType)
	sig.SignalType = types.SignalType(signalType)
	return sig, nil
}

type CreateSignalRequest struct {
	TraderID    string
	Symbol      string
	AssetType   types.AssetType
	SignalType  types.SignalType
	EntryPrice  decimal.Decimal
	TargetPrice *decimal.Decimal
	StopLoss    *decimal.Decimal
	Description *string
	ExpiresAt   *time.Time
}

func (s *Service) Create(ctx context.Context, req CreateSignalRequest) (model.Signal, error) {
	if req.SignalType != types.SignalTypeBuy && req.SignalType != types.SignalTypeSell {
		return model.Signal{}, errs.Invalid("invalid signal type")
	}
	if req.EntryPrice.LessThanOrEqual(decimal.Zero) {
		return model.Signal{}, errs.Invalid("entry price must be positive")
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, "select exists(select 1 from traders where id = $1)", req.TraderID).Scan(&exists); err != nil {
		return model.Signal{}, err
	}
	if !exists {
		return model.Signal{}, errs.NotFound("trader not found")
	}
	return scanSignal(s.pool.QueryRow(ctx,
		"insert into signals (trader_id, symbol, asset_type, signal_type, entry_price, target_price, stop_loss, description, expires_at) values ($1,$2,$3,$4,$5,$6,$7,$8,$9) returning "+signalColumns,
		req.TraderID, req.Symbol, string(req.AssetType), string(req.SignalType), req.EntryPrice, req.TargetPrice, req.StopLoss, req.Description, req.ExpiresAt))
}

func (s *Service) Get(ctx context.Context, id string) (model.Signal, error) {
	sig, err := scanSignal(s.pool.QueryRow(ctx, "select "+signalColumns+" from signals where id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Signal{}, errs.NotFound("signal not found")
	}
	return sig, err
}

func (s *Service) List(ctx context.Context) ([]model.Signal, error) {
	return s.list(ctx, "select "+signalColumns+" from signals order by created_at desc")
}

// ListActive returns signals that are flagged active and not yet expired.
func (s *Service) ListActive(ctx context.Context) ([]model.Signal, error) {
	return s.list(ctx, "select "+signalColumns+" from signals where is_active and (expires_at is null or expires_at > now()) order by created_at desc")
}

func (s *Service) list(ctx context.Context, query string) ([]model.Signal, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Signal{}
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

type UpdateSignalRequest struct {
	ID          string
	TargetPrice *decimal.Decimal
	StopLoss    *decimal.Decimal
	Description *string
	IsActive    *bool
	ExpiresAt   *time.Time
}

func (s *Service) Update(ctx context.Context, req UpdateSignalRequest) (model.Signal, error) {
	sig, err := scanSignal(s.pool.QueryRow(ctx, `
		update signals set
			target_price = coalesce($2, target_price),
			stop_loss = coalesce($3, stop_loss),
			description = coalesce($4, description),
			is_active = coalesce($5, is_active),
			expires_at = coalesce($6, expires_at),
			updated_at = $7
		where id = $1
		returning `+signalColumns,
		req.ID, req.TargetPrice, req.StopLoss, req.Description, req.IsActive, req.ExpiresAt, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Signal{}, errs.NotFound("signal not found")
	}
	return sig, err
}

// Deactivate retires a signal; the row stays for copy-trade audit linkage.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "update signals set is_active = false, updated_at = $2 where id = $1", id, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("signal not found")
	}
	return nil
}
