package wallets

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const walletColumns = "id, user_id, currency, balance, available_balance, locked_balance, created_at, updated_at"

const transactionColumns = "id, user_id, type, amount, currency, status, description, reference_id, created_at, processed_at"

func scanWallet(row pgx.Row) (model.Wallet, error) {
	var w model.Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Currency, &w.Balance, &w.AvailableBalance, &w.LockedBalance, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	var typ, status string
	err := row.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.Currency, &status, &t.Description, &t.ReferenceID, &t.CreatedAt, &t.ProcessedAt)
	if err != nil {
		return t, err
	}
	t.Type = types.TransactionType(typ)
	t.Status = types.TransactionStatus(status)
	return t, nil
}

type FundRequest struct {
	UserID            string
	Currency          string
	Amount            decimal.Decimal
	ExternalReference *string
}

// Fund accumulates into the (user, currency) wallet, creating it on first use,
// and records a completed fund_wallet transaction. The wallet write is a single
// upsert statement, so concurrent fundings of the same wallet cannot lose
// updates or race the lazy creation.
func (s *Service) Fund(ctx context.Context, req FundRequest) (model.Wallet, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return model.Wallet{}, errs.Invalid("currency is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return model.Wallet{}, errs.Invalid("amount must be positive")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Wallet{}, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "select exists(select 1 from users where id = $1)", req.UserID).Scan(&exists); err != nil {
		return model.Wallet{}, err
	}
	if !exists {
		return model.Wallet{}, errs.NotFound("user not found")
	}
	wallet, err := scanWallet(tx.QueryRow(ctx, `
		insert into wallets (user_id, currency, balance, available_balance, locked_balance)
		values ($1, $2, $3, $3, 0)
		on conflict (user_id, currency) do update set
			balance = wallets.balance + excluded.balance,
			available_balance = wallets.available_balance + excluded.available_balance,
			updated_at = now()
		returning `+walletColumns,
		req.UserID, currency, req.Amount))
	if err != nil {
		return model.Wallet{}, err
	}
	description := fmt.Sprintf("Wallet funded with %s %s", req.Amount.String(), currency)
	_, err = tx.Exec(ctx,
		"insert into transactions (user_id, type, amount, currency, status, description, reference_id, processed_at) values ($1,$2,$3,$4,$5,$6,$7,$8)",
		req.UserID, string(types.TransactionTypeFundWallet), req.Amount, currency,
		string(types.TransactionStatusCompleted), description, req.ExternalReference, time.Now().UTC())
	if err != nil {
		return model.Wallet{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Wallet{}, err
	}
	s.log.Info("wallet funded",
		zap.String("user_id", req.UserID),
		zap.String("currency", currency),
		zap.String("amount", req.Amount.String()))
	return wallet, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]model.Wallet, error) {
	rows, err := s.pool.Query(ctx, "select "+walletColumns+" from wallets where user_id = $1 order by currency", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type CreateTransactionRequest struct {
	UserID      string
	Type        types.TransactionType
	Amount      decimal.Decimal
	Currency    string
	Description *string
	ReferenceID *string
}

// CreateTransaction records a manual audit entry. It performs no balance
// mutation; it exists for bookkeeping callers.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (model.Transaction, error) {
	if !req.Type.Valid() {
		return model.Transaction{}, errs.Invalid("invalid transaction type")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return model.Transaction{}, errs.Invalid("amount must be positive")
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, "select exists(select 1 from users where id = $1)", req.UserID).Scan(&exists); err != nil {
		return model.Transaction{}, err
	}
	if !exists {
		return model.Transaction{}, errs.NotFound("user not found")
	}
	return scanTransaction(s.pool.QueryRow(ctx,
		"insert into transactions (user_id, type, amount, currency, description, reference_id) values ($1,$2,$3,$4,$5,$6) returning "+transactionColumns,
		req.UserID, string(req.Type), req.Amount, strings.ToUpper(strings.TrimSpace(req.Currency)), req.Description, req.ReferenceID))
}

func (s *Service) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	rows, err := s.pool.Query(ctx, "select "+transactionColumns+" from transactions where user_id = $1 order by created_at desc", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, userID, currency string) (model.Wallet, error) {
	w, err := scanWallet(s.pool.QueryRow(ctx,
		"select "+walletColumns+" from wallets where user_id = $1 and currency = $2",
		userID, strings.ToUpper(strings.TrimSpace(currency))))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Wallet{}, errs.NotFound("wallet not found")
	}
	return w, err
}
