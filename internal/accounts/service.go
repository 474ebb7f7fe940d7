package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	pool            *pgxpool.Pool
	log             *zap.Logger
	startingBalance decimal.Decimal
	defaultCurrency string
}

func NewService(pool *pgxpool.Pool, log *zap.Logger, startingBalance decimal.Decimal, defaultCurrency string) *Service {
	return &Service{pool: pool, log: log, startingBalance: startingBalance, defaultCurrency: defaultCurrency}
}

type CreateUserRequest struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     *string
	Country   *string
}

const userColumns = "id, email, username, first_name, last_name, phone, country, virtual_balance, created_at, updated_at"

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.Country, &u.VirtualBalance, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts the user and their default wallet in one transaction. The
// starting balance seeds both; duplicate email/username surfaces as Conflict
// from the unique constraint rather than a pre-check.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return model.User{}, errs.Invalid("email and username are required")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer tx.Rollback(ctx)
	u, err := scanUser(tx.QueryRow(ctx,
		"insert into users (email, username, first_name, last_name, phone, country, virtual_balance) values ($1,$2,$3,$4,$5,$6,$7) returning "+userColumns,
		email, username, req.FirstName, req.LastName, req.Phone, req.Country, s.startingBalance))
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return model.User{}, errs.Conflict("email or username already exists")
		}
		return model.User{}, err
	}
	_, err = tx.Exec(ctx,
		"insert into wallets (user_id, currency, balance, available_balance, locked_balance) values ($1,$2,$3,$3,0)",
		u.ID, s.defaultCurrency, s.startingBalance)
	if err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.User{}, err
	}
	s.log.Info("user created", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, "select "+userColumns+" from users where id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, errs.NotFound("user not found")
	}
	return u, err
}

type UpdateUserRequest struct {
	ID        string
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
	Country   *string
}

func (s *Service) Update(ctx context.Context, req UpdateUserRequest) (model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `
		update users set
			email = coalesce($2, email),
			username = coalesce($3, username),
			first_name = coalesce($4, first_name),
			last_name = coalesce($5, last_name),
			phone = coalesce($6, phone),
			country = coalesce($7, country),
			updated_at = $8
		where id = $1
		returning `+userColumns,
		req.ID, req.Email, req.Username, req.FirstName, req.LastName, req.Phone, req.Country, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, errs.NotFound("user not found")
	}
	if err != nil && errs.IsUniqueViolation(err) {
		return model.User{}, errs.Conflict("email or username already exists")
	}
	return u, err
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, "select "+userColumns+" from users order by created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
