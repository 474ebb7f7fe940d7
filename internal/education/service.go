package education

import (
	"context"
	"errors"
	"time"

	"vt-tradesim/internal/errs"
	"vt-tradesim/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

const contentColumns = "id, title, content, category, is_published, created_at, updated_at"

func scanContent(row pgx.Row) (model.EducationalContent, error) {
	var c model.EducationalContent
	err := row.Scan(&c.ID, &c.Title, &c.Content, &c.Category, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Service) Create(ctx context.Context, title, content, category string, isPublished bool) (model.EducationalContent, error) {
	if title == "" || content == "" {
		return model.EducationalContent{}, errs.Invalid("title and content are required")
	}
	return scanContent(s.pool.QueryRow(ctx,
		"insert into educational_content (title, content, category, is_published) values ($1,$2,$3,$4) returning "+contentColumns,
		title, content, category, isPublished))
}

func (s *Service) Get(ctx context.Context, id string) (model.EducationalContent, error) {
	c, err := scanContent(s.pool.QueryRow(ctx, "select "+contentColumns+" from educational_content where id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.EducationalContent{}, errs.NotFound("content not found")
	}
	return c, err
}

func (s *Service) List(ctx context.Context, publishedOnly bool) ([]model.EducationalContent, error) {
	query := "select " + contentColumns + " from educational_content order by created_at desc"
	if publishedOnly {
		query = "select " + contentColumns + " from educational_content where is_published order by created_at desc"
	}
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.EducationalContent{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type UpdateContentRequest struct {
	ID          string
	Title       *string
	Content     *string
	Category    *string
	IsPublished *bool
}

func (s *Service) Update(ctx context.Context, req UpdateContentRequest) (model.EducationalContent, error) {
	c, err := scanContent(s.pool.QueryRow(ctx, `
		update educational_content set
			title = coalesce($2, title),
			content = coalesce($3, content),
			category = coalesce($4, category),
			is_published = coalesce($5, is_published),
			updated_at = $6
		where id = $1
		returning `+contentColumns,
		req.ID, req.Title, req.Content, req.Category, req.IsPublished, time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.EducationalContent{}, errs.NotFound("content not found")
	}
	return c, err
}
