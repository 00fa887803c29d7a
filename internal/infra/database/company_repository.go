package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, domain, industry, size, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	c.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Domain),
		nullString(c.Industry),
		nullString(c.Size),
		pq.Array(c.Tags),
		c.CreatedAt,
		c.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &usecase.ConflictError{Message: "Company with domain '" + c.Domain + "' already exists"}
	}
	return err
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT id, name, domain, industry, size, tags, created_at, updated_at FROM companies WHERE id = $1`

	var c entity.Company
	var domain, industry, size sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &domain, &industry, &size, pq.Array(&c.Tags), &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Domain = domain.String
	c.Industry = industry.String
	c.Size = size.String
	return &c, nil
}

func (r *CompanyRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Company, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, name, domain, industry, size, tags, created_at, updated_at FROM companies`
	var args []any
	if search != "" {
		query += ` WHERE name ILIKE $1 OR domain ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`
	args = append(args, limit, offset)
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		var c entity.Company
		var domain, industry, size sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &domain, &industry, &size, pq.Array(&c.Tags), &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Domain = domain.String
		c.Industry = industry.String
		c.Size = size.String
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $1, domain = $2, industry = $3, size = $4, tags = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.Name,
		nullString(c.Domain),
		nullString(c.Industry),
		nullString(c.Size),
		pq.Array(c.Tags),
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &usecase.NotFoundError{Resource: "Company", ID: c.ID}
	}
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &usecase.NotFoundError{Resource: "Company", ID: id}
	}
	return nil
}
