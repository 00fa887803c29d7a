package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `id, first_name, last_name, email, phone, linkedin_url, tags, status, engagement_score, company_id, created_at, updated_at`

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) (*usecase.StoredContact, error) {
	query := `
		INSERT INTO contacts (id, first_name, last_name, email, phone, linkedin_url, tags, status, engagement_score, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		id,
		c.FirstName,
		c.LastName,
		c.Email,
		nullString(c.Phone),
		nullString(c.LinkedInURL),
		pq.Array(c.Tags),
		c.Status,
		c.EngagementScore,
		nullString(c.CompanyID),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, &usecase.ConflictError{Message: fmt.Sprintf("Contact with email '%s' already exists", c.Email)}
		}
		log.Printf("database: contact insert failed: %v", err)
		return nil, err
	}

	return &usecase.StoredContact{ID: id, Contact: *c}, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*usecase.StoredContact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*usecase.StoredContact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *ContactRepository) EmailExistsForOther(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM contacts WHERE email = $1 AND id <> $2)`
	if err := r.DB.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ContactRepository) FindAll(ctx context.Context, filter usecase.ContactFilter) ([]*usecase.StoredContact, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE %s OR last_name ILIKE %s OR email ILIKE %s)", p, p, p))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.Tag != "" {
		conditions = append(conditions, arg(filter.Tag)+" = ANY(tags)")
	}
	if filter.CompanyID != "" {
		conditions = append(conditions, "company_id = "+arg(filter.CompanyID))
	}

	query := `SELECT ` + contactColumns + ` FROM contacts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT " + arg(limit)
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *ContactRepository) Update(ctx context.Context, id string, c *entity.Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $1, last_name = $2, email = $3, phone = $4, linkedin_url = $5,
		    tags = $6, status = $7, engagement_score = $8, company_id = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.FirstName,
		c.LastName,
		c.Email,
		nullString(c.Phone),
		nullString(c.LinkedInURL),
		pq.Array(c.Tags),
		c.Status,
		c.EngagementScore,
		nullString(c.CompanyID),
		c.UpdatedAt,
		id,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return &usecase.ConflictError{Message: fmt.Sprintf("Contact with email '%s' already exists", c.Email)}
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &usecase.NotFoundError{Resource: "Contact", ID: id}
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &usecase.NotFoundError{Resource: "Contact", ID: id}
	}
	return nil
}

func (r *ContactRepository) FindBySegment(ctx context.Context, def *usecase.SegmentDefinition, limit int) ([]*usecase.StoredContact, error) {
	where, args, err := usecase.BuildWhereClause(def, 1)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 500
	}
	query := fmt.Sprintf(
		"SELECT %s FROM contacts %s ORDER BY created_at DESC LIMIT $%d",
		contactColumns, where, len(args)+1,
	)
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *ContactRepository) CountByStatus(ctx context.Context) (map[entity.ContactStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM contacts GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entity.ContactStatus]int)
	for rows.Next() {
		var status entity.ContactStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ContactRepository) AverageEngagement(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.DB.QueryRowContext(ctx, `SELECT AVG(engagement_score) FROM contacts`).Scan(&avg); err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ContactRepository) TopEngaged(ctx context.Context, limit int) ([]*usecase.StoredContact, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY engagement_score DESC LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *ContactRepository) scanOne(row *sql.Row) (*usecase.StoredContact, error) {
	var stored usecase.StoredContact
	var phone, linkedin, companyID sql.NullString

	err := row.Scan(
		&stored.ID,
		&stored.Contact.FirstName,
		&stored.Contact.LastName,
		&stored.Contact.Email,
		&phone,
		&linkedin,
		pq.Array(&stored.Contact.Tags),
		&stored.Contact.Status,
		&stored.Contact.EngagementScore,
		&companyID,
		&stored.Contact.CreatedAt,
		&stored.Contact.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored.Contact.Phone = phone.String
	stored.Contact.LinkedInURL = linkedin.String
	stored.Contact.CompanyID = companyID.String
	return &stored, nil
}

func (r *ContactRepository) scanAll(rows *sql.Rows) ([]*usecase.StoredContact, error) {
	var contacts []*usecase.StoredContact
	for rows.Next() {
		var stored usecase.StoredContact
		var phone, linkedin, companyID sql.NullString

		err := rows.Scan(
			&stored.ID,
			&stored.Contact.FirstName,
			&stored.Contact.LastName,
			&stored.Contact.Email,
			&phone,
			&linkedin,
			pq.Array(&stored.Contact.Tags),
			&stored.Contact.Status,
			&stored.Contact.EngagementScore,
			&companyID,
			&stored.Contact.CreatedAt,
			&stored.Contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		stored.Contact.Phone = phone.String
		stored.Contact.LinkedInURL = linkedin.String
		stored.Contact.CompanyID = companyID.String
		contacts = append(contacts, &stored)
	}
	return contacts, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
