package entity

import (
	"context"
	"strings"
	"time"
)

// Company is a lightweight aggregate: contacts point at it through a weak
// CompanyID reference and never the other way around.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Size      string    `json:"size,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCompany validates and normalizes the inputs. The repository assigns ID.
func NewCompany(name, domain, industry, size string, tags []string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &RequiredFieldError{Field: "name"}
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	if err := ValidateCompanyDomain(domain); err != nil {
		return nil, err
	}

	normalizedTags, err := ValidateTags(tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Company{
		Name:      name,
		Domain:    domain,
		Industry:  strings.TrimSpace(industry),
		Size:      strings.TrimSpace(size),
		Tags:      normalizedTags,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*Company, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error
}
