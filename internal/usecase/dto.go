package usecase

import (
	"time"

	"github.com/heysh/crm-backend/internal/entity"
)

type CreateContactInput struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	LinkedInURL string   `json:"linkedin_url"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	CompanyID   string   `json:"company_id"`
}

// UpdateContactInput applies partial updates: nil pointers are "leave alone".
type UpdateContactInput struct {
	FirstName       *string   `json:"first_name"`
	LastName        *string   `json:"last_name"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	LinkedInURL     *string   `json:"linkedin_url"`
	Tags            *[]string `json:"tags"`
	Status          *string   `json:"status"`
	EngagementScore *float64  `json:"engagement_score"`
	CompanyID       *string   `json:"company_id"`
}

// ContactOutput is the wire shape of a stored contact.
type ContactOutput struct {
	ID              string               `json:"id"`
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone,omitempty"`
	LinkedInURL     string               `json:"linkedin_url,omitempty"`
	Tags            []string             `json:"tags"`
	Status          entity.ContactStatus `json:"status"`
	EngagementScore float64              `json:"engagement_score"`
	CompanyID       string               `json:"company_id,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func ToContactOutput(stored *StoredContact) ContactOutput {
	c := stored.Contact
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return ContactOutput{
		ID:              stored.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		LinkedInURL:     c.LinkedInURL,
		Tags:            tags,
		Status:          c.Status,
		EngagementScore: c.EngagementScore,
		CompanyID:       c.CompanyID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
