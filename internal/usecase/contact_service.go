package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/heysh/crm-backend/internal/entity"
)

// ContactService glues the HTTP layer, the domain rules and the repository.
// Rules that need the database (email uniqueness) live here; pure rules stay
// in the entity package.
type ContactService struct {
	Repo ContactRepositoryInterface
}

func NewContactService(repo ContactRepositoryInterface) *ContactService {
	return &ContactService{Repo: repo}
}

// Create validates the input through the contact builder and persists it.
// Email uniqueness is checked before building so the caller gets a conflict,
// not a validation error.
func (s *ContactService) Create(ctx context.Context, input CreateContactInput) (*StoredContact, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" {
		existing, err := s.Repo.FindByEmail(ctx, email)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, &ConflictError{
				Message: fmt.Sprintf("A contact with email '%s' already exists", email),
			}
		}
	}

	builder := entity.NewContactBuilder().
		FirstName(input.FirstName).
		LastName(input.LastName).
		Email(input.Email).
		Phone(input.Phone).
		LinkedInURL(input.LinkedInURL).
		Tags(input.Tags).
		CompanyID(input.CompanyID)

	if input.Status != "" {
		status := entity.ContactStatus(input.Status)
		if !status.IsValid() {
			return nil, &entity.InvalidFieldError{
				Field:  "status",
				Reason: fmt.Sprintf("Unknown status '%s'", input.Status),
			}
		}
		builder.Status(status)
	}

	contact, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return s.Repo.Create(ctx, contact)
}

func (s *ContactService) Get(ctx context.Context, id string) (*StoredContact, error) {
	stored, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &NotFoundError{Resource: "Contact", ID: id}
	}
	return stored, nil
}

func (s *ContactService) List(ctx context.Context, filter ContactFilter) ([]*StoredContact, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.Repo.FindAll(ctx, filter)
}

// Update applies a partial update. Every changed field goes through the same
// domain rules as Create; a status change goes through the state machine.
// Nothing is persisted if any change is rejected.
func (s *ContactService) Update(ctx context.Context, id string, input UpdateContactInput) (*StoredContact, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	contact := stored.Contact

	if input.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*input.Email))
		if normalized != contact.Email {
			taken, err := s.Repo.EmailExistsForOther(ctx, normalized, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, &ConflictError{
					Message: fmt.Sprintf("A contact with email '%s' already exists", normalized),
				}
			}
			if err := entity.ValidateEmail(normalized); err != nil {
				return nil, err
			}
			contact.Email = normalized
		}
	}

	if input.FirstName != nil {
		trimmed := strings.TrimSpace(*input.FirstName)
		if err := entity.ValidateName(trimmed, "first_name"); err != nil {
			return nil, err
		}
		contact.FirstName = trimmed
	}

	if input.LastName != nil {
		trimmed := strings.TrimSpace(*input.LastName)
		if err := entity.ValidateName(trimmed, "last_name"); err != nil {
			return nil, err
		}
		contact.LastName = trimmed
	}

	if input.Phone != nil {
		trimmed := strings.TrimSpace(*input.Phone)
		if err := entity.ValidatePhone(trimmed); err != nil {
			return nil, err
		}
		contact.Phone = trimmed
	}

	if input.LinkedInURL != nil {
		trimmed := strings.TrimSpace(*input.LinkedInURL)
		if err := entity.ValidateLinkedInURL(trimmed); err != nil {
			return nil, err
		}
		contact.LinkedInURL = trimmed
	}

	if input.Tags != nil {
		tags, err := entity.ValidateTags(*input.Tags)
		if err != nil {
			return nil, err
		}
		contact.Tags = tags
	}

	if input.Status != nil {
		next := entity.ContactStatus(*input.Status)
		if !next.IsValid() {
			return nil, &entity.InvalidFieldError{
				Field:  "status",
				Reason: fmt.Sprintf("Unknown status '%s'", *input.Status),
			}
		}
		if err := contact.TransitionStatus(next); err != nil {
			return nil, err
		}
	}

	if input.EngagementScore != nil {
		if err := contact.UpdateEngagement(*input.EngagementScore); err != nil {
			return nil, err
		}
	}

	if input.CompanyID != nil {
		contact.CompanyID = *input.CompanyID
	}

	contact.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, id, &contact); err != nil {
		return nil, err
	}
	return &StoredContact{ID: id, Contact: contact}, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *ContactService) FindByEmail(ctx context.Context, email string) (*StoredContact, error) {
	return s.Repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
