package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/heysh/crm-backend/internal/entity"
)

type TimelineRepository struct {
	DB *sql.DB
}

func NewTimelineRepository(db *sql.DB) *TimelineRepository {
	return &TimelineRepository{DB: db}
}

func (r *TimelineRepository) Create(ctx context.Context, entry *entity.TimelineEntry) error {
	query := `
		INSERT INTO timeline_entries (id, contact_id, company_id, type, content, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	entry.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.ContactID,
		nullString(entry.CompanyID),
		entry.Type,
		entry.Content,
		metadata,
		entry.OccurredAt,
	)
	return err
}

func (r *TimelineRepository) FindByContactID(ctx context.Context, contactID string, limit, offset int) ([]*entity.TimelineEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, contact_id, company_id, type, content, metadata, occurred_at
		FROM timeline_entries WHERE contact_id = $1
		ORDER BY occurred_at DESC LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.TimelineEntry
	for rows.Next() {
		var e entity.TimelineEntry
		var companyID sql.NullString
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.ContactID, &companyID, &e.Type, &e.Content, &metadata, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.CompanyID = companyID.String
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, err
			}
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *TimelineRepository) ListInteractions(ctx context.Context, contactID string) ([]entity.Interaction, error) {
	query := `SELECT type, occurred_at FROM timeline_entries WHERE contact_id = $1 ORDER BY occurred_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []entity.Interaction
	for rows.Next() {
		var in entity.Interaction
		if err := rows.Scan(&in.Type, &in.OccurredAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

func (r *TimelineRepository) CountByTypeForCampaign(ctx context.Context, campaignID string) (map[entity.InteractionType]int, error) {
	query := `
		SELECT type, COUNT(*)
		FROM timeline_entries
		WHERE metadata->>'campaign_id' = $1
		GROUP BY type
	`

	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entity.InteractionType]int)
	for rows.Next() {
		var t entity.InteractionType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}
