package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/heysh/crm-backend/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	query := `
		INSERT INTO events (id, campaign_id, name, type, description, start_time, end_time, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	e.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		nullString(e.CampaignID),
		e.Name,
		e.Type,
		nullString(e.Description),
		e.StartTime,
		e.EndTime,
		nullString(e.Location),
		e.CreatedAt,
	)
	return err
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `SELECT id, campaign_id, name, type, description, start_time, end_time, location, created_at FROM events WHERE id = $1`

	var e entity.Event
	var campaignID, description, location sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &campaignID, &e.Name, &e.Type, &description, &e.StartTime, &e.EndTime, &location, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.CampaignID = campaignID.String
	e.Description = description.String
	e.Location = location.String
	return &e, nil
}

func (r *EventRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, campaign_id, name, type, description, start_time, end_time, location, created_at
		FROM events ORDER BY start_time DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var e entity.Event
		var campaignID, description, location sql.NullString
		if err := rows.Scan(&e.ID, &campaignID, &e.Name, &e.Type, &description, &e.StartTime, &e.EndTime, &location, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CampaignID = campaignID.String
		e.Description = description.String
		e.Location = location.String
		events = append(events, &e)
	}
	return events, rows.Err()
}

// UpsertRsvp keys on (event_id, contact_id) so a contact's RSVP can move
// through invited, registered, attended without duplicate rows.
func (r *EventRepository) UpsertRsvp(ctx context.Context, rsvp *entity.Rsvp) error {
	query := `
		INSERT INTO rsvps (id, event_id, contact_id, status, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, contact_id)
		DO UPDATE SET status = EXCLUDED.status, timestamp = EXCLUDED.timestamp
		RETURNING id
	`

	candidateID := uuid.NewString()
	return r.DB.QueryRowContext(ctx, query,
		candidateID,
		rsvp.EventID,
		rsvp.ContactID,
		rsvp.Status,
		rsvp.Timestamp,
	).Scan(&rsvp.ID)
}

func (r *EventRepository) FindRsvpsByEventID(ctx context.Context, eventID string) ([]*entity.Rsvp, error) {
	query := `SELECT id, event_id, contact_id, status, timestamp FROM rsvps WHERE event_id = $1 ORDER BY timestamp DESC`

	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*entity.Rsvp
	for rows.Next() {
		var rsvp entity.Rsvp
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.ContactID, &rsvp.Status, &rsvp.Timestamp); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, &rsvp)
	}
	return rsvps, rows.Err()
}
