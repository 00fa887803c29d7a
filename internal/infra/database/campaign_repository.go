package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/heysh/crm-backend/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, name, objective, status, channels, prompt, segment_definition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	c.ID = uuid.NewString()
	channels := make([]string, len(c.Channels))
	for i, ch := range c.Channels {
		channels[i] = string(ch)
	}

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Objective,
		c.Status,
		pq.Array(channels),
		nullString(c.Prompt),
		nullString(c.SegmentDefinition),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `SELECT id, name, objective, status, channels, prompt, segment_definition, created_at, updated_at FROM campaigns WHERE id = $1`
	return scanCampaign(r.DB.QueryRowContext(ctx, query, id))
}

func (r *CampaignRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Campaign, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, name, objective, status, channels, prompt, segment_definition, created_at, updated_at
		FROM campaigns ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		c, err := scanCampaignRow(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, objective = $2, status = $3, channels = $4, prompt = $5, segment_definition = $6, updated_at = NOW()
		WHERE id = $7
	`

	channels := make([]string, len(c.Channels))
	for i, ch := range c.Channels {
		channels[i] = string(ch)
	}

	_, err := r.DB.ExecContext(ctx, query,
		c.Name,
		c.Objective,
		c.Status,
		pq.Array(channels),
		nullString(c.Prompt),
		nullString(c.SegmentDefinition),
		c.ID,
	)
	return err
}

func (r *CampaignRepository) CreateAsset(ctx context.Context, a *entity.CampaignAsset) error {
	query := `
		INSERT INTO campaign_assets (id, campaign_id, type, content, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	a.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.CampaignID,
		a.Type,
		a.Content,
		nullString(a.URL),
		a.CreatedAt,
	)
	return err
}

func (r *CampaignRepository) FindAssetsByCampaignID(ctx context.Context, campaignID string) ([]*entity.CampaignAsset, error) {
	query := `SELECT id, campaign_id, type, content, url, created_at FROM campaign_assets WHERE campaign_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*entity.CampaignAsset
	for rows.Next() {
		var a entity.CampaignAsset
		var url sql.NullString
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.Type, &a.Content, &url, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.URL = url.String
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}

func scanCampaign(row *sql.Row) (*entity.Campaign, error) {
	var c entity.Campaign
	var channels []string
	var prompt, segment sql.NullString

	err := row.Scan(&c.ID, &c.Name, &c.Objective, &c.Status, pq.Array(&channels), &prompt, &segment, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Channels = toChannels(channels)
	c.Prompt = prompt.String
	c.SegmentDefinition = segment.String
	return &c, nil
}

func scanCampaignRow(rows *sql.Rows) (*entity.Campaign, error) {
	var c entity.Campaign
	var channels []string
	var prompt, segment sql.NullString

	if err := rows.Scan(&c.ID, &c.Name, &c.Objective, &c.Status, pq.Array(&channels), &prompt, &segment, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Channels = toChannels(channels)
	c.Prompt = prompt.String
	c.SegmentDefinition = segment.String
	return &c, nil
}

func toChannels(raw []string) []entity.CampaignChannel {
	channels := make([]entity.CampaignChannel, len(raw))
	for i, ch := range raw {
		channels[i] = entity.CampaignChannel(ch)
	}
	return channels
}
