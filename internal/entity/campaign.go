package entity

import (
	"context"
	"strings"
	"time"
)

type CampaignObjective string

const (
	ObjectiveAwareness     CampaignObjective = "awareness"
	ObjectiveLeadGen       CampaignObjective = "lead_gen"
	ObjectiveEvent         CampaignObjective = "event"
	ObjectiveInvestor      CampaignObjective = "investor"
	ObjectiveEarlyAdopters CampaignObjective = "early_adopters"
)

func (o CampaignObjective) IsValid() bool {
	switch o {
	case ObjectiveAwareness, ObjectiveLeadGen, ObjectiveEvent, ObjectiveInvestor, ObjectiveEarlyAdopters:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignRunning   CampaignStatus = "running"
	CampaignCompleted CampaignStatus = "completed"
)

type CampaignChannel string

const (
	ChannelEmail       CampaignChannel = "email"
	ChannelSocial      CampaignChannel = "social"
	ChannelLandingPage CampaignChannel = "landing_page"
	ChannelEvent       CampaignChannel = "event"
)

func (c CampaignChannel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSocial, ChannelLandingPage, ChannelEvent:
		return true
	}
	return false
}

type Campaign struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Objective         CampaignObjective `json:"objective"`
	Status            CampaignStatus    `json:"status"`
	Channels          []CampaignChannel `json:"channels"`
	Prompt            string            `json:"prompt,omitempty"`
	SegmentDefinition string            `json:"segment_definition,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewCampaign builds a draft campaign. The repository assigns ID.
func NewCampaign(name string, objective CampaignObjective, channels []CampaignChannel, prompt, segmentDefinition string) (*Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &RequiredFieldError{Field: "name"}
	}
	if !objective.IsValid() {
		return nil, &InvalidFieldError{Field: "objective", Reason: "Unknown campaign objective '" + string(objective) + "'"}
	}
	if len(channels) == 0 {
		return nil, &RequiredFieldError{Field: "channels"}
	}
	for _, ch := range channels {
		if !ch.IsValid() {
			return nil, &InvalidFieldError{Field: "channels", Reason: "Unknown channel '" + string(ch) + "'"}
		}
	}

	now := time.Now().UTC()
	return &Campaign{
		Name:              name,
		Objective:         objective,
		Status:            CampaignDraft,
		Channels:          channels,
		Prompt:            prompt,
		SegmentDefinition: segmentDefinition,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

type AssetType string

const (
	AssetEmail       AssetType = "email"
	AssetSocialPost  AssetType = "social_post"
	AssetLandingPage AssetType = "landing_page"
	AssetEventInvite AssetType = "event_invite"
)

func (a AssetType) IsValid() bool {
	switch a {
	case AssetEmail, AssetSocialPost, AssetLandingPage, AssetEventInvite:
		return true
	}
	return false
}

// CampaignAsset holds generated content for one channel of a campaign.
type CampaignAsset struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Type       AssetType `json:"type"`
	// Content is the generated payload, stored as JSON.
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	FindAll(ctx context.Context, limit, offset int) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	CreateAsset(ctx context.Context, a *CampaignAsset) error
	FindAssetsByCampaignID(ctx context.Context, campaignID string) ([]*CampaignAsset, error)
}
