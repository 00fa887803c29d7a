package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

type AnalyticsHandler struct {
	Contacts usecase.ContactRepositoryInterface
	Timeline entity.TimelineRepositoryInterface
}

func NewAnalyticsHandler(contacts usecase.ContactRepositoryInterface, timeline entity.TimelineRepositoryInterface) *AnalyticsHandler {
	return &AnalyticsHandler{Contacts: contacts, Timeline: timeline}
}

type contactsAnalyticsResponse struct {
	TotalContacts      int                 `json:"total_contacts"`
	Leads              int                 `json:"leads"`
	Customers          int                 `json:"customers"`
	Partners           int                 `json:"partners"`
	Investors          int                 `json:"investors"`
	Other              int                 `json:"other"`
	AvgEngagementScore float64             `json:"avg_engagement_score"`
	TopEngaged         []topEngagedContact `json:"top_engaged"`
}

type topEngagedContact struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	EngagementScore float64 `json:"engagement_score"`
}

func (h *AnalyticsHandler) ContactsOverview(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Contacts.CountByStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	avg, err := h.Contacts.AverageEngagement(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	top, err := h.Contacts.TopEngaged(r.Context(), 3)
	if err != nil {
		writeError(w, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	topOut := make([]topEngagedContact, 0, len(top))
	for _, c := range top {
		topOut = append(topOut, topEngagedContact{
			ID:              c.ID,
			Name:            c.Contact.FullName(),
			EngagementScore: c.Contact.EngagementScore,
		})
	}

	writeJSON(w, http.StatusOK, contactsAnalyticsResponse{
		TotalContacts:      total,
		Leads:              counts[entity.StatusLead],
		Customers:          counts[entity.StatusCustomer],
		Partners:           counts[entity.StatusPartner],
		Investors:          counts[entity.StatusInvestor],
		Other:              counts[entity.StatusOther],
		AvgEngagementScore: avg,
		TopEngaged:         topOut,
	})
}

type funnelStage struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type funnelResponse struct {
	Stages                []funnelStage `json:"stages"`
	OverallConversionRate float64       `json:"overall_conversion_rate"`
}

// Funnel reports lifecycle stage counts as a conversion funnel. Percentages
// are relative to the total contact count.
func (h *AnalyticsHandler) Funnel(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Contacts.CountByStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	pct := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}

	customers := counts[entity.StatusCustomer]
	stages := []funnelStage{
		{Name: "Contacts", Count: total, Percentage: pct(total)},
		{Name: "Leads", Count: counts[entity.StatusLead], Percentage: pct(counts[entity.StatusLead])},
		{Name: "Customers", Count: customers, Percentage: pct(customers)},
	}

	writeJSON(w, http.StatusOK, funnelResponse{
		Stages:                stages,
		OverallConversionRate: pct(customers),
	})
}

type campaignAnalyticsResponse struct {
	CampaignID        string  `json:"campaign_id"`
	EmailsSent        int     `json:"emails_sent"`
	EmailsOpened      int     `json:"emails_opened"`
	EmailsClicked     int     `json:"emails_clicked"`
	LandingPageVisits int     `json:"landing_page_visits"`
	Conversions       int     `json:"conversions"`
	OpenRate          float64 `json:"open_rate"`
	ClickRate         float64 `json:"click_rate"`
	ConversionRate    float64 `json:"conversion_rate"`
}

// Campaign aggregates interaction counts attributed to one campaign through
// timeline metadata.
func (h *AnalyticsHandler) Campaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	counts, err := h.Timeline.CountByTypeForCampaign(r.Context(), campaignID)
	if err != nil {
		writeError(w, err)
		return
	}

	sent := counts[entity.InteractionEmailSent]
	opened := counts[entity.InteractionEmailOpen]
	clicked := counts[entity.InteractionEmailClick]
	visits := counts[entity.InteractionLandingPageVisit]
	conversions := counts[entity.InteractionFormSubmission]

	rate := func(n int) float64 {
		if sent == 0 {
			return 0
		}
		return float64(n) / float64(sent) * 100
	}

	writeJSON(w, http.StatusOK, campaignAnalyticsResponse{
		CampaignID:        campaignID,
		EmailsSent:        sent,
		EmailsOpened:      opened,
		EmailsClicked:     clicked,
		LandingPageVisits: visits,
		Conversions:       conversions,
		OpenRate:          rate(opened),
		ClickRate:         rate(clicked),
		ConversionRate:    rate(conversions),
	})
}
