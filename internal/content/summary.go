package content

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/heysh/crm-backend/internal/entity"
)

// SummarizeTimeline produces a short narrative of a contact's history.
// Entries are expected newest first, as the timeline repository returns them.
func SummarizeTimeline(entries []*entity.TimelineEntry) string {
	if len(entries) == 0 {
		return "No interactions recorded yet."
	}

	var emailsSent, emailsOpened, notes, events, calls, landingPages int
	for _, e := range entries {
		switch e.Type {
		case entity.InteractionEmailSent:
			emailsSent++
		case entity.InteractionEmailOpen, entity.InteractionEmailClick:
			emailsOpened++
		case entity.InteractionNoteAdded:
			notes++
		case entity.InteractionEventRegistration, entity.InteractionEventAttendance:
			events++
		case entity.InteractionCallCompleted:
			calls++
		case entity.InteractionLandingPageVisit:
			landingPages++
		}
	}

	parts := []string{fmt.Sprintf("This contact has %d total interactions", len(entries))}

	if emailsSent > 0 {
		openRate := math.Round(float64(emailsOpened) / float64(emailsSent) * 100)
		parts = append(parts, fmt.Sprintf("%d emails sent (%.0f%% engagement)", emailsSent, openRate))
	}
	if calls > 0 {
		parts = append(parts, fmt.Sprintf("%d calls logged", calls))
	}
	if events > 0 {
		parts = append(parts, fmt.Sprintf("%d event interactions", events))
	}
	if notes > 0 {
		parts = append(parts, fmt.Sprintf("%d notes recorded", notes))
	}
	if landingPages > 0 {
		parts = append(parts, fmt.Sprintf("%d landing page visits", landingPages))
	}

	latest := entries[0]
	parts = append(parts, fmt.Sprintf(
		"Most recent activity: %s on %s",
		latest.Content,
		latest.OccurredAt.Format("January 2, 2006"),
	))

	return strings.Join(parts, ". ") + "."
}

// NextBestAction suggests a follow-up based on recency and score.
func NextBestAction(entries []*entity.TimelineEntry, score float64) string {
	if len(entries) == 0 {
		return "Send an introductory email"
	}

	daysSince := int(time.Since(entries[0].OccurredAt).Hours() / 24)
	switch {
	case daysSince > 30:
		return "Re-engage with a check-in message"
	case score > 70.0:
		return "Schedule a call or meeting"
	default:
		return "Share relevant content or invite to upcoming event"
	}
}
