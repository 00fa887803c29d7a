package entity

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Engagement scoring. Given a contact's interaction history, compute how
// engaged they are:
//
//  1. each interaction type has a base score
//  2. recent interactions count more (exponential half-life decay)
//  3. consistent weekly activity beats one-time spikes
//  4. the result is normalized to 0-100
//
// Everything in this file is pure: no clock injection, no I/O, no failure
// modes for well-formed input.

// InteractionType classifies a recorded touchpoint. The values are the wire
// tokens other services depend on.
type InteractionType string

const (
	InteractionEmailSent         InteractionType = "email_sent"
	InteractionEmailOpen         InteractionType = "email_open"
	InteractionEmailClick        InteractionType = "email_click"
	InteractionLandingPageVisit  InteractionType = "landing_page_visit"
	InteractionFormSubmission    InteractionType = "form_submission"
	InteractionEventRegistration InteractionType = "event_registration"
	InteractionEventAttendance   InteractionType = "event_attendance"
	InteractionMeetingScheduled  InteractionType = "meeting_scheduled"
	InteractionMeetingAttended   InteractionType = "meeting_attended"
	InteractionCallCompleted     InteractionType = "call_completed"
	InteractionNoteAdded         InteractionType = "note_added"
	InteractionSocial            InteractionType = "social_interaction"
)

// AllInteractionTypes lists every type in declaration order. The order is the
// final tie-break when ranking top contributors.
var AllInteractionTypes = []InteractionType{
	InteractionEmailSent,
	InteractionEmailOpen,
	InteractionEmailClick,
	InteractionLandingPageVisit,
	InteractionFormSubmission,
	InteractionEventRegistration,
	InteractionEventAttendance,
	InteractionMeetingScheduled,
	InteractionMeetingAttended,
	InteractionCallCompleted,
	InteractionNoteAdded,
	InteractionSocial,
}

// BaseScore is the undecayed weight of one interaction of this type.
// Higher scores mean more valuable interactions.
func (t InteractionType) BaseScore() float64 {
	switch t {
	// Passive (we initiated)
	case InteractionEmailSent:
		return 1.0
	case InteractionNoteAdded:
		return 0.5

	// Responsive (they responded to us)
	case InteractionEmailOpen:
		return 3.0
	case InteractionEmailClick:
		return 5.0
	case InteractionLandingPageVisit:
		return 4.0
	case InteractionSocial:
		return 3.0

	// Active (they took action)
	case InteractionFormSubmission:
		return 10.0
	case InteractionEventRegistration:
		return 8.0
	case InteractionMeetingScheduled:
		return 12.0

	// High-value (they invested significant time)
	case InteractionEventAttendance:
		return 15.0
	case InteractionMeetingAttended:
		return 20.0
	case InteractionCallCompleted:
		return 15.0
	}
	return 0.0
}

// IsInbound reports whether the contact initiated the interaction.
func (t InteractionType) IsInbound() bool {
	switch t {
	case InteractionEmailOpen, InteractionEmailClick, InteractionLandingPageVisit,
		InteractionFormSubmission, InteractionEventRegistration, InteractionEventAttendance,
		InteractionMeetingScheduled, InteractionMeetingAttended, InteractionSocial:
		return true
	}
	return false
}

// IsValid reports whether t is one of the known interaction types.
func (t InteractionType) IsValid() bool {
	return t.BaseScore() > 0.0
}

// Interaction is a single touchpoint. The caller owns these values; the
// scoring engine only reads them.
type Interaction struct {
	Type       InteractionType `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EngagementConfig tunes the scoring algorithm. Construct once, never mutate.
type EngagementConfig struct {
	// HalfLifeDays is how quickly old interactions lose value: after this
	// many days an interaction is worth half its base score.
	HalfLifeDays float64

	// ConsistencyBonus is the maximum multiplier for steady weekly activity.
	ConsistencyBonus float64

	// MaxRawScore is the normalization denominator.
	MaxRawScore float64

	// MinInteractions is the count below which the consistency bonus does
	// not apply.
	MinInteractions int
}

// DefaultEngagementConfig returns the production tuning.
func DefaultEngagementConfig() EngagementConfig {
	return EngagementConfig{
		HalfLifeDays:     30.0,
		ConsistencyBonus: 1.5,
		MaxRawScore:      200.0,
		MinInteractions:  3,
	}
}

// Validate rejects configs the scoring functions cannot handle. Scoring
// itself never fails, so malformed tuning must be caught here.
func (c EngagementConfig) Validate() error {
	if c.HalfLifeDays <= 0 || math.IsNaN(c.HalfLifeDays) || math.IsInf(c.HalfLifeDays, 0) {
		return &InvalidFieldError{Field: "half_life_days", Reason: "Half-life must be a positive number of days"}
	}
	if c.MaxRawScore <= 0 || math.IsNaN(c.MaxRawScore) || math.IsInf(c.MaxRawScore, 0) {
		return &InvalidFieldError{Field: "max_raw_score", Reason: "Max raw score must be positive"}
	}
	if c.ConsistencyBonus < 1.0 || math.IsNaN(c.ConsistencyBonus) || math.IsInf(c.ConsistencyBonus, 0) {
		return &InvalidFieldError{Field: "consistency_bonus", Reason: "Consistency bonus must be at least 1.0"}
	}
	if c.MinInteractions < 0 {
		return &InvalidFieldError{Field: "min_interactions", Reason: "Minimum interaction count cannot be negative"}
	}
	return nil
}

// CalculateEngagementScore computes the 0-100 engagement score for a list of
// interactions. The list does not need to be sorted. An empty list scores 0.
func CalculateEngagementScore(interactions []Interaction, config EngagementConfig) float64 {
	if len(interactions) == 0 {
		return 0.0
	}

	now := time.Now().UTC()
	halfLifeSeconds := config.HalfLifeDays * 24.0 * 60.0 * 60.0

	raw := 0.0
	for _, in := range interactions {
		secondsAgo := now.Sub(in.OccurredAt).Seconds()
		if secondsAgo < 0 {
			secondsAgo = 0
		}
		decay := math.Pow(0.5, secondsAgo/halfLifeSeconds)
		raw += in.Type.BaseScore() * decay
	}

	raw *= consistencyFactor(interactions, config, now)

	normalized := (raw / config.MaxRawScore) * 100.0
	return clamp(normalized, 0.0, 100.0)
}

// consistencyFactor rewards regular engagement: the more distinct weeks with
// activity in the trailing 90 days, the closer the factor gets to
// config.ConsistencyBonus. Below the minimum interaction count there is no
// bonus.
func consistencyFactor(interactions []Interaction, config EngagementConfig, now time.Time) float64 {
	if len(interactions) < config.MinInteractions {
		return 1.0
	}

	ninetyDaysAgo := now.AddDate(0, 0, -90)
	activeWeeks := make(map[int]bool)

	for _, in := range interactions {
		if in.OccurredAt.Before(ninetyDaysAgo) {
			continue
		}
		daysAgo := int(now.Sub(in.OccurredAt).Hours() / 24)
		activeWeeks[daysAgo/7] = true
	}

	// 90 days is roughly 13 weeks.
	const maxWeeks = 13.0
	return 1.0 + (config.ConsistencyBonus-1.0)*(float64(len(activeWeeks))/maxWeeks)
}

// EngagementLevel buckets a score into five bands.
type EngagementLevel string

const (
	LevelCold     EngagementLevel = "cold"     // 0-20
	LevelWarming  EngagementLevel = "warming"  // 21-40
	LevelEngaged  EngagementLevel = "engaged"  // 41-60
	LevelHot      EngagementLevel = "hot"      // 61-80
	LevelChampion EngagementLevel = "champion" // 81-100
)

// EngagementLevelFromScore classifies a score. The score is truncated before
// bucketing, so 20.9 is still Cold.
func EngagementLevelFromScore(score float64) EngagementLevel {
	switch s := int(score); {
	case s <= 20:
		return LevelCold
	case s <= 40:
		return LevelWarming
	case s <= 60:
		return LevelEngaged
	case s <= 80:
		return LevelHot
	default:
		return LevelChampion
	}
}

// RecommendedAction suggests the next step for this engagement level.
func (l EngagementLevel) RecommendedAction() string {
	switch l {
	case LevelCold:
		return "Re-engagement campaign or remove from active lists"
	case LevelWarming:
		return "Nurture with valuable content"
	case LevelEngaged:
		return "Invite to events, offer demos"
	case LevelHot:
		return "Direct sales outreach, schedule call"
	case LevelChampion:
		return "Referral request, case study opportunity"
	}
	return ""
}

// EngagementTrend is the direction of change in engagement.
type EngagementTrend string

const (
	TrendDeclining EngagementTrend = "declining"
	TrendStable    EngagementTrend = "stable"
	TrendImproving EngagementTrend = "improving"
)

// CalculateEngagementTrend compares the score over the trailing 30 days with
// the score over the 30-60 day window. Each window is scored with the normal
// algorithm, decay still relative to now. A difference beyond +/-10 moves the
// trend off Stable.
func CalculateEngagementTrend(interactions []Interaction, config EngagementConfig) EngagementTrend {
	now := time.Now().UTC()
	recent := windowed(interactions, now, 0, 30)
	older := windowed(interactions, now, 30, 60)

	diff := CalculateEngagementScore(recent, config) - CalculateEngagementScore(older, config)

	switch {
	case diff > 10.0:
		return TrendImproving
	case diff < -10.0:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// CalculateEngagementVelocity measures how fast engagement is changing.
// Three 15-day windows are scored independently; the velocity is the change
// of the change: (s0-s1) - (s1-s2). Positive means accelerating engagement,
// negative means it is cooling off.
func CalculateEngagementVelocity(interactions []Interaction, config EngagementConfig) float64 {
	now := time.Now().UTC()

	s0 := CalculateEngagementScore(windowed(interactions, now, 0, 15), config)
	s1 := CalculateEngagementScore(windowed(interactions, now, 15, 30), config)
	s2 := CalculateEngagementScore(windowed(interactions, now, 30, 45), config)

	recentChange := s0 - s1
	olderChange := s1 - s2
	return recentChange - olderChange
}

// windowed selects interactions that occurred between fromDays and toDays
// ago. The 0-offset window is open-ended towards the future so that clock
// skew on fresh interactions cannot drop them.
func windowed(interactions []Interaction, now time.Time, fromDays, toDays int) []Interaction {
	newest := now.AddDate(0, 0, -fromDays)
	oldest := now.AddDate(0, 0, -toDays)

	var out []Interaction
	for _, in := range interactions {
		tooNew := fromDays > 0 && in.OccurredAt.After(newest)
		if !tooNew && in.OccurredAt.After(oldest) {
			out = append(out, in)
		}
	}
	return out
}

// TypeContribution is one entry in the top-contributors ranking.
type TypeContribution struct {
	Type         InteractionType `json:"type"`
	Contribution float64         `json:"contribution"`
	Count        int             `json:"count"`
}

// TopInteractionTypes ranks interaction types by their decayed contribution
// to the raw score and returns at most topN entries. Ties break on higher
// interaction count, then on declaration order.
func TopInteractionTypes(interactions []Interaction, config EngagementConfig, topN int) []TypeContribution {
	if topN <= 0 || len(interactions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	halfLifeSeconds := config.HalfLifeDays * 24.0 * 60.0 * 60.0

	contributions := make(map[InteractionType]*TypeContribution)
	for _, in := range interactions {
		secondsAgo := now.Sub(in.OccurredAt).Seconds()
		if secondsAgo < 0 {
			secondsAgo = 0
		}
		decayed := in.Type.BaseScore() * math.Pow(0.5, secondsAgo/halfLifeSeconds)

		entry, ok := contributions[in.Type]
		if !ok {
			entry = &TypeContribution{Type: in.Type}
			contributions[in.Type] = entry
		}
		entry.Contribution += decayed
		entry.Count++
	}

	order := make(map[InteractionType]int, len(AllInteractionTypes))
	for i, t := range AllInteractionTypes {
		order[t] = i
	}

	ranked := make([]TypeContribution, 0, len(contributions))
	for _, entry := range contributions {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Contribution != ranked[j].Contribution {
			return ranked[i].Contribution > ranked[j].Contribution
		}
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Type] < order[ranked[j].Type]
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// EngagementReport bundles every derived metric for one contact.
type EngagementReport struct {
	Score             float64            `json:"score"`
	Level             EngagementLevel    `json:"level"`
	RecommendedAction string             `json:"recommended_action"`
	Trend             EngagementTrend    `json:"trend"`
	Velocity          float64            `json:"velocity"`
	TopTypes          []TypeContribution `json:"top_types"`
	InteractionCount  int                `json:"interaction_count"`
}

// BuildEngagementReport runs the full scoring pipeline over one history.
func BuildEngagementReport(interactions []Interaction, config EngagementConfig) EngagementReport {
	score := CalculateEngagementScore(interactions, config)
	level := EngagementLevelFromScore(score)

	return EngagementReport{
		Score:             score,
		Level:             level,
		RecommendedAction: level.RecommendedAction(),
		Trend:             CalculateEngagementTrend(interactions, config),
		Velocity:          CalculateEngagementVelocity(interactions, config),
		TopTypes:          TopInteractionTypes(interactions, config, 3),
		InteractionCount:  len(interactions),
	}
}

// ParseInteractionType validates a wire token.
func ParseInteractionType(s string) (InteractionType, error) {
	t := InteractionType(s)
	if !t.IsValid() {
		return "", &InvalidFieldError{
			Field:  "interaction_type",
			Reason: fmt.Sprintf("Unknown interaction type '%s'", s),
		}
	}
	return t, nil
}
