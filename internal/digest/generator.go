// Package digest assembles classified conversations and calendar
// analytics into the five-section daily digest and renders it for
// display.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xaenox/daily-digest/internal/models"
)

const (
	// topicLimit caps the email topics section.
	topicLimit = 15
	// breakdownAgendaLimit caps agenda snippets in the calendar
	// breakdown.
	breakdownAgendaLimit = 150
	// urgentConfidence is the Do-item threshold for the priority
	// matrix and recommendations.
	urgentConfidence = 0.6
)

// Generator assembles digests. It is stateless; one instance serves
// concurrent generations.
type Generator struct{}

// NewGenerator returns a digest generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the complete digest from grouped conversations and
// a calendar analysis. It is a pure single-pass transform; identical
// inputs produce identical section content and ordering.
func (g *Generator) Generate(conversations map[string]models.Conversation,
	calendar models.CalendarAnalysis, userName string) models.Digest {

	ranked := rankConversations(conversations)

	totalEmails := 0
	for _, conv := range ranked {
		totalEmails += conv.EmailCount
	}

	return models.Digest{
		Title:       "Your Daily Digest",
		GeneratedAt: time.Now(),
		UserName:    userName,
		Sections: models.Sections{
			Snapshot:          buildSnapshot(ranked, calendar),
			CalendarBreakdown: buildCalendarBreakdown(calendar),
			EmailTopics:       buildEmailTopics(ranked),
			Actions:           buildActions(ranked),
			QuickCreates:      buildQuickCreates(ranked),
		},
		Metadata: models.Metadata{
			TotalConversations: len(ranked),
			TotalEmails:        totalEmails,
			TotalMeetings:      calendar.TotalMeetings,
			MeetingHours:       calendar.TotalMeetingHours,
			FocusHours:         calendar.FocusTimeHours,
		},
	}
}

// rankConversations orders conversations by importance score, then by
// most recent activity among equals.
func rankConversations(conversations map[string]models.Conversation) []models.Conversation {
	ranked := make([]models.Conversation, 0, len(conversations))
	for _, conv := range conversations {
		ranked = append(ranked, conv)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := importanceScore(ranked[i]), importanceScore(ranked[j])
		if si != sj {
			return si > sj
		}
		if !ranked[i].LatestDate.Equal(ranked[j].LatestDate) {
			return ranked[i].LatestDate.After(ranked[j].LatestDate)
		}
		// Map iteration is random; pin a total order.
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// importanceScore weights classifier confidence by action type, adds a
// thread-size factor and an importance-level bonus.
func importanceScore(conv models.Conversation) float64 {
	confidence := conv.Classification.Confidence
	var score float64
	switch conv.Classification.Action {
	case models.ActionDo:
		score = confidence * 3.0
	case models.ActionDelegate:
		score = confidence * 2.0
	case models.ActionDefer:
		score = confidence * 1.5
	default:
		score = confidence * 0.5
	}

	countFactor := float64(conv.EmailCount) / 10.0
	if countFactor > 1.0 {
		countFactor = 1.0
	}
	score += countFactor

	switch conv.Importance {
	case models.ImportanceHigh:
		score += 2.0
	case models.ImportanceNormal:
		score += 1.0
	}
	return score
}

func buildSnapshot(conversations []models.Conversation, calendar models.CalendarAnalysis) models.Snapshot {
	totalEmails := 0
	flagged := 0
	for _, conv := range conversations {
		totalEmails += conv.EmailCount
		switch conv.Classification.Action {
		case models.ActionDo, models.ActionDelegate:
			flagged++
		}
	}

	bullets := []string{fmt.Sprintf("%d unread emails since you last checked", totalEmails)}
	switch calendar.TotalMeetings {
	case 0:
		bullets = append(bullets, "No meetings scheduled today")
	case 1:
		bullets = append(bullets, fmt.Sprintf("1 meeting today (%v hours)", calendar.TotalMeetingHours))
	default:
		bullets = append(bullets, fmt.Sprintf("%d meetings today (%v hours total)",
			calendar.TotalMeetings, calendar.TotalMeetingHours))
	}
	bullets = append(bullets, fmt.Sprintf("Suggested actions: %d items flagged", flagged))

	return models.Snapshot{
		UnreadEmails:   totalEmails,
		MeetingsToday:  calendar.TotalMeetings,
		MeetingHours:   calendar.TotalMeetingHours,
		FlaggedActions: flagged,
		SummaryBullets: bullets,
	}
}

func buildCalendarBreakdown(calendar models.CalendarAnalysis) models.CalendarBreakdown {
	meetings := make([]models.BreakdownMeeting, 0, len(calendar.Meetings))
	for i, meeting := range calendar.Meetings {
		agenda := meeting.Agenda
		if agenda == "" {
			agenda = "No agenda provided"
		} else if len([]rune(agenda)) > breakdownAgendaLimit {
			agenda = string([]rune(agenda)[:breakdownAgendaLimit]) + "..."
		}
		meetings = append(meetings, models.BreakdownMeeting{
			Number:    i + 1,
			Time:      meeting.Time,
			Subject:   meeting.Subject,
			Organizer: meeting.Organizer,
			Location:  meeting.Location,
			Duration:  fmt.Sprintf("%v hours", meeting.DurationHours),
			Attendees: meeting.AttendeeCount,
			IsOnline:  meeting.IsOnline,
			Agenda:    agenda,
		})
	}

	return models.CalendarBreakdown{
		Meetings:     meetings,
		Summary:      calendar.Summary,
		FocusSummary: calendar.FocusSummary,
		TotalHours:   calendar.TotalMeetingHours,
		FocusHours:   calendar.FocusTimeHours,
		Patterns:     calendar.Patterns,
		BusiestHours: calendar.BusiestHours,
		Insights:     calendar.Insights,
	}
}

func buildEmailTopics(conversations []models.Conversation) models.EmailTopics {
	shown := conversations
	if len(shown) > topicLimit {
		shown = shown[:topicLimit]
	}

	topics := make([]models.Topic, 0, len(shown))
	for i, conv := range shown {
		sender := conv.LatestSender.Name
		if sender == "" {
			sender = "Unknown"
		}
		subject := conv.Subject
		if subject == "" {
			subject = "No Subject"
		}
		topics = append(topics, models.Topic{
			Number:         i + 1,
			Subject:        subject,
			EmailCount:     conv.EmailCount,
			LatestSender:   sender,
			Summary:        conv.Summary,
			Action:         formatRecommendation(conv.Classification),
			Confidence:     conv.Classification.Confidence,
			HasAttachments: conv.HasAttachments,
			Importance:     conv.Importance,
		})
	}

	return models.EmailTopics{
		Topics:             topics,
		TotalConversations: len(conversations),
		ShownConversations: len(topics),
	}
}

// formatRecommendation renders "Action: X - reason (Band confidence)".
func formatRecommendation(classification models.Classification) string {
	band := "Low confidence"
	if classification.Confidence > 0.7 {
		band = "High confidence"
	} else if classification.Confidence > 0.4 {
		band = "Medium confidence"
	}
	if classification.Reason != "" {
		return fmt.Sprintf("Action: %s - %s (%s)", classification.Action, classification.Reason, band)
	}
	return fmt.Sprintf("Action: %s (%s)", classification.Action, band)
}

func buildActions(conversations []models.Conversation) models.ActionsSection {
	byCategory := make(map[models.Action][]models.ActionItem, len(models.Actions))
	for _, action := range models.Actions {
		byCategory[action] = []models.ActionItem{}
	}

	for _, conv := range conversations {
		sender := conv.LatestSender.Name
		if sender == "" {
			sender = "Unknown"
		}
		subject := conv.Subject
		if subject == "" {
			subject = "No Subject"
		}
		action := conv.Classification.Action
		byCategory[action] = append(byCategory[action], models.ActionItem{
			Subject:    subject,
			Reason:     conv.Classification.Reason,
			Confidence: conv.Classification.Confidence,
			Sender:     sender,
		})
	}

	for _, action := range models.Actions {
		items := byCategory[action]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Confidence > items[j].Confidence
		})
	}

	totalActions := 0
	for _, action := range models.Actions {
		if action != models.ActionDelete {
			totalActions += len(byCategory[action])
		}
	}

	urgentImportant := 0
	for _, item := range byCategory[models.ActionDo] {
		if item.Confidence > urgentConfidence {
			urgentImportant++
		}
	}

	return models.ActionsSection{
		ByCategory:      byCategory,
		Recommendations: buildRecommendations(byCategory),
		TotalActions:    totalActions,
		PriorityMatrix: models.PriorityMatrix{
			UrgentImportant:       urgentImportant,
			NotUrgentImportant:    len(byCategory[models.ActionDefer]),
			UrgentNotImportant:    len(byCategory[models.ActionDelegate]),
			NotUrgentNotImportant: len(byCategory[models.ActionDelete]),
		},
	}
}

// buildRecommendations emits the human-readable action lines: up to 3
// confident Do items, 2 Delegate, 2 Defer, an archive line when Delete
// piles up, and up to 2 decision call-outs.
func buildRecommendations(byCategory map[models.Action][]models.ActionItem) []string {
	recommendations := []string{}

	doItems := byCategory[models.ActionDo]
	for _, item := range capItems(doItems, 3) {
		if item.Confidence > urgentConfidence {
			recommendations = append(recommendations, fmt.Sprintf("Do (Today): %s", item.Subject))
		}
	}
	delegateItems := byCategory[models.ActionDelegate]
	for _, item := range capItems(delegateItems, 2) {
		recommendations = append(recommendations,
			fmt.Sprintf("Delegate: %s → Assign to appropriate team member", item.Subject))
	}
	for _, item := range capItems(byCategory[models.ActionDefer], 2) {
		recommendations = append(recommendations,
			fmt.Sprintf("Defer: Schedule time next week for %s", item.Subject))
	}
	if deleteCount := len(byCategory[models.ActionDelete]); deleteCount > 5 {
		recommendations = append(recommendations,
			fmt.Sprintf("Delete: Archive %d informational/promotional emails", deleteCount))
	}

	decisions := 0
	for _, item := range append(append([]models.ActionItem{}, doItems...), delegateItems...) {
		if decisions == 2 {
			break
		}
		if strings.Contains(strings.ToLower(item.Subject), "decision") ||
			strings.Contains(strings.ToLower(item.Reason), "decide") {
			recommendations = append(recommendations, fmt.Sprintf("Decision Required: %s", item.Subject))
			decisions++
		}
	}
	return recommendations
}

// buildQuickCreates suggests up to 3 tasks, 2 delegations and 2
// scheduling entries. Advisory only; nothing is created anywhere.
func buildQuickCreates(conversations []models.Conversation) models.QuickCreates {
	actions := []models.QuickAction{}

	add := func(kind, description, priority string, meta models.QuickActionMeta) {
		actions = append(actions, models.QuickAction{
			ID:          fmt.Sprintf("%s_%d", kind, len(actions)),
			Type:        kind,
			Description: description,
			Priority:    priority,
			Source:      "email",
			Metadata:    meta,
		})
	}

	for _, conv := range filterByAction(conversations, models.ActionDo, 3) {
		sender := conv.LatestSender.Name
		if sender == "" {
			sender = "Unknown"
		}
		add("task", fmt.Sprintf("Review and respond: %s", subjectOrDefault(conv)), "high",
			models.QuickActionMeta{EmailCount: conv.EmailCount, Sender: sender})
	}
	for _, conv := range filterByAction(conversations, models.ActionDelegate, 2) {
		add("delegation", fmt.Sprintf("Assign to team member: %s", subjectOrDefault(conv)), "medium",
			models.QuickActionMeta{SuggestedAssignee: "Team member with relevant expertise"})
	}
	for _, conv := range filterByAction(conversations, models.ActionDefer, 2) {
		add("calendar", fmt.Sprintf("Schedule meeting for: %s", subjectOrDefault(conv)), "low",
			models.QuickActionMeta{SuggestedDuration: "30 minutes", SuggestedTimeframe: "Next week"})
	}

	return models.QuickCreates{
		SuggestedActions: actions,
		TotalSuggestions: len(actions),
		Note:             "Quick create actions - manual creation required (no integration yet)",
	}
}

func filterByAction(conversations []models.Conversation, action models.Action, limit int) []models.Conversation {
	var out []models.Conversation
	for _, conv := range conversations {
		if conv.Classification.Action == action {
			out = append(out, conv)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func capItems(items []models.ActionItem, limit int) []models.ActionItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func subjectOrDefault(conv models.Conversation) string {
	if conv.Subject == "" {
		return "No Subject"
	}
	return conv.Subject
}
