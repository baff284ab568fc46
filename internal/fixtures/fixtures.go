// Package fixtures generates sample inbox and calendar data with the
// same record shapes a live fetch produces. Used by the demo driver
// and anywhere a digest needs exercising without a mail account.
package fixtures

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xaenox/daily-digest/internal/models"
)

type emailTemplate struct {
	subject     string
	sender      models.Sender
	body        string
	importance  models.Importance
	attachments bool
	threaded    bool
}

type eventTemplate struct {
	subject   string
	organizer string
	duration  time.Duration
	location  string
	agenda    string
	attendees int
}

var emailTemplates = []emailTemplate{
	{
		subject: "Project Apollo Launch - Final Slides",
		sender:  models.Sender{Name: "Sarah Chen", Address: "sarah.chen@company.com"},
		body: "Hi team,\n\nI've completed the final revisions to the Apollo launch presentation. " +
			"Can you please review and approve the slides before tomorrow's client meeting? " +
			"Please reply by EOD today with your approval or any final comments.\n\nThanks,\nSarah",
		importance:  models.ImportanceHigh,
		attachments: true,
		threaded:    true,
	},
	{
		subject: "IT Security Reminder - Password Reset Required",
		sender:  models.Sender{Name: "IT Helpdesk", Address: "it-support@company.com"},
		body: "Dear User,\n\nYour corporate password will expire in 3 days. Please reset your " +
			"password before Friday to avoid account lockout.\n\nBest regards,\nIT Security Team",
		importance: models.ImportanceHigh,
		threaded:   true,
	},
	{
		subject: "Team Offsite - Catering Options",
		sender:  models.Sender{Name: "Tom Richardson", Address: "tom.richardson@company.com"},
		body: "Hey everyone,\n\nFor next week's team offsite, we need to finalize the catering. " +
			"Can you all please vote on your preference? We need to confirm by Wednesday. " +
			"Also, please let me know about any dietary restrictions.\n\nThanks!\nTom",
		attachments: true,
		threaded:    true,
	},
	{
		subject: "Client Feedback - Proposal Draft",
		sender:  models.Sender{Name: "Emma Li", Address: "emma.li@clientcorp.com"},
		body: "Hi Team,\n\nI've reviewed the latest proposal draft with our stakeholders. " +
			"Timeline needs adjustment and the budget breakdown needs more detail. " +
			"Please address these points and send us a revised version by end of week.\n\nBest,\nEmma",
		importance:  models.ImportanceHigh,
		attachments: true,
		threaded:    true,
	},
	{
		subject: "Q4 Marketing Newsletter - October Edition",
		sender:  models.Sender{Name: "Marketing Team", Address: "newsletter@company.com"},
		body: "October Newsletter\n\nIn this month's edition: new product launch success, " +
			"upcoming events and webinars, industry news and trends.\n\n" +
			"To unsubscribe from this newsletter, click here.",
		importance: models.ImportanceLow,
	},
	{
		subject: "Budget Review Meeting - Action Items",
		sender:  models.Sender{Name: "Michael Zhang", Address: "michael.zhang@company.com"},
		body: "Team,\n\nFollowing today's budget review, here are the action items. " +
			"Can someone else handle the facilities budget review? I'm swamped with the Apollo " +
			"project.\n\nLet's reconvene Friday to finalize everything.\n\nMichael",
		threaded: true,
	},
	{
		subject: "Urgent: Server Maintenance Tonight",
		sender:  models.Sender{Name: "DevOps Team", Address: "devops@company.com"},
		body: "URGENT NOTICE\n\nWe will be performing critical server maintenance tonight from " +
			"10 PM to 2 AM EST. Please save all work and log out before 9:45 PM.\n\nDevOps Team",
		importance: models.ImportanceHigh,
	},
	{
		subject: "Schedule Design Review for New Feature",
		sender:  models.Sender{Name: "Alex Johnson", Address: "alex.johnson@company.com"},
		body: "Hi,\n\nWe need to schedule a design review for the new dashboard feature. " +
			"Can we schedule an hour next week? Please let me know your availability.\n\nThanks,\nAlex",
		attachments: true,
		threaded:    true,
	},
	{
		subject: "FYI: Industry Report - Mobile Trends 2024",
		sender:  models.Sender{Name: "Research Team", Address: "research@company.com"},
		body: "Team,\n\nFor your information, we've published our latest industry report on mobile " +
			"trends. No action required, just keeping everyone informed.\n\nResearch Team",
		importance:  models.ImportanceLow,
		attachments: true,
	},
}

var eventTemplates = []eventTemplate{
	{
		subject:   "Project Apollo Check-In",
		organizer: "Sarah Chen",
		duration:  60 * time.Minute,
		location:  "Conference Room A",
		agenda:    "Review launch preparations, finalize client presentation deck, align on messaging for tomorrow's meeting.",
		attendees: 5,
	},
	{
		subject:   "Marketing Strategy Review",
		organizer: "David Kim",
		duration:  90 * time.Minute,
		location:  "Zoom Meeting",
		agenda:    "Q4 campaign planning, budget allocation, review performance metrics from Q3.",
		attendees: 8,
	},
	{
		subject:   "Client Feedback Call (ACME Corp)",
		organizer: "Emma Li",
		duration:  45 * time.Minute,
		location:  "Teams Meeting",
		agenda:    "Walk through proposal feedback, discuss timeline adjustments, agree on next revision deadline.",
		attendees: 4,
	},
	{
		subject:   "1:1 with Manager",
		organizer: "Alex Johnson",
		duration:  30 * time.Minute,
		location:  "Office 304",
		agenda:    "Weekly update, discuss upcoming projects, address any blockers or concerns.",
		attendees: 2,
	},
	{
		subject:   "All-Hands Meeting",
		organizer: "CEO",
		duration:  60 * time.Minute,
		location:  "Main Auditorium + Zoom",
		agenda:    "Company updates, Q3 results, Q4 priorities, employee recognition.",
		attendees: 150,
	},
	{
		subject:   "Design Sprint Planning",
		organizer: "UX Team Lead",
		duration:  120 * time.Minute,
		location:  "Design Studio",
		agenda:    "Plan next week's design sprint, assign roles, review user research findings.",
		attendees: 6,
	},
}

var meetingSlots = [][2]int{
	{9, 0}, {10, 0}, {11, 30}, {14, 0}, {15, 0}, {16, 0},
}

// SampleData produces emailCount messages and meetingCount events
// shaped like live-fetched records. Some messages share conversation
// IDs to exercise threading.
func SampleData(emailCount, meetingCount int) ([]models.EmailMessage, []models.CalendarEvent) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return SampleEmails(rng, emailCount), SampleEvents(rng, meetingCount)
}

// SampleEmails generates messages spread over the last two days.
func SampleEmails(rng *rand.Rand, count int) []models.EmailMessage {
	emails := make([]models.EmailMessage, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		template := emailTemplates[i%len(emailTemplates)]

		conversationID := uuid.New().String()
		if template.threaded && i > 0 && rng.Float64() > 0.5 {
			conversationID = emails[len(emails)-1].ConversationID
		}

		received := now.
			Add(-time.Duration(rng.Intn(48)) * time.Hour).
			Add(-time.Duration(rng.Intn(60)) * time.Minute)

		importance := template.importance
		if importance == "" {
			importance = models.ImportanceNormal
		}

		preview := template.body
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}

		emails = append(emails, models.EmailMessage{
			ID:             uuid.New().String(),
			ConversationID: conversationID,
			Subject:        template.subject,
			Sender:         template.sender,
			Received:       received,
			Preview:        preview,
			Body:           template.body,
			Importance:     importance,
			HasAttachments: template.attachments,
		})
	}
	return emails
}

// SampleEvents generates events in today's meeting slots, sorted by
// start time.
func SampleEvents(rng *rand.Rand, count int) []models.CalendarEvent {
	if count > len(meetingSlots) {
		count = len(meetingSlots)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	slots := rng.Perm(len(meetingSlots))[:count]
	events := make([]models.CalendarEvent, 0, count)
	for i, slot := range slots {
		template := eventTemplates[i%len(eventTemplates)]
		start := today.Add(time.Duration(meetingSlots[slot][0])*time.Hour +
			time.Duration(meetingSlots[slot][1])*time.Minute)
		end := start.Add(template.duration)

		lower := strings.ToLower(template.location)
		isOnline := strings.Contains(lower, "zoom") || strings.Contains(lower, "teams")

		attendees := make([]models.Attendee, 0, template.attendees)
		for j := 0; j < template.attendees; j++ {
			attendees = append(attendees, models.Attendee{
				Name:     fmt.Sprintf("Attendee %d", j),
				Address:  fmt.Sprintf("attendee%d@company.com", j),
				Required: true,
			})
		}

		events = append(events, models.CalendarEvent{
			ID:              uuid.New().String(),
			Subject:         template.subject,
			Start:           start.Format(time.RFC3339),
			End:             end.Format(time.RFC3339),
			Organizer: models.Sender{
				Name:    template.organizer,
				Address: organizerAddress(template.organizer),
			},
			Location:        template.location,
			IsOnlineMeeting: isOnline,
			Attendees:       attendees,
			Body:            template.agenda,
			BodyType:        "text",
			ShowAs:          "busy",
			Importance:      models.ImportanceNormal,
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })
	return events
}

func organizerAddress(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@company.com"
}
