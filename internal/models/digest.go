package models

import "time"

// Digest is the top-level daily digest artifact: five named sections
// plus recomputed aggregate metadata. It is immutable after assembly;
// rendering is a separate view-only pass.
type Digest struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	UserName    string    `json:"user_name"`
	Sections    Sections  `json:"sections"`
	Metadata    Metadata  `json:"metadata"`
}

// Sections holds the five digest sections.
type Sections struct {
	Snapshot          Snapshot          `json:"snapshot"`
	CalendarBreakdown CalendarBreakdown `json:"calendar_breakdown"`
	EmailTopics       EmailTopics       `json:"email_topics"`
	Actions           ActionsSection    `json:"actions"`
	QuickCreates      QuickCreates      `json:"quick_creates"`
}

// Snapshot is the at-a-glance opening section.
type Snapshot struct {
	UnreadEmails   int      `json:"unread_emails"`
	MeetingsToday  int      `json:"meetings_today"`
	MeetingHours   float64  `json:"meeting_hours"`
	FlaggedActions int      `json:"flagged_actions"`
	SummaryBullets []string `json:"summary_bullets"`
}

// BreakdownMeeting is one numbered entry in the calendar breakdown.
type BreakdownMeeting struct {
	Number    int    `json:"number"`
	Time      string `json:"time"`
	Subject   string `json:"subject"`
	Organizer string `json:"organizer"`
	Location  string `json:"location"`
	Duration  string `json:"duration"`
	Attendees int    `json:"attendees"`
	IsOnline  bool   `json:"is_online"`
	Agenda    string `json:"agenda"`
}

// CalendarBreakdown is the calendar section of the digest.
type CalendarBreakdown struct {
	Meetings     []BreakdownMeeting `json:"meetings"`
	Summary      string             `json:"summary"`
	FocusSummary string             `json:"focus_summary"`
	TotalHours   float64            `json:"total_hours"`
	FocusHours   float64            `json:"focus_hours"`
	Patterns     MeetingPatterns    `json:"patterns"`
	BusiestHours []int              `json:"busiest_hours"`
	Insights     string             `json:"insights,omitempty"` // AI enrichment, optional
}

// Topic is one ranked conversation in the email topics section.
type Topic struct {
	Number         int        `json:"number"`
	Subject        string     `json:"subject"`
	EmailCount     int        `json:"email_count"`
	LatestSender   string     `json:"latest_sender"`
	Summary        string     `json:"summary"`
	Action         string     `json:"action"`
	Confidence     float64    `json:"confidence"`
	HasAttachments bool       `json:"has_attachments"`
	Importance     Importance `json:"importance"`
}

// EmailTopics is the conversation summary section.
type EmailTopics struct {
	Topics             []Topic `json:"topics"`
	TotalConversations int     `json:"total_conversations"`
	ShownConversations int     `json:"shown_conversations"`
}

// ActionItem is one conversation listed under its 4D category.
type ActionItem struct {
	Subject    string  `json:"subject"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Sender     string  `json:"sender"`
}

// PriorityMatrix buckets action items Eisenhower-style.
type PriorityMatrix struct {
	UrgentImportant       int `json:"urgent_important"`
	NotUrgentImportant    int `json:"not_urgent_important"`
	UrgentNotImportant    int `json:"urgent_not_important"`
	NotUrgentNotImportant int `json:"not_urgent_not_important"`
}

// ActionsSection groups conversations by 4D category with
// recommendations and a priority matrix.
type ActionsSection struct {
	ByCategory      map[Action][]ActionItem `json:"by_category"`
	Recommendations []string                `json:"recommendations"`
	TotalActions    int                     `json:"total_actions"`
	PriorityMatrix  PriorityMatrix          `json:"priority_matrix"`
}

// QuickActionMeta carries suggestion-specific context.
type QuickActionMeta struct {
	EmailCount         int    `json:"email_count,omitempty"`
	Sender             string `json:"sender,omitempty"`
	SuggestedAssignee  string `json:"suggested_assignee,omitempty"`
	SuggestedDuration  string `json:"suggested_duration,omitempty"`
	SuggestedTimeframe string `json:"suggested_timeframe,omitempty"`
}

// QuickAction is one advisory suggestion; it carries no side effects.
type QuickAction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // "task", "delegation" or "calendar"
	Description string          `json:"description"`
	Priority    string          `json:"priority"`
	Source      string          `json:"source"`
	Metadata    QuickActionMeta `json:"metadata"`
}

// QuickCreates is the suggested quick actions section.
type QuickCreates struct {
	SuggestedActions []QuickAction `json:"suggested_actions"`
	TotalSuggestions int           `json:"total_suggestions"`
	Note             string        `json:"note"`
}

// Metadata is recomputed aggregate counts for the whole digest.
type Metadata struct {
	TotalConversations int     `json:"total_conversations"`
	TotalEmails        int     `json:"total_emails"`
	TotalMeetings      int     `json:"total_meetings"`
	MeetingHours       float64 `json:"meeting_hours"`
	FocusHours         float64 `json:"focus_hours"`
}
