package models

import "time"

// Sender identifies the author of an email message.
type Sender struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// EmailMessage is one message as delivered by the fetch layer. The
// pipeline never mutates it; redaction returns a copy.
type EmailMessage struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id,omitempty"`
	Subject        string     `json:"subject"`
	Sender         Sender     `json:"from"`
	Received       time.Time  `json:"received_at"`
	Preview        string     `json:"preview,omitempty"`
	Body           string     `json:"body,omitempty"`
	Importance     Importance `json:"importance"`
	HasAttachments bool       `json:"has_attachments"`
}

// BodyText returns the preview when present, otherwise the full body.
func (m EmailMessage) BodyText() string {
	if m.Preview != "" {
		return m.Preview
	}
	return m.Body
}

// Attendee is a meeting participant.
type Attendee struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Required bool   `json:"required"`
}

// CalendarEvent is one event for the digest day. Start and End are the
// raw provider timestamps (RFC 3339, "Z" or offset qualified); the
// analyzer owns parsing them.
type CalendarEvent struct {
	ID              string     `json:"id"`
	Subject         string     `json:"subject"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	Organizer       Sender     `json:"organizer"`
	Location        string     `json:"location,omitempty"`
	IsOnlineMeeting bool       `json:"is_online_meeting"`
	Attendees       []Attendee `json:"attendees,omitempty"`
	Body            string     `json:"body,omitempty"`
	BodyType        string     `json:"body_type,omitempty"` // "text" or "html"
	ShowAs          string     `json:"show_as,omitempty"`
	IsAllDay        bool       `json:"is_all_day"`
	Importance      Importance `json:"importance"`
	IsCancelled     bool       `json:"is_cancelled"`
}

// Conversation aggregates the messages of one thread. Messages are
// ordered newest first; the classification is derived from the newest
// message with confidence adjusted by thread length.
type Conversation struct {
	ID             string         `json:"conversation_id"`
	Messages       []EmailMessage `json:"emails"`
	EmailCount     int            `json:"email_count"`
	Subject        string         `json:"subject"`
	LatestSender   Sender         `json:"latest_sender"`
	LatestDate     time.Time      `json:"latest_date"`
	FirstDate      time.Time      `json:"first_date"`
	HasAttachments bool           `json:"has_attachments"`
	Importance     Importance     `json:"importance"`
	Classification Classification `json:"classification"`
	Summary        string         `json:"summary"`
}

// Meeting is a normalized, display-ready calendar event.
type Meeting struct {
	ID                    string     `json:"id"`
	Subject               string     `json:"subject"`
	Time                  string     `json:"time"`
	Start                 time.Time  `json:"start_datetime"`
	End                   time.Time  `json:"end_datetime"`
	DurationMinutes       int        `json:"duration_minutes"`
	DurationHours         float64    `json:"duration_hours"`
	Organizer             string     `json:"organizer"`
	Location              string     `json:"location"`
	IsOnline              bool       `json:"is_online"`
	Agenda                string     `json:"agenda,omitempty"`
	AttendeeCount         int        `json:"attendee_count"`
	RequiredAttendeeCount int        `json:"required_attendee_count"`
	ShowAs                string     `json:"show_as"`
	IsAllDay              bool       `json:"is_all_day"`
	Importance            Importance `json:"importance"`
}

// MeetingExtreme names the longest or shortest meeting of the day.
type MeetingExtreme struct {
	Subject         string `json:"subject"`
	DurationMinutes int    `json:"duration"`
}

// MeetingPatterns holds aggregate statistics over the day's meetings.
type MeetingPatterns struct {
	BackToBackCount        int             `json:"back_to_back_count"`
	OnlineMeetings         int             `json:"online_meetings"`
	InPersonMeetings       int             `json:"in_person_meetings"`
	AverageDurationMinutes int             `json:"average_duration"`
	LongestMeeting         *MeetingExtreme `json:"longest_meeting,omitempty"`
	ShortestMeeting        *MeetingExtreme `json:"shortest_meeting,omitempty"`
}

// CalendarAnalysis is the calendar analyzer's full output.
type CalendarAnalysis struct {
	Meetings          []Meeting       `json:"meetings"`
	TotalMeetings     int             `json:"total_meetings"`
	TotalMeetingHours float64         `json:"total_meeting_hours"`
	FocusTimeHours    float64         `json:"focus_time_hours"`
	Summary           string          `json:"summary"`
	FocusSummary      string          `json:"focus_summary"`
	Patterns          MeetingPatterns `json:"patterns"`
	BusiestHours      []int           `json:"busiest_hours"`
	Insights          string          `json:"insights,omitempty"` // AI enrichment, optional
}
