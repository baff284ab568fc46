package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/daily-digest/internal/models"
)

func event(id, subject, start, end string) models.CalendarEvent {
	return models.CalendarEvent{
		ID:        id,
		Subject:   subject,
		Start:     start,
		End:       end,
		Organizer: models.Sender{Name: "Sarah Chen", Address: "sarah.chen@company.com"},
		Location:  "Conference Room A",
	}
}

func TestAnalyze_EmptyCalendar(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze(nil, 9, 17)

	assert.Empty(t, analysis.Meetings)
	assert.Zero(t, analysis.TotalMeetings)
	assert.Zero(t, analysis.TotalMeetingHours)
	assert.Equal(t, 8.0, analysis.FocusTimeHours)
	assert.Equal(t, "You have no meetings scheduled for today.", analysis.Summary)
	assert.Equal(t, "Your entire 8-hour work day is available for focused work.", analysis.FocusSummary)
	assert.Empty(t, analysis.BusiestHours)
}

func TestAnalyze_CancelledEventsExcluded(t *testing.T) {
	a := NewAnalyzer(nil)

	cancelled := event("e1", "Cancelled sync", "2024-03-15T10:00:00Z", "2024-03-15T11:00:00Z")
	cancelled.IsCancelled = true

	analysis := a.Analyze([]models.CalendarEvent{cancelled}, 9, 17)
	assert.Empty(t, analysis.Meetings)
	assert.Equal(t, "You have no meetings scheduled for today.", analysis.Summary)

	kept := event("e2", "Standup", "2024-03-15T09:00:00Z", "2024-03-15T09:30:00Z")
	analysis = a.Analyze([]models.CalendarEvent{cancelled, kept}, 9, 17)
	require.Len(t, analysis.Meetings, 1)
	assert.Equal(t, "Standup", analysis.Meetings[0].Subject)
}

func TestAnalyze_SingleMeeting(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "Standup", "2024-03-15T09:00:00Z", "2024-03-15T09:30:00Z"),
	}, 9, 17)

	require.Len(t, analysis.Meetings, 1)
	m := analysis.Meetings[0]
	assert.Equal(t, "9:00 AM - 9:30 AM", m.Time)
	assert.Equal(t, 30, m.DurationMinutes)
	assert.Equal(t, 0.5, m.DurationHours)
	assert.Equal(t, "Sarah Chen", m.Organizer)
	assert.Equal(t, "busy", m.ShowAs)
	assert.Equal(t, models.ImportanceNormal, m.Importance)

	assert.Equal(t, 1, analysis.TotalMeetings)
	assert.Equal(t, 0.5, analysis.TotalMeetingHours)
	assert.Equal(t, 7.5, analysis.FocusTimeHours)
	assert.Equal(t, "You have 1 meeting today (0.5 hours).", analysis.Summary)
	assert.Equal(t, "You have 7.5 hours of dedicated focus time scheduled.", analysis.FocusSummary)
}

func TestAnalyze_MeetingsSortedByStart(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e2", "Afternoon", "2024-03-15T14:00:00Z", "2024-03-15T15:00:00Z"),
		event("e1", "Morning", "2024-03-15T09:00:00Z", "2024-03-15T10:00:00Z"),
	}, 9, 17)

	require.Len(t, analysis.Meetings, 2)
	assert.Equal(t, "Morning", analysis.Meetings[0].Subject)
	assert.Equal(t, "Afternoon", analysis.Meetings[1].Subject)
	assert.Equal(t, "You have 2 meetings today (2 hours total).", analysis.Summary)
}

func TestAnalyze_BackToBack(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "A", "2024-03-15T09:00:00Z", "2024-03-15T10:00:00Z"),
		event("e2", "B", "2024-03-15T10:00:00Z", "2024-03-15T11:00:00Z"),
		event("e3", "C", "2024-03-15T11:04:00Z", "2024-03-15T11:30:00Z"),
		event("e4", "D", "2024-03-15T14:00:00Z", "2024-03-15T15:00:00Z"),
	}, 9, 17)

	// B follows A with no gap, C follows B within five minutes, D is
	// well clear.
	assert.Equal(t, 2, analysis.Patterns.BackToBackCount)
}

func TestAnalyze_BusiestHours(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "Long", "2024-03-15T09:00:00Z", "2024-03-15T11:00:00Z"),
		event("e2", "Short", "2024-03-15T09:00:00Z", "2024-03-15T09:30:00Z"),
	}, 9, 17)

	assert.Equal(t, []int{9, 10, 11}, analysis.BusiestHours)
}

func TestAnalyze_Patterns(t *testing.T) {
	a := NewAnalyzer(nil)

	online := event("e1", "Remote sync", "2024-03-15T09:00:00Z", "2024-03-15T10:30:00Z")
	online.Location = "Zoom Meeting"
	short := event("e2", "Check-in", "2024-03-15T11:00:00Z", "2024-03-15T11:30:00Z")

	analysis := a.Analyze([]models.CalendarEvent{online, short}, 9, 17)

	assert.Equal(t, 1, analysis.Patterns.OnlineMeetings)
	assert.Equal(t, 1, analysis.Patterns.InPersonMeetings)
	assert.Equal(t, 60, analysis.Patterns.AverageDurationMinutes)
	require.NotNil(t, analysis.Patterns.LongestMeeting)
	assert.Equal(t, "Remote sync", analysis.Patterns.LongestMeeting.Subject)
	assert.Equal(t, 90, analysis.Patterns.LongestMeeting.DurationMinutes)
	require.NotNil(t, analysis.Patterns.ShortestMeeting)
	assert.Equal(t, "Check-in", analysis.Patterns.ShortestMeeting.Subject)
}

func TestAnalyze_FocusSummaryBuckets(t *testing.T) {
	a := NewAnalyzer(nil)

	cases := []struct {
		name    string
		end     string
		summary string
	}{
		{"fully booked", "2024-03-15T17:00:00Z", "Your day is fully booked with meetings."},
		{"minutes left", "2024-03-15T16:30:00Z", "You have 30 minutes of focus time available between meetings."},
		{"one hour", "2024-03-15T16:00:00Z", "You have 1 hour of dedicated focus time scheduled."},
		{"several hours", "2024-03-15T12:00:00Z", "You have 5 hours of dedicated focus time scheduled."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analysis := a.Analyze([]models.CalendarEvent{
				event("e1", "Block", "2024-03-15T09:00:00Z", tc.end),
			}, 9, 17)
			assert.Equal(t, tc.summary, analysis.FocusSummary)
		})
	}
}

// Meetings outside the working window leave focus time untouched; the
// estimate never exceeds the window span or drops below zero.
func TestAnalyze_FocusTimeBounds(t *testing.T) {
	a := NewAnalyzer(nil)

	outside := a.Analyze([]models.CalendarEvent{
		event("e1", "Dinner", "2024-03-15T18:00:00Z", "2024-03-15T19:00:00Z"),
	}, 9, 17)
	assert.Equal(t, 8.0, outside.FocusTimeHours)

	overbooked := a.Analyze([]models.CalendarEvent{
		event("e1", "A", "2024-03-15T09:00:00Z", "2024-03-15T17:00:00Z"),
		event("e2", "B", "2024-03-15T09:00:00Z", "2024-03-15T17:00:00Z"),
	}, 9, 17)
	assert.Equal(t, 0.0, overbooked.FocusTimeHours)

	straddling := a.Analyze([]models.CalendarEvent{
		event("e1", "Early", "2024-03-15T08:00:00Z", "2024-03-15T10:00:00Z"),
	}, 9, 17)
	// Only the 9-10 portion counts against the window.
	assert.Equal(t, 7.0, straddling.FocusTimeHours)
}

func TestAnalyze_TimestampFormats(t *testing.T) {
	a := NewAnalyzer(nil)

	// Offset-qualified timestamps keep their wall clock.
	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "Offset", "2024-03-15T10:00:00-05:00", "2024-03-15T11:00:00-05:00"),
		event("e2", "Bare", "2024-03-15T13:00:00", "2024-03-15T13:45:00"),
	}, 9, 17)

	require.Len(t, analysis.Meetings, 2)
	assert.Equal(t, "10:00 AM - 11:00 AM", analysis.Meetings[0].Time)
	assert.Equal(t, 45, analysis.Meetings[1].DurationMinutes)
}

func TestAnalyze_MalformedTimestampRecovered(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "Broken", "not-a-time", "also-not-a-time"),
	}, 9, 17)

	require.Len(t, analysis.Meetings, 1)
	assert.Equal(t, 0, analysis.Meetings[0].DurationMinutes)
	assert.GreaterOrEqual(t, analysis.FocusTimeHours, 0.0)
	assert.LessOrEqual(t, analysis.FocusTimeHours, 8.0)
}

func TestNormalize_NegativeDurationClamped(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		event("e1", "Inverted", "2024-03-15T11:00:00Z", "2024-03-15T10:00:00Z"),
	}, 9, 17)

	require.Len(t, analysis.Meetings, 1)
	m := analysis.Meetings[0]
	assert.Equal(t, 0, m.DurationMinutes)
	assert.Equal(t, m.Start, m.End)
}

func TestNormalize_Defaults(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis := a.Analyze([]models.CalendarEvent{
		{ID: "e1", Start: "2024-03-15T09:00:00Z", End: "2024-03-15T09:30:00Z"},
	}, 9, 17)

	require.Len(t, analysis.Meetings, 1)
	m := analysis.Meetings[0]
	assert.Equal(t, "No Subject", m.Subject)
	assert.Equal(t, "Unknown", m.Organizer)
	assert.Equal(t, "No location specified", m.Location)
	assert.False(t, m.IsOnline)
}

func TestNormalize_OnlineLocation(t *testing.T) {
	a := NewAnalyzer(nil)

	ev := event("e1", "Sync", "2024-03-15T09:00:00Z", "2024-03-15T09:30:00Z")
	ev.Location = ""
	ev.IsOnlineMeeting = true

	analysis := a.Analyze([]models.CalendarEvent{ev}, 9, 17)
	require.Len(t, analysis.Meetings, 1)
	assert.Equal(t, "Online Meeting", analysis.Meetings[0].Location)
	assert.True(t, analysis.Meetings[0].IsOnline)

	ev.Location = "Teams Meeting"
	ev.IsOnlineMeeting = false
	analysis = a.Analyze([]models.CalendarEvent{ev}, 9, 17)
	assert.True(t, analysis.Meetings[0].IsOnline)
	assert.Equal(t, "Teams Meeting", analysis.Meetings[0].Location)
}

func TestAgendaSnippet(t *testing.T) {
	a := NewAnalyzer(nil)

	ev := event("e1", "Sync", "2024-03-15T09:00:00Z", "2024-03-15T09:30:00Z")
	ev.Body = "<p>Review &amp; approve the <b>launch deck</b></p>"
	ev.BodyType = "html"

	analysis := a.Analyze([]models.CalendarEvent{ev}, 9, 17)
	require.Len(t, analysis.Meetings, 1)
	assert.Equal(t, "Review & approve the launch deck", analysis.Meetings[0].Agenda)

	ev.Body = strings.Repeat("a", 250)
	ev.BodyType = "text"
	analysis = a.Analyze([]models.CalendarEvent{ev}, 9, 17)
	agenda := analysis.Meetings[0].Agenda
	assert.True(t, strings.HasSuffix(agenda, "..."))
	assert.Len(t, agenda, 203)
}
