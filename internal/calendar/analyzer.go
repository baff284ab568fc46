// Package calendar turns a day's event records into meeting lists,
// meeting-hour totals, a focus-time estimate and pattern statistics.
package calendar

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/xaenox/daily-digest/internal/models"
)

const (
	// agendaLimit caps the extracted agenda snippet.
	agendaLimit = 200
	// backToBackGap is the maximum break, in minutes, for two meetings
	// to count as back-to-back.
	backToBackGap = 5
	// busiestHourCount is how many top hours the analysis reports.
	busiestHourCount = 3
)

// onlineKeywords mark a location string as a virtual meeting even when
// the online flag is absent.
var onlineKeywords = []string{"teams", "zoom", "meet", "webex"}

// Analyzer computes calendar analytics over one day of events. The
// sanitizer policy is immutable, so one Analyzer serves concurrent
// requests.
type Analyzer struct {
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewAnalyzer builds an analyzer. The strict sanitizer strips all
// markup from HTML agenda bodies.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{sanitizer: bluemonday.StrictPolicy(), logger: logger}
}

// Analyze processes non-cancelled events against the given working
// hours (whole clock hours, end exclusive). Cancelled events never
// reach the returned analysis. Per-record problems are recovered
// locally; the batch never fails for one bad event.
func (a *Analyzer) Analyze(events []models.CalendarEvent, workStart, workEnd int) models.CalendarAnalysis {
	if len(events) == 0 {
		return a.emptyAnalysis(workStart, workEnd)
	}

	var meetings []models.Meeting
	totalMinutes := 0
	for _, event := range events {
		if event.IsCancelled {
			continue
		}
		meeting := a.normalize(event)
		meetings = append(meetings, meeting)
		totalMinutes += meeting.DurationMinutes
	}
	if len(meetings) == 0 {
		return a.emptyAnalysis(workStart, workEnd)
	}

	// Start-time order is load-bearing: back-to-back detection and
	// busiest-hour ordering both depend on it.
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Start.Before(meetings[j].Start)
	})

	totalHours := roundHours(float64(totalMinutes) / 60)
	focusHours := focusTime(meetings, workStart, workEnd)

	return models.CalendarAnalysis{
		Meetings:          meetings,
		TotalMeetings:     len(meetings),
		TotalMeetingHours: totalHours,
		FocusTimeHours:    focusHours,
		Summary:           meetingSummary(len(meetings), totalHours),
		FocusSummary:      focusSummary(focusHours),
		Patterns:          analyzePatterns(meetings),
		BusiestHours:      busiestHours(meetings),
	}
}

func (a *Analyzer) emptyAnalysis(workStart, workEnd int) models.CalendarAnalysis {
	span := workEnd - workStart
	return models.CalendarAnalysis{
		Meetings:       []models.Meeting{},
		FocusTimeHours: float64(span),
		Summary:        "You have no meetings scheduled for today.",
		FocusSummary:   fmt.Sprintf("Your entire %d-hour work day is available for focused work.", span),
		BusiestHours:   []int{},
	}
}

// normalize converts one raw event into a display-ready meeting.
func (a *Analyzer) normalize(event models.CalendarEvent) models.Meeting {
	start := a.parseEventTime(event.Start)
	end := a.parseEventTime(event.End)

	timeStr := start.Format("3:04 PM")
	if sameDate(start, end) {
		timeStr += " - " + end.Format("3:04 PM")
	}

	organizer := event.Organizer.Name
	if organizer == "" {
		organizer = event.Organizer.Address
	}
	if organizer == "" {
		organizer = "Unknown"
	}

	location := event.Location
	isOnline := event.IsOnlineMeeting || containsOnlineKeyword(location)
	if location == "" {
		if isOnline {
			location = "Online Meeting"
		} else {
			location = "No location specified"
		}
	}

	durationMinutes := int(end.Sub(start).Minutes())
	if durationMinutes < 0 {
		a.logger.Warn("Event ends before it starts, clamping duration",
			zap.String("id", event.ID),
			zap.String("subject", event.Subject))
		durationMinutes = 0
		end = start
	}

	required := 0
	for _, attendee := range event.Attendees {
		if attendee.Required {
			required++
		}
	}

	subject := event.Subject
	if subject == "" {
		subject = "No Subject"
	}
	showAs := event.ShowAs
	if showAs == "" {
		showAs = "busy"
	}
	importance := event.Importance
	if importance == "" {
		importance = models.ImportanceNormal
	}

	return models.Meeting{
		ID:                    event.ID,
		Subject:               subject,
		Time:                  timeStr,
		Start:                 start,
		End:                   end,
		DurationMinutes:       durationMinutes,
		DurationHours:         roundHours(float64(durationMinutes) / 60),
		Organizer:             organizer,
		Location:              location,
		IsOnline:              isOnline,
		Agenda:                a.agendaSnippet(event.Body, event.BodyType),
		AttendeeCount:         len(event.Attendees),
		RequiredAttendeeCount: required,
		ShowAs:                showAs,
		IsAllDay:              event.IsAllDay,
		Importance:            importance,
	}
}

// parseEventTime accepts "Z" and offset-qualified RFC 3339 timestamps
// plus the bare variant, then drops the zone keeping the wall clock so
// all comparisons run in one naive frame. Unparseable input falls back
// to now rather than failing the batch.
func (a *Analyzer) parseEventTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", raw)
	}
	if err != nil {
		a.logger.Warn("Unparseable event timestamp, substituting now", zap.String("value", raw))
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// agendaSnippet strips markup from the event body and clips it for
// display.
func (a *Analyzer) agendaSnippet(body, bodyType string) string {
	if body == "" {
		return ""
	}
	if strings.EqualFold(bodyType, "html") {
		body = html.UnescapeString(a.sanitizer.Sanitize(body))
	}
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= agendaLimit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:agendaLimit])) + "..."
}

// focusTime is the working-hours span minus meeting minutes clipped to
// the window, in hours rounded to one decimal. The window is anchored
// to the date of the first meeting since all events belong to one day.
func focusTime(meetings []models.Meeting, workStart, workEnd int) float64 {
	day := meetings[0].Start
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), workStart, 0, 0, 0, time.UTC)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), workEnd, 0, 0, 0, time.UTC)

	totalWorkMinutes := float64((workEnd - workStart) * 60)
	meetingMinutes := 0.0
	for _, meeting := range meetings {
		start := maxTime(meeting.Start, windowStart)
		end := minTime(meeting.End, windowEnd)
		if start.Before(end) {
			meetingMinutes += end.Sub(start).Minutes()
		}
	}

	focusMinutes := totalWorkMinutes - meetingMinutes
	if focusMinutes < 0 {
		focusMinutes = 0
	}
	return roundHours(focusMinutes / 60)
}

func meetingSummary(count int, totalHours float64) string {
	switch count {
	case 0:
		return "You have no meetings scheduled for today."
	case 1:
		return fmt.Sprintf("You have 1 meeting today (%v hours).", totalHours)
	default:
		return fmt.Sprintf("You have %d meetings today (%v hours total).", count, totalHours)
	}
}

func focusSummary(focusHours float64) string {
	switch {
	case focusHours <= 0:
		return "Your day is fully booked with meetings."
	case focusHours < 1:
		return fmt.Sprintf("You have %d minutes of focus time available between meetings.", int(focusHours*60))
	case focusHours == 1:
		return "You have 1 hour of dedicated focus time scheduled."
	default:
		return fmt.Sprintf("You have %v hours of dedicated focus time scheduled.", focusHours)
	}
}

// analyzePatterns expects meetings sorted by start time.
func analyzePatterns(meetings []models.Meeting) models.MeetingPatterns {
	var patterns models.MeetingPatterns
	totalDuration := 0

	for i, meeting := range meetings {
		if meeting.IsOnline {
			patterns.OnlineMeetings++
		} else {
			patterns.InPersonMeetings++
		}

		totalDuration += meeting.DurationMinutes
		// First occurrence wins ties.
		if patterns.LongestMeeting == nil || meeting.DurationMinutes > patterns.LongestMeeting.DurationMinutes {
			patterns.LongestMeeting = &models.MeetingExtreme{
				Subject:         meeting.Subject,
				DurationMinutes: meeting.DurationMinutes,
			}
		}
		if patterns.ShortestMeeting == nil || meeting.DurationMinutes < patterns.ShortestMeeting.DurationMinutes {
			patterns.ShortestMeeting = &models.MeetingExtreme{
				Subject:         meeting.Subject,
				DurationMinutes: meeting.DurationMinutes,
			}
		}

		if i > 0 {
			gap := meeting.Start.Sub(meetings[i-1].End).Minutes()
			if gap <= backToBackGap {
				patterns.BackToBackCount++
			}
		}
	}

	patterns.AverageDurationMinutes = int(math.Round(float64(totalDuration) / float64(len(meetings))))
	return patterns
}

// busiestHours returns the top clock hours by how many meeting
// intervals touch them. Counting follows meeting order, and the sort
// is stable, so ties keep first-encountered order.
func busiestHours(meetings []models.Meeting) []int {
	counts := make(map[int]int)
	var order []int
	for _, meeting := range meetings {
		for hour := meeting.Start.Hour(); hour <= meeting.End.Hour(); hour++ {
			if counts[hour] == 0 {
				order = append(order, hour)
			}
			counts[hour]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > busiestHourCount {
		order = order[:busiestHourCount]
	}
	return order
}

func containsOnlineKeyword(location string) bool {
	lower := strings.ToLower(location)
	for _, keyword := range onlineKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func roundHours(hours float64) float64 {
	return math.Round(hours*10) / 10
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
