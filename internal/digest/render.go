package digest

import (
	"fmt"
	"html"
	"strings"

	"github.com/xaenox/daily-digest/internal/models"
)

// Format selects the render target for a digest.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Render turns an assembled digest into a display document. The pass
// is purely derived: it never changes section content, counts or
// ordering.
func Render(d models.Digest, format Format) string {
	if format == FormatHTML {
		return renderHTML(d)
	}
	return renderText(d)
}

func renderText(d models.Digest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", d.Title)
	fmt.Fprintf(&b, "Generated on %s for %s\n\n", d.GeneratedAt.Format("January 2, 2006 at 3:04 PM"), d.UserName)

	b.WriteString("== Snapshot ==\n")
	for _, bullet := range d.Sections.Snapshot.SummaryBullets {
		fmt.Fprintf(&b, "  • %s\n", bullet)
	}

	cal := d.Sections.CalendarBreakdown
	b.WriteString("\n== Today's Calendar ==\n")
	fmt.Fprintf(&b, "%s\n%s\n", cal.Summary, cal.FocusSummary)
	for _, meeting := range cal.Meetings {
		online := ""
		if meeting.IsOnline {
			online = " [Online]"
		}
		fmt.Fprintf(&b, "  %d. %s – %s%s\n", meeting.Number, meeting.Time, meeting.Subject, online)
		fmt.Fprintf(&b, "     Organizer: %s | Duration: %s | Attendees: %d\n",
			meeting.Organizer, meeting.Duration, meeting.Attendees)
		fmt.Fprintf(&b, "     %s\n", meeting.Agenda)
	}
	if cal.Insights != "" {
		fmt.Fprintf(&b, "Insights: %s\n", cal.Insights)
	}

	topics := d.Sections.EmailTopics
	b.WriteString("\n== Email Summary ==\n")
	fmt.Fprintf(&b, "Showing %d of %d conversations\n", topics.ShownConversations, topics.TotalConversations)
	for _, topic := range topics.Topics {
		fmt.Fprintf(&b, "  %d. %s (%d email%s, latest from %s)\n",
			topic.Number, topic.Subject, topic.EmailCount, plural(topic.EmailCount), topic.LatestSender)
		fmt.Fprintf(&b, "     %s\n     %s\n", topic.Summary, topic.Action)
	}

	actions := d.Sections.Actions
	b.WriteString("\n== Recommended Actions ==\n")
	fmt.Fprintf(&b, "Total actionable items: %d\n", actions.TotalActions)
	for _, recommendation := range actions.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", recommendation)
	}

	quick := d.Sections.QuickCreates
	if len(quick.SuggestedActions) > 0 {
		b.WriteString("\n== Quick Actions ==\n")
		fmt.Fprintf(&b, "%s\n", quick.Note)
		for _, action := range quick.SuggestedActions {
			fmt.Fprintf(&b, "  [%s] %s (%s)\n", action.Type, action.Description, action.Priority)
		}
	}
	return b.String()
}

func renderHTML(d models.Digest) string {
	var b strings.Builder

	b.WriteString(`<div class="daily-digest">` + "\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(d.Title))
	fmt.Fprintf(&b, `<p class="generated-time">Generated on %s</p>`+"\n",
		d.GeneratedAt.Format("January 2, 2006 at 3:04 PM"))

	b.WriteString(`<section class="snapshot"><h2>Snapshot</h2><ul>` + "\n")
	for _, bullet := range d.Sections.Snapshot.SummaryBullets {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(bullet))
	}
	b.WriteString("</ul></section>\n")

	cal := d.Sections.CalendarBreakdown
	b.WriteString(`<section class="calendar-breakdown"><h2>Today's Calendar</h2>` + "\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(cal.Summary))
	fmt.Fprintf(&b, `<p class="focus-time">%s</p>`+"\n", html.EscapeString(cal.FocusSummary))
	if len(cal.Meetings) == 0 {
		b.WriteString("<p>No meetings scheduled today.</p>\n")
	}
	for _, meeting := range cal.Meetings {
		onlineBadge := ""
		if meeting.IsOnline {
			onlineBadge = ` <span class="badge online">Online</span>`
		}
		fmt.Fprintf(&b, `<div class="calendar-event"><h4>%d. %s – %s%s</h4>`+"\n",
			meeting.Number, html.EscapeString(meeting.Time), html.EscapeString(meeting.Subject), onlineBadge)
		fmt.Fprintf(&b, `<p class="event-details">Organizer: %s | Duration: %s | Attendees: %d</p>`+"\n",
			html.EscapeString(meeting.Organizer), html.EscapeString(meeting.Duration), meeting.Attendees)
		fmt.Fprintf(&b, `<p class="event-agenda">%s</p>`+"\n", html.EscapeString(meeting.Agenda))
		if meeting.Location != "" {
			fmt.Fprintf(&b, `<p class="event-location">@ %s</p>`+"\n", html.EscapeString(meeting.Location))
		}
		b.WriteString("</div>\n")
	}
	if cal.Insights != "" {
		fmt.Fprintf(&b, `<p class="calendar-insights">%s</p>`+"\n", html.EscapeString(cal.Insights))
	}
	b.WriteString("</section>\n")

	topics := d.Sections.EmailTopics
	b.WriteString(`<section class="email-topics"><h2>Email Summary</h2>` + "\n")
	fmt.Fprintf(&b, `<p class="section-meta">Showing %d of %d conversations</p>`+"\n",
		topics.ShownConversations, topics.TotalConversations)
	for _, topic := range topics.Topics {
		importanceBadge := ""
		if topic.Importance == models.ImportanceHigh {
			importanceBadge = ` <span class="badge high-importance">High Priority</span>`
		}
		fmt.Fprintf(&b, `<div class="email-topic"><h3>%d. %s%s</h3>`+"\n",
			topic.Number, html.EscapeString(topic.Subject), importanceBadge)
		fmt.Fprintf(&b, `<p class="topic-meta">%d email%s in thread — latest from %s</p>`+"\n",
			topic.EmailCount, plural(topic.EmailCount), html.EscapeString(topic.LatestSender))
		fmt.Fprintf(&b, `<p class="topic-summary">%s</p>`+"\n", html.EscapeString(topic.Summary))
		fmt.Fprintf(&b, `<p class="topic-action">%s</p>`+"\n", html.EscapeString(topic.Action))
		b.WriteString("</div>\n")
	}
	b.WriteString("</section>\n")

	actions := d.Sections.Actions
	b.WriteString(`<section class="recommended-actions"><h2>Recommended Actions</h2>` + "\n")
	fmt.Fprintf(&b, `<p class="action-summary">Total actionable items: %d</p>`+"\n", actions.TotalActions)
	b.WriteString(`<ul class="action-list">` + "\n")
	for _, recommendation := range actions.Recommendations {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(recommendation))
	}
	b.WriteString("</ul></section>\n")

	quick := d.Sections.QuickCreates
	if len(quick.SuggestedActions) > 0 {
		b.WriteString(`<section class="quick-creates"><h2>Quick Actions</h2>` + "\n")
		fmt.Fprintf(&b, `<p class="section-note">%s</p>`+"\n", html.EscapeString(quick.Note))
		for _, action := range quick.SuggestedActions {
			fmt.Fprintf(&b, `<div class="quick-action %s"><span class="action-text">%s</span> `+
				`<span class="action-priority priority-%s">%s</span></div>`+"\n",
				action.Type, html.EscapeString(action.Description), action.Priority,
				titleCase(action.Priority))
		}
		b.WriteString("</section>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
