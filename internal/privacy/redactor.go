package privacy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xaenox/daily-digest/internal/models"
)

// RedactionMap maps generated placeholder tokens back to the sensitive
// substrings they replaced. One map is produced per redact call; the
// caller owns it and must retain it if reconstruction is ever needed.
type RedactionMap map[string]string

// Merge copies every entry of other into m.
func (m RedactionMap) Merge(other RedactionMap) {
	for placeholder, original := range other {
		m[placeholder] = original
	}
}

type pattern struct {
	label string
	re    *regexp.Regexp
}

// Redactor detects and reversibly masks PII in free text. Pattern
// tables are immutable after construction, so one Redactor is safe for
// concurrent use.
type Redactor struct {
	patterns        []pattern
	namePatterns    []*regexp.Regexp
	contextPatterns []*regexp.Regexp
}

// NewRedactor builds a redactor with the default pattern set. Patterns
// run in the order listed; the ordering is part of the contract since
// earlier matches consume text that later patterns never see.
func NewRedactor() *Redactor {
	r := &Redactor{
		patterns: []pattern{
			{"EMAIL", regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
			{"PHONE", regexp.MustCompile(`(?i)\b(?:\+?1[-.]?)?\(?([0-9]{3})\)?[-.]?([0-9]{3})[-.]?([0-9]{4})\b`)},
			{"SSN", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
			{"CREDIT_CARD", regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
			{"IP_ADDRESS", regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)},
			{"URL", regexp.MustCompile(`(?i)https?://[^\s]+`)},
			{"DOB", regexp.MustCompile(`\b(?:0[1-9]|1[0-2])[/-](?:0[1-9]|[12][0-9]|3[01])[/-](?:19|20)\d{2}\b`)},
			{"POSTAL_CODE", regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)},
			{"COMPANY", regexp.MustCompile(`\b[A-Z][a-z]+\s+(?:Corp|Corporation|Inc|LLC|Ltd|Limited|Company|Co)\b`)},
			{"PROJECT", regexp.MustCompile(`\bProject\s+[A-Z][a-z]+\b`)},
		},
	}

	// Names following honorifics: only the name is replaced, the title
	// stays in place.
	for _, honorific := range []string{"Mr.", "Ms.", "Mrs.", "Dr.", "Prof."} {
		r.namePatterns = append(r.namePatterns, regexp.MustCompile(
			regexp.QuoteMeta(honorific)+`\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`))
	}

	// Names in salutation/signoff contexts. Best-effort by design; see
	// the round-trip tests before touching these.
	r.contextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:From|To|CC|With|Contact):\s*([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`(?:Hi|Hello|Dear)\s+([A-Z][a-z]+)`),
		regexp.MustCompile(`(?:Thanks|Regards|Sincerely),?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	}
	return r
}

// RedactText masks every detected sensitive substring in text and
// returns the masked text with a fresh map for reversal. Each match
// gets a unique placeholder even when the same value repeats. The
// function is pure: malformed input degrades to "no matches".
func (r *Redactor) RedactText(text string) (string, RedactionMap) {
	redactionMap := make(RedactionMap)
	redacted := text

	for _, p := range r.patterns {
		matches := p.re.FindAllStringIndex(redacted, -1)
		// Reverse position order keeps earlier offsets valid while
		// replacing.
		for i := len(matches) - 1; i >= 0; i-- {
			start, end := matches[i][0], matches[i][1]
			placeholder := newPlaceholder(p.label)
			redactionMap[placeholder] = redacted[start:end]
			redacted = redacted[:start] + placeholder + redacted[end:]
		}
	}

	redacted = r.redactNames(redacted, redactionMap)
	return redacted, redactionMap
}

// redactNames applies the honorific and context name heuristics,
// replacing only the captured name group.
func (r *Redactor) redactNames(text string, redactionMap RedactionMap) string {
	for _, re := range append(append([]*regexp.Regexp{}, r.namePatterns...), r.contextPatterns...) {
		matches := re.FindAllStringSubmatchIndex(text, -1)
		for i := len(matches) - 1; i >= 0; i-- {
			start, end := matches[i][2], matches[i][3]
			name := text[start:end]
			// A bracket means this span was already redacted.
			if strings.Contains(name, "[") && strings.Contains(name, "]") {
				continue
			}
			placeholder := newPlaceholder("NAME")
			redactionMap[placeholder] = name
			text = text[:start] + placeholder + text[end:]
		}
	}
	return text
}

// Reconstruct substitutes placeholders back to their originals.
// Longest placeholders go first so a token is never clobbered by a
// partial replacement.
func (r *Redactor) Reconstruct(text string, redactionMap RedactionMap) string {
	placeholders := make([]string, 0, len(redactionMap))
	for placeholder := range redactionMap {
		placeholders = append(placeholders, placeholder)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		if len(placeholders[i]) != len(placeholders[j]) {
			return len(placeholders[i]) > len(placeholders[j])
		}
		return placeholders[i] < placeholders[j]
	})

	for _, placeholder := range placeholders {
		text = strings.ReplaceAll(text, placeholder, redactionMap[placeholder])
	}
	return text
}

// RedactEmail returns a copy of msg with subject, preview, body and
// sender masked. Absent fields are skipped silently.
func (r *Redactor) RedactEmail(msg models.EmailMessage) (models.EmailMessage, RedactionMap) {
	combined := make(RedactionMap)
	out := msg

	out.Subject = r.redactField(msg.Subject, combined)
	out.Preview = r.redactField(msg.Preview, combined)
	out.Body = r.redactField(msg.Body, combined)

	// Sender fields are masked wholesale rather than pattern-matched.
	if msg.Sender.Address != "" {
		placeholder := newPlaceholder("EMAIL")
		combined[placeholder] = msg.Sender.Address
		out.Sender.Address = placeholder
	}
	if msg.Sender.Name != "" {
		placeholder := newPlaceholder("NAME")
		combined[placeholder] = msg.Sender.Name
		out.Sender.Name = placeholder
	}
	return out, combined
}

// RedactEvent returns a copy of ev with subject, body and location
// masked.
func (r *Redactor) RedactEvent(ev models.CalendarEvent) (models.CalendarEvent, RedactionMap) {
	combined := make(RedactionMap)
	out := ev
	out.Subject = r.redactField(ev.Subject, combined)
	out.Body = r.redactField(ev.Body, combined)
	out.Location = r.redactField(ev.Location, combined)
	return out, combined
}

// RedactEmails masks a batch of messages, returning one combined map.
func (r *Redactor) RedactEmails(msgs []models.EmailMessage) ([]models.EmailMessage, RedactionMap) {
	combined := make(RedactionMap)
	out := make([]models.EmailMessage, 0, len(msgs))
	for _, msg := range msgs {
		redacted, m := r.RedactEmail(msg)
		out = append(out, redacted)
		combined.Merge(m)
	}
	return out, combined
}

// RedactEvents masks a batch of events, returning one combined map.
func (r *Redactor) RedactEvents(events []models.CalendarEvent) ([]models.CalendarEvent, RedactionMap) {
	combined := make(RedactionMap)
	out := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		redacted, m := r.RedactEvent(ev)
		out = append(out, redacted)
		combined.Merge(m)
	}
	return out, combined
}

func (r *Redactor) redactField(text string, combined RedactionMap) string {
	if text == "" {
		return text
	}
	redacted, m := r.RedactText(text)
	combined.Merge(m)
	return redacted
}

func newPlaceholder(label string) string {
	return fmt.Sprintf("[%s_%s]", label, uuid.New().String()[:8])
}
