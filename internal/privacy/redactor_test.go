package privacy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/daily-digest/internal/models"
)

func TestRedactText_EmailAndPhone(t *testing.T) {
	r := NewRedactor()

	text := "Contact me at john@example.com or 555-123-4567"
	redacted, m := r.RedactText(text)

	require.Len(t, m, 2)
	assert.NotContains(t, redacted, "john@example.com")
	assert.NotContains(t, redacted, "555-123-4567")
	assert.Contains(t, redacted, "[EMAIL_")
	assert.Contains(t, redacted, "[PHONE_")

	assert.Equal(t, text, r.Reconstruct(redacted, m))
}

func TestRedactText_RoundTripAllTypes(t *testing.T) {
	r := NewRedactor()

	cases := []struct {
		name  string
		text  string
		label string
	}{
		{"email", "reach me at jane.doe@corp.io today", "EMAIL"},
		{"ssn", "my ssn is 123-45-6789 ok", "SSN"},
		{"credit card", "card 4111 1111 1111 1111 on file", "CREDIT_CARD"},
		{"ip", "server at 192.168.0.12 is down", "IP_ADDRESS"},
		{"url", "see https://example.com/report for details", "URL"},
		{"dob", "born 01/15/1990 in Ohio", "DOB"},
		{"postal", "ship to 94107 please", "POSTAL_CODE"},
		{"company", "the Acme Corp contract", "COMPANY"},
		{"project", "status of Project Phoenix", "PROJECT"},
		{"honorific name", "meeting with Dr. Smith tomorrow", "NAME"},
		{"salutation name", "Hi John, quick question", "NAME"},
		{"signoff name", "Regards, Sarah", "NAME"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			redacted, m := r.RedactText(tc.text)

			require.NotEmpty(t, m, "expected at least one redaction")
			assert.Contains(t, redacted, "["+tc.label+"_")
			assert.Equal(t, tc.text, r.Reconstruct(redacted, m))
		})
	}
}

// The same value appearing twice yields two distinct placeholders that
// both map back to the original.
func TestRedactText_RepeatedValueGetsDistinctPlaceholders(t *testing.T) {
	r := NewRedactor()

	text := "Send to a@b.com and cc a@b.com as well"
	redacted, m := r.RedactText(text)

	require.Len(t, m, 2)
	placeholders := make([]string, 0, 2)
	for placeholder, original := range m {
		assert.Equal(t, "a@b.com", original)
		placeholders = append(placeholders, placeholder)
	}
	assert.NotEqual(t, placeholders[0], placeholders[1])
	assert.Equal(t, text, r.Reconstruct(redacted, m))
}

func TestRedactText_NoMatches(t *testing.T) {
	r := NewRedactor()

	redacted, m := r.RedactText("nothing sensitive here")
	assert.Equal(t, "nothing sensitive here", redacted)
	assert.Empty(t, m)

	redacted, m = r.RedactText("")
	assert.Equal(t, "", redacted)
	assert.Empty(t, m)
}

func TestRedactEmail_FieldsAndSender(t *testing.T) {
	r := NewRedactor()

	msg := models.EmailMessage{
		ID:      "m1",
		Subject: "Invoice from Acme Corp",
		Preview: "Wire to account at pay@acme.com",
		Body:    "Wire to account at pay@acme.com before Friday.",
		Sender:  models.Sender{Name: "Sarah Chen", Address: "sarah.chen@acme.com"},
	}

	redacted, m := r.RedactEmail(msg)

	assert.NotContains(t, redacted.Subject, "Acme Corp")
	assert.NotContains(t, redacted.Preview, "pay@acme.com")
	assert.NotContains(t, redacted.Body, "pay@acme.com")
	assert.NotEqual(t, msg.Sender.Address, redacted.Sender.Address)
	assert.NotEqual(t, msg.Sender.Name, redacted.Sender.Name)

	// Input is untouched.
	assert.Equal(t, "Invoice from Acme Corp", msg.Subject)
	assert.Equal(t, "sarah.chen@acme.com", msg.Sender.Address)

	assert.Equal(t, msg.Subject, r.Reconstruct(redacted.Subject, m))
	assert.Equal(t, msg.Body, r.Reconstruct(redacted.Body, m))
	assert.Equal(t, msg.Sender.Address, r.Reconstruct(redacted.Sender.Address, m))
}

func TestRedactEmail_EmptyFieldsSkipped(t *testing.T) {
	r := NewRedactor()

	redacted, m := r.RedactEmail(models.EmailMessage{ID: "m1"})
	assert.Empty(t, m)
	assert.Equal(t, "", redacted.Subject)
}

func TestRedactEvent(t *testing.T) {
	r := NewRedactor()

	ev := models.CalendarEvent{
		ID:       "e1",
		Subject:  "Sync on Project Phoenix",
		Body:     "Dial in: https://meet.example.com/abc",
		Location: "Building 4",
	}
	redacted, m := r.RedactEvent(ev)

	assert.NotContains(t, redacted.Subject, "Project Phoenix")
	assert.NotContains(t, redacted.Body, "https://meet.example.com/abc")
	assert.Equal(t, ev.Subject, r.Reconstruct(redacted.Subject, m))
	assert.Equal(t, ev.Body, r.Reconstruct(redacted.Body, m))
}

func TestRedactEmails_CombinedMap(t *testing.T) {
	r := NewRedactor()

	msgs := []models.EmailMessage{
		{ID: "1", Body: "mail me: x@y.com", Sender: models.Sender{Address: "a@b.com"}},
		{ID: "2", Body: "call 555-867-5309"},
	}
	redacted, m := r.RedactEmails(msgs)

	require.Len(t, redacted, 2)
	// x@y.com, sender a@b.com, phone
	assert.Len(t, m, 3)
}

func TestSummaryAndReport(t *testing.T) {
	r := NewRedactor()

	_, m := r.RedactText("john@example.com called from 555-123-4567, again 555-123-9999")
	summary := Summary(m)
	assert.Equal(t, 1, summary["EMAIL"])
	assert.Equal(t, 2, summary["PHONE"])

	report := BuildReport([]RedactionMap{m, {}})
	assert.Equal(t, 2, report.TotalItemsProcessed)
	assert.Equal(t, 3, report.TotalRedactions)
	assert.Equal(t, "low", report.PrivacyLevel)

	assert.Equal(t, "none", BuildReport(nil).PrivacyLevel)
}

func TestReconstruct_LongestFirst(t *testing.T) {
	r := NewRedactor()

	// A map whose placeholders overlap as prefixes must still resolve
	// cleanly.
	m := RedactionMap{
		"[NAME_abc]":    "Bob",
		"[NAME_abc123]": "Alice",
	}
	out := r.Reconstruct("[NAME_abc123] met [NAME_abc]", m)
	assert.Equal(t, "Alice met Bob", out)
	assert.False(t, strings.Contains(out, "["))
}
