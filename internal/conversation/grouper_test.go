package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/daily-digest/internal/classifier"
	"github.com/xaenox/daily-digest/internal/models"
)

func newTestGrouper() *Grouper {
	return NewGrouper(classifier.New(classifier.DefaultRules()), nil)
}

func msg(id, convID, subject string, received time.Time) models.EmailMessage {
	return models.EmailMessage{
		ID:             id,
		ConversationID: convID,
		Subject:        subject,
		Sender:         models.Sender{Name: "Sarah Chen", Address: "sarah.chen@company.com"},
		Received:       received,
		Importance:     models.ImportanceNormal,
	}
}

// Every message lands in exactly one conversation; messages without a
// conversation ID become singleton threads.
func TestGroup_Completeness(t *testing.T) {
	g := newTestGrouper()
	now := time.Now()

	messages := []models.EmailMessage{
		msg("m1", "c1", "Apollo launch", now),
		msg("m2", "c1", "Re: Apollo launch", now.Add(-time.Hour)),
		msg("m3", "c1", "Re: Apollo launch", now.Add(-2*time.Hour)),
		msg("m4", "", "Standalone one", now),
		msg("m5", "", "Standalone two", now),
	}

	conversations := g.Group(messages)

	require.Len(t, conversations, 3)
	total := 0
	for _, conv := range conversations {
		total += conv.EmailCount
		assert.Len(t, conv.Messages, conv.EmailCount)
	}
	assert.Equal(t, len(messages), total)

	assert.Equal(t, 3, conversations["c1"].EmailCount)
	assert.Equal(t, 1, conversations["m4"].EmailCount)
	assert.Equal(t, 1, conversations["m5"].EmailCount)
}

func TestGroup_Empty(t *testing.T) {
	g := newTestGrouper()
	assert.Empty(t, g.Group(nil))
}

func TestGroup_NewestFirstAndDates(t *testing.T) {
	g := newTestGrouper()
	now := time.Now()

	messages := []models.EmailMessage{
		msg("m1", "c1", "First", now.Add(-2*time.Hour)),
		msg("m2", "c1", "Middle", now.Add(-time.Hour)),
		msg("m3", "c1", "Latest", now),
	}

	conv := g.Group(messages)["c1"]

	require.Len(t, conv.Messages, 3)
	assert.Equal(t, "m3", conv.Messages[0].ID)
	assert.Equal(t, "Latest", conv.Subject)
	assert.Equal(t, now, conv.LatestDate)
	assert.Equal(t, now.Add(-2*time.Hour), conv.FirstDate)
}

func TestGroup_MaxImportanceAndAttachments(t *testing.T) {
	g := newTestGrouper()
	now := time.Now()

	low := msg("m1", "c1", "Old", now.Add(-time.Hour))
	low.Importance = models.ImportanceLow
	high := msg("m2", "c1", "New", now)
	high.Importance = models.ImportanceHigh
	withFile := msg("m3", "c1", "Middle", now.Add(-30*time.Minute))
	withFile.HasAttachments = true

	conv := g.Group([]models.EmailMessage{low, high, withFile})["c1"]

	assert.Equal(t, models.ImportanceHigh, conv.Importance)
	assert.True(t, conv.HasAttachments)
	assert.NotZero(t, conv.Classification.Confidence)
}

func TestSummarize_SingleMessage(t *testing.T) {
	g := newTestGrouper()

	single := msg("m1", "", "Budget review", time.Now())
	single.Body = "Are you available tomorrow?"

	conv := g.Group([]models.EmailMessage{single})["m1"]
	assert.Equal(t, "Email from Sarah Chen about Budget review. Are you available tomorrow?", conv.Summary)
}

func TestSummarize_Thread(t *testing.T) {
	g := newTestGrouper()
	now := time.Now()

	first := msg("m1", "c1", "Catering", now.Add(-time.Hour))
	second := msg("m2", "c1", "Re: Catering", now)

	conv := g.Group([]models.EmailMessage{first, second})["c1"]
	assert.Contains(t, conv.Summary, "Conversation (2 emails) about Re: Catering with Sarah Chen")
}

func TestSummarize_Fallbacks(t *testing.T) {
	g := newTestGrouper()

	anonymous := models.EmailMessage{ID: "m1", Received: time.Now()}
	conv := g.Group([]models.EmailMessage{anonymous})["m1"]
	assert.Equal(t, "Email from Unknown about No Subject", conv.Summary)
}

func TestExtractKeyPoint(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"question preferred",
			"The deck is ready. Can you review it today?",
			"Can you review it today?",
		},
		{
			"action phrase",
			"The deck is ready. Please review the slides. More context follows.",
			"Please review the slides",
		},
		{
			"first sentence fallback",
			"The deck is ready. More context follows.",
			"The deck is ready",
		},
		{"empty body", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractKeyPoint(tc.body))
		})
	}
}

func TestExtractKeyPoint_Truncation(t *testing.T) {
	long := "word"
	for len(long) < 150 {
		long += " word"
	}
	got := extractKeyPoint(long)
	assert.True(t, len([]rune(got)) == keyPointLimit+3)
	assert.Contains(t, got, "...")
}

func TestStats(t *testing.T) {
	g := newTestGrouper()
	now := time.Now()

	withFile := msg("m4", "", "Attachment", now)
	withFile.HasAttachments = true

	conversations := g.Group([]models.EmailMessage{
		msg("m1", "c1", "Apollo", now),
		msg("m2", "c1", "Re: Apollo", now.Add(-time.Hour)),
		msg("m3", "", "Solo", now),
		withFile,
	})

	stats := Stats(conversations)
	assert.Equal(t, 3, stats.TotalConversations)
	assert.Equal(t, 4, stats.TotalEmails)
	assert.InDelta(t, 1.3, stats.AvgEmailsPerConversation, 1e-9)
	assert.Equal(t, 1, stats.ConversationsWithAttachments)
	assert.Equal(t, 3, stats.ImportanceCounts[models.ImportanceNormal])

	total := 0
	for _, count := range stats.ClassificationCounts {
		total += count
	}
	assert.Equal(t, 3, total)
}

func TestStats_Empty(t *testing.T) {
	stats := Stats(nil)
	assert.Zero(t, stats.TotalConversations)
	assert.Zero(t, stats.AvgEmailsPerConversation)
}
