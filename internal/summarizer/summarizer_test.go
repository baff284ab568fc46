package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/daily-digest/internal/models"
)

func TestConversationContext_CapsAtThreeMessages(t *testing.T) {
	conv := models.Conversation{
		Messages: []models.EmailMessage{
			{Sender: models.Sender{Name: "A"}, Body: "newest"},
			{Sender: models.Sender{Name: "B"}, Body: "second"},
			{Sender: models.Sender{Name: "C"}, Body: "third"},
			{Sender: models.Sender{Name: "D"}, Body: "oldest"},
		},
	}

	out := conversationContext(conv)

	assert.Contains(t, out, "From A: newest")
	assert.Contains(t, out, "From C: third")
	assert.NotContains(t, out, "oldest")
	assert.Equal(t, 3, strings.Count(out, "From "))
}

func TestConversationContext_PrefersPreview(t *testing.T) {
	conv := models.Conversation{
		Messages: []models.EmailMessage{
			{Sender: models.Sender{Name: "A"}, Preview: "short preview", Body: "full body"},
		},
	}

	out := conversationContext(conv)
	assert.Contains(t, out, "short preview")
	assert.NotContains(t, out, "full body")
}
