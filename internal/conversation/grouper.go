// Package conversation buckets a flat message list into threads and
// reduces each thread to one classification and a short summary.
package conversation

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/xaenox/daily-digest/internal/classifier"
	"github.com/xaenox/daily-digest/internal/models"
)

// keyPointLimit caps extracted key-point sentences.
const keyPointLimit = 100

var actionPhrases = []string{
	"please", "could you", "can you", "need", "require",
	"urgent", "asap", "deadline", "due",
}

// Grouper threads messages and classifies the resulting conversations.
type Grouper struct {
	classifier *classifier.Classifier
	logger     *zap.Logger
}

// NewGrouper wires a grouper to its classifier.
func NewGrouper(clf *classifier.Classifier, logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{classifier: clf, logger: logger}
}

// Group buckets messages by conversation ID and builds a classified
// Conversation per thread. A message without a conversation ID becomes
// a singleton thread keyed by its own ID, so no message is ever
// dropped or duplicated.
func (g *Grouper) Group(messages []models.EmailMessage) map[string]models.Conversation {
	buckets := make(map[string][]models.EmailMessage)
	for _, msg := range messages {
		key := msg.ConversationID
		if key == "" {
			key = msg.ID
		}
		buckets[key] = append(buckets[key], msg)
	}
	g.logger.Info("Grouped emails into conversations",
		zap.Int("emails", len(messages)),
		zap.Int("conversations", len(buckets)))

	conversations := make(map[string]models.Conversation, len(buckets))
	for id, msgs := range buckets {
		conversations[id] = g.build(id, msgs)
	}
	return conversations
}

func (g *Grouper) build(id string, msgs []models.EmailMessage) models.Conversation {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Received.After(msgs[j].Received)
	})
	latest := msgs[0]

	hasAttachments := false
	maxImportance := models.ImportanceNormal
	for _, msg := range msgs {
		if msg.HasAttachments {
			hasAttachments = true
		}
		if msg.Importance.Rank() > maxImportance.Rank() {
			maxImportance = msg.Importance
		}
	}

	return models.Conversation{
		ID:             id,
		Messages:       msgs,
		EmailCount:     len(msgs),
		Subject:        latest.Subject,
		LatestSender:   latest.Sender,
		LatestDate:     latest.Received,
		FirstDate:      msgs[len(msgs)-1].Received,
		HasAttachments: hasAttachments,
		Importance:     maxImportance,
		Classification: g.classifier.ClassifyConversation(msgs),
		Summary:        summarize(msgs),
	}
}

// summarize builds the one-line conversation summary with an appended
// key point when the newest body yields one.
func summarize(msgs []models.EmailMessage) string {
	if len(msgs) == 0 {
		return "Empty conversation"
	}
	latest := msgs[0]
	subject := latest.Subject
	if subject == "" {
		subject = "No Subject"
	}
	sender := latest.Sender.Name
	if sender == "" {
		sender = "Unknown"
	}

	var summary string
	if len(msgs) == 1 {
		summary = fmt.Sprintf("Email from %s about %s", sender, subject)
	} else {
		summary = fmt.Sprintf("Conversation (%d emails) about %s with %s", len(msgs), subject, sender)
	}
	if keyPoint := extractKeyPoint(latest.BodyText()); keyPoint != "" {
		summary += ". " + keyPoint
	}
	return summary
}

// extractKeyPoint pulls one short sentence from a body: prefer a
// question, then a sentence with an action phrase, then the first
// sentence. Best effort only.
func extractKeyPoint(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	sentences := strings.Split(body, ".")

	if strings.Contains(body, "?") {
		for _, sentence := range sentences {
			if strings.Contains(sentence, "?") {
				return truncate(strings.TrimSpace(sentence), keyPointLimit)
			}
		}
	}

	lower := strings.ToLower(body)
	for _, phrase := range actionPhrases {
		if !strings.Contains(lower, phrase) {
			continue
		}
		for _, sentence := range sentences {
			if strings.Contains(strings.ToLower(sentence), phrase) {
				return truncate(strings.TrimSpace(sentence), keyPointLimit)
			}
		}
	}

	return truncate(strings.TrimSpace(sentences[0]), keyPointLimit)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
