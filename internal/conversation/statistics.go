package conversation

import (
	"math"

	"github.com/xaenox/daily-digest/internal/models"
)

// Statistics summarizes a set of grouped conversations.
type Statistics struct {
	TotalConversations           int                       `json:"total_conversations"`
	TotalEmails                  int                       `json:"total_emails"`
	AvgEmailsPerConversation     float64                   `json:"avg_emails_per_conversation"`
	ClassificationCounts         map[string]int            `json:"classification_counts"`
	ImportanceCounts             map[models.Importance]int `json:"importance_counts"`
	ConversationsWithAttachments int                       `json:"conversations_with_attachments"`
}

// Stats aggregates counts over grouped conversations.
func Stats(conversations map[string]models.Conversation) Statistics {
	stats := Statistics{
		TotalConversations:   len(conversations),
		ClassificationCounts: make(map[string]int),
		ImportanceCounts:     make(map[models.Importance]int),
	}
	for _, conv := range conversations {
		stats.TotalEmails += conv.EmailCount
		stats.ClassificationCounts[conv.Classification.Action.String()]++
		stats.ImportanceCounts[conv.Importance]++
		if conv.HasAttachments {
			stats.ConversationsWithAttachments++
		}
	}

	divisor := len(conversations)
	if divisor == 0 {
		divisor = 1
	}
	stats.AvgEmailsPerConversation = math.Round(float64(stats.TotalEmails)/float64(divisor)*10) / 10
	return stats
}
