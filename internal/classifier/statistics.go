package classifier

import "github.com/xaenox/daily-digest/internal/models"

// highConfidenceThreshold gates entries into the statistics highlight
// list.
const highConfidenceThreshold = 0.7

// HighConfidenceItem is one confidently classified conversation.
type HighConfidenceItem struct {
	Subject    string  `json:"subject"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// Statistics summarizes a batch of classified conversations.
type Statistics struct {
	ActionCounts        map[string]int       `json:"action_counts"`
	AverageConfidence   map[string]float64   `json:"average_confidence"`
	HighConfidenceItems []HighConfidenceItem `json:"high_confidence_items"`
	TotalClassified     int                  `json:"total_classified"`
}

// Statistics aggregates per-action counts and average confidences over
// conversations, plus up to ten high-confidence highlights in input
// order.
func (c *Classifier) Statistics(conversations []models.Conversation) Statistics {
	counts := make(map[string]int, len(models.Actions))
	confidenceSums := make(map[string]float64, len(models.Actions))
	for _, action := range models.Actions {
		counts[action.String()] = 0
		confidenceSums[action.String()] = 0
	}

	var highlights []HighConfidenceItem
	for _, conv := range conversations {
		name := conv.Classification.Action.String()
		counts[name]++
		confidenceSums[name] += conv.Classification.Confidence

		if conv.Classification.Confidence > highConfidenceThreshold {
			highlights = append(highlights, HighConfidenceItem{
				Subject:    conv.Subject,
				Action:     name,
				Confidence: conv.Classification.Confidence,
			})
		}
	}

	averages := make(map[string]float64, len(models.Actions))
	total := 0
	for _, action := range models.Actions {
		name := action.String()
		total += counts[name]
		if counts[name] > 0 {
			averages[name] = confidenceSums[name] / float64(counts[name])
		} else {
			averages[name] = 0
		}
	}

	if len(highlights) > 10 {
		highlights = highlights[:10]
	}
	return Statistics{
		ActionCounts:        counts,
		AverageConfidence:   averages,
		HighConfidenceItems: highlights,
		TotalClassified:     total,
	}
}
