package privacy

import "strings"

// Report summarizes what a batch of redact calls removed.
type Report struct {
	TotalItemsProcessed int            `json:"total_items_processed"`
	TotalRedactions     int            `json:"total_redactions"`
	RedactionsByType    map[string]int `json:"redactions_by_type"`
	PrivacyLevel        string         `json:"privacy_level"`
}

// Summary counts redactions per PII type, keyed on the label embedded
// in each placeholder ("[LABEL_suffix]").
func Summary(m RedactionMap) map[string]int {
	counts := make(map[string]int)
	for placeholder := range m {
		label := placeholderLabel(placeholder)
		if label == "" {
			continue
		}
		counts[label]++
	}
	return counts
}

// BuildReport aggregates several redaction maps into one report.
func BuildReport(maps []RedactionMap) Report {
	byType := make(map[string]int)
	total := 0
	for _, m := range maps {
		total += len(m)
		for label, count := range Summary(m) {
			byType[label] += count
		}
	}
	return Report{
		TotalItemsProcessed: len(maps),
		TotalRedactions:     total,
		RedactionsByType:    byType,
		PrivacyLevel:        privacyLevel(total),
	}
}

func placeholderLabel(placeholder string) string {
	if !strings.HasPrefix(placeholder, "[") {
		return ""
	}
	underscore := strings.LastIndex(placeholder, "_")
	if underscore < 1 {
		return ""
	}
	return placeholder[1:underscore]
}

func privacyLevel(redactions int) string {
	switch {
	case redactions == 0:
		return "none"
	case redactions < 10:
		return "low"
	case redactions < 50:
		return "medium"
	default:
		return "high"
	}
}
