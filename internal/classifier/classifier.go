// Package classifier implements the 4D (Do, Delegate, Defer, Delete)
// triage heuristic over email text. Classification is deterministic
// and explainable: weighted keyword and pattern matching, context
// boosts, and a floor-case fallback. There is no model behind it.
package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xaenox/daily-digest/internal/models"
)

// scoreNormalizer converts a raw category score into a confidence.
// The value is empirically tuned, not derived; recalibrate here.
const scoreNormalizer = 10.0

// scoreFloor is the minimum winning score for a classification to be
// trusted; below it the floor-case fallback applies.
const scoreFloor = 1.0

// Classifier scores text against the injected rule tables. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	rules *Rules
}

// New builds a classifier around the given rule set.
func New(rules *Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify triages a single message. It always returns one of the four
// actions with confidence in (0,1]; empty fields degrade to the
// floor-case fallback rather than erroring.
func (c *Classifier) Classify(msg models.EmailMessage) models.Classification {
	subject := strings.ToLower(msg.Subject)
	body := strings.ToLower(msg.BodyText())
	fromAddress := strings.ToLower(msg.Sender.Address)

	if c.isAutomated(subject, body, fromAddress) {
		return models.Classification{
			Action:     models.ActionDelete,
			Reason:     "Automated/promotional email",
			Confidence: 0.9,
		}
	}

	combined := subject + " " + body

	var (
		bestAction models.Action
		bestScore  = -1.0
		bestReason string
	)
	// Fixed enumeration order makes ties deterministic: the first
	// maximum wins.
	for _, action := range models.Actions {
		score, reason := c.score(combined, action)

		if action == models.ActionDo && containsAny(combined, c.rules.UrgencyIndicators) {
			score *= 1.5
			reason += " (urgent)"
		}
		if action == models.ActionDelegate && containsAny(subject, c.rules.DelegationIndicators) {
			score *= 1.3
			reason += " (forwarded)"
		}

		if score > bestScore {
			bestAction, bestScore, bestReason = action, score, reason
		}
	}

	if bestScore < scoreFloor {
		if containsAny(combined, c.rules.ActionWords) {
			return models.Classification{
				Action:     models.ActionDo,
				Reason:     "Contains action-oriented language",
				Confidence: 0.4,
			}
		}
		return models.Classification{
			Action:     models.ActionDelete,
			Reason:     "No clear action required",
			Confidence: 0.5,
		}
	}

	confidence := bestScore / scoreNormalizer
	if confidence > 1.0 {
		confidence = 1.0
	}
	return models.Classification{Action: bestAction, Reason: bestReason, Confidence: confidence}
}

// ClassifyConversation triages a thread from its most recent message,
// then scales confidence by thread length: longer threads earn
// modestly higher confidence, capped at the single-message value.
func (c *Classifier) ClassifyConversation(msgs []models.EmailMessage) models.Classification {
	if len(msgs) == 0 {
		return models.Classification{
			Action: models.ActionDelete,
			Reason: "Empty conversation",
		}
	}

	sorted := make([]models.EmailMessage, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Received.After(sorted[j].Received)
	})

	result := c.Classify(sorted[0])

	threadFactor := float64(len(msgs)) / 10.0
	if threadFactor > 1.0 {
		threadFactor = 1.0
	}
	result.Confidence *= 0.8 + 0.2*threadFactor
	return result
}

// score computes the weighted match score of one category and a reason
// naming up to three matched indicators.
func (c *Classifier) score(text string, action models.Action) (float64, string) {
	rule := c.rules.Categories[action]
	score := 0.0
	var matched []string

	for _, keyword := range rule.Keywords {
		if strings.Contains(text, keyword) {
			score += 1.0 * rule.Weight
			matched = append(matched, keyword)
		}
	}
	for _, re := range rule.Patterns {
		if re.MatchString(text) {
			score += 2.0 * rule.Weight
			matched = append(matched, fmt.Sprintf("pattern: %.20s...", strings.TrimPrefix(re.String(), "(?i)")))
		}
	}

	if len(matched) == 0 {
		return score, "No specific indicators found"
	}
	shown := matched
	if len(shown) > 3 {
		shown = shown[:3]
	}
	reason := "Matched: " + strings.Join(shown, ", ")
	if len(matched) > 3 {
		reason += fmt.Sprintf(" (+%d more)", len(matched)-3)
	}
	return score, reason
}

func (c *Classifier) isAutomated(subject, body, fromAddress string) bool {
	for _, indicator := range c.rules.AutomatedIndicators {
		if strings.Contains(fromAddress, indicator) || strings.Contains(subject, indicator) {
			return true
		}
	}
	// Unsubscribe plus a link marker is a newsletter footer.
	return strings.Contains(body, "unsubscribe") &&
		(strings.Contains(body, "click here") || strings.Contains(body, "http"))
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
