package classifier

import (
	"regexp"

	"github.com/xaenox/daily-digest/internal/models"
)

// CategoryRule holds the matchers and weight for one 4D category.
// Keywords score 1x weight per substring hit; patterns score 2x weight
// because they capture phrase structure, not just vocabulary.
type CategoryRule struct {
	Keywords []string
	Patterns []*regexp.Regexp
	Weight   float64
}

// Rules is the full, read-only rule configuration for a classifier.
// Construct once and inject; never mutate after construction.
type Rules struct {
	Categories map[models.Action]CategoryRule

	// Context modifiers.
	UrgencyIndicators    []string // boosts Do by 1.5x
	DelegationIndicators []string // boosts Delegate by 1.3x when found in the subject

	// Floor-case fallback: generic action-oriented vocabulary.
	ActionWords []string

	// Automated/promotional sender and subject tokens.
	AutomatedIndicators []string
}

func compileAll(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}

// DefaultRules returns the stock 4D rule set.
func DefaultRules() *Rules {
	return &Rules{
		Categories: map[models.Action]CategoryRule{
			models.ActionDo: {
				Keywords: []string{
					"please reply", "urgent", "asap", "immediate", "today", "now",
					"review and approve", "sign off", "confirm", "approve",
					"deadline today", "due today", "expires today", "final",
					"action required", "your input needed", "please respond",
					"critical", "high priority", "time sensitive", "eod",
					"end of day", "by close of business", "cob",
				},
				Patterns: compileAll(
					`please\s+reply\s+by`,
					`need\s+your\s+approval`,
					`waiting\s+for\s+you`,
					`can\s+you\s+please`,
					`urgent.*action`,
					`deadline.*today`,
					`respond\s+by\s+\d+`,
					`due\s+(?:by|on)\s+today`,
					`complete\s+by\s+\w+day`,
				),
				Weight: 1.5,
			},
			models.ActionDelegate: {
				Keywords: []string{
					"can you handle", "please assign", "delegate to",
					"forward to", "pass to", "assign to team",
					"someone else", "team member", "subordinate",
					"assign this to", "hand over to", "reassign",
					"find someone", "who can help", "not my area",
				},
				Patterns: compileAll(
					`can\s+someone\s+else`,
					`assign\s+to\s+\w+`,
					`delegate\s+this`,
					`forward\s+to\s+\w+`,
					`pass\s+this\s+to`,
					`have\s+\w+\s+handle`,
					`ask\s+\w+\s+to\s+do`,
				),
				Weight: 1.2,
			},
			models.ActionDefer: {
				Keywords: []string{
					"schedule", "plan for", "next week", "next month",
					"later", "future", "postpone", "reschedule",
					"book meeting", "set up meeting", "plan discussion",
					"follow up", "circle back", "revisit", "touch base",
					"when you have time", "no rush", "whenever possible",
				},
				Patterns: compileAll(
					`schedule.*meeting`,
					`plan.*for.*next`,
					`follow.*up.*next`,
					`revisit.*next`,
					`discuss.*next`,
					`meeting.*to.*discuss`,
					`let's\s+meet`,
					`can\s+we\s+schedule`,
					`available\s+next\s+\w+`,
				),
				Weight: 1.0,
			},
			models.ActionDelete: {
				Keywords: []string{
					"newsletter", "unsubscribe", "promotional", "marketing",
					"advertisement", "spam", "no action required",
					"fyi only", "for your information", "informational",
					"auto-generated", "automated", "notification only",
					"no reply", "do not reply", "announcement",
					"update only", "status update", "weekly digest",
				},
				Patterns: compileAll(
					`newsletter.*subscription`,
					`promotional.*email`,
					`marketing.*campaign`,
					`no.*action.*required`,
					`fyi.*only`,
					`automated.*message`,
					`do\s+not\s+reply`,
					`unsubscribe.*link`,
					`sent\s+from.*automated`,
				),
				Weight: 0.8,
			},
		},
		UrgencyIndicators: []string{
			"urgent", "asap", "immediately", "critical", "emergency",
			"high priority", "time sensitive", "deadline",
		},
		DelegationIndicators: []string{
			"fwd:", "fw:", "please handle", "can you take care",
			"passing this to you", "your expertise",
		},
		ActionWords: []string{
			"please", "need", "required", "request", "can you",
			"would you", "could you", "action", "task", "complete",
			"finish", "submit", "send", "provide", "update", "review",
		},
		AutomatedIndicators: []string{
			"noreply", "no-reply", "donotreply", "automated",
			"notification@", "newsletter@", "marketing@",
			"unsubscribe", "opt out", "email preferences",
		},
	}
}
