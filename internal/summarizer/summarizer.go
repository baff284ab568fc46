// Package summarizer provides optional AI enrichment of digest
// content. It is an external collaborator at the pipeline boundary:
// when it is absent or failing, the heuristic summaries stand and the
// digest is structurally identical.
package summarizer

import (
	"context"

	"github.com/xaenox/daily-digest/internal/models"
)

// Summarizer produces natural-language enrichments. Implementations
// must return an error rather than a degraded result; the caller keeps
// its heuristic text on any error.
type Summarizer interface {
	// SummarizeConversation rewrites a conversation summary from its
	// thread content.
	SummarizeConversation(ctx context.Context, conv models.Conversation) (string, error)

	// CalendarInsights produces a short advisory paragraph about the
	// day's meeting load.
	CalendarInsights(ctx context.Context, analysis models.CalendarAnalysis) (string, error)
}
