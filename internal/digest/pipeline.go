package digest

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xaenox/daily-digest/internal/calendar"
	"github.com/xaenox/daily-digest/internal/conversation"
	"github.com/xaenox/daily-digest/internal/models"
	"github.com/xaenox/daily-digest/internal/privacy"
	"github.com/xaenox/daily-digest/internal/summarizer"
)

// ErrInvalidInput marks a structural contract violation: a nil
// collection where a collection (possibly empty) was required.
var ErrInvalidInput = errors.New("invalid input")

// Options are the per-generation settings consumed by the pipeline.
type Options struct {
	WorkingHoursStart int
	WorkingHoursEnd   int
	PrivacyMode       bool
	UserName          string
}

// Pipeline is the front door: redact (when enabled), group and
// classify, analyze the calendar, assemble, optionally enrich. A
// generation either returns a complete digest or an error, never a
// partial result.
type Pipeline struct {
	redactor   *privacy.Redactor
	grouper    *conversation.Grouper
	analyzer   *calendar.Analyzer
	generator  *Generator
	summarizer summarizer.Summarizer // nil when AI enrichment is disabled
	logger     *zap.Logger
}

// NewPipeline wires the pipeline. summarizer may be nil.
func NewPipeline(redactor *privacy.Redactor, grouper *conversation.Grouper,
	analyzer *calendar.Analyzer, generator *Generator,
	sum summarizer.Summarizer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		redactor:   redactor,
		grouper:    grouper,
		analyzer:   analyzer,
		generator:  generator,
		summarizer: sum,
		logger:     logger,
	}
}

// Generate runs the full transform. The returned redaction map is
// non-nil only when privacy mode ran; its retention is the caller's
// concern.
func (p *Pipeline) Generate(ctx context.Context, messages []models.EmailMessage,
	events []models.CalendarEvent, opts Options) (models.Digest, privacy.RedactionMap, error) {

	if messages == nil || events == nil {
		return models.Digest{}, nil, ErrInvalidInput
	}

	var redactionMap privacy.RedactionMap
	if opts.PrivacyMode {
		var emailMap, eventMap privacy.RedactionMap
		messages, emailMap = p.redactor.RedactEmails(messages)
		events, eventMap = p.redactor.RedactEvents(events)
		redactionMap = make(privacy.RedactionMap, len(emailMap)+len(eventMap))
		redactionMap.Merge(emailMap)
		redactionMap.Merge(eventMap)
		p.logger.Info("Privacy redaction applied", zap.Int("redactions", len(redactionMap)))
	}

	conversations := p.grouper.Group(messages)
	analysis := p.analyzer.Analyze(events, opts.WorkingHoursStart, opts.WorkingHoursEnd)

	if p.summarizer != nil {
		p.enrich(ctx, conversations, &analysis)
	}

	digest := p.generator.Generate(conversations, analysis, opts.UserName)
	p.logger.Info("Digest generated",
		zap.Int("conversations", digest.Metadata.TotalConversations),
		zap.Int("emails", digest.Metadata.TotalEmails),
		zap.Int("meetings", digest.Metadata.TotalMeetings))
	return digest, redactionMap, nil
}

// enrich swaps heuristic summaries for AI ones where the model
// answers, and attaches calendar insights. Any failure keeps the
// heuristic text; enrichment never changes classifications or counts.
func (p *Pipeline) enrich(ctx context.Context, conversations map[string]models.Conversation,
	analysis *models.CalendarAnalysis) {

	for id, conv := range conversations {
		summary, err := p.summarizer.SummarizeConversation(ctx, conv)
		if err != nil {
			p.logger.Warn("Conversation enrichment failed, keeping heuristic summary",
				zap.String("conversation_id", id), zap.Error(err))
			continue
		}
		conv.Summary = summary
		conversations[id] = conv
	}

	if len(analysis.Meetings) > 0 {
		insights, err := p.summarizer.CalendarInsights(ctx, *analysis)
		if err != nil {
			p.logger.Warn("Calendar enrichment failed", zap.Error(err))
			return
		}
		analysis.Insights = insights
	}
}
