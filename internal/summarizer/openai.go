package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/daily-digest/internal/models"
)

// conversationResponse is the structured reply requested from the
// model for conversation summaries.
type conversationResponse struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// OpenAISummarizer enriches digests through the OpenAI chat API.
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewOpenAI builds a summarizer backed by the OpenAI API.
func NewOpenAI(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAISummarizer {
	return &OpenAISummarizer{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// SummarizeConversation asks the model for a structured summary of the
// thread. Errors propagate so the caller keeps its heuristic summary.
func (s *OpenAISummarizer) SummarizeConversation(ctx context.Context, conv models.Conversation) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following email conversation in one or two sentences
focused on what the recipient needs to know or do.

Return the response as a JSON object with this structure:
{
    "summary": "one_or_two_sentence_summary",
    "key_points": ["point1", "point2"]
}

Subject: %s
Messages (newest first):
%s`, conv.Subject, conversationContext(conv))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		s.logger.Error("Failed to get conversation summary", zap.Error(err))
		return "", err
	}

	var parsed conversationResponse
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		s.logger.Error("Failed to parse summary response",
			zap.Error(err),
			zap.String("response", response))
		return "", err
	}
	if parsed.Summary == "" {
		return "", fmt.Errorf("empty summary in model response")
	}
	return parsed.Summary, nil
}

// CalendarInsights asks the model for a short paragraph of advice
// about the day's schedule.
func (s *OpenAISummarizer) CalendarInsights(ctx context.Context, analysis models.CalendarAnalysis) (string, error) {
	var meetings strings.Builder
	for _, meeting := range analysis.Meetings {
		fmt.Fprintf(&meetings, "- %s: %s (%d min, %d attendees)\n",
			meeting.Time, meeting.Subject, meeting.DurationMinutes, meeting.AttendeeCount)
	}

	prompt := fmt.Sprintf(`Today's meetings:
%s
Total meeting hours: %v. Focus hours: %v. Back-to-back meetings: %d.

In at most three sentences, give practical advice on managing this schedule.`,
		meetings.String(), analysis.TotalMeetingHours, analysis.FocusTimeHours,
		analysis.Patterns.BackToBackCount)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an executive assistant providing concise, actionable calendar insights.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		s.logger.Error("Failed to get calendar insights", zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// conversationContext flattens a thread for the prompt, newest first,
// capped to the three most recent messages.
func conversationContext(conv models.Conversation) string {
	var b strings.Builder
	msgs := conv.Messages
	if len(msgs) > 3 {
		msgs = msgs[:3]
	}
	for _, msg := range msgs {
		fmt.Fprintf(&b, "From %s: %s\n", msg.Sender.Name, msg.BodyText())
	}
	return b.String()
}
