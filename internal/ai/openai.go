package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/starford/ansuz/internal/models"
)

// Default models, matching the service's cheapest capable tier.
const (
	DefaultTranscribeModel = "whisper-1"
	DefaultSummaryModel    = "gpt-4o-mini"
)

const summarySystemPrompt = "You are a helpful assistant that creates concise summaries and titles for voice memos."

const summaryUserPrompt = `Based on this transcription, provide:
1. A one-line summary (max 50 characters, suitable for a filename)
2. A longer summary (2-3 sentences)
3. A title for the note

Transcription:
%s

Please respond in JSON format with keys: "filename_summary", "summary", "title".`

// OpenAI implements Transcriber and Summarizer against the OpenAI API
// or any compatible endpoint.
type OpenAI struct {
	client          openai.Client
	transcribeModel string
	summaryModel    string
	logger          *slog.Logger
}

var (
	_ Transcriber = (*OpenAI)(nil)
	_ Summarizer  = (*OpenAI)(nil)
)

// Option configures an OpenAI client.
type Option func(*OpenAI)

// WithTranscribeModel overrides the transcription model.
func WithTranscribeModel(model string) Option {
	return func(c *OpenAI) {
		c.transcribeModel = model
	}
}

// WithSummaryModel overrides the summarization model.
func WithSummaryModel(model string) Option {
	return func(c *OpenAI) {
		c.summaryModel = model
	}
}

// NewOpenAI creates a client. baseURL may be empty for the public API.
func NewOpenAI(apiKey, baseURL string, logger *slog.Logger, opts ...Option) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	c := &OpenAI{
		client:          openai.NewClient(reqOpts...),
		transcribeModel: DefaultTranscribeModel,
		summaryModel:    DefaultSummaryModel,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe sends the audio to the transcription endpoint and returns
// the transcript text. No streaming; the whole result comes back at
// once.
func (c *OpenAI) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	c.logger.Info("transcribing", slog.String("file", filename), slog.String("model", c.transcribeModel))

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.transcribeModel),
		File:  openai.File(audio, filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("ai: transcribe %s: %w", filename, err)
	}
	return resp.Text, nil
}

// Summarize asks the chat endpoint for a JSON object with the three
// required fields and validates them.
func (c *OpenAI) Summarize(ctx context.Context, transcript string) (models.SummaryResult, error) {
	c.logger.Info("summarizing", slog.String("model", c.summaryModel))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.summaryModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarySystemPrompt),
			openai.UserMessage(fmt.Sprintf(summaryUserPrompt, transcript)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return models.SummaryResult{}, fmt.Errorf("ai: summarize: %w", err)
	}
	if len(completion.Choices) == 0 {
		return models.SummaryResult{}, fmt.Errorf("ai: summarize: no completion choices returned")
	}

	content := completion.Choices[0].Message.Content
	result, err := ParseSummary(content)
	if err != nil {
		return models.SummaryResult{}, err
	}
	return result, nil
}

// ParseSummary decodes and validates a summary service response. All
// three fields must be present and non-blank.
func ParseSummary(content string) (models.SummaryResult, error) {
	var result models.SummaryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return models.SummaryResult{}, fmt.Errorf("ai: decode summary response: %w", err)
	}
	switch {
	case strings.TrimSpace(result.Title) == "":
		return models.SummaryResult{}, fmt.Errorf("ai: summary response missing title")
	case strings.TrimSpace(result.FilenameSummary) == "":
		return models.SummaryResult{}, fmt.Errorf("ai: summary response missing filename_summary")
	case strings.TrimSpace(result.Summary) == "":
		return models.SummaryResult{}, fmt.Errorf("ai: summary response missing summary")
	}
	return result, nil
}
