package summarygen

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// Generator turns a day's aggregated numbers into email content.
type Generator interface {
	Generate(ctx context.Context, input model.DailySummaryInput) (model.DailySummaryEmail, error)
}

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.4
	defaultMaxTokens   = 800

	systemPrompt = "You are an assistant that writes concise end-of-day sales " +
		"call summary emails for a sales manager. Respond with clean HTML only, " +
		"no markdown fences. Keep it under 200 words."
)

// Config holds the OpenAI settings for summary generation.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// OpenAIGenerator produces the summary body with a chat completion call.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIGenerator creates an OpenAI-backed generator.
func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &OpenAIGenerator{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

var _ Generator = (*OpenAIGenerator)(nil)

func (g *OpenAIGenerator) Generate(ctx context.Context, input model.DailySummaryInput) (model.DailySummaryEmail, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(input)},
		},
	})
	if err != nil {
		return model.DailySummaryEmail{}, fmt.Errorf("%w: chat completion: %v", apperrors.ErrSummaryGen, err)
	}
	if len(resp.Choices) == 0 {
		return model.DailySummaryEmail{}, fmt.Errorf("%w: empty completion response", apperrors.ErrSummaryGen)
	}

	body := strings.TrimSpace(resp.Choices[0].Message.Content)
	if body == "" {
		return model.DailySummaryEmail{}, fmt.Errorf("%w: blank completion content", apperrors.ErrSummaryGen)
	}

	logger.FromContext(ctx).Debug("Summary email generated",
		zap.String("model", g.model),
		zap.Int("tokens_used", resp.Usage.TotalTokens),
	)
	return model.DailySummaryEmail{
		Subject:  subjectFor(input),
		HTMLBody: body,
	}, nil
}

func buildPrompt(in model.DailySummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the HTML body of a daily sales call summary email for %s.\n\n", in.Date)
	fmt.Fprintf(&b, "Numbers for the day:\n")
	fmt.Fprintf(&b, "- Total calls: %d\n", in.TotalCalls)
	fmt.Fprintf(&b, "- Connected calls: %d\n", in.ConnectedCalls)
	fmt.Fprintf(&b, "- New leads added: %d\n", in.NewLeadsAdded)
	fmt.Fprintf(&b, "- Demos scheduled: %d\n", in.DemosScheduled)
	fmt.Fprintf(&b, "- Deals closed: %d (total value %.2f)\n", in.DealsClosed, in.TotalDealValue)
	fmt.Fprintf(&b, "- Follow-ups set: %d\n", in.FollowUpsSet)
	fmt.Fprintf(&b, "\nReporting executive: %s\n", in.SalesExecName)
	fmt.Fprintf(&b, "Highlight call: %s (interest: %s, stage: %s, next follow-up: %s)\n",
		in.BusinessName, in.InterestLevel, in.LeadStage, in.FollowUpDate)
	return b.String()
}

func subjectFor(in model.DailySummaryInput) string {
	return fmt.Sprintf("Daily Sales Call Summary - %s - %s", in.SalesExecName, in.Date)
}

// TemplateGenerator renders a fixed HTML template. It backs the summary flow
// when no OpenAI API key is configured so the daily report still goes out.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a template-based generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

var _ Generator = (*TemplateGenerator)(nil)

func (g *TemplateGenerator) Generate(_ context.Context, input model.DailySummaryInput) (model.DailySummaryEmail, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Daily Sales Call Summary - %s</h2>", input.Date)
	fmt.Fprintf(&b, "<p>Reporting executive: <strong>%s</strong></p>", input.SalesExecName)
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Total calls: %d</li>", input.TotalCalls)
	fmt.Fprintf(&b, "<li>Connected calls: %d</li>", input.ConnectedCalls)
	fmt.Fprintf(&b, "<li>New leads added: %d</li>", input.NewLeadsAdded)
	fmt.Fprintf(&b, "<li>Demos scheduled: %d</li>", input.DemosScheduled)
	fmt.Fprintf(&b, "<li>Deals closed: %d (total value %.2f)</li>", input.DealsClosed, input.TotalDealValue)
	fmt.Fprintf(&b, "<li>Follow-ups set: %d</li>", input.FollowUpsSet)
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Highlight: %s (interest: %s, stage: %s, next follow-up: %s)</p>",
		input.BusinessName, input.InterestLevel, input.LeadStage, input.FollowUpDate)
	return model.DailySummaryEmail{
		Subject:  subjectFor(input),
		HTMLBody: b.String(),
	}, nil
}

// NewGenerator picks the OpenAI generator when an API key is configured and
// falls back to the fixed template otherwise.
func NewGenerator(cfg Config, log *zap.Logger) Generator {
	if cfg.APIKey == "" {
		log.Warn("No OpenAI API key configured, summary emails use the fixed template")
		return NewTemplateGenerator()
	}
	log.Info("OpenAI summary generator initialized", zap.String("model", cfg.Model))
	return NewOpenAIGenerator(cfg)
}
