package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"
)

const (
	openAIName         = "openai"
	openAIDefaultModel = "gpt-4o-mini"

	// Default to ~180 RPM, well under any account tier.
	openAIDefaultRateLimit = 3.0
)

const resumeSystemPrompt = "Tu es un éditeur littéraire français. " +
	"Tu rédiges des résumés courts et évocateurs de marches le long de rivières."

// OpenAIClient summarizes marches through the OpenAI chat API.
type OpenAIClient struct {
	model   string
	client  openai.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewOpenAIClient creates a chat-backed summarizer.
func NewOpenAIClient(cfg Config, logger *slog.Logger) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = openAIDefaultRateLimit
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		model:   cfg.Model,
		client:  openai.NewClient(opts...),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger.With("provider", openAIName),
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return openAIName
}

// Summarize asks the chat model for a one-paragraph French summary and
// validates the structured response before returning it.
func (c *OpenAIClient) Summarize(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	prompt := buildResumePrompt(req)

	var summary string
	err := retry.Do(
		func() error {
			resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(c.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(resumeSystemPrompt),
					openai.UserMessage(prompt),
				},
			})
			if err != nil {
				return fmt.Errorf("chat completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("chat completion returned no choices")
			}

			parsed, err := parseResume(resp.Choices[0].Message.Content)
			if err != nil {
				return err
			}
			summary = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("summarization attempt failed",
				"attempt", n+1, "marche", req.MarcheNom, "error", err)
		}),
	)
	if err != nil {
		return "", err
	}
	return summary, nil
}

func buildResumePrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Voici les textes écrits lors de la marche « %s ».\n\n", req.MarcheNom)
	for i, texte := range req.Textes {
		fmt.Fprintf(&b, "Texte %d :\n%s\n\n", i+1, texte)
	}
	b.WriteString("Rédige un résumé d'un seul paragraphe (3 à 5 phrases) qui capture ")
	b.WriteString("l'atmosphère de cette marche.\n")
	b.WriteString(`Réponds uniquement avec un objet JSON de la forme {"summary": "..."}` + "\n")
	b.WriteString("sans aucun texte autour.")
	return b.String()
}
