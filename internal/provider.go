package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Provider identifies a remote AI service used for report generation.
type Provider string

const (
	ProviderGrok   Provider = "grok"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ParseProvider validates a provider name from flags or config.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderGrok, ProviderOpenAI, ProviderGemini:
		return Provider(name), nil
	}
	return "", fmt.Errorf("unknown provider: %s (supported: grok, openai, gemini)", name)
}

// ProviderConfig holds the endpoint, model, and credential source for a provider.
// All three providers speak the OpenAI chat-completions wire format, so a
// single SDK client serves them with different base URLs.
type ProviderConfig struct {
	BaseURL string
	Model   string
	EnvVar  string
}

// Config returns the fixed endpoint configuration for the provider.
func (p Provider) Config() ProviderConfig {
	switch p {
	case ProviderOpenAI:
		return ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-5.1",
			EnvVar:  "OPENAI_API_KEY",
		}
	case ProviderGemini:
		return ProviderConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:   "gemini-3-pro",
			EnvVar:  "GEMINI_API_KEY",
		}
	default:
		return ProviderConfig{
			BaseURL: "https://api.x.ai/v1",
			Model:   "grok-4-fast",
			EnvVar:  "XAI_API_KEY",
		}
	}
}

// APIKey reads the provider's credential from the environment.
// Fails with ErrMissingCredential before any network call is attempted.
func (p Provider) APIKey() (string, error) {
	key := os.Getenv(p.Config().EnvVar)
	if key == "" {
		return "", fmt.Errorf("%w: %s environment variable is not set (provider %s)", ErrMissingCredential, p.Config().EnvVar, p)
	}
	return key, nil
}

// ChatClient is the slice of the chat-completions API the generator needs.
// Abstracted so tests can fake the remote call.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// openAIChatClient backs ChatClient with the official OpenAI Go SDK,
// pointed at whichever provider endpoint was selected.
type openAIChatClient struct {
	client openai.Client
}

// NewChatClient creates an SDK-backed chat client for the provider.
func NewChatClient(provider Provider, apiKey string) ChatClient {
	cfg := provider.Config()
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
	)
	return &openAIChatClient{client: client}
}

func (c *openAIChatClient) CreateChatCompletion(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Generator produces a Report from a transcript via one AI provider.
type Generator struct {
	provider Provider
	client   ChatClient
	prompts  *PromptManager
	timeout  time.Duration
	verbose  bool
}

// NewGenerator creates a report generator for the provider. The client is
// initialized lazily so credential validation happens before any network setup.
func NewGenerator(provider Provider, client ChatClient, prompts *PromptManager, timeout time.Duration, verbose bool) *Generator {
	return &Generator{
		provider: provider,
		client:   client,
		prompts:  prompts,
		timeout:  timeout,
		verbose:  verbose,
	}
}

// Generate builds the prompt from the transcript, calls the provider,
// and parses the response into a validated Report.
func (g *Generator) Generate(ctx context.Context, transcript *Transcript, lang string) (*Report, error) {
	if g.client == nil {
		apiKey, err := g.provider.APIKey()
		if err != nil {
			return nil, err
		}
		g.client = NewChatClient(g.provider, apiKey)
	}

	systemPrompt, err := g.prompts.SystemPrompt(lang)
	if err != nil {
		return nil, fmt.Errorf("building system prompt: %w", err)
	}
	userPrompt := g.prompts.UserPrompt(transcript)

	if g.verbose {
		fmt.Printf("Requesting %s report from %s (%s)\n", lang, g.provider, g.provider.Config().Model)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.client.CreateChatCompletion(ctx, g.provider.Config().Model, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProvider, g.provider, err)
	}

	report, err := ParseReport(content)
	if err != nil {
		return nil, err
	}
	return report, nil
}
