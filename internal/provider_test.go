package internal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseProvider(t *testing.T) {
	for _, name := range []string{"grok", "openai", "gemini"} {
		provider, err := ParseProvider(name)
		if err != nil {
			t.Fatalf("ParseProvider(%q): %v", name, err)
		}
		if string(provider) != name {
			t.Fatalf("ParseProvider(%q) = %q", name, provider)
		}
	}

	if _, err := ParseProvider("claude"); err == nil {
		t.Fatalf("unknown provider accepted")
	}
}

func TestProviderConfig(t *testing.T) {
	cases := []struct {
		provider Provider
		envVar   string
		model    string
	}{
		{ProviderGrok, "XAI_API_KEY", "grok-4-fast"},
		{ProviderOpenAI, "OPENAI_API_KEY", "gpt-5.1"},
		{ProviderGemini, "GEMINI_API_KEY", "gemini-3-pro"},
	}
	for _, tc := range cases {
		cfg := tc.provider.Config()
		if cfg.EnvVar != tc.envVar {
			t.Fatalf("%s env var = %s, want %s", tc.provider, cfg.EnvVar, tc.envVar)
		}
		if cfg.Model != tc.model {
			t.Fatalf("%s model = %s, want %s", tc.provider, cfg.Model, tc.model)
		}
		if cfg.BaseURL == "" {
			t.Fatalf("%s has no base URL", tc.provider)
		}
	}
}

func TestAPIKeyMissing(t *testing.T) {
	for _, provider := range []Provider{ProviderGrok, ProviderOpenAI, ProviderGemini} {
		t.Setenv(provider.Config().EnvVar, "")
		if _, err := provider.APIKey(); !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("%s: error = %v, want ErrMissingCredential", provider, err)
		}
	}
}

func TestAPIKeyPresent(t *testing.T) {
	t.Setenv("XAI_API_KEY", "xai-test")
	key, err := ProviderGrok.APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "xai-test" {
		t.Fatalf("key = %q", key)
	}
}

type fakeChatClient struct {
	calls    int
	response string
	err      error
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testTranscript() *Transcript {
	return &Transcript{
		Text:     "hello",
		Language: "en",
		Segments: []Segment{{Start: 0, End: 60, Text: "hello"}},
	}
}

func testPromptManager(t *testing.T) *PromptManager {
	t.Helper()
	return NewPromptManager(t.TempDir(), "Report in {{.Lang}}. JSON only.")
}

func TestGenerateMissingCredentialBeforeNetwork(t *testing.T) {
	t.Setenv("XAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	generator := NewGenerator(ProviderGrok, nil, testPromptManager(t), time.Minute, false)
	_, err := generator.Generate(context.Background(), testTranscript(), "en")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
}

func TestGenerateParsesResponse(t *testing.T) {
	client := &fakeChatClient{response: wellFormedReport}
	generator := NewGenerator(ProviderGrok, client, testPromptManager(t), time.Minute, false)

	report, err := generator.Generate(context.Background(), testTranscript(), "en")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.Title != "Intro to Raft" {
		t.Fatalf("title = %q", report.Title)
	}
	if client.calls != 1 {
		t.Fatalf("client calls = %d", client.calls)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	client := &fakeChatClient{response: "sorry, I cannot help with that"}
	generator := NewGenerator(ProviderGrok, client, testPromptManager(t), time.Minute, false)

	_, err := generator.Generate(context.Background(), testTranscript(), "en")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	client := &fakeChatClient{err: errors.New("429 too many requests")}
	generator := NewGenerator(ProviderGemini, client, testPromptManager(t), time.Minute, false)

	_, err := generator.Generate(context.Background(), testTranscript(), "en")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("error = %v, want ErrProvider", err)
	}
}
